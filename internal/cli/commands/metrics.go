package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/soupstack-labs/optconf/internal/cli/output"
	"github.com/soupstack-labs/optconf/internal/metrics"
	"github.com/spf13/cobra"
)

// MetricsOptions holds options for the metrics command.
type MetricsOptions struct {
	Curve string // Metric column to print instead of the summary
}

// NewMetricsCommand creates the metrics command.
func NewMetricsCommand() *cobra.Command {
	opts := &MetricsOptions{}
	cmd := &cobra.Command{
		Use:   "metrics <csv>",
		Short: "Summarize a training metrics log",
		Long: `Analyze a training metrics CSV (step, epoch, train_loss, val_score, lr)
and report the best validation score, its step, and the final state.`,
		Example: `  # Run summary
  optconf metrics runs/bert-base.csv

  # Validation curve
  optconf metrics runs/bert-base.csv --curve val_score`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetrics(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Curve, "curve", "", "Print a metric curve: train_loss, val_score, lr, epoch")

	return cmd
}

func runMetrics(cmd *cobra.Command, csvPath string, opts *MetricsOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	analyzer, err := metrics.NewAnalyzer(cmd.Context())
	if err != nil {
		return err
	}
	defer analyzer.Close()

	if opts.Curve != "" {
		points, err := analyzer.Curve(cmd.Context(), csvPath, opts.Curve)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(points))
		for _, p := range points {
			rows = append(rows, []string{strconv.Itoa(p.Step), strconv.FormatFloat(p.Value, 'g', 6, 64)})
		}
		r.Table([]string{"Step", opts.Curve}, rows)
		return nil
	}

	summary, err := analyzer.Summarize(cmd.Context(), csvPath)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	styles := r.Styles()
	r.Println(styles.Header1.Render(csvPath))
	r.Printf("  rows:       %d (%d epoch(s))\n", summary.Rows, summary.Epochs)
	r.Printf("  best score: %s at step %d\n", styles.Bold.Render(fmt.Sprintf("%.4f", summary.BestScore)), summary.BestStep)
	r.Printf("  final:      loss %.4f, lr %g\n", summary.FinalLoss, summary.FinalLR)
	return nil
}
