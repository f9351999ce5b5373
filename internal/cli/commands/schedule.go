package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/soupstack-labs/optconf/internal/cli/output"
	"github.com/soupstack-labs/optconf/internal/earlystop"
	"github.com/soupstack-labs/optconf/internal/schedule"
	"github.com/spf13/cobra"
)

// ScheduleOptions holds options for the schedule command.
type ScheduleOptions struct {
	StepsPerEpoch int // Steps per epoch for epoch-bounded runs
	Points        int // Number of curve samples to print
}

// NewScheduleCommand creates the schedule command.
func NewScheduleCommand() *cobra.Command {
	opts := &ScheduleOptions{}
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the learning-rate schedule",
		Long: `Resolve the configured schedule into absolute steps and print the
learning rate over the run, including warmup and the validation cadence.`,
		Example: `  # Curve for the resolved config
  optconf schedule --steps-per-epoch 500

  # More samples
  optconf schedule --steps-per-epoch 500 --points 50`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchedule(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.StepsPerEpoch, "steps-per-epoch", 0, "Steps per epoch (required for epoch-bounded runs)")
	cmd.Flags().IntVar(&opts.Points, "points", 20, "Number of curve samples")

	return cmd
}

func runSchedule(cmd *cobra.Command, opts *ScheduleOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Res.Config

	plan, err := schedule.NewPlan(&cfg, opts.StepsPerEpoch)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"schedule":     plan.Schedule,
			"base_lr":      plan.BaseLR,
			"end_lr":       plan.EndLR,
			"warmup_steps": plan.WarmupSteps,
			"total_steps":  plan.TotalSteps,
			"curve":        plan.Curve(opts.Points),
		})
	}

	styles := r.Styles()
	r.Println(styles.Header1.Render(fmt.Sprintf("%s over %d steps", plan.Schedule, plan.TotalSteps)))
	r.Printf("  warmup: %d steps, base lr: %g, end lr: %g\n", plan.WarmupSteps, plan.BaseLR, plan.EndLR)
	if opts.StepsPerEpoch > 0 {
		every := earlystop.CheckEvery(cfg.ValCheckInterval, opts.StepsPerEpoch)
		r.Printf("  validation every %d steps, patience %d\n", every, cfg.Patience)
	}
	r.Println("")

	rows := make([][]string, 0, opts.Points)
	for _, p := range plan.Curve(opts.Points) {
		rows = append(rows, []string{strconv.Itoa(p.Step), strconv.FormatFloat(p.LR, 'e', 4, 64)})
	}
	r.Table([]string{"Step", "LR"}, rows)
	return nil
}
