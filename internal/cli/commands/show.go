package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/soupstack-labs/optconf/internal/cli/output"
	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	Format string // Output format: table, yaml, json
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	opts := &ShowOptions{}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Long: `Print the configuration after layering defaults, preset, config
file, environment variables, and flags.`,
		Example: `  # Resolved config as a table
  optconf show

  # As YAML, ready to commit
  optconf show --format yaml

  # Resolved from a preset
  optconf --preset best_quality show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, yaml, json")

	return cmd
}

func runShow(cmd *cobra.Command, opts *ShowOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Res.Config

	switch opts.Format {
	case "yaml":
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, _ = cmd.OutOrStdout().Write(out)
		return nil
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(configJSON(cfg))
	default:
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(configJSON(cfg))
	}

	finetune := "null"
	if cfg.EfficientFinetune != nil {
		finetune = *cfg.EfficientFinetune
	}
	rows := [][]string{
		{"optim_type", cfg.OptimType},
		{"learning_rate", formatFloat(cfg.LearningRate)},
		{"weight_decay", formatFloat(cfg.WeightDecay)},
		{"lr_choice", cfg.LRChoice},
		{"lr_decay", formatFloat(cfg.LRDecay)},
		{"lr_schedule", cfg.LRSchedule},
		{"max_epochs", strconv.Itoa(cfg.MaxEpochs)},
		{"max_steps", strconv.Itoa(cfg.MaxSteps)},
		{"warmup_steps", formatFloat(cfg.WarmupSteps)},
		{"end_lr", formatFloat(cfg.EndLR)},
		{"lr_mult", formatFloat(cfg.LRMult)},
		{"patience", strconv.Itoa(cfg.Patience)},
		{"val_check_interval", formatFloat(cfg.ValCheckInterval)},
		{"top_k", strconv.Itoa(cfg.TopK)},
		{"top_k_average_method", cfg.TopKAverageMethod},
		{"efficient_finetune", finetune},
	}

	if cmdCtx.Res.FileUsed != "" {
		r.Println(r.Styles().Muted.Render("config file: " + cmdCtx.Res.FileUsed))
	}
	r.Table([]string{"Key", "Value"}, rows)
	return nil
}

// configJSON converts a config to a flat key map so JSON output uses
// the schema's key names.
func configJSON(cfg config.OptimizationConfig) map[string]any {
	var finetune any
	if cfg.EfficientFinetune != nil {
		finetune = *cfg.EfficientFinetune
	}
	return map[string]any{
		"optim_type":           cfg.OptimType,
		"learning_rate":        cfg.LearningRate,
		"weight_decay":         cfg.WeightDecay,
		"lr_choice":            cfg.LRChoice,
		"lr_decay":             cfg.LRDecay,
		"lr_schedule":          cfg.LRSchedule,
		"max_epochs":           cfg.MaxEpochs,
		"max_steps":            cfg.MaxSteps,
		"warmup_steps":         cfg.WarmupSteps,
		"end_lr":               cfg.EndLR,
		"lr_mult":              cfg.LRMult,
		"patience":             cfg.Patience,
		"val_check_interval":   cfg.ValCheckInterval,
		"top_k":                cfg.TopK,
		"top_k_average_method": cfg.TopKAverageMethod,
		"efficient_finetune":   finetune,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
