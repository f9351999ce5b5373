// Package cli provides the command-line interface for optconf.
package cli

import (
	"fmt"
	"os"

	"github.com/soupstack-labs/optconf/internal/cli/commands"
	"github.com/soupstack-labs/optconf/internal/cli/output"
	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	presetFlag string
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "optconf",
		Short: "optconf - Optimization Config Toolkit",
		Long: `optconf loads, validates, and inspects the optimizer hyperparameter
configuration consumed by the training pipeline.

It resolves a config from defaults, presets, optimization.yaml, OPTCONF_*
environment variables, and flags, then derives the training policies the
config describes: learning-rate schedules, parameter groups, early
stopping, and checkpoint soups.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			res, err := config.Load(cfgFile, presetFlag, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			ctx := commands.WithConfig(cmd.Context(), res)

			mode, _ := cmd.Root().PersistentFlags().GetString("output")
			renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(mode))
			ctx = commands.WithRenderer(ctx, renderer)
			cmd.SetContext(ctx)

			if verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose"); verbose {
				if res.FileUsed != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", res.FileUsed)
				}
				if presetFlag != "" {
					fmt.Fprintf(os.Stderr, "Using preset: %s\n", presetFlag)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Optimization Config Toolkit
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./optimization.yaml)")
	rootCmd.PersistentFlags().StringVarP(&presetFlag, "preset", "p", "", "Preset to start from (e.g. best_quality)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	// Per-key overrides, layered above env vars and the config file.
	rootCmd.PersistentFlags().String("optim-type", "", "Optimizer identifier")
	rootCmd.PersistentFlags().Float64("learning-rate", 0, "Base learning rate")
	rootCmd.PersistentFlags().Float64("weight-decay", 0, "Weight decay")
	rootCmd.PersistentFlags().String("lr-choice", "", "Learning-rate strategy")
	rootCmd.PersistentFlags().Float64("lr-decay", 0, "Layerwise decay factor")
	rootCmd.PersistentFlags().String("lr-schedule", "", "Schedule identifier")
	rootCmd.PersistentFlags().Int("max-epochs", 0, "Epoch bound (-1 for unbounded)")
	rootCmd.PersistentFlags().Int("max-steps", 0, "Step bound (-1 for unbounded)")
	rootCmd.PersistentFlags().Float64("warmup-steps", 0, "Warmup fraction or step count")
	rootCmd.PersistentFlags().Float64("end-lr", 0, "Terminal learning rate")
	rootCmd.PersistentFlags().Float64("lr-mult", 0, "Head learning-rate multiplier")
	rootCmd.PersistentFlags().Int("patience", 0, "Early-stopping patience")
	rootCmd.PersistentFlags().Float64("val-check-interval", 0, "Validation frequency")
	rootCmd.PersistentFlags().Int("top-k", 0, "Checkpoints retained for averaging")
	rootCmd.PersistentFlags().String("top-k-average-method", "", "Checkpoint averaging method")
	rootCmd.PersistentFlags().String("efficient-finetune", "", "Parameter-efficient fine-tuning mode")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Register completion for preset flag
	_ = rootCmd.RegisterFlagCompletionFunc("preset", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.Presets(), cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewScheduleCommand())
	rootCmd.AddCommand(commands.NewSoupCommand())
	rootCmd.AddCommand(commands.NewTrialsCommand())
	rootCmd.AddCommand(commands.NewMetricsCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
