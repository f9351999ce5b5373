package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Preset string // Preset to materialize
	Force  bool   // Overwrite an existing file
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter optimization.yaml",
		Long: `Create an optimization.yaml in the given directory (default: current
directory), populated from the stock defaults or a named preset.`,
		Example: `  # Starter config in the current directory
  optconf init

  # Materialize a preset
  optconf init --preset best_quality ./configs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Preset, "preset", config.PresetDefault, "Preset to materialize")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, opts *InitOptions) error {
	cfg, err := config.FromPreset(opts.Preset)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(path); err == nil && !opts.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	header := fmt.Sprintf("# Optimizer hyperparameters (%s preset).\n# See 'optconf rules' for the constraints each key must satisfy.\n", opts.Preset)
	if err := os.WriteFile(path, append([]byte(header), out...), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
