package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/soupstack-labs/optconf/internal/state"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewTrialsCommand creates the trials command group.
func NewTrialsCommand() *cobra.Command {
	var statePath string

	cmd := &cobra.Command{
		Use:   "trials",
		Short: "Manage recorded training trials",
		Long: `Track training trials and their checkpoints in a local SQLite
database so soup selection and reporting can run after training.`,
	}
	cmd.PersistentFlags().StringVar(&statePath, "state", state.DefaultPath, "State database path")

	cmd.AddCommand(newTrialsListCommand(&statePath))
	cmd.AddCommand(newTrialsRecordCommand(&statePath))

	return cmd
}

func newTrialsListCommand(statePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded trials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(*statePath)
			if err != nil {
				return err
			}
			defer store.Close()

			trials, err := store.ListTrials()
			if err != nil {
				return err
			}

			cmdCtx := NewCommandContext(cmd)
			r := cmdCtx.Renderer
			if len(trials) == 0 {
				r.Println("No trials recorded.")
				return nil
			}

			rows := make([][]string, 0, len(trials))
			for _, t := range trials {
				completed := ""
				if t.CompletedAt != nil {
					completed = t.CompletedAt.Format("2006-01-02 15:04:05")
				}
				rows = append(rows, []string{
					t.ID[:8], t.Name, t.Preset, string(t.Status),
					t.CreatedAt.Format("2006-01-02 15:04:05"), completed,
				})
			}
			r.Table([]string{"ID", "Name", "Preset", "Status", "Created", "Completed"}, rows)
			return nil
		},
	}
}

// TrialsRecordOptions holds options for the trials record command.
type TrialsRecordOptions struct {
	Name  string  // Trial name
	Path  string  // Checkpoint path
	Step  int     // Checkpoint step
	Score float64 // Checkpoint validation score
	Done  bool    // Mark the trial completed after recording
}

func newTrialsRecordCommand(statePath *string) *cobra.Command {
	opts := &TrialsRecordOptions{}
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a trial checkpoint",
		Long: `Record a checkpoint for a trial, creating the trial on first use.
New trials capture the resolved optimization config at record time.`,
		Example: `  # Record a checkpoint score
  optconf trials record --name bert-base --path ckpt/epoch3.pt --step 1500 --score 0.871

  # Mark the trial done
  optconf trials record --name bert-base --path ckpt/final.pt --step 5000 --score 0.883 --done`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrialsRecord(cmd, *statePath, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Trial name")
	cmd.Flags().StringVar(&opts.Path, "path", "", "Checkpoint path")
	cmd.Flags().IntVar(&opts.Step, "step", 0, "Checkpoint step")
	cmd.Flags().Float64Var(&opts.Score, "score", 0, "Checkpoint validation score")
	cmd.Flags().BoolVar(&opts.Done, "done", false, "Mark the trial completed after recording")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("path")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}

func runTrialsRecord(cmd *cobra.Command, statePath string, opts *TrialsRecordOptions) error {
	cmdCtx := NewCommandContext(cmd)

	store, err := openStore(statePath)
	if err != nil {
		return err
	}
	defer store.Close()

	trial, err := store.GetTrialByName(opts.Name)
	if errors.Is(err, state.ErrNotFound) {
		cfgYAML, merr := yaml.Marshal(cmdCtx.Res.Config)
		if merr != nil {
			return fmt.Errorf("failed to serialize config: %w", merr)
		}
		trial, err = store.CreateTrial(opts.Name, cmdCtx.Res.Preset, string(cfgYAML))
	}
	if err != nil {
		return err
	}

	cp, err := store.RecordCheckpoint(trial.ID, opts.Path, opts.Step, opts.Score)
	if err != nil {
		return err
	}

	if opts.Done {
		if err := store.CompleteTrial(trial.ID, state.TrialStatusCompleted); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Recorded checkpoint %s for trial %s (step %s, score %s)\n",
		cp.ID[:8], trial.Name, strconv.Itoa(cp.Step), strconv.FormatFloat(cp.Score, 'f', 4, 64))
	return nil
}

// openStore opens the trial database, creating its directory and
// running migrations as needed.
func openStore(path string) (*state.SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(path); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
