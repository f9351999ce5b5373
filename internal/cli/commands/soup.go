package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/soupstack-labs/optconf/internal/soup"
	"github.com/soupstack-labs/optconf/internal/state"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// SoupOptions holds options for the soup command.
type SoupOptions struct {
	Trial      string // Trial name or ID in the state database
	StatePath  string // State database path
	ScoresFile string // YAML checkpoint list, alternative to the store
}

// NewSoupCommand creates the soup command.
func NewSoupCommand() *cobra.Command {
	opts := &SoupOptions{}
	cmd := &cobra.Command{
		Use:   "soup",
		Short: "Select checkpoints to average",
		Long: `Apply the configured top_k_average_method to a trial's checkpoints.

Candidates come from the trial state database (--trial) or from a YAML
file listing checkpoints with scores (--scores). greedy_soup needs soup
evaluation during training, so offline selection approximates it with
the recorded validation scores: a candidate joins when its score is at
least the running soup mean.`,
		Example: `  # From the trial store
  optconf soup --trial bert-base --state .optconf/trials.db

  # From a scores file
  optconf soup --scores checkpoints.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSoup(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Trial, "trial", "", "Trial name or ID in the state database")
	cmd.Flags().StringVar(&opts.StatePath, "state", state.DefaultPath, "State database path")
	cmd.Flags().StringVar(&opts.ScoresFile, "scores", "", "YAML file listing checkpoints with scores")

	return cmd
}

func runSoup(cmd *cobra.Command, opts *SoupOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Res.Config

	candidates, err := soupCandidates(opts)
	if err != nil {
		return err
	}

	selection, err := soup.Select(cmd.Context(), &cfg, candidates, recordedScoreEvaluator())
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	styles := r.Styles()
	r.Println(styles.Header1.Render(fmt.Sprintf("%s: %d of %d checkpoint(s), weight %.3f each",
		selection.Method, len(selection.Members), len(candidates), selection.Weight())))
	r.Println("")

	rows := make([][]string, 0, len(selection.Members))
	for _, m := range selection.Members {
		rows = append(rows, []string{m.ID, m.Path, strconv.Itoa(m.Step), strconv.FormatFloat(m.Score, 'f', 4, 64)})
	}
	r.Table([]string{"ID", "Path", "Step", "Score"}, rows)
	return nil
}

// soupCandidates loads checkpoints from the scores file or the store.
func soupCandidates(opts *SoupOptions) ([]soup.Checkpoint, error) {
	if opts.ScoresFile != "" {
		data, err := os.ReadFile(opts.ScoresFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read scores file: %w", err)
		}
		var doc struct {
			Checkpoints []soup.Checkpoint `yaml:"checkpoints"`
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse scores file: %w", err)
		}
		return doc.Checkpoints, nil
	}

	if opts.Trial == "" {
		return nil, fmt.Errorf("either --trial or --scores is required")
	}

	store, err := openStore(opts.StatePath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	trial, err := store.GetTrial(opts.Trial)
	if errors.Is(err, state.ErrNotFound) {
		trial, err = store.GetTrialByName(opts.Trial)
	}
	if err != nil {
		return nil, err
	}

	records, err := store.TopCheckpoints(trial.ID, maxCandidates)
	if err != nil {
		return nil, err
	}

	candidates := make([]soup.Checkpoint, 0, len(records))
	for _, rec := range records {
		candidates = append(candidates, soup.Checkpoint{
			ID:    rec.ID,
			Path:  rec.Path,
			Step:  rec.Step,
			Score: rec.Score,
		})
	}
	return candidates, nil
}

// maxCandidates caps how many checkpoints are pulled from the store
// before top_k trimming.
const maxCandidates = 100

// recordedScoreEvaluator scores a candidate soup as the mean of the
// members' recorded validation scores. This is the offline stand-in
// for re-evaluating the averaged model.
func recordedScoreEvaluator() soup.Evaluator {
	return soup.EvaluatorFunc(func(_ context.Context, members []soup.Checkpoint) (float64, error) {
		if len(members) == 0 {
			return 0, fmt.Errorf("empty soup")
		}
		sum := 0.0
		for _, m := range members {
			sum += m.Score
		}
		return sum / float64(len(members)), nil
	})
}
