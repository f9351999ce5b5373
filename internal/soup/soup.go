// Package soup selects which saved checkpoints to combine into the
// final model, implementing the uniform_soup, greedy_soup, and best
// strategies of top_k_average_method.
package soup

import (
	"context"
	"fmt"
	"sort"

	"github.com/soupstack-labs/optconf/internal/config"
)

// Checkpoint is one saved model snapshot with its validation score.
type Checkpoint struct {
	ID    string  `yaml:"id"`
	Path  string  `yaml:"path"`
	Step  int     `yaml:"step"`
	Score float64 `yaml:"score"`
}

// Selection is the outcome of a soup run: the members to average, each
// with equal weight, plus the strategy that produced it.
type Selection struct {
	Method  string
	Members []Checkpoint
}

// Weight returns the averaging weight of each member (uniform).
func (s *Selection) Weight() float64 {
	if len(s.Members) == 0 {
		return 0
	}
	return 1 / float64(len(s.Members))
}

// Evaluator scores a candidate soup (the average of the given members)
// on the validation set. Greedy soup needs this to decide whether a
// candidate earns its place.
type Evaluator interface {
	Score(ctx context.Context, members []Checkpoint) (float64, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, members []Checkpoint) (float64, error)

// Score implements Evaluator.
func (f EvaluatorFunc) Score(ctx context.Context, members []Checkpoint) (float64, error) {
	return f(ctx, members)
}

// Select picks checkpoints per the config's top_k_average_method.
// The evaluator is only required for greedy_soup.
func Select(ctx context.Context, cfg *config.OptimizationConfig, candidates []Checkpoint, eval Evaluator) (*Selection, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no checkpoints to select from")
	}
	if cfg.TopK < 1 {
		return nil, fmt.Errorf("top_k must be at least 1, got %d", cfg.TopK)
	}

	ranked := Rank(candidates)
	if cfg.TopK < len(ranked) {
		ranked = ranked[:cfg.TopK]
	}

	switch cfg.TopKAverageMethod {
	case config.AverageBest:
		return &Selection{Method: config.AverageBest, Members: ranked[:1]}, nil
	case config.AverageUniformSoup:
		return &Selection{Method: config.AverageUniformSoup, Members: ranked}, nil
	case config.AverageGreedySoup:
		return greedy(ctx, ranked, eval)
	default:
		return nil, fmt.Errorf("unknown top_k_average_method %q", cfg.TopKAverageMethod)
	}
}

// Rank sorts checkpoints best-first: score descending, later steps
// breaking ties. The input is not modified.
func Rank(candidates []Checkpoint) []Checkpoint {
	ranked := make([]Checkpoint, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Step > ranked[j].Step
	})
	return ranked
}

// greedy builds the soup best-first: each candidate joins only if the
// averaged soup scores at least as well as the best soup found so far.
// The best single checkpoint is always a member.
func greedy(ctx context.Context, ranked []Checkpoint, eval Evaluator) (*Selection, error) {
	if eval == nil {
		return nil, fmt.Errorf("greedy_soup requires an evaluator")
	}

	members := []Checkpoint{ranked[0]}
	best, err := eval.Score(ctx, members)
	if err != nil {
		return nil, fmt.Errorf("scoring initial soup: %w", err)
	}

	for _, candidate := range ranked[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		trial := append(append([]Checkpoint{}, members...), candidate)
		score, err := eval.Score(ctx, trial)
		if err != nil {
			return nil, fmt.Errorf("scoring soup with %s: %w", candidate.ID, err)
		}
		if score >= best {
			members = trial
			best = score
		}
	}

	return &Selection{Method: config.AverageGreedySoup, Members: members}, nil
}

// Average combines checkpoint weight vectors uniformly. All vectors
// must have the same length.
func Average(weights [][]float64) ([]float64, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("no weights to average")
	}

	n := len(weights[0])
	avg := make([]float64, n)
	for i, w := range weights {
		if len(w) != n {
			return nil, fmt.Errorf("weight vector %d has length %d, want %d", i, len(w), n)
		}
		for j, v := range w {
			avg[j] += v
		}
	}
	for j := range avg {
		avg[j] /= float64(len(weights))
	}
	return avg, nil
}
