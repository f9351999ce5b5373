// Package schedule computes the learning-rate curve described by an
// optimization config: linear warmup followed by a decay shape that
// lands on end_lr at the final step.
package schedule

import (
	"fmt"
	"math"

	"github.com/soupstack-labs/optconf/internal/config"
)

// Plan is a resolved learning-rate schedule: all fractions and sentinels
// from the config are converted to absolute step counts.
type Plan struct {
	Schedule    string
	BaseLR      float64
	EndLR       float64
	WarmupSteps int
	TotalSteps  int
}

// NewPlan resolves a config into a schedule plan. stepsPerEpoch is
// required when the run is bounded by epochs rather than steps.
func NewPlan(cfg *config.OptimizationConfig, stepsPerEpoch int) (*Plan, error) {
	total, err := totalSteps(cfg, stepsPerEpoch)
	if err != nil {
		return nil, err
	}

	warmup := cfg.WarmupSteps
	if warmup < 1 {
		// Fraction of total steps.
		warmup = math.Round(warmup * float64(total))
	}
	if int(warmup) > total {
		return nil, fmt.Errorf("warmup of %d steps exceeds total of %d steps", int(warmup), total)
	}

	return &Plan{
		Schedule:    cfg.LRSchedule,
		BaseLR:      cfg.LearningRate,
		EndLR:       cfg.EndLR,
		WarmupSteps: int(warmup),
		TotalSteps:  total,
	}, nil
}

// totalSteps resolves the -1 sentinels on max_steps / max_epochs.
// max_steps wins when both axes are bounded, matching the trainer's
// whichever-comes-first behavior for schedule horizon purposes.
func totalSteps(cfg *config.OptimizationConfig, stepsPerEpoch int) (int, error) {
	if cfg.MaxSteps != config.Unbounded {
		if cfg.MaxSteps <= 0 {
			return 0, fmt.Errorf("max_steps must be positive or -1, got %d", cfg.MaxSteps)
		}
		if cfg.MaxEpochs != config.Unbounded && stepsPerEpoch > 0 {
			if byEpochs := cfg.MaxEpochs * stepsPerEpoch; byEpochs < cfg.MaxSteps {
				return byEpochs, nil
			}
		}
		return cfg.MaxSteps, nil
	}
	if cfg.MaxEpochs == config.Unbounded {
		return 0, fmt.Errorf("cannot plan a schedule: max_epochs and max_steps are both -1")
	}
	if stepsPerEpoch <= 0 {
		return 0, fmt.Errorf("steps per epoch required to resolve an epoch-bounded run, got %d", stepsPerEpoch)
	}
	return cfg.MaxEpochs * stepsPerEpoch, nil
}

// LRAt returns the learning rate at a zero-based step. Steps beyond the
// end of the plan return EndLR for the decay schedules and BaseLR for
// the constant schedule or when warmup spans the whole run.
func (p *Plan) LRAt(step int) float64 {
	if step < 0 {
		step = 0
	}

	// Linear warmup from zero to the base rate.
	if step < p.WarmupSteps {
		return p.BaseLR * float64(step) / float64(p.WarmupSteps)
	}

	if p.Schedule == config.ScheduleConstantWithWarmup {
		return p.BaseLR
	}

	decaySteps := p.TotalSteps - p.WarmupSteps
	if decaySteps <= 0 {
		// Warmup spans the whole run; the curve ends at its peak.
		return p.BaseLR
	}
	if step >= p.TotalSteps {
		return p.EndLR
	}
	progress := float64(step-p.WarmupSteps) / float64(decaySteps)

	switch p.Schedule {
	case config.ScheduleCosineDecay:
		return p.EndLR + 0.5*(p.BaseLR-p.EndLR)*(1+math.Cos(math.Pi*progress))
	case config.SchedulePolynomialDecay, config.ScheduleLinearDecay:
		// Power-1 polynomial decay and linear decay are the same curve.
		return p.EndLR + (p.BaseLR-p.EndLR)*(1-progress)
	default:
		return p.BaseLR
	}
}

// Point is one sampled step of the curve.
type Point struct {
	Step int
	LR   float64
}

// Curve samples the schedule at n evenly spaced steps, always including
// the first and last step.
func (p *Plan) Curve(n int) []Point {
	if n < 2 {
		n = 2
	}
	if n > p.TotalSteps {
		n = p.TotalSteps
	}
	if n < 2 {
		return []Point{{Step: 0, LR: p.LRAt(0)}}
	}

	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		step := i * (p.TotalSteps - 1) / (n - 1)
		points = append(points, Point{Step: step, LR: p.LRAt(step)})
	}
	return points
}
