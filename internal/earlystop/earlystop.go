// Package earlystop implements patience-based early stopping and the
// validation cadence derived from val_check_interval.
package earlystop

import "math"

// Mode selects the improvement direction for the monitored score.
type Mode int

const (
	// Max stops when the score stops increasing (accuracy-like metrics).
	Max Mode = iota
	// Min stops when the score stops decreasing (loss-like metrics).
	Min
)

// Stopper tracks the best validation score seen so far and signals a
// stop after `patience` consecutive non-improving observations.
type Stopper struct {
	mode     Mode
	patience int

	best     float64
	bad      int
	observed bool
}

// NewStopper creates a stopper. Patience is the number of non-improving
// validations tolerated before stopping; zero stops on the first one.
func NewStopper(patience int, mode Mode) *Stopper {
	return &Stopper{mode: mode, patience: patience}
}

// Observe records a validation score. It returns whether the score
// improved on the best so far, and whether training should stop.
func (s *Stopper) Observe(score float64) (improved, stop bool) {
	if !s.observed {
		s.observed = true
		s.best = score
		return true, false
	}

	if s.isBetter(score) {
		s.best = score
		s.bad = 0
		return true, false
	}

	s.bad++
	return false, s.bad > s.patience
}

// Best returns the best score observed. Valid after the first Observe.
func (s *Stopper) Best() float64 {
	return s.best
}

func (s *Stopper) isBetter(score float64) bool {
	if s.mode == Min {
		return score < s.best
	}
	return score > s.best
}

// CheckEvery converts val_check_interval into an absolute step interval.
// Values at or below 1 are a fraction of an epoch; larger values are an
// absolute batch count. The result is never below 1.
func CheckEvery(valCheckInterval float64, stepsPerEpoch int) int {
	interval := valCheckInterval
	if interval <= 1 {
		interval = math.Round(interval * float64(stepsPerEpoch))
	}
	if interval < 1 {
		return 1
	}
	return int(interval)
}
