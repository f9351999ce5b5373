// Package state persists training trials and their checkpoints in
// SQLite, so soup selection and reporting can run after the fact.
package state

import (
	"errors"
	"time"
)

// DefaultPath is where the CLI keeps the trial database.
const DefaultPath = ".optconf/trials.db"

// ErrNotFound is returned when a requested trial does not exist.
// Callers can distinguish it from database failures with errors.Is.
var ErrNotFound = errors.New("not found")

// TrialStatus represents the lifecycle of a trial.
type TrialStatus string

// Trial statuses.
const (
	TrialStatusRunning   TrialStatus = "running"
	TrialStatusCompleted TrialStatus = "completed"
	TrialStatusFailed    TrialStatus = "failed"
)

// Trial is one training run configured by an optimization config.
type Trial struct {
	ID          string
	Name        string
	Preset      string
	ConfigYAML  string
	Status      TrialStatus
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// CheckpointRecord is one saved checkpoint of a trial with its
// validation score.
type CheckpointRecord struct {
	ID        string
	TrialID   string
	Path      string
	Step      int
	Score     float64
	CreatedAt time.Time
}
