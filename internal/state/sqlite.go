package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists trials and checkpoints using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// --- Trial operations ---

// CreateTrial records a new trial with its serialized config.
func (s *SQLiteStore) CreateTrial(name, preset, configYAML string) (*Trial, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	trial := &Trial{
		ID:         generateID(),
		Name:       name,
		Preset:     preset,
		ConfigYAML: configYAML,
		Status:     TrialStatusRunning,
		CreatedAt:  time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO trials (id, name, preset, config_yaml, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		trial.ID, trial.Name, trial.Preset, trial.ConfigYAML, trial.Status, trial.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trial: %w", err)
	}

	return trial, nil
}

// GetTrial retrieves a trial by ID.
func (s *SQLiteStore) GetTrial(id string) (*Trial, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	trial := &Trial{}
	var completedAt sql.NullTime

	err := s.db.QueryRow(
		`SELECT id, name, preset, config_yaml, status, created_at, completed_at FROM trials WHERE id = ?`,
		id,
	).Scan(&trial.ID, &trial.Name, &trial.Preset, &trial.ConfigYAML, &trial.Status, &trial.CreatedAt, &completedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trial %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trial: %w", err)
	}

	if completedAt.Valid {
		trial.CompletedAt = &completedAt.Time
	}

	return trial, nil
}

// GetTrialByName retrieves the most recent trial with the given name.
func (s *SQLiteStore) GetTrialByName(name string) (*Trial, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var id string
	err := s.db.QueryRow(
		`SELECT id FROM trials WHERE name = ? ORDER BY created_at DESC LIMIT 1`,
		name,
	).Scan(&id)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trial %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trial: %w", err)
	}

	return s.GetTrial(id)
}

// CompleteTrial marks a trial as completed or failed.
func (s *SQLiteStore) CompleteTrial(id string, status TrialStatus) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	res, err := s.db.Exec(
		`UPDATE trials SET status = ?, completed_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete trial: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("trial %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListTrials returns all trials, newest first.
func (s *SQLiteStore) ListTrials() ([]*Trial, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT id, name, preset, config_yaml, status, created_at, completed_at FROM trials ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trials: %w", err)
	}
	defer rows.Close()

	var trials []*Trial
	for rows.Next() {
		trial := &Trial{}
		var completedAt sql.NullTime
		if err := rows.Scan(&trial.ID, &trial.Name, &trial.Preset, &trial.ConfigYAML, &trial.Status, &trial.CreatedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trial: %w", err)
		}
		if completedAt.Valid {
			trial.CompletedAt = &completedAt.Time
		}
		trials = append(trials, trial)
	}
	return trials, rows.Err()
}

// --- Checkpoint operations ---

// RecordCheckpoint saves a checkpoint row for a trial.
func (s *SQLiteStore) RecordCheckpoint(trialID, path string, step int, score float64) (*CheckpointRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	cp := &CheckpointRecord{
		ID:        generateID(),
		TrialID:   trialID,
		Path:      path,
		Step:      step,
		Score:     score,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO checkpoints (id, trial_id, path, step, score, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		cp.ID, cp.TrialID, cp.Path, cp.Step, cp.Score, cp.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record checkpoint: %w", err)
	}

	return cp, nil
}

// TopCheckpoints returns the k best checkpoints of a trial, score
// descending with later steps breaking ties.
func (s *SQLiteStore) TopCheckpoints(trialID string, k int) ([]*CheckpointRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT id, trial_id, path, step, score, created_at FROM checkpoints
		 WHERE trial_id = ? ORDER BY score DESC, step DESC LIMIT ?`,
		trialID, k,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query checkpoints: %w", err)
	}
	defer rows.Close()

	var checkpoints []*CheckpointRecord
	for rows.Next() {
		cp := &CheckpointRecord{}
		if err := rows.Scan(&cp.ID, &cp.TrialID, &cp.Path, &cp.Step, &cp.Score, &cp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint: %w", err)
		}
		checkpoints = append(checkpoints, cp)
	}
	return checkpoints, rows.Err()
}
