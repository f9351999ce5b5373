package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store := NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Migrate())
	return store
}

func TestOpen_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trials.db")

	store := NewSQLiteStore()
	require.NoError(t, store.Open(path))
	defer store.Close()

	require.NoError(t, store.Migrate())

	version, err := store.GetMigrationVersion()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, int64(1))
}

func TestCreateAndGetTrial(t *testing.T) {
	store := newTestStore(t)

	trial, err := store.CreateTrial("baseline", "best_quality", "optim_type: adamw\n")
	require.NoError(t, err)
	assert.NotEmpty(t, trial.ID)
	assert.Equal(t, TrialStatusRunning, trial.Status)

	got, err := store.GetTrial(trial.ID)
	require.NoError(t, err)
	assert.Equal(t, "baseline", got.Name)
	assert.Equal(t, "best_quality", got.Preset)
	assert.Equal(t, "optim_type: adamw\n", got.ConfigYAML)
	assert.Nil(t, got.CompletedAt)
}

func TestGetTrial_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetTrial("no-such-id")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.GetTrialByName("no-such-name")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetTrialByName_ReturnsLatest(t *testing.T) {
	store := newTestStore(t)

	first, err := store.CreateTrial("sweep", "", "")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	second, err := store.CreateTrial("sweep", "", "")
	require.NoError(t, err)

	got, err := store.GetTrialByName("sweep")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.NotEqual(t, first.ID, got.ID)
}

func TestCompleteTrial(t *testing.T) {
	store := newTestStore(t)

	trial, err := store.CreateTrial("run", "", "")
	require.NoError(t, err)

	require.NoError(t, store.CompleteTrial(trial.ID, TrialStatusCompleted))

	got, err := store.GetTrial(trial.ID)
	require.NoError(t, err)
	assert.Equal(t, TrialStatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
}

func TestCompleteTrial_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.CompleteTrial("no-such-id", TrialStatusFailed)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListTrials(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreateTrial("one", "", "")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = store.CreateTrial("two", "", "")
	require.NoError(t, err)

	trials, err := store.ListTrials()
	require.NoError(t, err)
	require.Len(t, trials, 2)

	// Newest first.
	assert.Equal(t, "two", trials[0].Name)
	assert.Equal(t, "one", trials[1].Name)
}

func TestTopCheckpoints(t *testing.T) {
	store := newTestStore(t)

	trial, err := store.CreateTrial("ckpts", "", "")
	require.NoError(t, err)

	for _, cp := range []struct {
		path  string
		step  int
		score float64
	}{
		{"ckpt/100.pt", 100, 0.80},
		{"ckpt/200.pt", 200, 0.90},
		{"ckpt/300.pt", 300, 0.85},
		{"ckpt/400.pt", 400, 0.90},
	} {
		_, err := store.RecordCheckpoint(trial.ID, cp.path, cp.step, cp.score)
		require.NoError(t, err)
	}

	top, err := store.TopCheckpoints(trial.ID, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)

	// Score descending, later step breaks the 0.90 tie.
	assert.Equal(t, 400, top[0].Step)
	assert.Equal(t, 200, top[1].Step)
	assert.Equal(t, 300, top[2].Step)
}

func TestTopCheckpoints_ScopedToTrial(t *testing.T) {
	store := newTestStore(t)

	a, err := store.CreateTrial("a", "", "")
	require.NoError(t, err)
	b, err := store.CreateTrial("b", "", "")
	require.NoError(t, err)

	_, err = store.RecordCheckpoint(a.ID, "a.pt", 1, 0.5)
	require.NoError(t, err)
	_, err = store.RecordCheckpoint(b.ID, "b.pt", 1, 0.9)
	require.NoError(t, err)

	top, err := store.TopCheckpoints(a.ID, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "a.pt", top[0].Path)
}

func TestOperationsRequireOpen(t *testing.T) {
	store := NewSQLiteStore()

	_, err := store.CreateTrial("x", "", "")
	require.Error(t, err)

	_, err = store.ListTrials()
	require.Error(t, err)

	require.Error(t, store.Migrate())
}
