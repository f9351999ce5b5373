package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func TestInit_WritesConfig(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, NewInitCommand(), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	path := filepath.Join(dir, config.ConfigFileName)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "optim_type:")
	assert.Contains(t, string(data), "learning_rate:")

	// The starter file passes validation untouched.
	res, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, lint.Run(&res.Config, nil))
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()

	_, err := runCommand(t, NewInitCommand(), dir)
	require.NoError(t, err)

	_, err = runCommand(t, NewInitCommand(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runCommand(t, NewInitCommand(), "--force", dir)
	require.NoError(t, err)
}

func TestInit_Preset(t *testing.T) {
	dir := t.TempDir()

	_, err := runCommand(t, NewInitCommand(), "--preset", "best_quality", dir)
	require.NoError(t, err)

	res, err := config.LoadFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)

	want, err := config.FromPreset("best_quality")
	require.NoError(t, err)
	assert.Equal(t, want.LearningRate, res.Config.LearningRate)
	assert.Equal(t, want.TopKAverageMethod, res.Config.TopKAverageMethod)
}

func TestInit_UnknownPreset(t *testing.T) {
	_, err := runCommand(t, NewInitCommand(), "--preset", "warp_speed", t.TempDir())
	require.Error(t, err)
}

func TestInit_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "configs", "nested")

	_, err := runCommand(t, NewInitCommand(), dir)
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, statErr)
}
