package consistency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func TestEndLR(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Empty(t, EndLRBelowBase.Check(&cfg))

	cfg.EndLR = -0.1
	diags := EndLRBelowBase.Check(&cfg)
	require.Len(t, diags, 1)
	assert.Equal(t, lint.SeverityError, diags[0].Severity)

	cfg.EndLR = cfg.LearningRate * 2
	diags = EndLRBelowBase.Check(&cfg)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "exceeds")

	// Equal to the base rate is allowed (flat schedule).
	cfg.EndLR = cfg.LearningRate
	assert.Empty(t, EndLRBelowBase.Check(&cfg))
}

func TestTrainingBounds(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Empty(t, TrainingBounded.Check(&cfg))

	// Bounded by steps only.
	cfg.MaxEpochs = config.Unbounded
	cfg.MaxSteps = 1000
	assert.Empty(t, TrainingBounded.Check(&cfg))

	// Unbounded on both axes.
	cfg.MaxSteps = config.Unbounded
	diags := TrainingBounded.Check(&cfg)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "never stop")

	// Zero is neither a bound nor the sentinel.
	cfg = config.DefaultConfig()
	cfg.MaxEpochs = 0
	diags = TrainingBounded.Check(&cfg)
	require.Len(t, diags, 1)
	assert.Equal(t, "max_epochs", diags[0].Field)
}

func TestWarmupFits(t *testing.T) {
	cfg := config.DefaultConfig()

	// Fractional warmup is never compared.
	cfg.WarmupSteps = 0.9
	cfg.MaxSteps = 10
	assert.Empty(t, WarmupFitsRun.Check(&cfg))

	// Absolute warmup within the bound.
	cfg.WarmupSteps = 100
	cfg.MaxSteps = 1000
	assert.Empty(t, WarmupFitsRun.Check(&cfg))

	// Absolute warmup beyond the bound.
	cfg.WarmupSteps = 2000
	diags := WarmupFitsRun.Check(&cfg)
	require.Len(t, diags, 1)
	assert.Equal(t, lint.SeverityWarning, diags[0].Severity)
}

func TestTopKWithBest(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TopKAverageMethod = config.AverageBest
	cfg.TopK = 1
	assert.Empty(t, TopKWithBest.Check(&cfg))

	cfg.TopK = 5
	diags := TopKWithBest.Check(&cfg)
	require.Len(t, diags, 1)
	assert.Equal(t, lint.SeverityInfo, diags[0].Severity)
}

func TestFractionalIntervalUnboundedEpochs(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Empty(t, FractionalIntervalUnboundedEpochs.Check(&cfg))

	// Fraction of an epoch with no epoch bound to resolve against.
	cfg.MaxEpochs = config.Unbounded
	cfg.MaxSteps = 10000
	cfg.ValCheckInterval = 0.5
	diags := FractionalIntervalUnboundedEpochs.Check(&cfg)
	require.Len(t, diags, 1)
	assert.Equal(t, lint.SeverityWarning, diags[0].Severity)
	assert.Equal(t, "val_check_interval", diags[0].Field)

	// An absolute interval needs no epoch length.
	cfg.ValCheckInterval = 500
	assert.Empty(t, FractionalIntervalUnboundedEpochs.Check(&cfg))

	// Exactly 1 is still a fraction (validate once per epoch).
	cfg.ValCheckInterval = 1
	diags = FractionalIntervalUnboundedEpochs.Check(&cfg)
	require.Len(t, diags, 1)
}
