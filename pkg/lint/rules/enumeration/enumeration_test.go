package enumeration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func TestEnumerationRules(t *testing.T) {
	tests := []struct {
		name   string
		rule   lint.RuleDef
		mutate func(*config.OptimizationConfig)
		field  string
	}{
		{"unknown optimizer", KnownOptimizer, func(c *config.OptimizationConfig) { c.OptimType = "adagrad" }, "optim_type"},
		{"unknown lr_choice", KnownLRChoice, func(c *config.OptimizationConfig) { c.LRChoice = "three_stages" }, "lr_choice"},
		{"unknown schedule", KnownSchedule, func(c *config.OptimizationConfig) { c.LRSchedule = "exponential" }, "lr_schedule"},
		{"unknown average method", KnownAverageMethod, func(c *config.OptimizationConfig) { c.TopKAverageMethod = "mean" }, "top_k_average_method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			assert.Empty(t, tt.rule.Check(&cfg))

			tt.mutate(&cfg)
			diags := tt.rule.Check(&cfg)
			require.Len(t, diags, 1)
			assert.Equal(t, tt.rule.ID, diags[0].RuleID)
			assert.Equal(t, tt.field, diags[0].Field)
		})
	}
}

func TestFinetuneMode_NullAndKnown(t *testing.T) {
	cfg := config.DefaultConfig()

	// null is valid
	assert.Empty(t, KnownFinetuneMode.Check(&cfg))

	for _, mode := range config.FinetuneModes() {
		cfg.EfficientFinetune = &mode
		assert.Empty(t, KnownFinetuneMode.Check(&cfg), mode)
	}

	bad := "lora"
	cfg.EfficientFinetune = &bad
	diags := KnownFinetuneMode.Check(&cfg)
	require.Len(t, diags, 1)
	assert.Equal(t, "EN05", diags[0].RuleID)
	assert.Contains(t, diags[0].Message, "lora")
}
