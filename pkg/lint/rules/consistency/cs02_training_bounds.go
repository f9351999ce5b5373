package consistency

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(TrainingBounded)
}

// TrainingBounded requires at least one of max_epochs / max_steps to
// bound the run. Each axis is either the Unbounded sentinel or positive.
var TrainingBounded = lint.RuleDef{
	ID:          "CS02",
	Name:        "consistency.training_bounds",
	Group:       "consistency",
	Description: "max_epochs and max_steps must bound training on at least one axis.",
	Severity:    lint.SeverityError,
	Check:       checkTrainingBounds,
}

func checkTrainingBounds(cfg *config.OptimizationConfig) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic

	if cfg.MaxEpochs != config.Unbounded && cfg.MaxEpochs <= 0 {
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   "CS02",
			Severity: lint.SeverityError,
			Field:    "max_epochs",
			Message:  fmt.Sprintf("max_epochs must be positive or -1, got %d", cfg.MaxEpochs),
		})
	}
	if cfg.MaxSteps != config.Unbounded && cfg.MaxSteps <= 0 {
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   "CS02",
			Severity: lint.SeverityError,
			Field:    "max_steps",
			Message:  fmt.Sprintf("max_steps must be positive or -1, got %d", cfg.MaxSteps),
		})
	}
	if cfg.MaxEpochs == config.Unbounded && cfg.MaxSteps == config.Unbounded {
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   "CS02",
			Severity: lint.SeverityError,
			Field:    "max_epochs",
			Message:  "max_epochs and max_steps are both -1; training would never stop",
		})
	}
	return diagnostics
}
