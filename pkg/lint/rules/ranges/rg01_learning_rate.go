package ranges

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(LearningRatePositive)
}

// LearningRatePositive rejects non-positive learning rates.
var LearningRatePositive = lint.RuleDef{
	ID:          "RG01",
	Name:        "range.learning_rate",
	Group:       "range",
	Description: "learning_rate must be greater than zero.",
	Severity:    lint.SeverityError,
	Check:       checkLearningRate,
}

func checkLearningRate(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if cfg.LearningRate > 0 {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "RG01",
		Severity: lint.SeverityError,
		Field:    "learning_rate",
		Message:  fmt.Sprintf("learning_rate must be > 0, got %g", cfg.LearningRate),
	}}
}
