package consistency

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(EndLRBelowBase)
}

// EndLRBelowBase requires the terminal learning rate to sit between zero
// and the base learning rate.
var EndLRBelowBase = lint.RuleDef{
	ID:          "CS01",
	Name:        "consistency.end_lr",
	Group:       "consistency",
	Description: "end_lr must be >= 0 and <= learning_rate.",
	Severity:    lint.SeverityError,
	Check:       checkEndLR,
}

func checkEndLR(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if cfg.EndLR < 0 {
		return []lint.Diagnostic{{
			RuleID:   "CS01",
			Severity: lint.SeverityError,
			Field:    "end_lr",
			Message:  fmt.Sprintf("end_lr must be >= 0, got %g", cfg.EndLR),
		}}
	}
	if cfg.EndLR > cfg.LearningRate {
		return []lint.Diagnostic{{
			RuleID:   "CS01",
			Severity: lint.SeverityError,
			Field:    "end_lr",
			Message:  fmt.Sprintf("end_lr %g exceeds learning_rate %g", cfg.EndLR, cfg.LearningRate),
		}}
	}
	return nil
}
