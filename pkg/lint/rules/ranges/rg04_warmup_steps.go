package ranges

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(WarmupStepsNonNegative)
}

// WarmupStepsNonNegative rejects negative warmup. Values below 1 are a
// fraction of total steps, values of 1 or more an absolute count; both
// forms share the non-negativity requirement.
var WarmupStepsNonNegative = lint.RuleDef{
	ID:          "RG04",
	Name:        "range.warmup_steps",
	Group:       "range",
	Description: "warmup_steps must be zero or greater (fraction or count).",
	Severity:    lint.SeverityError,
	Check:       checkWarmupSteps,
}

func checkWarmupSteps(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if cfg.WarmupSteps >= 0 {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "RG04",
		Severity: lint.SeverityError,
		Field:    "warmup_steps",
		Message:  fmt.Sprintf("warmup_steps must be >= 0, got %g", cfg.WarmupSteps),
	}}
}
