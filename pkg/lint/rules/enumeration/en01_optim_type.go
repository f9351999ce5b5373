package enumeration

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(KnownOptimizer)
}

// KnownOptimizer rejects unknown optim_type identifiers.
var KnownOptimizer = lint.RuleDef{
	ID:          "EN01",
	Name:        "enumeration.optim_type",
	Group:       "enumeration",
	Description: "optim_type must be a known optimizer identifier.",
	Severity:    lint.SeverityError,
	Check:       checkOptimType,
}

func checkOptimType(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if contains(config.Optimizers(), cfg.OptimType) {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "EN01",
		Severity: lint.SeverityError,
		Field:    "optim_type",
		Message:  fmt.Sprintf("unknown optim_type %q (known: %v)", cfg.OptimType, config.Optimizers()),
	}}
}
