package ranges

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(ValCheckIntervalPositive)
}

// ValCheckIntervalPositive rejects non-positive validation intervals.
var ValCheckIntervalPositive = lint.RuleDef{
	ID:          "RG08",
	Name:        "range.val_check_interval",
	Group:       "range",
	Description: "val_check_interval must be greater than zero.",
	Severity:    lint.SeverityError,
	Check:       checkValCheckInterval,
}

func checkValCheckInterval(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if cfg.ValCheckInterval > 0 {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "RG08",
		Severity: lint.SeverityError,
		Field:    "val_check_interval",
		Message:  fmt.Sprintf("val_check_interval must be > 0, got %g", cfg.ValCheckInterval),
	}}
}
