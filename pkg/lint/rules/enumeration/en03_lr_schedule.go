package enumeration

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(KnownSchedule)
}

// KnownSchedule rejects unknown lr_schedule identifiers.
var KnownSchedule = lint.RuleDef{
	ID:          "EN03",
	Name:        "enumeration.lr_schedule",
	Group:       "enumeration",
	Description: "lr_schedule must be a known schedule identifier.",
	Severity:    lint.SeverityError,
	Check:       checkSchedule,
}

func checkSchedule(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if contains(config.Schedules(), cfg.LRSchedule) {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "EN03",
		Severity: lint.SeverityError,
		Field:    "lr_schedule",
		Message:  fmt.Sprintf("unknown lr_schedule %q (known: %v)", cfg.LRSchedule, config.Schedules()),
	}}
}
