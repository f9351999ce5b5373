package enumeration

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(KnownAverageMethod)
}

// KnownAverageMethod rejects unknown top_k_average_method identifiers.
var KnownAverageMethod = lint.RuleDef{
	ID:          "EN04",
	Name:        "enumeration.top_k_average_method",
	Group:       "enumeration",
	Description: "top_k_average_method must be uniform_soup, greedy_soup, or best.",
	Severity:    lint.SeverityError,
	Check:       checkAverageMethod,
}

func checkAverageMethod(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if contains(config.AverageMethods(), cfg.TopKAverageMethod) {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "EN04",
		Severity: lint.SeverityError,
		Field:    "top_k_average_method",
		Message:  fmt.Sprintf("unknown top_k_average_method %q (known: %v)", cfg.TopKAverageMethod, config.AverageMethods()),
	}}
}
