package enumeration

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(KnownLRChoice)
}

// KnownLRChoice rejects unknown lr_choice identifiers.
var KnownLRChoice = lint.RuleDef{
	ID:          "EN02",
	Name:        "enumeration.lr_choice",
	Group:       "enumeration",
	Description: "lr_choice must be a known learning-rate strategy.",
	Severity:    lint.SeverityError,
	Check:       checkLRChoice,
}

func checkLRChoice(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if contains(config.LRChoices(), cfg.LRChoice) {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "EN02",
		Severity: lint.SeverityError,
		Field:    "lr_choice",
		Message:  fmt.Sprintf("unknown lr_choice %q (known: %v)", cfg.LRChoice, config.LRChoices()),
	}}
}
