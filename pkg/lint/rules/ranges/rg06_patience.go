package ranges

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(PatienceNonNegative)
}

// PatienceNonNegative rejects negative early-stopping patience.
// Zero patience stops at the first non-improving validation.
var PatienceNonNegative = lint.RuleDef{
	ID:          "RG06",
	Name:        "range.patience",
	Group:       "range",
	Description: "patience must be zero or greater.",
	Severity:    lint.SeverityError,
	Check:       checkPatience,
}

func checkPatience(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if cfg.Patience >= 0 {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "RG06",
		Severity: lint.SeverityError,
		Field:    "patience",
		Message:  fmt.Sprintf("patience must be >= 0, got %d", cfg.Patience),
	}}
}
