package ranges

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(LRDecayInUnitInterval)
}

// LRDecayInUnitInterval rejects decay factors outside (0, 1].
// A factor of exactly 1 disables layerwise decay without being an error.
var LRDecayInUnitInterval = lint.RuleDef{
	ID:          "RG03",
	Name:        "range.lr_decay",
	Group:       "range",
	Description: "lr_decay must be a factor in (0, 1].",
	Severity:    lint.SeverityError,
	Check:       checkLRDecay,
}

func checkLRDecay(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if cfg.LRDecay > 0 && cfg.LRDecay <= 1 {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "RG03",
		Severity: lint.SeverityError,
		Field:    "lr_decay",
		Message:  fmt.Sprintf("lr_decay must be in (0, 1], got %g", cfg.LRDecay),
	}}
}
