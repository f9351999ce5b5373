package ranges

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(LRMultPositive)
}

// LRMultPositive rejects non-positive head learning-rate multipliers.
var LRMultPositive = lint.RuleDef{
	ID:          "RG07",
	Name:        "range.lr_mult",
	Group:       "range",
	Description: "lr_mult must be greater than zero.",
	Severity:    lint.SeverityError,
	Check:       checkLRMult,
}

func checkLRMult(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if cfg.LRMult > 0 {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "RG07",
		Severity: lint.SeverityError,
		Field:    "lr_mult",
		Message:  fmt.Sprintf("lr_mult must be > 0, got %g", cfg.LRMult),
	}}
}
