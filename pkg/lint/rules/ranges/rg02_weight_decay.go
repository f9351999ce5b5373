package ranges

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(WeightDecayNonNegative)
}

// WeightDecayNonNegative rejects negative weight decay.
var WeightDecayNonNegative = lint.RuleDef{
	ID:          "RG02",
	Name:        "range.weight_decay",
	Group:       "range",
	Description: "weight_decay must be zero or greater.",
	Severity:    lint.SeverityError,
	Check:       checkWeightDecay,
}

func checkWeightDecay(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if cfg.WeightDecay >= 0 {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "RG02",
		Severity: lint.SeverityError,
		Field:    "weight_decay",
		Message:  fmt.Sprintf("weight_decay must be >= 0, got %g", cfg.WeightDecay),
	}}
}
