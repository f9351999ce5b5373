package ranges

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(TopKAtLeastOne)
}

// TopKAtLeastOne rejects checkpoint counts below 1.
var TopKAtLeastOne = lint.RuleDef{
	ID:          "RG05",
	Name:        "range.top_k",
	Group:       "range",
	Description: "top_k must retain at least one checkpoint.",
	Severity:    lint.SeverityError,
	Check:       checkTopK,
}

func checkTopK(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if cfg.TopK >= 1 {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "RG05",
		Severity: lint.SeverityError,
		Field:    "top_k",
		Message:  fmt.Sprintf("top_k must be >= 1, got %d", cfg.TopK),
	}}
}
