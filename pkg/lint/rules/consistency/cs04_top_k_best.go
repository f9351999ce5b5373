package consistency

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(TopKWithBest)
}

// TopKWithBest notes that retaining more than one checkpoint is wasted
// work when the averaging method always picks the single best.
var TopKWithBest = lint.RuleDef{
	ID:          "CS04",
	Name:        "consistency.top_k_best",
	Group:       "consistency",
	Description: "top_k above 1 has no effect with top_k_average_method: best.",
	Severity:    lint.SeverityInfo,
	Check:       checkTopKWithBest,
}

func checkTopKWithBest(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if cfg.TopKAverageMethod != config.AverageBest || cfg.TopK <= 1 {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "CS04",
		Severity: lint.SeverityInfo,
		Field:    "top_k",
		Message:  fmt.Sprintf("top_k %d is ignored by the best method; only the top checkpoint is kept", cfg.TopK),
	}}
}
