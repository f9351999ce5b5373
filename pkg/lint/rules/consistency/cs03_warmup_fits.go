package consistency

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(WarmupFitsRun)
}

// WarmupFitsRun warns when an absolute warmup step count exceeds the
// step bound: the run would end before warmup completes.
var WarmupFitsRun = lint.RuleDef{
	ID:          "CS03",
	Name:        "consistency.warmup_fits",
	Group:       "consistency",
	Description: "absolute warmup_steps must fit within max_steps.",
	Severity:    lint.SeverityWarning,
	Check:       checkWarmupFits,
}

func checkWarmupFits(cfg *config.OptimizationConfig) []lint.Diagnostic {
	// Only comparable when both are absolute counts.
	if cfg.WarmupSteps < 1 || cfg.MaxSteps == config.Unbounded {
		return nil
	}
	if int(cfg.WarmupSteps) <= cfg.MaxSteps {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "CS03",
		Severity: lint.SeverityWarning,
		Field:    "warmup_steps",
		Message:  fmt.Sprintf("warmup_steps %g exceeds max_steps %d; the schedule never leaves warmup", cfg.WarmupSteps, cfg.MaxSteps),
	}}
}
