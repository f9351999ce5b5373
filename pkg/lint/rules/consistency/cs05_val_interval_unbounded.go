package consistency

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(FractionalIntervalUnboundedEpochs)
}

// FractionalIntervalUnboundedEpochs warns when val_check_interval is a
// fraction of an epoch but no epoch bound exists to give it a length.
var FractionalIntervalUnboundedEpochs = lint.RuleDef{
	ID:          "CS05",
	Name:        "consistency.val_interval_unbounded",
	Group:       "consistency",
	Description: "Fractional val_check_interval needs an epoch bound to resolve against.",
	Severity:    lint.SeverityWarning,
	Check:       checkFractionalIntervalUnboundedEpochs,
}

func checkFractionalIntervalUnboundedEpochs(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if cfg.ValCheckInterval > 1 || cfg.MaxEpochs != config.Unbounded {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "CS05",
		Severity: lint.SeverityWarning,
		Field:    "val_check_interval",
		Message: fmt.Sprintf("val_check_interval %g is a fraction of an epoch, but max_epochs is -1; use an absolute step interval",
			cfg.ValCheckInterval),
	}}
}
