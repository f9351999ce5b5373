package enumeration

import (
	"fmt"

	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
)

func init() {
	lint.Register(KnownFinetuneMode)
}

// KnownFinetuneMode rejects unknown efficient_finetune modes.
// A null value is valid and means full fine-tuning.
var KnownFinetuneMode = lint.RuleDef{
	ID:          "EN05",
	Name:        "enumeration.efficient_finetune",
	Group:       "enumeration",
	Description: "efficient_finetune must be null, bit_fit, or norm_fit.",
	Severity:    lint.SeverityError,
	Check:       checkFinetuneMode,
}

func checkFinetuneMode(cfg *config.OptimizationConfig) []lint.Diagnostic {
	if cfg.EfficientFinetune == nil || contains(config.FinetuneModes(), *cfg.EfficientFinetune) {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "EN05",
		Severity: lint.SeverityError,
		Field:    "efficient_finetune",
		Message:  fmt.Sprintf("unknown efficient_finetune %q (known: null, %v)", *cfg.EfficientFinetune, config.FinetuneModes()),
	}}
}
