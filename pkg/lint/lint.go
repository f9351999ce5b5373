// Package lint provides data-driven validation of optimization configs.
// Rules are registered from init() functions in rule packages and looked
// up through a global registry, so commands can list, filter, and run
// them without knowing individual rules.
package lint

import (
	"github.com/soupstack-labs/optconf/internal/config"
)

// Severity indicates the importance of a diagnostic.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError indicates a config the training pipeline would reject.
	SeverityError Severity = iota
	// SeverityWarning indicates a config that is accepted but suspicious.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a suggestion for improvement.
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a severity name to a Severity.
// Unknown names map to SeverityHint.
func ParseSeverity(name string) Severity {
	switch name {
	case "error":
		return SeverityError
	case "warning":
		return SeverityWarning
	case "info":
		return SeverityInfo
	default:
		return SeverityHint
	}
}

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Check function parameter.
type RuleDef struct {
	ID          string    // Unique identifier, e.g., "RG01"
	Name        string    // Dotted name, e.g., "range.learning_rate"
	Group       string    // Rule group, e.g., "range"
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	Check       CheckFunc // The check function
}

// CheckFunc analyzes a config and returns diagnostics.
type CheckFunc func(cfg *config.OptimizationConfig) []Diagnostic

// Diagnostic represents a validation finding.
type Diagnostic struct {
	RuleID   string
	Severity Severity
	Field    string // YAML key the finding is about
	Message  string
}

// Run executes all registered rules against a config, honoring the
// optional lint configuration (disabled rules, severity overrides).
func Run(cfg *config.OptimizationConfig, lintCfg *config.LintConfig) []Diagnostic {
	disabled := map[string]bool{}
	overrides := map[string]Severity{}
	if lintCfg != nil {
		for _, id := range lintCfg.Disabled {
			disabled[id] = true
		}
		for id, sev := range lintCfg.Severity {
			overrides[id] = ParseSeverity(sev)
		}
	}

	var diagnostics []Diagnostic
	for _, rule := range All() {
		if disabled[rule.ID] {
			continue
		}
		for _, d := range rule.Check(cfg) {
			if sev, ok := overrides[d.RuleID]; ok {
				d.Severity = sev
			}
			diagnostics = append(diagnostics, d)
		}
	}
	return diagnostics
}

// HasErrors reports whether any diagnostic is error severity.
func HasErrors(diagnostics []Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
