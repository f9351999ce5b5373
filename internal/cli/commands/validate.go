package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/soupstack-labs/optconf/internal/cli/output"
	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/soupstack-labs/optconf/pkg/lint"
	_ "github.com/soupstack-labs/optconf/pkg/lint/rules/consistency" // register consistency rules
	_ "github.com/soupstack-labs/optconf/pkg/lint/rules/enumeration" // register enumeration rules
	_ "github.com/soupstack-labs/optconf/pkg/lint/rules/ranges"      // register range rules
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Format   string   // Output format: text, markdown, json
	Disable  []string // Rule IDs to disable
	Severity string   // Minimum severity to report: error, warning, info, hint
}

// fileResult pairs a config file with its diagnostics.
type fileResult struct {
	File        string
	Diagnostics []lint.Diagnostic
	Err         error
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate optimization config files",
		Long: `Check optimization config files against the schema rules.

Each file is loaded on top of the stock defaults and run through the
registered validation rules. With no arguments the resolved config of
the current invocation (defaults, preset, config file, env, flags) is
validated instead.`,
		Example: `  # Validate the resolved config
  optconf validate

  # Validate specific files
  optconf validate configs/*.yaml

  # Only report errors
  optconf validate --severity error

  # Disable specific rules
  optconf validate --disable CS04,RG06`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "", "Minimum severity to report: error, warning, info, hint")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, opts *ValidateOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	results := collectResults(cmd, args, opts, cmdCtx)

	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })

	failed := false
	if output.Mode(opts.Format) == output.ModeJSON || r.EffectiveMode() == output.ModeJSON {
		failed = renderValidateJSON(r, results)
	} else {
		failed = renderValidateText(r, results)
	}

	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// collectResults lints the requested files concurrently, or the
// resolved config when no files are given.
func collectResults(cmd *cobra.Command, args []string, opts *ValidateOptions, cmdCtx *CommandContext) []fileResult {
	lintCfg := mergedLintConfig(cmdCtx.Res.Lint, opts)
	threshold := minSeverity(opts)

	if len(args) == 0 {
		name := cmdCtx.Res.FileUsed
		if name == "" {
			name = "(resolved)"
		}
		return []fileResult{{
			File:        name,
			Diagnostics: aboveThreshold(lint.Run(&cmdCtx.Res.Config, lintCfg), threshold),
		}}
	}

	results := make([]fileResult, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(8)
	for i, path := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := config.LoadFile(path)
			if err != nil {
				results[i] = fileResult{File: path, Err: err}
				return nil
			}
			fileLint := lintCfg
			if res.Lint != nil {
				fileLint = mergedLintConfig(res.Lint, opts)
			}
			diags := aboveThreshold(lint.Run(&res.Config, fileLint), threshold)
			results[i] = fileResult{File: path, Diagnostics: diags}
			return nil
		})
	}
	// Load errors are reported per file, never through the group.
	_ = g.Wait()
	return results
}

// aboveThreshold drops diagnostics less severe than the threshold.
// Severity values order error < warning < info < hint.
func aboveThreshold(diags []lint.Diagnostic, threshold lint.Severity) []lint.Diagnostic {
	var kept []lint.Diagnostic
	for _, d := range diags {
		if d.Severity <= threshold {
			kept = append(kept, d)
		}
	}
	return kept
}

// mergedLintConfig folds CLI flags into the config file's lint block.
func mergedLintConfig(base *config.LintConfig, opts *ValidateOptions) *config.LintConfig {
	if base == nil && len(opts.Disable) == 0 {
		return nil
	}
	merged := &config.LintConfig{}
	if base != nil {
		merged.Disabled = append(merged.Disabled, base.Disabled...)
		merged.Severity = base.Severity
	}
	merged.Disabled = append(merged.Disabled, opts.Disable...)
	return merged
}

// minSeverity resolves the --severity threshold; by default everything
// is reported.
func minSeverity(opts *ValidateOptions) lint.Severity {
	if opts.Severity == "" {
		return lint.SeverityHint
	}
	return lint.ParseSeverity(opts.Severity)
}

func renderValidateText(r *output.Renderer, results []fileResult) bool {
	styles := r.Styles()
	failed := false
	total := 0

	for _, res := range results {
		if res.Err != nil {
			failed = true
			r.Println(styles.Error.Render("✗") + " " + res.File)
			r.Println("  " + res.Err.Error())
			continue
		}
		if len(res.Diagnostics) == 0 {
			r.Println(styles.Success.Render("✓") + " " + res.File)
			continue
		}
		if lint.HasErrors(res.Diagnostics) {
			failed = true
			r.Println(styles.Error.Render("✗") + " " + res.File)
		} else {
			r.Println(styles.Warning.Render("!") + " " + res.File)
		}
		for _, d := range res.Diagnostics {
			total++
			r.Printf("  %s %s %s: %s\n",
				severityStyle(styles, d.Severity).Render(d.Severity.String()),
				styles.Bold.Render(d.RuleID),
				d.Field, d.Message)
		}
	}

	r.Println("")
	if failed {
		r.Println(styles.Error.Render(fmt.Sprintf("%d finding(s) across %d file(s)", total, len(results))))
	} else {
		r.Println(styles.Muted.Render(fmt.Sprintf("%d file(s) checked, %d finding(s)", len(results), total)))
	}
	return failed
}

type validateJSON struct {
	File        string           `json:"file"`
	Error       string           `json:"error,omitempty"`
	Diagnostics []diagnosticJSON `json:"diagnostics"`
}

type diagnosticJSON struct {
	RuleID   string `json:"rule_id"`
	Severity string `json:"severity"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func renderValidateJSON(r *output.Renderer, results []fileResult) bool {
	failed := false
	out := make([]validateJSON, 0, len(results))
	for _, res := range results {
		v := validateJSON{File: res.File, Diagnostics: []diagnosticJSON{}}
		if res.Err != nil {
			failed = true
			v.Error = res.Err.Error()
		}
		if lint.HasErrors(res.Diagnostics) {
			failed = true
		}
		for _, d := range res.Diagnostics {
			v.Diagnostics = append(v.Diagnostics, diagnosticJSON{
				RuleID:   d.RuleID,
				Severity: d.Severity.String(),
				Field:    d.Field,
				Message:  d.Message,
			})
		}
		out = append(out, v)
	}

	enc := json.NewEncoder(r.Writer())
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
	return failed
}

func severityStyle(styles *output.Styles, sev lint.Severity) lipgloss.Style {
	switch sev {
	case lint.SeverityError:
		return styles.Error
	case lint.SeverityWarning:
		return styles.Warning
	case lint.SeverityInfo:
		return styles.Info
	default:
		return styles.Hint
	}
}
