package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/soupstack-labs/optconf/internal/cli/output"
	"github.com/soupstack-labs/optconf/pkg/lint"
	_ "github.com/soupstack-labs/optconf/pkg/lint/rules/consistency" // register consistency rules
	_ "github.com/soupstack-labs/optconf/pkg/lint/rules/enumeration" // register enumeration rules
	_ "github.com/soupstack-labs/optconf/pkg/lint/rules/ranges"      // register range rules
	"github.com/spf13/cobra"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group  string // Filter by group
	Format string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available validation rules",
		Long: `List all available validation rules with their documentation.

Rules are organized by group (range, enumeration, consistency).`,
		Example: `  # List all rules
  optconf rules

  # Show details for a specific rule
  optconf rules RG01

  # List the consistency group
  optconf rules --group consistency

  # Output as JSON
  optconf rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	rules := lint.All()
	if opts.Group != "" {
		rules = lint.GetByGroup(opts.Group)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, rules)
	case output.ModeMarkdown:
		return listRulesMarkdown(r, rules)
	default:
		return listRulesText(r, rules)
	}
}

func listRulesText(r *output.Renderer, rules []lint.RuleDef) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Validation Rules (%d)", len(rules))))
	r.Println("")

	currentGroup := ""
	for _, rule := range rules {
		if rule.Group != currentGroup {
			currentGroup = rule.Group
			r.Println(styles.Bold.Render("  " + capitalizeFirst(currentGroup)))
		}
		r.Printf("    %s  %s - %s\n",
			styles.Bold.Render(rule.ID),
			rule.Name,
			styles.Muted.Render(rule.Description))
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'optconf rules <rule-id>' for details"))
	r.Println("")
	return nil
}

func listRulesMarkdown(r *output.Renderer, rules []lint.RuleDef) error {
	r.Println("# Validation Rules")
	r.Println("")

	currentGroup := ""
	for _, rule := range rules {
		if rule.Group != currentGroup {
			currentGroup = rule.Group
			r.Println("## " + capitalizeFirst(currentGroup))
			r.Println("")
		}
		r.Printf("- **%s** - %s (`%s`): %s\n", rule.ID, rule.Name, rule.Severity.String(), rule.Description)
	}
	r.Println("")
	return nil
}

type ruleJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Group       string `json:"group"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

func listRulesJSON(r *output.Renderer, rules []lint.RuleDef) error {
	out := make([]ruleJSON, 0, len(rules))
	for _, rule := range rules {
		out = append(out, ruleJSON{
			ID:          rule.ID,
			Name:        rule.Name,
			Group:       rule.Group,
			Severity:    rule.Severity.String(),
			Description: rule.Description,
		})
	}

	enc := json.NewEncoder(r.Writer())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func showRule(cmd *cobra.Command, id string, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	rule, ok := lint.GetByID(strings.ToUpper(id))
	if !ok {
		return fmt.Errorf("unknown rule %q", id)
	}

	if r.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(ruleJSON{
			ID:          rule.ID,
			Name:        rule.Name,
			Group:       rule.Group,
			Severity:    rule.Severity.String(),
			Description: rule.Description,
		})
	}

	styles := r.Styles()
	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")
	r.Printf("  Group:    %s\n", rule.Group)
	r.Printf("  Severity: %s\n", rule.Severity.String())
	r.Printf("  %s\n", rule.Description)
	r.Println("")
	return nil
}

// capitalizeFirst uppercases the first letter of a word.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
