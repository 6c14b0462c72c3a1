package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/swiftlint-go/internal/configloader"
	"github.com/yaklabco/swiftlint-go/internal/logging"
	"github.com/yaklabco/swiftlint-go/internal/ui/pretty"
	"github.com/yaklabco/swiftlint-go/pkg/docs"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
)

type rulesFlags struct {
	enabled  bool
	disabled bool
	format   string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID            string         `json:"identifier"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Kind          string         `json:"kind"`
	OptIn         bool           `json:"opt_in"`
	Correctable   bool           `json:"correctable"`
	Enabled       bool           `json:"enabled"`
	MinSwift      string         `json:"minimum_swift_version,omitempty"`
	Configuration map[string]any `json:"configuration,omitempty"`
}

// ruleRow is one rule as configured for the current project.
type ruleRow struct {
	rule    lint.Rule
	enabled bool
}

func newRulesCommand(global *globalFlags) *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available rules or show one rule in detail",
		Long: `List every built-in rule with its kind, whether it is opt-in or correctable,
whether your configuration enables it, and its configuration.

With a rule identifier, show that rule's description, configuration and
examples.

Examples:
  swiftlint rules                 List all rules
  swiftlint rules --enabled       List rules enabled by your configuration
  swiftlint rules force_cast      Show one rule in detail
  swiftlint rules --format json   Output rules as JSON`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.enabled && flags.disabled {
				return usageError(fmt.Errorf("--enabled and --disabled cannot be used together"))
			}
			if flags.format != "text" && flags.format != formatJSON {
				return usageError(fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}

			rows, err := configuredRules(cmd.Context(), global.configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				return showRule(out, global.color, rows, args[0], flags.format)
			}

			rows = filterRules(rows, flags)
			if flags.format == formatJSON {
				return outputRulesJSON(out, rows)
			}
			return outputRulesTable(out, global.color, rows)
		},
	}

	cmd.Flags().BoolVar(&flags.enabled, "enabled", false, "only list rules enabled by your configuration")
	cmd.Flags().BoolVar(&flags.disabled, "disabled", false, "only list rules disabled by your configuration")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

// configuredRules loads the project configuration and returns every rule,
// configured where the configuration enables it.
func configuredRules(ctx context.Context, configPath string) ([]ruleRow, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return nil, usageError(fmt.Errorf("load configuration: %w", err))
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	ruleset := lint.ResolveRules(lint.DefaultRegistry, loadResult.Config)
	for _, issue := range ruleset.Issues {
		logger.Warn(issue.Error())
	}

	all := lint.DefaultRegistry.Rules()
	rows := make([]ruleRow, 0, len(all))
	for _, rule := range all {
		if resolved, ok := ruleset.Find(rule.ID()); ok {
			rows = append(rows, ruleRow{rule: resolved.Rule, enabled: true})
			continue
		}
		rows = append(rows, ruleRow{rule: rule})
	}
	return rows, nil
}

func filterRules(rows []ruleRow, flags *rulesFlags) []ruleRow {
	if !flags.enabled && !flags.disabled {
		return rows
	}
	out := rows[:0:0]
	for _, row := range rows {
		if row.enabled == flags.enabled {
			out = append(out, row)
		}
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// outputRulesTable writes the rule listing as a table sized to the terminal.
func outputRulesTable(w io.Writer, colorMode string, rows []ruleRow) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))
	table := pretty.NewTableFormatter(styles, pretty.TerminalWidth(w))

	columns := []pretty.Column{
		{Title: "identifier"},
		{Title: "opt-in"},
		{Title: "correctable"},
		{Title: "enabled in your config"},
		{Title: "kind"},
		{Title: "configuration", Shrink: true},
	}
	tableRows := make([]pretty.TableRow, 0, len(rows))
	enabled := 0
	for _, row := range rows {
		if row.enabled {
			enabled++
		}
		tableRows = append(tableRows, pretty.TableRow{Cells: []string{
			row.rule.ID(),
			yesNo(row.rule.OptIn()),
			yesNo(lint.CanFix(row.rule)),
			yesNo(row.enabled),
			string(row.rule.Kind()),
			row.rule.Configuration().Describe().OneLiner(),
		}})
	}
	footer := &pretty.TableRow{Cells: []string{
		fmt.Sprintf("%d rules", len(rows)), "", "", fmt.Sprintf("%d enabled", enabled), "", "",
	}}

	if _, err := io.WriteString(w, table.Format(columns, tableRows, footer)); err != nil {
		return fmt.Errorf("write rules: %w", err)
	}
	return nil
}

// outputRulesJSON writes the rules as a JSON array.
func outputRulesJSON(w io.Writer, rows []ruleRow) error {
	infos := make([]ruleInfo, 0, len(rows))
	for _, row := range rows {
		infos = append(infos, newRuleInfo(row))
	}
	return encodeJSON(w, infos)
}

func newRuleInfo(row ruleRow) ruleInfo {
	r := row.rule
	info := ruleInfo{
		ID:            r.ID(),
		Name:          r.Name(),
		Description:   r.Description(),
		Kind:          string(r.Kind()),
		OptIn:         r.OptIn(),
		Correctable:   lint.CanFix(r),
		Enabled:       row.enabled,
		Configuration: r.Configuration().Describe().Map(),
	}
	if min := r.MinSwiftVersion(); !min.IsZero() {
		info.MinSwift = min.String()
	}
	return info
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	return nil
}

// showRule writes the detail view of one rule. Renamed identifiers resolve
// to the current rule.
func showRule(w io.Writer, colorMode string, rows []ruleRow, key, format string) error {
	id, renamed, found := lint.DefaultRegistry.Resolve(key)
	if !found {
		return usageError(fmt.Errorf("no rule with identifier %q; run 'swiftlint rules' to list them", key))
	}
	if renamed {
		logging.Default().Warn(fmt.Sprintf("'%s' has been renamed to '%s'", key, id))
	}

	var row ruleRow
	for _, candidate := range rows {
		if candidate.rule.ID() == id {
			row = candidate
			break
		}
	}
	if row.rule == nil {
		return usageError(fmt.Errorf("no rule with identifier %q", key))
	}
	if format == formatJSON {
		return encodeJSON(w, newRuleInfo(row))
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))
	r := row.rule

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", styles.Bold.Render(r.Name()), styles.Dim.Render("("+r.ID()+")"))
	fmt.Fprintf(&sb, "%s\n\n", r.Description())

	field := func(label, value string) {
		fmt.Fprintf(&sb, "  %s %s\n", styles.SummaryTitle.Render(label+":"), value)
	}
	field("Kind", docs.KindTitle(r.Kind()))
	field("Opt-in", yesNo(r.OptIn()))
	field("Correctable", yesNo(lint.CanFix(r)))
	field("Enabled in your config", yesNo(row.enabled))
	field("Default severity", string(r.Severity()))
	if min := r.MinSwiftVersion(); !min.IsZero() {
		field("Minimum Swift version", min.String())
	}

	if desc := r.Configuration().Describe(); !desc.IsEmpty() {
		body, err := desc.YAML()
		if err != nil {
			return fmt.Errorf("describe %s: %w", r.ID(), err)
		}
		fmt.Fprintf(&sb, "\n%s\n", styles.SummaryTitle.Render("Configuration:"))
		writeIndented(&sb, body)
	}

	if provider, ok := r.(lint.ExampleProvider); ok {
		examples := provider.Examples()
		writeExamples(&sb, styles, "Triggering examples:", examples.Triggering)
		writeExamples(&sb, styles, "Non-triggering examples:", examples.NonTriggering)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write rule: %w", err)
	}
	return nil
}

// maxDetailExamples bounds the examples shown per section in the detail view.
const maxDetailExamples = 3

func writeExamples(sb *strings.Builder, styles *pretty.Styles, title string, examples []string) {
	if len(examples) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s\n", styles.SummaryTitle.Render(title))
	for i, example := range examples {
		if i == maxDetailExamples {
			fmt.Fprintf(sb, "  %s\n", styles.Dim.Render(fmt.Sprintf("… %d more", len(examples)-i)))
			break
		}
		stripped, _ := lint.StripMarkers(example)
		writeIndented(sb, stripped)
		if i < len(examples)-1 && i < maxDetailExamples-1 {
			sb.WriteString("\n")
		}
	}
}

func writeIndented(sb *strings.Builder, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if line == "" {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString("    " + line + "\n")
	}
}
