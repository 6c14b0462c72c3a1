package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/yaklabco/swiftlint-go/internal/ui/pretty"
	"github.com/yaklabco/swiftlint-go/pkg/analysis"
	"github.com/yaklabco/swiftlint-go/pkg/config"
)

// summaryColumns are the per-rule table columns.
var summaryColumns = []pretty.Column{
	{Title: "rule identifier", Shrink: true},
	{Title: "opt-in"},
	{Title: "correctable"},
	{Title: "custom"},
	{Title: "warnings", AlignRight: true},
	{Title: "errors", AlignRight: true},
	{Title: "total violations", AlignRight: true},
	{Title: "number of files", AlignRight: true},
}

// SummaryRenderer formats results as a per-rule table.
type SummaryRenderer struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	out       io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	return &SummaryRenderer{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, pretty.TerminalWidth(opts.Writer)),
		out:       opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if !report.Totals.HasIssues() {
		_, err := fmt.Fprintln(r.out, r.styles.Success.Render("No violations found"))
		return err
	}

	rows := make([]pretty.TableRow, 0, len(report.ByRule))
	for _, rule := range report.ByRule {
		row := pretty.TableRow{Cells: []string{
			config.FormatRuleID(r.opts.RuleFormat, rule.RuleID, rule.RuleName),
			yesNo(rule.OptIn),
			yesNo(rule.Fixable),
			yesNo(rule.Custom),
			strconv.Itoa(rule.Warnings),
			strconv.Itoa(rule.Errors),
			strconv.Itoa(rule.Issues),
			strconv.Itoa(len(rule.Files)),
		}}
		switch {
		case rule.Errors > 0:
			row.Severity = config.SeverityError
		case rule.Warnings > 0:
			row.Severity = config.SeverityWarning
		}
		rows = append(rows, row)
	}

	footer := &pretty.TableRow{Cells: []string{
		"Total", "", "", "",
		strconv.Itoa(report.Totals.Warnings),
		strconv.Itoa(report.Totals.Errors),
		strconv.Itoa(report.Totals.Issues),
		strconv.Itoa(report.Totals.FilesWithIssues),
	}}

	_, err := fmt.Fprint(r.out, r.formatter.Format(summaryColumns, rows, footer))
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
