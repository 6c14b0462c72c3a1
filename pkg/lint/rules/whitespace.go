package rules

import (
	"github.com/yaklabco/swiftlint-go/pkg/fix"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/ruleconfig"
	"github.com/yaklabco/swiftlint-go/pkg/source"
)

// TrailingWhitespaceRule flags spaces and tabs at the end of a line.
type TrailingWhitespaceRule struct {
	lint.BaseRule

	ignoresEmptyLines bool
	ignoresComments   bool
}

// NewTrailingWhitespaceRule creates the rule.
func NewTrailingWhitespaceRule() lint.Rule {
	return &TrailingWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			"trailing_whitespace",
			"Trailing Whitespace",
			"Lines should not have trailing whitespace",
			lint.KindStyle,
		),
		ignoresComments: true,
	}
}

// Configuration implements lint.Rule.
func (r *TrailingWhitespaceRule) Configuration() ruleconfig.Configuration {
	return ruleconfig.NewSet(r.ID()).
		Severity(r.SeverityOption()).
		Flag("ignores_empty_lines", &r.ignoresEmptyLines).
		Flag("ignores_comments", &r.ignoresComments)
}

// Check implements lint.TextRule.
func (r *TrailingWhitespaceRule) Check(rc *lint.RuleContext, report *lint.Report) error {
	for _, ws := range r.trailing(rc) {
		report.At(ws.Start, "")
	}
	return nil
}

// Correct implements lint.CorrectableRule.
func (r *TrailingWhitespaceRule) Correct(rc *lint.RuleContext, b *fix.Builder) error {
	for _, ws := range r.trailing(rc) {
		b.Delete(ws)
	}
	return nil
}

func (r *TrailingWhitespaceRule) trailing(rc *lint.RuleContext) []source.Range {
	var out []source.Range
	for line := 1; line <= rc.Text.LineCount(); line++ {
		ws, ok := rc.TrailingWhitespace(line)
		if !ok {
			continue
		}
		if r.ignoresEmptyLines && rc.IsBlankLine(line) {
			continue
		}
		// Whitespace inside a multi-line string or block comment is content.
		if rc.InString(ws.Start) {
			continue
		}
		if r.ignoresComments && (rc.LineIsComment(line) || rc.InComment(ws.Start-1)) {
			continue
		}
		out = append(out, ws)
	}
	return out
}

// Examples implements lint.ExampleProvider.
func (r *TrailingWhitespaceRule) Examples() lint.Examples {
	return lint.Examples{
		NonTriggering: []string{
			"let name: String\n",
			"//\n",
			"// \n",
			"let name: String //\n",
			"let name: String // \n",
		},
		Triggering: []string{
			"let name: String↓ \n",
			"/* */ let name: String↓ \n",
		},
		Corrections: []lint.CorrectionExample{
			{Before: "let name: String↓ \n", After: "let name: String\n"},
			{Before: "/* */ let name: String↓ \n", After: "/* */ let name: String\n"},
		},
	}
}
