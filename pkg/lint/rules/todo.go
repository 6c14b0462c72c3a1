package rules

import (
	"strings"

	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/ruleconfig"
)

const todoMessageLimit = 30

// TodoRule flags TODO and FIXME markers in comments.
type TodoRule struct {
	lint.BaseRule

	only []string
}

// NewTodoRule creates the rule.
func NewTodoRule() lint.Rule {
	return &TodoRule{
		BaseRule: lint.NewBaseRule(
			"todo",
			"Todo",
			"TODOs and FIXMEs should be resolved.",
			lint.KindLint,
		),
		only: []string{"TODO", "FIXME"},
	}
}

// Configuration implements lint.Rule.
func (r *TodoRule) Configuration() ruleconfig.Configuration {
	return ruleconfig.NewSet(r.ID()).
		Severity(r.SeverityOption()).
		Symbols("only", &r.only, "TODO", "FIXME")
}

// Check implements lint.TextRule.
func (r *TodoRule) Check(rc *lint.RuleContext, report *lint.Report) error {
	if len(r.only) == 0 {
		return nil
	}
	re, err := rc.Regex(`\b(` + strings.Join(r.only, "|") + `)(?::|\b)`)
	if err != nil {
		return err
	}
	for _, comment := range rc.Tree.Comments() {
		text := string(rc.Text.Slice(comment.Range))
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			keyword := text[m[2]:m[3]]
			report.At(comment.Range.Start+m[0], todoReason(keyword, text[m[1]:]))
		}
	}
	return nil
}

// todoReason describes the marker, quoting up to the first few characters
// of its message.
func todoReason(keyword, rest string) string {
	if i := strings.IndexAny(rest, "\r\n"); i >= 0 {
		rest = rest[:i]
	}
	rest = strings.TrimSuffix(strings.TrimSpace(rest), "*/")
	message := strings.TrimSpace(strings.TrimLeft(rest, ":"))

	reason := keyword + "s should be resolved"
	if message == "" {
		return reason
	}
	if runes := []rune(message); len(runes) > todoMessageLimit {
		message = string(runes[:todoMessageLimit]) + "..."
	}
	return reason + " (" + message + ")"
}

// Examples implements lint.ExampleProvider.
func (r *TodoRule) Examples() lint.Examples {
	return lint.Examples{
		NonTriggering: []string{
			"// notaTODO:\n",
			"// notaFIXME:\n",
			`let todo = "TODO: not in a comment"` + "\n",
		},
		Triggering: []string{
			"// ↓TODO:\n",
			"// ↓FIXME:\n",
			"// ↓TODO(note)\n",
			"// ↓FIXME(note)\n",
			"/* ↓FIXME: */\n",
			"/* ↓TODO: */\n",
			"/** ↓FIXME: */\n",
			"/** ↓TODO: */\n",
		},
	}
}
