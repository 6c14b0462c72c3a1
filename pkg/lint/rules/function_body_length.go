package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/ruleconfig"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// FunctionBodyLengthRule limits the number of code lines in function bodies.
type FunctionBodyLengthRule struct {
	lint.BaseRule

	levels ruleconfig.SeverityLevels
}

// NewFunctionBodyLengthRule creates the rule with thresholds 50 and 100.
func NewFunctionBodyLengthRule() lint.Rule {
	return &FunctionBodyLengthRule{
		BaseRule: lint.NewBaseRule(
			"function_body_length",
			"Function Body Length",
			"Function bodies should not span too many lines",
			lint.KindMetrics,
		),
		levels: ruleconfig.Levels(50, 100),
	}
}

// Configuration implements lint.Rule.
func (r *FunctionBodyLengthRule) Configuration() ruleconfig.Configuration {
	return ruleconfig.NewSet(r.ID()).Levels(&r.levels)
}

// Kinds implements lint.VisitorRule.
func (r *FunctionBodyLengthRule) Kinds() []syntax.Kind {
	return []syntax.Kind{
		syntax.KindFunctionDecl,
		syntax.KindInitializerDecl,
		syntax.KindDeinitializerDecl,
		syntax.KindSubscriptDecl,
	}
}

// SkippableDeclarations implements lint.VisitorRule. Protocol requirements
// have no bodies.
func (r *FunctionBodyLengthRule) SkippableDeclarations() []syntax.Kind {
	return []syntax.Kind{syntax.KindProtocolDecl}
}

var bodyKeywords = map[syntax.Kind]string{
	syntax.KindFunctionDecl:      "func",
	syntax.KindInitializerDecl:   "init",
	syntax.KindDeinitializerDecl: "deinit",
	syntax.KindSubscriptDecl:     "subscript",
}

// NewVisitor implements lint.VisitorRule.
func (r *FunctionBodyLengthRule) NewVisitor(rc *lint.RuleContext, report *lint.Report) lint.Visitor {
	return syntax.VisitorFuncs{Post: func(n syntax.Node) {
		body := n.FirstChildOfKind(syntax.KindCodeBlock, syntax.KindAccessorBlock)
		if !body.IsValid() {
			return
		}
		lines := codeLinesIn(rc, body)
		severity, limit, exceeded := r.levels.Exceeded(lines)
		if !exceeded {
			return
		}
		at := n.Start()
		if kw := n.ChildToken(bodyKeywords[n.Kind()]); kw.IsValid() {
			at = kw.Start()
		}
		report.AtWithSeverity(at, severity, fmt.Sprintf(
			"Function body should span %d lines or less excluding comments and whitespace: currently spans %d lines",
			limit, lines))
	}}
}

// codeLinesIn counts the lines strictly between the braces of body that are
// neither blank nor comment-only.
func codeLinesIn(rc *lint.RuleContext, body syntax.Node) int {
	first := rc.Text.LocationAt(body.Start()).Line
	last := rc.Text.LocationAt(max(body.End()-1, body.Start())).Line
	count := 0
	for line := first + 1; line < last; line++ {
		if rc.IsBlankLine(line) || rc.LineIsComment(line) {
			continue
		}
		count++
	}
	return count
}

// Examples implements lint.ExampleProvider.
func (r *FunctionBodyLengthRule) Examples() lint.Examples {
	body := func(n int, line string) string {
		return strings.Repeat(line, n)
	}
	return lint.Examples{
		NonTriggering: []string{
			"func abc() {\n" + body(50, "let x = 0\n") + "}\n",
			"func abc() {\n" + body(50, "let x = 0\n") + body(10, "\n") + body(10, "// comment\n") + "}\n",
			"protocol P {\n    func abc()\n}\n",
		},
		Triggering: []string{
			"↓func abc() {\n" + body(51, "let x = 0\n") + "}\n",
			"struct S {\n    ↓init() {\n" + body(51, "let x = 0\n") + "}\n}\n",
		},
	}
}
