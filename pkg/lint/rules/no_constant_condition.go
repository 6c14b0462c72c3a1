package rules

import (
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// NoConstantConditionRule flags `if`, `guard` and `while` conditions that
// are boolean literals.
type NoConstantConditionRule struct {
	lint.BaseRule
}

// NewNoConstantConditionRule creates the rule.
func NewNoConstantConditionRule() lint.Rule {
	return &NoConstantConditionRule{
		BaseRule: lint.NewBaseRule(
			"no_constant_condition",
			"No Constant Condition",
			"Conditions should not be boolean literals",
			lint.KindLint,
		),
	}
}

// Kinds implements lint.VisitorRule.
func (r *NoConstantConditionRule) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindCondition}
}

// NewVisitor implements lint.VisitorRule.
func (r *NoConstantConditionRule) NewVisitor(_ *lint.RuleContext, report *lint.Report) lint.Visitor {
	return syntax.VisitorFuncs{Post: func(n syntax.Node) {
		if !n.Parent().Parent().Is(syntax.KindIfStmt, syntax.KindGuardStmt, syntax.KindWhileStmt) {
			return
		}
		exprs := n.NonTokenChildren()
		if len(exprs) == 1 && exprs[0].Kind() == syntax.KindBooleanLiteralExpr {
			report.AtNode(exprs[0], "")
		}
	}}
}

// Examples implements lint.ExampleProvider.
func (r *NoConstantConditionRule) Examples() lint.Examples {
	return lint.Examples{
		NonTriggering: []string{
			"if x { print(1) }",
			"if x == true { }",
			"guard let y = x else { return }",
			"while !done { step() }",
			"let t = true",
		},
		Triggering: []string{
			"if ↓true { print(1) }",
			"guard ↓false else { return }",
			"while ↓true { step() }",
			"if x, ↓false { }",
		},
	}
}
