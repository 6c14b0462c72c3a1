package rules

import (
	"github.com/yaklabco/swiftlint-go/pkg/fix"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// RedundantParameterRule flags labeled arguments that pass a bare `nil`,
// which is the default value of optional parameters, and removes them.
type RedundantParameterRule struct {
	lint.BaseRule
}

// NewRedundantParameterRule creates the rule.
func NewRedundantParameterRule() lint.Rule {
	return &RedundantParameterRule{
		BaseRule: lint.NewBaseRule(
			"redundant_parameter",
			"Redundant Parameter",
			"Labeled arguments passing nil should be omitted",
			lint.KindIdiomatic,
		),
	}
}

// Kinds implements lint.VisitorRule.
func (r *RedundantParameterRule) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindFunctionCallExpr}
}

// NewVisitor implements lint.VisitorRule.
func (r *RedundantParameterRule) NewVisitor(_ *lint.RuleContext, report *lint.Report) lint.Visitor {
	return syntax.VisitorFuncs{Post: func(n syntax.Node) {
		for _, arg := range nilArguments(n) {
			report.AtNode(arg, "")
		}
	}}
}

// Correct implements lint.CorrectableRule. Adjacent redundant arguments are
// removed as one range so the edits of a call never overlap.
func (r *RedundantParameterRule) Correct(rc *lint.RuleContext, b *fix.Builder) error {
	for _, call := range rc.NodesOfKind(syntax.KindFunctionCallExpr) {
		redundant := nilArguments(call)
		if len(redundant) == 0 {
			continue
		}
		args := call.ChildrenOfKind(syntax.KindLabeledExpr)
		if len(redundant) == len(args) {
			open, closeParen := call.ChildToken("("), call.ChildToken(")")
			if open.IsValid() && closeParen.IsValid() {
				b.ReplaceAt(redundant[0].Start(), source.Range{Start: open.End(), End: closeParen.Start()}, "")
			}
			continue
		}

		isRedundant := make(map[int]bool, len(redundant))
		for _, arg := range redundant {
			isRedundant[arg.Start()] = true
		}
		for first := 0; first < len(args); first++ {
			if !isRedundant[args[first].Start()] {
				continue
			}
			last := first
			for last+1 < len(args) && isRedundant[args[last+1].Start()] {
				last++
			}
			b.ReplaceAt(args[first].Start(), runRemoval(args, first, last), "")
			first = last
		}
	}
	return nil
}

// runRemoval is the range deleting args[first..last] so the remaining
// arguments stay well formed: up to the next argument, or for a run ending
// the list, from the comma of the argument before it.
func runRemoval(args []syntax.Node, first, last int) source.Range {
	if last+1 < len(args) {
		return source.Range{Start: args[first].Start(), End: args[last+1].Start()}
	}
	if first > 0 {
		if comma := args[first-1].ChildToken(","); comma.IsValid() {
			return source.Range{Start: comma.Start(), End: args[last].End()}
		}
	}
	return source.Range{Start: args[first].Start(), End: args[last].End()}
}

// nilArguments returns the labeled `nil` arguments of a call, excluding
// trailing closures.
func nilArguments(call syntax.Node) []syntax.Node {
	var out []syntax.Node
	for _, arg := range call.ChildrenOfKind(syntax.KindLabeledExpr) {
		label := arg.Child(0)
		if !label.IsToken() || label.TokenKind() != syntax.TokenIdentifier ||
			arg.Child(1).TokenKind() != syntax.TokenColon {
			continue
		}
		exprs := arg.NonTokenChildren()
		if len(exprs) == 1 && exprs[0].Kind() == syntax.KindNilLiteralExpr {
			out = append(out, arg)
		}
	}
	return out
}

// Examples implements lint.ExampleProvider.
func (r *RedundantParameterRule) Examples() lint.Examples {
	return lint.Examples{
		NonTriggering: []string{
			"foo(bar: 1)",
			"foo(nil)",
			"foo(bar: nil ?? x)",
			"let x: Int? = nil",
		},
		Triggering: []string{
			"foo(↓bar: nil)",
			"foo(a, ↓bar: nil)",
			"foo(↓bar: nil, baz: 2, ↓qux: nil)",
		},
		Corrections: []lint.CorrectionExample{
			{Before: "foo(↓bar: nil)", After: "foo()"},
			{Before: "foo(a, ↓bar: nil)", After: "foo(a)"},
			{Before: "foo(↓bar: nil, baz: 2)", After: "foo(baz: 2)"},
			{Before: "foo(↓bar: nil, baz: 2, ↓qux: nil)", After: "foo(baz: 2)"},
			{Before: "foo(a: 1, ↓b: nil, ↓c: nil)", After: "foo(a: 1)"},
			{Before: "foo(↓a: nil, ↓b: nil, c: 3)", After: "foo(c: 3)"},
			{Before: "foo(a: 1, ↓b: nil, ↓c: nil, d: 4)", After: "foo(a: 1, d: 4)"},
		},
	}
}
