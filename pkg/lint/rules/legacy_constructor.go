package rules

import (
	"github.com/yaklabco/swiftlint-go/pkg/fix"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// legacyConstructor maps a C convenience function to its Swift initializer.
type legacyConstructor struct {
	typeName string
	labels   []string
}

//nolint:gochecknoglobals // Read-only table.
var legacyConstructors = map[string]legacyConstructor{
	"CGRectMake":       {"CGRect", []string{"x", "y", "width", "height"}},
	"CGPointMake":      {"CGPoint", []string{"x", "y"}},
	"CGSizeMake":       {"CGSize", []string{"width", "height"}},
	"CGVectorMake":     {"CGVector", []string{"dx", "dy"}},
	"NSMakePoint":      {"NSPoint", []string{"x", "y"}},
	"NSMakeSize":       {"NSSize", []string{"width", "height"}},
	"NSMakeRect":       {"NSRect", []string{"x", "y", "width", "height"}},
	"NSMakeRange":      {"NSRange", []string{"location", "length"}},
	"UIEdgeInsetsMake": {"UIEdgeInsets", []string{"top", "left", "bottom", "right"}},
	"NSEdgeInsetsMake": {"NSEdgeInsets", []string{"top", "left", "bottom", "right"}},
	"UIOffsetMake":     {"UIOffset", []string{"horizontal", "vertical"}},
}

// LegacyConstructorRule flags calls such as CGPointMake(1, 2) and rewrites
// them to CGPoint(x: 1, y: 2).
type LegacyConstructorRule struct {
	lint.BaseRule
}

// NewLegacyConstructorRule creates the rule.
func NewLegacyConstructorRule() lint.Rule {
	return &LegacyConstructorRule{
		BaseRule: lint.NewBaseRule(
			"legacy_constructor",
			"Legacy Constructor",
			"Swift constructors are preferred over legacy convenience functions",
			lint.KindIdiomatic,
		),
	}
}

// Kinds implements lint.VisitorRule.
func (r *LegacyConstructorRule) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindFunctionCallExpr}
}

// NewVisitor implements lint.VisitorRule.
func (r *LegacyConstructorRule) NewVisitor(_ *lint.RuleContext, report *lint.Report) lint.Visitor {
	return syntax.VisitorFuncs{Post: func(n syntax.Node) {
		if _, ok := legacyCallee(n); ok {
			report.AtNode(n, "")
		}
	}}
}

// Correct implements lint.CorrectableRule. Calls whose argument count does
// not match the initializer are left alone.
func (r *LegacyConstructorRule) Correct(rc *lint.RuleContext, b *fix.Builder) error {
	for _, call := range rc.NodesOfKind(syntax.KindFunctionCallExpr) {
		lc, ok := legacyCallee(call)
		if !ok {
			continue
		}
		args := call.ChildrenOfKind(syntax.KindLabeledExpr)
		if len(args) != len(lc.labels) || hasLabels(args) {
			continue
		}
		callee := call.Child(0)
		b.ReplaceAt(call.Start(), callee.Range(), lc.typeName)
		for i, arg := range args {
			b.ReplaceAt(call.Start(), source.Range{Start: arg.Start(), End: arg.Start()}, lc.labels[i]+": ")
		}
	}
	return nil
}

func legacyCallee(call syntax.Node) (legacyConstructor, bool) {
	callee := call.Child(0)
	if callee.Kind() != syntax.KindDeclReferenceExpr {
		return legacyConstructor{}, false
	}
	lc, ok := legacyConstructors[callee.Text()]
	return lc, ok
}

func hasLabels(args []syntax.Node) bool {
	for _, arg := range args {
		if arg.Child(1).TokenKind() == syntax.TokenColon {
			return true
		}
	}
	return false
}

// Examples implements lint.ExampleProvider.
func (r *LegacyConstructorRule) Examples() lint.Examples {
	return lint.Examples{
		NonTriggering: []string{
			"CGPoint(x: 10, y: 10)",
			"CGSize(width: aWidth, height: aHeight)",
			"NSRange(location: 10, length: 1)",
			"UIOffset(horizontal: 0, vertical: 10)",
		},
		Triggering: []string{
			"↓CGPointMake(10, 10)",
			"↓CGRectMake(xVal, yVal, width, height)",
			"↓NSMakeRange(loc, len)",
			"↓CGVectorMake(10, 10)\n↓NSMakeRange(10, 1)",
			"↓UIOffsetMake(0, 10)",
		},
		Corrections: []lint.CorrectionExample{
			{Before: "↓CGPointMake(10,  10)", After: "CGPoint(x: 10,  y: 10)"},
			{Before: "↓CGSizeMake( aWidth, aHeight )", After: "CGSize( width: aWidth, height: aHeight )"},
			{Before: "↓CGRectMake(xPos, yPos , width, height)", After: "CGRect(x: xPos, y: yPos , width: width, height: height)"},
			{Before: "↓CGVectorMake(10, 10)\n↓NSMakeRange(10, 1)", After: "CGVector(dx: 10, dy: 10)\nNSRange(location: 10, length: 1)"},
			{Before: "↓NSMakeRange(0, attributedString.length)", After: "NSRange(location: 0, length: attributedString.length)"},
			{Before: "↓CGPointMake(calculateX(), 10)", After: "CGPoint(x: calculateX(), y: 10)"},
		},
	}
}
