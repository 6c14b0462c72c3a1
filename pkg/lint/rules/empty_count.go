package rules

import (
	"strings"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/fix"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/ruleconfig"
	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// EmptyCountRule prefers `isEmpty` over comparing `count` to zero.
type EmptyCountRule struct {
	lint.BaseRule

	onlyAfterDot bool
}

// NewEmptyCountRule creates the rule.
func NewEmptyCountRule() lint.Rule {
	return &EmptyCountRule{
		BaseRule: lint.NewBaseRule(
			"empty_count",
			"Empty Count",
			"Prefer checking `isEmpty` over comparing `count` to zero",
			lint.KindPerformance,
		).WithOptIn().
			WithSeverity(config.SeverityError).
			WithMinSwiftVersion(lint.Version{Major: 5}),
	}
}

// Configuration implements lint.Rule.
func (r *EmptyCountRule) Configuration() ruleconfig.Configuration {
	return ruleconfig.NewSet(r.ID()).
		Severity(r.SeverityOption()).
		Flag("only_after_dot", &r.onlyAfterDot)
}

// Kinds implements lint.VisitorRule.
func (r *EmptyCountRule) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindSequenceExpr}
}

// NewVisitor implements lint.VisitorRule.
func (r *EmptyCountRule) NewVisitor(_ *lint.RuleContext, report *lint.Report) lint.Visitor {
	return syntax.VisitorFuncs{Post: func(n syntax.Node) {
		for _, c := range r.comparisons(n) {
			report.At(c.countToken.Start(), "")
		}
	}}
}

// Correct implements lint.CorrectableRule.
func (r *EmptyCountRule) Correct(rc *lint.RuleContext, b *fix.Builder) error {
	for _, seq := range rc.NodesOfKind(syntax.KindSequenceExpr) {
		for _, c := range r.comparisons(seq) {
			prefix := rc.Text.Slice(source.Range{Start: c.count.Start(), End: c.countToken.Start()})
			replacement := string(prefix) + "isEmpty"
			switch c.operator {
			case "!=", "<", ">":
				replacement = "!" + replacement
			}
			b.ReplaceAt(c.countToken.Start(), c.span, replacement)
		}
	}
	return nil
}

var comparisonOperators = map[string]bool{
	"==": true, "!=": true, ">": true, ">=": true, "<": true, "<=": true,
}

type countComparison struct {
	// span covers both operands and the operator.
	span       source.Range
	operator   string
	count      syntax.Node
	countToken syntax.Node
}

// comparisons finds `count <op> 0` and `0 <op> count` in an unfolded
// operator sequence. Operands next to a tighter-binding operator belong to
// that operator and are ignored.
func (r *EmptyCountRule) comparisons(seq syntax.Node) []countComparison {
	elems := seq.Children()
	var out []countComparison
	for i := 1; i+1 < len(elems); i += 2 {
		op := elems[i]
		if !comparisonOperators[op.Text()] {
			continue
		}
		if i >= 2 && !bindsLooser(elems[i-2]) {
			continue
		}
		if i+2 < len(elems) && !bindsLooser(elems[i+2]) {
			continue
		}
		left, right := elems[i-1], elems[i+1]
		count, zero := left, right
		if !isZeroLiteral(zero) {
			count, zero = right, left
			if !isZeroLiteral(zero) {
				continue
			}
		}
		tok, ok := r.countToken(count)
		if !ok {
			continue
		}
		out = append(out, countComparison{
			span:       source.Range{Start: left.Start(), End: right.End()},
			operator:   op.Text(),
			count:      count,
			countToken: tok,
		})
	}
	return out
}

// bindsLooser reports whether the operator binds less tightly than a comparison.
func bindsLooser(op syntax.Node) bool {
	if op.TokenKind() == syntax.TokenEqual {
		return true
	}
	text := op.Text()
	switch text {
	case "&&", "||":
		return true
	}
	return strings.HasSuffix(text, "=") && !comparisonOperators[text] && text != "==="
}

// countToken returns the `count` name of `x.count`, or of a bare `count`
// unless only member accesses are checked.
func (r *EmptyCountRule) countToken(n syntax.Node) (syntax.Node, bool) {
	switch n.Kind() {
	case syntax.KindMemberAccessExpr:
		last := n.Child(n.NumChildren() - 1)
		if last.IsToken() && last.TokenKind() == syntax.TokenIdentifier && last.Text() == "count" {
			return last, true
		}
	case syntax.KindDeclReferenceExpr:
		if r.onlyAfterDot || n.NumChildren() != 1 {
			return syntax.Node{}, false
		}
		if tok := n.Child(0); tok.TokenKind() == syntax.TokenIdentifier && tok.Text() == "count" {
			return tok, true
		}
	}
	return syntax.Node{}, false
}

// isZeroLiteral accepts 0, 0x0, 0b00, 0o00 and 0x00_00.
func isZeroLiteral(n syntax.Node) bool {
	if n.Kind() != syntax.KindIntegerLiteralExpr {
		return false
	}
	digits := n.Text()
	for _, prefix := range []string{"0x", "0b", "0o"} {
		if rest, ok := strings.CutPrefix(digits, prefix); ok {
			digits = rest
			break
		}
	}
	digits = strings.ReplaceAll(digits, "_", "")
	return digits != "" && strings.Trim(digits, "0") == ""
}

// Examples implements lint.ExampleProvider.
func (r *EmptyCountRule) Examples() lint.Examples {
	return lint.Examples{
		NonTriggering: []string{
			"var count = 0",
			"[Int]().isEmpty",
			"[Int]().count > 1",
			"[Int]().count == 1",
			"[Int]().count == 0xff",
			"[Int]().count == 0b01",
			"[Int]().count == 0o07",
			"discount == 0",
			"order.discount == 0",
			"[Int]().count + 1 == 0",
		},
		Triggering: []string{
			"[Int]().↓count == 0",
			"0 == [Int]().↓count",
			"[Int]().↓count==0",
			"[Int]().↓count > 0",
			"[Int]().↓count != 0",
			"[Int]().↓count == 0x0",
			"[Int]().↓count == 0x00_00",
			"[Int]().↓count == 0b00",
			"[Int]().↓count == 0o00",
			"↓count == 0",
		},
		Corrections: []lint.CorrectionExample{
			{Before: "[].↓count == 0", After: "[].isEmpty"},
			{Before: "0 == [].↓count", After: "[].isEmpty"},
			{Before: "[Int]().↓count == 0", After: "[Int]().isEmpty"},
			{Before: "0 == [Int]().↓count", After: "[Int]().isEmpty"},
			{Before: "[Int]().↓count==0", After: "[Int]().isEmpty"},
			{Before: "[Int]().↓count > 0", After: "![Int]().isEmpty"},
			{Before: "[Int]().↓count != 0", After: "![Int]().isEmpty"},
			{Before: "[Int]().↓count == 0x00_00", After: "[Int]().isEmpty"},
			{Before: "↓count == 0", After: "isEmpty"},
			{Before: "↓count == 0 && [Int]().↓count == 0o00", After: "isEmpty && [Int]().isEmpty"},
		},
	}
}
