package rules

import (
	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// ForceCastRule flags `as!`.
type ForceCastRule struct {
	lint.BaseRule
}

// NewForceCastRule creates the rule. It reports at error severity by default.
func NewForceCastRule() lint.Rule {
	return &ForceCastRule{
		BaseRule: lint.NewBaseRule(
			"force_cast",
			"Force Cast",
			"Force casts should be avoided",
			lint.KindIdiomatic,
		).WithSeverity(config.SeverityError),
	}
}

// Kinds implements lint.VisitorRule.
func (r *ForceCastRule) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindAsExpr}
}

// NewVisitor implements lint.VisitorRule.
func (r *ForceCastRule) NewVisitor(_ *lint.RuleContext, report *lint.Report) lint.Visitor {
	return syntax.VisitorFuncs{Post: func(n syntax.Node) {
		as := n.ChildToken("as")
		if !as.IsValid() {
			return
		}
		if bang := as.NextSibling(); bang.TokenKind() == syntax.TokenExclamation {
			report.AtNode(as, "")
		}
	}}
}

// Examples implements lint.ExampleProvider.
func (r *ForceCastRule) Examples() lint.Examples {
	return lint.Examples{
		NonTriggering: []string{
			"NSNumber() as? Int",
			"let s = x as String",
		},
		Triggering: []string{
			"NSNumber() ↓as! Int",
			"let a = b ↓as! String, c = d ↓as! Int",
		},
	}
}
