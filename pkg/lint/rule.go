// Package lint provides the rule engine, violations, and registry for swiftlint-go.
package lint

import (
	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/fix"
	"github.com/yaklabco/swiftlint-go/pkg/ruleconfig"
	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// Violation is a single rule finding in a file.
type Violation struct {
	// RuleID is the identifier of the rule that produced the violation.
	RuleID string

	// RuleName is the human-readable rule name, e.g. "Force Cast".
	RuleName string

	// RuleDescription is the rule's one-line description.
	RuleDescription string

	// Severity is left empty by rules that report with their configured
	// severity. A rule that escalates sets it explicitly.
	Severity config.Severity

	// Path is the file the violation was found in.
	Path string

	// Location is where the violation starts.
	Location source.Location

	// Reason is the human-readable explanation.
	Reason string
}

// Kind groups rules for documentation and listing.
type Kind string

// Rule kinds.
const (
	KindLint        Kind = "lint"
	KindIdiomatic   Kind = "idiomatic"
	KindStyle       Kind = "style"
	KindMetrics     Kind = "metrics"
	KindPerformance Kind = "performance"
)

// Rule defines the metadata every lint rule provides. A rule also implements
// at least one of VisitorRule, TextRule or CorrectableRule.
//
// The registry creates a fresh instance per run, so a rule may keep its
// configuration in fields. Rules must not keep per-file state in the rule
// itself; visitors carry that.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "force_cast").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a one-line description of what the rule checks.
	Description() string

	// Kind returns the rule's category.
	Kind() Kind

	// OptIn reports whether the rule is off unless enabled explicitly.
	OptIn() bool

	// MinSwiftVersion is the lowest language version the rule applies to.
	// The zero Version means every version.
	MinSwiftVersion() Version

	// Configuration returns the rule's options, bound to the rule's fields.
	Configuration() ruleconfig.Configuration

	// Severity is the configured severity for violations that do not carry
	// their own.
	Severity() config.Severity
}

// Visitor walks the syntax tree for one rule in one file.
type Visitor interface {
	syntax.Visitor
}

// VisitorRule inspects the syntax tree.
type VisitorRule interface {
	Rule

	// Kinds lists the node kinds the visitor wants. Nil means every kind.
	Kinds() []syntax.Kind

	// SkippableDeclarations lists declaration kinds whose subtrees the
	// walker must not enter for this rule.
	SkippableDeclarations() []syntax.Kind

	// NewVisitor returns a visitor that records into report.
	NewVisitor(rc *RuleContext, report *Report) Visitor
}

// TextRule inspects the source text directly.
type TextRule interface {
	Rule

	// Check records violations found in rc.
	Check(rc *RuleContext, report *Report) error
}

// CorrectableRule proposes corrections. All edits are computed against the
// tree in rc and must not overlap one another, except where an outer edit
// already contains the rewritten inner text.
type CorrectableRule interface {
	Rule

	// Correct records edits with b.
	Correct(rc *RuleContext, b *fix.Builder) error
}

// SubRuleProvider is implemented by rules that define further rule
// identifiers, such as user-defined regex rules.
type SubRuleProvider interface {
	// SubRuleIDs lists every defined identifier, enabled or not.
	SubRuleIDs() []string

	// RestrictSubRules limits which sub-rules run.
	RestrictSubRules(enabled func(id string) bool)
}

// CanFix reports whether r proposes corrections.
func CanFix(r Rule) bool {
	_, ok := r.(CorrectableRule)
	return ok
}
