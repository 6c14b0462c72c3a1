package lint

import (
	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// ViolationBuilder helps construct Violation values.
type ViolationBuilder struct {
	v Violation
}

// NewViolation starts building a violation for rule at a byte offset of text.
func NewViolation(rule Rule, text *source.Text, offset int, reason string) *ViolationBuilder {
	return &ViolationBuilder{
		v: Violation{
			RuleID:          rule.ID(),
			RuleName:        rule.Name(),
			RuleDescription: rule.Description(),
			Path:            text.Path(),
			Location:        text.LocationAt(offset),
			Reason:          reason,
		},
	}
}

// WithSeverity sets an explicit severity, overriding the configured one.
func (b *ViolationBuilder) WithSeverity(s config.Severity) *ViolationBuilder {
	b.v.Severity = s
	return b
}

// WithReason replaces the reason.
func (b *ViolationBuilder) WithReason(reason string) *ViolationBuilder {
	b.v.Reason = reason
	return b
}

// Build returns the constructed Violation.
func (b *ViolationBuilder) Build() Violation {
	return b.v
}

// Report accumulates the violations of one rule in one file.
// It is owned by a single visitor and is not safe for concurrent use.
type Report struct {
	rule       Rule
	text       *source.Text
	violations []Violation
}

// NewReport creates an empty report for rule over text.
func NewReport(rule Rule, text *source.Text) *Report {
	return &Report{rule: rule, text: text}
}

// Rule returns the rule the report belongs to.
func (r *Report) Rule() Rule {
	return r.rule
}

// At records a violation at a byte offset. An empty reason uses the rule description.
func (r *Report) At(offset int, reason string) {
	r.Add(r.Violation(offset, reason).Build())
}

// AtNode records a violation at the start of n, excluding leading trivia.
func (r *Report) AtNode(n syntax.Node, reason string) {
	r.At(n.Start(), reason)
}

// AtWithSeverity records a violation with an explicit severity.
func (r *Report) AtWithSeverity(offset int, severity config.Severity, reason string) {
	r.Add(r.Violation(offset, reason).WithSeverity(severity).Build())
}

// Violation starts a builder bound to the report's rule and text.
func (r *Report) Violation(offset int, reason string) *ViolationBuilder {
	if reason == "" {
		reason = r.rule.Description()
	}
	return NewViolation(r.rule, r.text, offset, reason)
}

// Add records a prepared violation.
func (r *Report) Add(v Violation) {
	r.violations = append(r.violations, v)
}

// Len returns the number of violations recorded.
func (r *Report) Len() int {
	return len(r.violations)
}

// Violations returns the recorded violations in the order reported.
func (r *Report) Violations() []Violation {
	return r.violations
}
