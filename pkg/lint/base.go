package lint

import (
	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/ruleconfig"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// BaseRule provides a default implementation of the Rule metadata methods.
// Embed this in rule implementations and override methods as needed.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseRule struct {
	id         string
	name       string
	desc       string
	kind       Kind
	optIn      bool
	minVersion Version
	severity   ruleconfig.SeverityOption
}

// NewBaseRule creates a BaseRule reporting at warning severity.
func NewBaseRule(id, name, desc string, kind Kind) BaseRule {
	return BaseRule{
		id:       id,
		name:     name,
		desc:     desc,
		kind:     kind,
		severity: ruleconfig.SeverityOption{Severity: config.SeverityWarning},
	}
}

// WithOptIn marks the rule as off by default.
func (r BaseRule) WithOptIn() BaseRule {
	r.optIn = true
	return r
}

// WithMinSwiftVersion gates the rule on a language version.
func (r BaseRule) WithMinSwiftVersion(v Version) BaseRule {
	r.minVersion = v
	return r
}

// WithSeverity changes the default severity.
func (r BaseRule) WithSeverity(s config.Severity) BaseRule {
	r.severity.Severity = s
	return r
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a one-line description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// Kind returns the rule's category.
func (r *BaseRule) Kind() Kind {
	return r.kind
}

// OptIn reports whether the rule is off by default.
func (r *BaseRule) OptIn() bool {
	return r.optIn
}

// MinSwiftVersion returns the lowest supported language version.
func (r *BaseRule) MinSwiftVersion() Version {
	return r.minVersion
}

// Severity returns the configured severity.
func (r *BaseRule) Severity() config.Severity {
	return r.severity.Severity
}

// SeverityOption exposes the severity for binding into a ruleconfig.Set.
func (r *BaseRule) SeverityOption() *ruleconfig.SeverityOption {
	return &r.severity
}

// Configuration returns a set holding only the severity option.
// Rules with more options override this.
func (r *BaseRule) Configuration() ruleconfig.Configuration {
	return ruleconfig.NewSet(r.id).Severity(&r.severity)
}

// Kinds returns nil, meaning every node kind.
func (r *BaseRule) Kinds() []syntax.Kind {
	return nil
}

// SkippableDeclarations returns nil.
func (r *BaseRule) SkippableDeclarations() []syntax.Kind {
	return nil
}
