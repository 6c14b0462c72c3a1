package rules

import "github.com/yaklabco/swiftlint-go/pkg/lint"

// SuperfluousDisableCommandRule carries the metadata and options of the
// check for disable commands that suppress nothing. The engine performs the
// check itself once every other rule has run.
type SuperfluousDisableCommandRule struct {
	lint.BaseRule
}

// NewSuperfluousDisableCommandRule creates the rule.
func NewSuperfluousDisableCommandRule() lint.Rule {
	return &SuperfluousDisableCommandRule{
		BaseRule: lint.NewBaseRule(
			lint.SuperfluousDisableCommandID,
			"Superfluous Disable Command",
			"SwiftLint 'disable' commands are superfluous when the disabled rule would not have triggered a violation "+
				"in the disabled region. Use \" - \" if you wish to document a command.",
			lint.KindLint,
		),
	}
}
