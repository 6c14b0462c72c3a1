package rules

import (
	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Lint
	registry.Register(NewNoConstantConditionRule)
	registry.Register(NewForceCastRule)
	registry.Register(NewTodoRule)
	registry.Register(NewSuperfluousDisableCommandRule)

	// Idiomatic
	registry.Register(NewRedundantParameterRule)
	registry.Register(NewSyntacticSugarRule)
	registry.Register(NewLegacyConstructorRule)

	// Style
	registry.Register(NewTrailingWhitespaceRule)
	registry.Register(NewCustomRules)

	// Metrics
	registry.Register(NewLineLengthRule)
	registry.Register(NewFunctionBodyLengthRule)

	// Performance
	registry.Register(NewEmptyCountRule)
}

// RegisterRenamedIdentifiers maps identifiers used by earlier releases to
// the rules that replaced them.
func RegisterRenamedIdentifiers(registry *lint.Registry) {
	registry.RegisterAlias("no-constant-condition", "no_constant_condition")
	registry.RegisterAlias("redundant_optional_parameter", "redundant_parameter")
}

// RuleInfos describes every rule in registry for configuration templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	out := make([]config.RuleInfo, 0, len(rules))
	for _, r := range rules {
		out = append(out, config.RuleInfo{
			ID:          r.ID(),
			Name:        r.Name(),
			Description: r.Description(),
			OptIn:       r.OptIn(),
			Kind:        string(r.Kind()),
			CanFix:      lint.CanFix(r),
			Options:     r.Configuration().Describe().Map(),
		})
	}
	return out
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterRenamedIdentifiers(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
