package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/fix"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/lint/rules"
	"github.com/yaklabco/swiftlint-go/pkg/parser/swift"
	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// builtinRegistry returns a registry holding every built-in rule.
func builtinRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	rules.RegisterRenamedIdentifiers(registry)
	return registry
}

func newEngine(t *testing.T, registry *lint.Registry, cfg *config.Config) *lint.Engine {
	t.Helper()
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return lint.NewEngine(swift.New(), lint.ResolveRules(registry, cfg))
}

func lintContent(t *testing.T, engine *lint.Engine, content string) *lint.FileResult {
	t.Helper()
	result, err := engine.LintFile(context.Background(), source.NewString("Test.swift", content))
	require.NoError(t, err)
	return result
}

func ruleIDs(vs []lint.Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.RuleID
	}
	return out
}

// kindRule reports every node of one kind.
type kindRule struct {
	lint.BaseRule
	kind   syntax.Kind
	reason string
}

func newKindRule(id string, kind syntax.Kind) lint.Factory {
	return func() lint.Rule {
		return &kindRule{
			BaseRule: lint.NewBaseRule(id, id, "reports "+kind.String(), lint.KindLint),
			kind:     kind,
		}
	}
}

func (r *kindRule) Kinds() []syntax.Kind { return []syntax.Kind{r.kind} }

func (r *kindRule) NewVisitor(_ *lint.RuleContext, report *lint.Report) lint.Visitor {
	return syntax.VisitorFuncs{Pre: func(n syntax.Node) syntax.Action {
		report.AtNode(n, r.reason)
		return syntax.VisitChildren
	}}
}

// textRule runs fn as a text rule.
type textRule struct {
	lint.BaseRule
	fn func(rc *lint.RuleContext, report *lint.Report) error
}

func newTextRule(id string, fn func(rc *lint.RuleContext, report *lint.Report) error) lint.Factory {
	return func() lint.Rule {
		return &textRule{BaseRule: lint.NewBaseRule(id, id, id, lint.KindLint), fn: fn}
	}
}

func (r *textRule) Check(rc *lint.RuleContext, report *lint.Report) error { return r.fn(rc, report) }

// correctingRule proposes the corrections built by fn on every pass.
type correctingRule struct {
	lint.BaseRule
	fn func(rc *lint.RuleContext, b *fix.Builder)
}

func newCorrectingRule(id string, fn func(rc *lint.RuleContext, b *fix.Builder)) lint.Factory {
	return func() lint.Rule {
		return &correctingRule{BaseRule: lint.NewBaseRule(id, id, id, lint.KindStyle), fn: fn}
	}
}

func (r *correctingRule) Correct(rc *lint.RuleContext, b *fix.Builder) error {
	r.fn(rc, b)
	return nil
}
