package lint_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

func TestEngine_ConstantCondition(t *testing.T) {
	engine := newEngine(t, builtinRegistry(), nil)
	result := lintContent(t, engine, "if true { print(1) }")

	require.Len(t, result.Violations, 1)
	v := result.Violations[0]
	assert.Equal(t, "no_constant_condition", v.RuleID)
	assert.Equal(t, 1, v.Location.Line)
	assert.Equal(t, 4, v.Location.Character)
	assert.Equal(t, config.SeverityWarning, v.Severity)
	assert.Equal(t, "Test.swift", v.Path)
}

func TestEngine_DisableThis(t *testing.T) {
	engine := newEngine(t, builtinRegistry(), nil)
	result := lintContent(t, engine, "foo(bar: nil) // swiftlint:disable:this redundant_parameter")
	assert.Empty(t, result.Violations)
}

func TestEngine_RenamedIdentifierInDirective(t *testing.T) {
	engine := newEngine(t, builtinRegistry(), nil)
	result := lintContent(t, engine, "if true { print(1) } // swiftlint:disable:this no-constant-condition")
	assert.Empty(t, result.Violations)
}

func TestEngine_EmptyFile(t *testing.T) {
	engine := newEngine(t, builtinRegistry(), nil)
	for _, content := range []string{"", "\n"} {
		result := lintContent(t, engine, content)
		assert.Empty(t, result.Violations)
		assert.False(t, result.Regions.HasDirectives())
		assert.Nil(t, result.Tree)
	}
}

type failingParser struct{ err error }

func (p failingParser) Parse(context.Context, *source.Text) (*syntax.Tree, error) {
	return nil, p.err
}

func TestEngine_ParseError(t *testing.T) {
	parseErr := errors.New("boom")
	engine := lint.NewEngine(failingParser{err: parseErr}, lint.ResolveRules(builtinRegistry(), nil))

	_, err := engine.LintFile(context.Background(), source.NewString("a.swift", "let x = 1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, parseErr)
}

const parityInput = `import Foundation

class Foo {
    var items: Array<Int> = []

    func bar(x: Any) -> Int {
        if true {
            return x as! Int
        }
        foo(a: nil, b: 2)
        let y = NSMakePoint(1, 2)
        let empty = items.count == 0
        return empty ? 1 : 0
    }
}

protocol P {
    func baz()
}
`

func TestEngine_SharedWalkMatchesIndependent(t *testing.T) {
	cfg := config.NewConfig()
	cfg.OptInRules = []string{"empty_count"}

	shared := newEngine(t, builtinRegistry(), cfg)
	independent := newEngine(t, builtinRegistry(), cfg)
	independent.Options.Independent = true

	a := lintContent(t, shared, parityInput)
	b := lintContent(t, independent, parityInput)
	require.NotEmpty(t, a.Violations)
	assert.Equal(t, a.Violations, b.Violations)
	assert.ElementsMatch(t,
		[]string{"syntactic_sugar", "no_constant_condition", "force_cast", "redundant_parameter",
			"legacy_constructor", "empty_count"},
		ruleIDs(a.Violations))
}

func TestEngine_OrderingAndDedup(t *testing.T) {
	registry := lint.NewRegistry()
	registry.Register(newTextRule("b_rule", func(_ *lint.RuleContext, report *lint.Report) error {
		report.At(4, "second")
		report.At(0, "first")
		report.At(0, "duplicate")
		return nil
	}))
	registry.Register(newTextRule("a_rule", func(_ *lint.RuleContext, report *lint.Report) error {
		report.At(4, "")
		return nil
	}))

	result := lintContent(t, newEngine(t, registry, nil), "let x = 1\n")
	require.Len(t, result.Violations, 3)
	assert.Equal(t, []string{"b_rule", "a_rule", "b_rule"}, ruleIDs(result.Violations))
	assert.Equal(t, "first", result.Violations[0].Reason)
	assert.Equal(t, "a_rule", result.Violations[1].Reason)
}

func TestEngine_StrictAndLenient(t *testing.T) {
	tests := []struct {
		name    string
		strict  bool
		lenient bool
		want    []config.Severity
	}{
		{name: "as configured", want: []config.Severity{config.SeverityWarning, config.SeverityError}},
		{name: "strict", strict: true, want: []config.Severity{config.SeverityError, config.SeverityError}},
		{name: "lenient", lenient: true, want: []config.Severity{config.SeverityWarning, config.SeverityWarning}},
		{name: "strict wins", strict: true, lenient: true, want: []config.Severity{config.SeverityError, config.SeverityError}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.Strict, cfg.Lenient = tt.strict, tt.lenient
			cfg.OnlyRules = []string{"no_constant_condition", "force_cast"}

			result := lintContent(t, newEngine(t, builtinRegistry(), cfg), "if true { _ = x as! Int }")
			var got []config.Severity
			for _, v := range result.Violations {
				got = append(got, v.Severity)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_ShebangLine(t *testing.T) {
	registry := lint.NewRegistry()
	registry.Register(newTextRule("every_line", func(rc *lint.RuleContext, report *lint.Report) error {
		for line := 1; line <= rc.Text.LineCount(); line++ {
			r, _ := rc.Text.LineRange(line)
			report.At(r.Start, "")
		}
		return nil
	}))

	result := lintContent(t, newEngine(t, registry, nil), "#!/usr/bin/env swift\nprint(1)\n")
	require.Len(t, result.Violations, 2)
	assert.Equal(t, 2, result.Violations[0].Location.Line)
}

type panickingRule struct {
	lint.BaseRule
}

func (r *panickingRule) NewVisitor(*lint.RuleContext, *lint.Report) lint.Visitor {
	return syntax.VisitorFuncs{Pre: func(syntax.Node) syntax.Action { panic("visitor exploded") }}
}

func TestEngine_RulePanicIsolated(t *testing.T) {
	registry := builtinRegistry()
	registry.Register(func() lint.Rule {
		return &panickingRule{BaseRule: lint.NewBaseRule("panicky", "Panicky", "panics", lint.KindLint)}
	})
	registry.Register(newTextRule("failing", func(*lint.RuleContext, *lint.Report) error {
		return errors.New("check failed")
	}))

	result := lintContent(t, newEngine(t, registry, nil), "if true { print(1) }")
	require.Contains(t, result.RuleErrors, "panicky")
	assert.ErrorContains(t, result.RuleErrors["panicky"], "visitor exploded")
	assert.ErrorContains(t, result.RuleErrors["failing"], "check failed")
	assert.Equal(t, []string{"no_constant_condition"}, ruleIDs(result.Violations))
}

func TestEngine_Cancelled(t *testing.T) {
	engine := newEngine(t, builtinRegistry(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.LintFile(ctx, source.NewString("a.swift", "let x = 1\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingObserver struct {
	mu    sync.Mutex
	rules map[string]int
	files []string
	fixes map[string]int
}

func (o *recordingObserver) RuleFinished(ruleID string, violations int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rules[ruleID] += violations
}

func (o *recordingObserver) FileFinished(path string, _ int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.files = append(o.files, path)
}

func (o *recordingObserver) CorrectionsApplied(ruleID string, count int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fixes[ruleID] += count
}

func TestEngine_Observer(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Fix = true
	engine := newEngine(t, builtinRegistry(), cfg)
	obs := &recordingObserver{rules: map[string]int{}, fixes: map[string]int{}}
	engine.Options.Observer = obs

	lintContent(t, engine, "if true { print(1) }")
	assert.Equal(t, []string{"Test.swift"}, obs.files)
	assert.Equal(t, 1, obs.rules["no_constant_condition"])
	assert.Contains(t, obs.rules, "line_length")

	_, err := engine.Correct(context.Background(), source.NewString("a.swift", "foo(bar: nil)\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, obs.fixes["redundant_parameter"])
}

func TestFileResult_Counts(t *testing.T) {
	engine := newEngine(t, builtinRegistry(), nil)
	result := lintContent(t, engine, "if true { _ = x as! Int }")
	assert.True(t, result.HasIssues())
	assert.Equal(t, 2, result.IssueCount())
	assert.Equal(t, 1, result.CountBySeverity(config.SeverityError))
	assert.Equal(t, 1, result.CountBySeverity(config.SeverityWarning))
}
