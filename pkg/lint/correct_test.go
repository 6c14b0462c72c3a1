package lint_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/fix"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/source"
)

func fixConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Fix = true
	return cfg
}

func TestCorrect_ReachesFixedPoint(t *testing.T) {
	engine := newEngine(t, builtinRegistry(), fixConfig())
	result, err := engine.Correct(context.Background(),
		source.NewString("a.swift", "let x: Array<Array<Int>> = foo(bar: nil) \n"))
	require.NoError(t, err)

	assert.Equal(t, "let x: [[Int]] = foo()\n", result.Text.String())
	assert.True(t, result.Changed())
	assert.False(t, result.CapReached)
	assert.LessOrEqual(t, result.Passes, lint.DefaultMaxFixPasses)
	assert.Equal(t, "let x: Array<Array<Int>> = foo(bar: nil) \n", result.Original.String())
}

func TestCorrect_Unchanged(t *testing.T) {
	engine := newEngine(t, builtinRegistry(), fixConfig())
	result, err := engine.Correct(context.Background(), source.NewString("a.swift", "let x = 1\n"))
	require.NoError(t, err)
	assert.False(t, result.Changed())
	assert.Equal(t, 1, result.Passes)
	assert.Same(t, result.Original, result.Text)
}

func TestCorrect_CapReached(t *testing.T) {
	registry := lint.NewRegistry()
	registry.Register(newCorrectingRule("grow", func(rc *lint.RuleContext, b *fix.Builder) {
		b.Insert(rc.Text.Len(), "x")
	}))
	engine := newEngine(t, registry, fixConfig())
	engine.Options.MaxFixPasses = 3

	result, err := engine.Correct(context.Background(), source.NewString("a.swift", "let a = 1\n"))
	require.NoError(t, err)
	assert.True(t, result.CapReached)
	assert.Equal(t, 3, result.Passes)
	assert.Equal(t, "let a = 1\nxxx", result.Text.String())
}

func TestCorrect_IdenticalReplacementIsNoChange(t *testing.T) {
	registry := lint.NewRegistry()
	registry.Register(newCorrectingRule("same", func(rc *lint.RuleContext, b *fix.Builder) {
		b.Replace(source.Range{Start: 0, End: 3}, "let")
	}))
	engine := newEngine(t, registry, fixConfig())

	result, err := engine.Correct(context.Background(), source.NewString("a.swift", "let a = 1\n"))
	require.NoError(t, err)
	assert.False(t, result.CapReached)
	assert.Equal(t, 1, result.Passes)
}

func TestCorrect_RespectsDisabledRegions(t *testing.T) {
	engine := newEngine(t, builtinRegistry(), fixConfig())
	input := "// swiftlint:disable:next redundant_parameter\nfoo(bar: nil)\nfoo(bar: nil)\n"

	result, err := engine.Correct(context.Background(), source.NewString("a.swift", input))
	require.NoError(t, err)
	assert.Equal(t, "// swiftlint:disable:next redundant_parameter\nfoo(bar: nil)\nfoo()\n", result.Text.String())
}

func TestCorrect_FixRulesLimit(t *testing.T) {
	cfg := fixConfig()
	cfg.FixRules = []string{"trailing_whitespace"}
	engine := newEngine(t, builtinRegistry(), cfg)

	result, err := engine.Correct(context.Background(), source.NewString("a.swift", "foo(bar: nil) \n"))
	require.NoError(t, err)
	assert.Equal(t, "foo(bar: nil)\n", result.Text.String())
}

func TestCorrect_NotFixing(t *testing.T) {
	engine := newEngine(t, builtinRegistry(), nil)
	result, err := engine.Correct(context.Background(), source.NewString("a.swift", "foo(bar: nil) \n"))
	require.NoError(t, err)
	assert.False(t, result.Changed())
	assert.Zero(t, result.Passes)
}

func TestCorrect_RuleErrorIsolated(t *testing.T) {
	registry := builtinRegistry()
	registry.Register(newCorrectingRule("broken", func(*lint.RuleContext, *fix.Builder) {
		panic("corrector exploded")
	}))
	engine := newEngine(t, registry, fixConfig())

	result, err := engine.Correct(context.Background(), source.NewString("a.swift", "foo(bar: nil)\n"))
	require.NoError(t, err)
	assert.Equal(t, "foo()\n", result.Text.String())
	require.Contains(t, result.RuleErrors, "broken")
	assert.True(t, strings.Contains(result.RuleErrors["broken"].Error(), "corrector exploded"))
}
