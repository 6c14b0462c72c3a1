package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/parser/swift"
	"github.com/yaklabco/swiftlint-go/pkg/ruleconfig"
)

func customEngine(t *testing.T, rules map[string]any, mutate func(cfg *config.Config)) *lint.Engine {
	t.Helper()

	registry := lint.NewRegistry()
	registry.Register(NewCustomRules)
	cfg := config.NewConfig()
	cfg.Rules[CustomRulesID] = rules
	if mutate != nil {
		mutate(cfg)
	}
	return lint.NewEngine(swift.New(), lint.ResolveRules(registry, cfg))
}

func TestCustomRules_Matches(t *testing.T) {
	engine := customEngine(t, map[string]any{
		"my_rule": map[string]any{
			"regex":       "pattern",
			"match_kinds": "comment",
			"message":     "Found a pattern",
			"severity":    "error",
		},
	}, nil)

	got := lintString(t, engine, "my_rule", "// My file with\n// a pattern")
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Location.Line)
	assert.Equal(t, 6, got[0].Location.Character)
	assert.Equal(t, "Found a pattern", got[0].Reason)
	assert.Equal(t, config.SeverityError, got[0].Severity)

	assert.Empty(t, lintString(t, engine, "my_rule", "let pattern = 1\n"))
}

func TestCustomRules_ExcludedMatchKinds(t *testing.T) {
	engine := customEngine(t, map[string]any{
		"no_foo": map[string]any{"regex": "foo", "excluded_match_kinds": []any{"comment", "string"}},
	}, nil)

	assert.Len(t, lintString(t, engine, "no_foo", "let foo = 1\n"), 1)
	assert.Empty(t, lintString(t, engine, "no_foo", "// foo\nlet s = \"foo\"\n"))
}

func TestCustomRules_Disable(t *testing.T) {
	rules := map[string]any{
		"custom":  map[string]any{"regex": "pattern", "match_kinds": "comment"},
		"custom2": map[string]any{"regex": "file", "match_kinds": "comment"},
	}

	t.Run("directive by sub-rule id", func(t *testing.T) {
		engine := customEngine(t, rules, nil)
		content := "//swiftlint:disable custom \n// file with a pattern"
		assert.Empty(t, lintString(t, engine, "custom", content))
		assert.Len(t, lintString(t, engine, "custom2", content), 1)
	})

	t.Run("directive by parent id", func(t *testing.T) {
		engine := customEngine(t, rules, nil)
		content := "//swiftlint:disable custom_rules\n// file with a pattern"
		assert.Empty(t, lintString(t, engine, "custom", content))
		assert.Empty(t, lintString(t, engine, "custom2", content))
	})

	t.Run("disabled_rules", func(t *testing.T) {
		engine := customEngine(t, rules, func(cfg *config.Config) {
			cfg.DisabledRules = []string{"custom2"}
		})
		content := "// file with a pattern"
		assert.Len(t, lintString(t, engine, "custom", content), 1)
		assert.Empty(t, lintString(t, engine, "custom2", content))
	})

	t.Run("only_rules", func(t *testing.T) {
		engine := customEngine(t, rules, func(cfg *config.Config) {
			cfg.OnlyRules = []string{"custom2"}
		})
		content := "// file with a pattern"
		assert.Empty(t, lintString(t, engine, "custom", content))
		assert.Len(t, lintString(t, engine, "custom2", content), 1)
	})
}

func TestCustomRules_PathFilters(t *testing.T) {
	tests := []struct {
		name    string
		options map[string]any
		want    int
	}{
		{name: "no filters", options: map[string]any{}, want: 1},
		{name: "included matches", options: map[string]any{"included": `\.swift$`}, want: 1},
		{name: "included misses", options: map[string]any{"included": `\.yml$`}, want: 0},
		{name: "excluded", options: map[string]any{"excluded": `Test\.swift$`}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := map[string]any{"regex": "pattern"}
			for k, v := range tt.options {
				options[k] = v
			}
			engine := customEngine(t, map[string]any{"r": options}, nil)
			assert.Len(t, lintString(t, engine, "r", "// a pattern\n"), tt.want)
		})
	}
}

func TestCustomRules_CaptureGroup(t *testing.T) {
	engine := customEngine(t, map[string]any{
		"r": map[string]any{"regex": `let (\w+) = 1`, "capture_group": 1},
	}, nil)
	got := lintString(t, engine, "r", "let value = 1\n")
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Location.Offset)
}

func TestCustomRules_Configuration(t *testing.T) {
	t.Run("not a mapping", func(t *testing.T) {
		_, err := NewCustomRules().Configuration().Apply(17)
		require.Error(t, err)
		assert.ErrorIs(t, err, &ruleconfig.Issue{Kind: ruleconfig.IssueInvalidConfiguration})
	})

	t.Run("invalid definitions are dropped", func(t *testing.T) {
		rule := NewCustomRules().(*CustomRules)
		_, err := rule.Configuration().Apply(map[string]any{
			"my_custom_rule": map[string]any{"regex": "regex", "match_kinds": "comment"},
			"invalid_rule":   map[string]any{"name": "InvalidRule"},
			"bad_regex":      map[string]any{"regex": "("},
		})
		require.Error(t, err)
		assert.Equal(t, []string{"my_custom_rule"}, rule.SubRuleIDs())
	})

	t.Run("ambiguous match kinds", func(t *testing.T) {
		rule := NewCustomRules().(*CustomRules)
		warnings, err := rule.Configuration().Apply(map[string]any{
			"r": map[string]any{"regex": "x", "match_kinds": "comment", "excluded_match_kinds": "string"},
		})
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, ruleconfig.IssueInconsistentConfiguration, warnings[0].Kind)
	})

	t.Run("unknown match kind", func(t *testing.T) {
		rule := NewCustomRules().(*CustomRules)
		_, err := rule.Configuration().Apply(map[string]any{
			"r": map[string]any{"regex": "x", "match_kinds": "argument"},
		})
		require.Error(t, err)
		assert.Empty(t, rule.SubRuleIDs())
	})

	t.Run("describe", func(t *testing.T) {
		rule := NewCustomRules().(*CustomRules)
		_, err := rule.Configuration().Apply(map[string]any{
			"r": map[string]any{"regex": "x", "name": "R"},
		})
		require.NoError(t, err)
		m := rule.Configuration().Describe().Map()
		assert.Equal(t, map[string]any{
			"name": "R", "regex": "x", "message": "Regex matched", "severity": "warning",
		}, m["r"])
	})
}
