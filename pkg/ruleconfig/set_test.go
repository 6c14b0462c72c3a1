package ruleconfig_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/ruleconfig"
)

type lengthOptions struct {
	severity        ruleconfig.SeverityOption
	levels          ruleconfig.SeverityLevels
	ignoresComments bool
	ignoresURLs     bool
	mode            string
	patterns        []string
	ratio           float64
}

func newLengthSet(o *lengthOptions) *ruleconfig.Set {
	return ruleconfig.NewSet("line_length").
		Levels(&o.levels).
		Flag("ignores_comments", &o.ignoresComments).
		Flag("ignores_urls", &o.ignoresURLs).
		Symbol("mode", &o.mode, "strict", "relaxed").
		Strings("excluded_patterns", &o.patterns).
		Float("ratio", &o.ratio).
		Deprecated("ignore_comments", "ignores_comments")
}

func defaultLengthOptions() *lengthOptions {
	return &lengthOptions{
		severity: ruleconfig.SeverityOption{Severity: config.SeverityWarning},
		levels:   ruleconfig.Levels(120, 200),
		mode:     "strict",
	}
}

func TestSet_ApplyMap(t *testing.T) {
	o := defaultLengthOptions()
	warnings, err := newLengthSet(o).Apply(map[string]any{
		"warning":           100,
		"ignores_comments":  true,
		"mode":              "relaxed",
		"excluded_patterns": "^import",
		"ratio":             2,
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, ruleconfig.SeverityLevels{Warning: 100}, o.levels)
	assert.True(t, o.ignoresComments)
	assert.Equal(t, "relaxed", o.mode)
	assert.Equal(t, []string{"^import"}, o.patterns)
	assert.InDelta(t, 2.0, o.ratio, 0)
}

func TestSet_Shorthand(t *testing.T) {
	o := defaultLengthOptions()
	_, err := newLengthSet(o).Apply([]any{80, 90})
	require.NoError(t, err)
	assert.Equal(t, ruleconfig.Levels(80, 90), o.levels)

	_, err = newLengthSet(o).Apply("error")
	require.Error(t, err)
	assert.True(t, ruleconfig.IsNothingApplied(err))
}

func TestSet_SeverityShorthand(t *testing.T) {
	var sev ruleconfig.SeverityOption
	set := ruleconfig.NewSet("force_cast").Severity(&sev)

	_, err := set.Apply("error")
	require.NoError(t, err)
	assert.Equal(t, config.SeverityError, sev.Severity)

	_, err = set.Apply(map[string]any{"severity": "warning"})
	require.NoError(t, err)
	assert.Equal(t, config.SeverityWarning, sev.Severity)
}

func TestSet_UnknownKeys(t *testing.T) {
	o := defaultLengthOptions()
	warnings, err := newLengthSet(o).Apply(map[string]any{"bogus": 1, "also": 2, "ignores_urls": true})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, ruleconfig.IssueInvalidKeys, warnings[0].Kind)
	assert.Equal(t, "Configuration for 'line_length' rule contains the invalid key(s) 'also', 'bogus'.",
		warnings[0].Error())
	assert.True(t, o.ignoresURLs)
}

func TestSet_Deprecated(t *testing.T) {
	t.Run("applies to alternative", func(t *testing.T) {
		o := defaultLengthOptions()
		warnings, err := newLengthSet(o).Apply(map[string]any{"ignore_comments": true})
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, ruleconfig.IssueDeprecatedOption, warnings[0].Kind)
		assert.Contains(t, warnings[0].Error(), "Use the option 'ignores_comments' instead.")
		assert.True(t, o.ignoresComments)
	})

	t.Run("explicit alternative wins", func(t *testing.T) {
		o := defaultLengthOptions()
		_, err := newLengthSet(o).Apply(map[string]any{"ignore_comments": true, "ignores_comments": false})
		require.NoError(t, err)
		assert.False(t, o.ignoresComments)
	})
}

func TestSet_InvalidValues(t *testing.T) {
	o := defaultLengthOptions()
	_, err := newLengthSet(o).Apply(map[string]any{
		"ignores_comments": "yes",
		"mode":             "loose",
		"ignores_urls":     true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, &ruleconfig.Issue{Kind: ruleconfig.IssueInvalidConfiguration, RuleID: "line_length"})
	assert.Contains(t, err.Error(), "'ignores_comments' must be a boolean")
	assert.Contains(t, err.Error(), "'mode' must be one of strict, relaxed")
	assert.False(t, o.ignoresComments)
	assert.Equal(t, "strict", o.mode)
	assert.True(t, o.ignoresURLs)
}

func TestSet_Validate(t *testing.T) {
	var minimum, maximum int
	set := ruleconfig.NewSet("range").
		Int("min", &minimum).
		Int("max", &maximum).
		Validate(func() *ruleconfig.Issue {
			if minimum > maximum {
				return &ruleconfig.Issue{Kind: ruleconfig.IssueInconsistentConfiguration, Message: "min exceeds max"}
			}
			return nil
		})

	warnings, err := set.Apply(map[string]any{"min": 5, "max": 1})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "range", warnings[0].RuleID)
	assert.Equal(t, "Inconsistent configuration for 'range' rule: min exceeds max", warnings[0].Error())
}

func TestSet_Symbols(t *testing.T) {
	var kinds []string
	set := ruleconfig.NewSet("r").Symbols("kinds", &kinds, "class", "struct")

	_, err := set.Apply(map[string]any{"kinds": []any{"class", "struct"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"class", "struct"}, kinds)

	_, err = set.Apply(map[string]any{"kinds": []any{"enum"}})
	require.Error(t, err)
	assert.Equal(t, []string{"class", "struct"}, kinds)
}

func TestSet_Describe(t *testing.T) {
	o := defaultLengthOptions()
	o.patterns = []string{"^import"}
	d := newLengthSet(o).Describe()

	assert.Equal(t,
		`warning: 120; error: 200; ignores_comments: false; ignores_urls: false; mode: strict; `+
			`excluded_patterns: ["^import"]; ratio: 0.0`,
		d.OneLiner())
}

func TestIssue_Messages(t *testing.T) {
	tests := []struct {
		issue *ruleconfig.Issue
		want  string
	}{
		{
			&ruleconfig.Issue{Kind: ruleconfig.IssueNothingApplied, RuleID: "todo"},
			"Invalid configuration for 'todo' rule. Falling back to default.",
		},
		{
			&ruleconfig.Issue{Kind: ruleconfig.IssueInvalidConfiguration, RuleID: "todo", Message: "bad"},
			"Invalid configuration for 'todo' rule: bad Falling back to default.",
		},
		{
			&ruleconfig.Issue{Kind: ruleconfig.IssueInvalidRegex, RuleID: "custom_rules", Key: "("},
			"Invalid regular expression pattern '(' used to configure 'custom_rules' rule.",
		},
		{
			&ruleconfig.Issue{Kind: ruleconfig.IssueRenamedIdentifier, Key: "old", Alternative: "new"},
			"'old' has been renamed to 'new' and will be completely removed in a future release.",
		},
		{
			&ruleconfig.Issue{Kind: ruleconfig.IssueInvalidRuleIDs, Keys: []string{"b", "a"}},
			"The key(s) 'a', 'b' used as rule identifier(s) is/are invalid.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.issue.Error())
		})
	}
}

func TestIssue_Is(t *testing.T) {
	err := errors.Join(&ruleconfig.Issue{Kind: ruleconfig.IssueInvalidRegex, RuleID: "custom_rules"})
	assert.ErrorIs(t, err, &ruleconfig.Issue{Kind: ruleconfig.IssueInvalidRegex})
	assert.NotErrorIs(t, err, &ruleconfig.Issue{Kind: ruleconfig.IssueInvalidKeys})
	assert.True(t, (&ruleconfig.Issue{Kind: ruleconfig.IssueInvalidKeys}).IsWarning())
}
