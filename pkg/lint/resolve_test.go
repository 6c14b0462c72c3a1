package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/ruleconfig"
)

func resolvedIDs(set *lint.RuleSet) []string {
	out := make([]string, len(set.Rules))
	for i, rr := range set.Rules {
		out[i] = rr.Rule.ID()
	}
	return out
}

func issueKinds(set *lint.RuleSet) []ruleconfig.IssueKind {
	out := make([]ruleconfig.IssueKind, len(set.Issues))
	for i, issue := range set.Issues {
		out[i] = issue.Kind
	}
	return out
}

func TestResolveRules_Selection(t *testing.T) {
	tests := []struct {
		name      string
		configure func(cfg *config.Config)
		contains  []string
		excludes  []string
		exact     []string
	}{
		{
			name:     "defaults leave opt-in rules off",
			contains: []string{"force_cast", "line_length", "trailing_whitespace"},
			excludes: []string{"empty_count"},
		},
		{
			name:      "opt_in_rules",
			configure: func(cfg *config.Config) { cfg.OptInRules = []string{"empty_count"} },
			contains:  []string{"empty_count", "force_cast"},
		},
		{
			name:      "disabled_rules",
			configure: func(cfg *config.Config) { cfg.DisabledRules = []string{"force_cast", "todo"} },
			contains:  []string{"line_length"},
			excludes:  []string{"force_cast", "todo"},
		},
		{
			name:      "only_rules ignores defaults",
			configure: func(cfg *config.Config) { cfg.OnlyRules = []string{"empty_count", "todo"} },
			exact:     []string{"empty_count", "todo"},
		},
		{
			name: "only_rules wins over opt_in and disabled",
			configure: func(cfg *config.Config) {
				cfg.OnlyRules = []string{"todo"}
				cfg.OptInRules = []string{"empty_count"}
				cfg.DisabledRules = []string{"todo"}
			},
			exact: []string{"todo"},
		},
		{
			name: "command line enable and disable",
			configure: func(cfg *config.Config) {
				cfg.EnableRules = []string{"empty_count"}
				cfg.DisableRules = []string{"line_length"}
			},
			contains: []string{"empty_count"},
			excludes: []string{"line_length"},
		},
		{
			name:      "rule referenced by name",
			configure: func(cfg *config.Config) { cfg.OnlyRules = []string{"Force Cast"} },
			exact:     []string{"force_cast"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			if tt.configure != nil {
				tt.configure(cfg)
			}
			set := lint.ResolveRules(builtinRegistry(), cfg)
			ids := resolvedIDs(set)

			if tt.exact != nil {
				assert.Equal(t, tt.exact, ids)
			}
			for _, id := range tt.contains {
				assert.Contains(t, ids, id)
			}
			for _, id := range tt.excludes {
				assert.NotContains(t, ids, id)
			}
			assert.Empty(t, set.Issues)
		})
	}
}

func TestResolveRules_RenamedIdentifier(t *testing.T) {
	cfg := config.NewConfig()
	cfg.DisabledRules = []string{"redundant_optional_parameter"}
	cfg.Rules["no-constant-condition"] = "error"

	set := lint.ResolveRules(builtinRegistry(), cfg)

	assert.NotContains(t, resolvedIDs(set), "redundant_parameter")
	require.Len(t, set.Issues, 2)
	for _, issue := range set.Issues {
		assert.Equal(t, ruleconfig.IssueRenamedIdentifier, issue.Kind)
		assert.True(t, issue.IsWarning())
	}

	rr, ok := set.Find("no_constant_condition")
	require.True(t, ok)
	assert.Equal(t, config.SeverityError, rr.Rule.Severity())
	assert.Equal(t, []string{"no_constant_condition", "no-constant-condition"}, rr.IDs())
}

func TestResolveRules_CurrentIdentifierWinsOverAlias(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Rules["no-constant-condition"] = "error"
	cfg.Rules["no_constant_condition"] = "warning"

	set := lint.ResolveRules(builtinRegistry(), cfg)
	rr, ok := set.Find("no_constant_condition")
	require.True(t, ok)
	assert.Equal(t, config.SeverityWarning, rr.Rule.Severity())
}

func TestResolveRules_Issues(t *testing.T) {
	tests := []struct {
		name      string
		configure func(cfg *config.Config)
		want      []ruleconfig.IssueKind
	}{
		{
			name:      "unknown rule key",
			configure: func(cfg *config.Config) { cfg.Rules["no_such_rule"] = "error" },
			want:      []ruleconfig.IssueKind{ruleconfig.IssueInvalidRuleIDs},
		},
		{
			name:      "unknown id in disabled_rules",
			configure: func(cfg *config.Config) { cfg.DisabledRules = []string{"bogus"} },
			want:      []ruleconfig.IssueKind{ruleconfig.IssueInvalidRuleIDs},
		},
		{
			name:      "invalid severity",
			configure: func(cfg *config.Config) { cfg.Rules["force_cast"] = "fatal" },
			want:      []ruleconfig.IssueKind{ruleconfig.IssueInvalidConfiguration},
		},
		{
			name:      "unknown option key",
			configure: func(cfg *config.Config) { cfg.Rules["line_length"] = map[string]any{"colour": "red"} },
			want:      []ruleconfig.IssueKind{ruleconfig.IssueInvalidKeys},
		},
		{
			name:      "bad swift version",
			configure: func(cfg *config.Config) { cfg.SwiftVersion = "five" },
			want:      []ruleconfig.IssueKind{ruleconfig.IssueUnsupportedOption},
		},
		{
			name:      "analyzer rules",
			configure: func(cfg *config.Config) { cfg.AnalyzerRules = []string{"unused_import"} },
			want:      []ruleconfig.IssueKind{ruleconfig.IssueUnsupportedOption},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			tt.configure(cfg)
			set := lint.ResolveRules(builtinRegistry(), cfg)
			assert.Equal(t, tt.want, issueKinds(set))
			assert.NotEmpty(t, set.Rules)
		})
	}
}

func TestResolveRules_InvalidConfigurationKeepsDefaults(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Rules["force_cast"] = "fatal"

	set := lint.ResolveRules(builtinRegistry(), cfg)
	rr, ok := set.Find("force_cast")
	require.True(t, ok)
	assert.Equal(t, config.SeverityError, rr.Rule.Severity())
}

func TestResolveRules_SwiftVersionGating(t *testing.T) {
	tests := []struct {
		version   string
		wantGated bool
	}{
		{version: "", wantGated: false},
		{version: "4.2", wantGated: true},
		{version: "5", wantGated: false},
		{version: "5.10.1", wantGated: false},
	}

	for _, tt := range tests {
		t.Run("swift "+tt.version, func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.OptInRules = []string{"empty_count"}
			cfg.SwiftVersion = tt.version
			set := lint.ResolveRules(builtinRegistry(), cfg)

			if tt.wantGated {
				assert.Equal(t, []string{"empty_count"}, set.VersionGated)
				assert.NotContains(t, resolvedIDs(set), "empty_count")
			} else {
				assert.Empty(t, set.VersionGated)
				assert.Contains(t, resolvedIDs(set), "empty_count")
			}
		})
	}
}

func TestResolveRules_AutoFix(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.FixRules = []string{"syntactic_sugar"}

	set := lint.ResolveRules(builtinRegistry(), cfg)
	for _, rr := range set.Rules {
		assert.Equal(t, rr.Rule.ID() == "syntactic_sugar", rr.AutoFix, rr.Rule.ID())
	}
}

func TestRuleSet_KnownIDsAndFingerprint(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Rules["custom_rules"] = map[string]any{
		"no_foo": map[string]any{"regex": "foo"},
	}
	set := lint.ResolveRules(builtinRegistry(), cfg)

	assert.True(t, set.IsKnownID("force_cast"))
	assert.True(t, set.IsKnownID("redundant_optional_parameter"))
	assert.True(t, set.IsKnownID("no_foo"))
	assert.False(t, set.IsKnownID("nope"))

	strict := cfg.Clone()
	strict.Strict = true
	other := lint.ResolveRules(builtinRegistry(), strict)
	assert.NotEqual(t, set.Fingerprint(), other.Fingerprint())
	assert.Equal(t, set.Fingerprint(), lint.ResolveRules(builtinRegistry(), cfg).Fingerprint())
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    lint.Version
		wantErr bool
	}{
		{in: "5", want: lint.Version{Major: 5}},
		{in: "5.9", want: lint.Version{Major: 5, Minor: 9}},
		{in: " 5.10.1 ", want: lint.Version{Major: 5, Minor: 10, Patch: 1}},
		{in: "5.x", wantErr: true},
		{in: "1.2.3.4", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := lint.ParseVersion(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Negative(t, lint.Version{Major: 5, Minor: 9}.Compare(lint.Version{Major: 5, Minor: 10}))
	assert.Equal(t, "5.10.1", lint.Version{Major: 5, Minor: 10, Patch: 1}.String())
	assert.Equal(t, "6.0", lint.DefaultSwiftVersion.String())
}
