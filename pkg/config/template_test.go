package config_test

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/config"
)

func withRuleInfo(t *testing.T, rules []config.RuleInfo) {
	t.Helper()
	saved := config.DefaultRuleInfoProvider
	config.DefaultRuleInfoProvider = func() []config.RuleInfo { return rules }
	t.Cleanup(func() { config.DefaultRuleInfoProvider = saved })
}

func TestGenerateTemplate_Minimal(t *testing.T) {
	data, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, []string{".build", "Pods", "Carthage"}, cfg.Excluded)
	assert.Empty(t, cfg.Rules)
}

func TestGenerateTemplate_Full(t *testing.T) {
	withRuleInfo(t, []config.RuleInfo{
		{ID: "line_length", Name: "Line Length", Description: "Lines should not span too many characters.",
			Kind: "metrics", Options: map[string]any{"warning": 120, "error": 200}},
		{ID: "empty_count", Name: "Empty Count", Description: "Prefer checking isEmpty.", OptIn: true},
		{ID: "force_cast", Name: "Force Cast", Description: "Force casts should be avoided."},
	})

	data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# line_length: Line Length")
	assert.Contains(t, text, "# Kind: metrics")
	assert.Contains(t, text, "#   - empty_count")

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"warning": 120, "error": 200}, cfg.Rules["line_length"])
	assert.Equal(t, config.FormatText, cfg.Reporter)
}

func TestGenerateTemplate_IncludeRules(t *testing.T) {
	withRuleInfo(t, []config.RuleInfo{
		{ID: "line_length", Name: "Line Length", Options: map[string]any{"warning": 120}},
		{ID: "todo", Name: "Todo", Options: map[string]any{"severity": "warning"}},
	})

	data, err := config.GenerateTemplate(config.TemplateOptions{Full: true, IncludeRules: []string{"todo"}})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "line_length")
	assert.Contains(t, string(data), "# todo: Todo")
}

func TestGenerateTemplate_TOML(t *testing.T) {
	withRuleInfo(t, []config.RuleInfo{
		{ID: "line_length", Options: map[string]any{"warning": 120}},
	})

	data, err := config.GenerateTemplate(config.TemplateOptions{Format: "toml", Full: true})
	require.NoError(t, err)

	var doc map[string]any
	_, err = toml.Decode(string(data), &doc)
	require.NoError(t, err)
	assert.Equal(t, "xcode", doc["reporter"])
	assert.Equal(t, map[string]any{"warning": int64(120)}, doc["line_length"])
}
