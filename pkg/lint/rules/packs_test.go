package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
)

func TestPacks_ResolveCleanly(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)

	for _, pack := range Packs() {
		t.Run(pack.Name, func(t *testing.T) {
			assert.NotEmpty(t, pack.Description)

			cfg := config.NewConfig()
			pack.Apply(cfg)
			set := lint.ResolveRules(registry, cfg)
			assert.Empty(t, set.Issues, "pack options must be valid")
			assert.Equal(t, pack.Strict, set.Strict)

			for _, id := range pack.OptIn {
				_, ok := set.Find(id)
				assert.True(t, ok, "%s enabled", id)
			}
			for _, id := range pack.Disabled {
				_, ok := set.Find(id)
				assert.False(t, ok, "%s disabled", id)
			}
		})
	}
}

func TestPack_ApplyMerges(t *testing.T) {
	cfg := config.NewConfig()
	cfg.DisabledRules = []string{"todo"}
	cfg.Rules["line_length"] = 90
	cfg.Rules["force_cast"] = "warning"

	RelaxedPack().Apply(cfg)

	assert.Equal(t, []string{"todo", "trailing_whitespace"}, cfg.DisabledRules)
	assert.Equal(t, map[string]any{"warning": 160, "error": 250, "ignores_comments": true}, cfg.Rules["line_length"])
	assert.False(t, cfg.Strict)
}

func TestPackByName(t *testing.T) {
	for _, name := range PackNames() {
		pack := PackByName(name)
		require.NotNil(t, pack)
		assert.Equal(t, name, pack.Name)
	}
	assert.Nil(t, PackByName("nonexistent"))
	assert.Equal(t, []string{"default", "strict", "relaxed"}, PackNames())
}
