package cache_test

import (
	"crypto/sha256"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/cache"
	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/source"
)

func sampleViolations() []lint.Violation {
	return []lint.Violation{{
		RuleID:          "force_cast",
		RuleName:        "Force Cast",
		RuleDescription: "Force casts should be avoided",
		Severity:        config.SeverityError,
		Path:            "/src/A.swift",
		Location:        source.Location{Offset: 10, Line: 2, Column: 3, Character: 3},
		Reason:          "Force casts should be avoided",
	}}
}

func TestCache_RoundTrip(t *testing.T) {
	c, err := cache.Open(t.TempDir(), "fp", "1.0.0")
	require.NoError(t, err)

	hash := sha256.Sum256([]byte("let a = b as! C\n"))
	_, ok := c.Lookup("/src/A.swift", hash)
	assert.False(t, ok)

	require.NoError(t, c.Store("/src/A.swift", hash, sampleViolations()))
	got, ok := c.Lookup("/src/A.swift", hash)
	require.True(t, ok)
	assert.Equal(t, sampleViolations(), got)

	_, ok = c.Lookup("/src/A.swift", sha256.Sum256([]byte("changed")))
	assert.False(t, ok, "content change invalidates")
	_, ok = c.Lookup("/src/B.swift", hash)
	assert.False(t, ok)

	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 3, misses)

	require.NoError(t, c.Clear())
	_, ok = c.Lookup("/src/A.swift", hash)
	assert.False(t, ok)
}

func TestCache_EmptyViolations(t *testing.T) {
	c, err := cache.Open(t.TempDir(), "fp", "1.0.0")
	require.NoError(t, err)

	hash := sha256.Sum256([]byte("let a = 1\n"))
	require.NoError(t, c.Store("/src/A.swift", hash, nil))
	got, ok := c.Lookup("/src/A.swift", hash)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestCache_SeparatedByFingerprintAndVersion(t *testing.T) {
	root := t.TempDir()
	a, err := cache.Open(root, "fp-a", "1.0.0")
	require.NoError(t, err)
	b, err := cache.Open(root, "fp-b", "1.0.0")
	require.NoError(t, err)
	v2, err := cache.Open(root, "fp-a", "2.0.0")
	require.NoError(t, err)
	same, err := cache.Open(root, "fp-a", "1.0.0")
	require.NoError(t, err)

	assert.NotEqual(t, a.Dir(), b.Dir())
	assert.NotEqual(t, a.Dir(), v2.Dir())
	assert.Equal(t, a.Dir(), same.Dir())

	hash := sha256.Sum256([]byte("x"))
	require.NoError(t, a.Store("/A.swift", hash, sampleViolations()))
	_, ok := b.Lookup("/A.swift", hash)
	assert.False(t, ok)
	_, ok = same.Lookup("/A.swift", hash)
	assert.True(t, ok)
}

func TestCache_Concurrent(t *testing.T) {
	c, err := cache.Open(t.TempDir(), "fp", "1.0.0")
	require.NoError(t, err)
	hash := sha256.Sum256([]byte("x"))

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Store("/A.swift", hash, sampleViolations()))
			c.Lookup("/A.swift", hash)
		}()
	}
	wg.Wait()

	got, ok := c.Lookup("/A.swift", hash)
	require.True(t, ok)
	assert.Len(t, got, 1)
}
