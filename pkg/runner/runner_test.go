package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/cache"
	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/lint/rules"
	"github.com/yaklabco/swiftlint-go/pkg/parser/swift"
	"github.com/yaklabco/swiftlint-go/pkg/runner"
)

var lintTree = map[string]string{
	"Sources/Clean.swift":    "let a = 1\n",
	"Sources/Cast.swift":     "let y = z as! Int\n",
	"Sources/Sugar.swift":    "let x: Array<Int> = []\n",
	"Sources/Nested/N.swift": "let n = foo(bar: nil)\nlet m = 2\n",
}

func newRunner(t *testing.T, cfg *config.Config) *runner.Runner {
	t.Helper()
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	engine := lint.NewEngine(swift.New(), lint.ResolveRules(registry, cfg))
	return runner.New(lint.NewPipeline(engine))
}

func runTree(t *testing.T, r *runner.Runner, dir string, cfg *config.Config, jobs int) *runner.Result {
	t.Helper()
	opts := runner.OptionsFromConfig(cfg, nil, dir)
	opts.Jobs = jobs
	result, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	return result
}

func outcomePaths(t *testing.T, dir string, result *runner.Result) []string {
	t.Helper()
	paths := make([]string, len(result.Files))
	for i, f := range result.Files {
		paths[i] = f.Path
	}
	return relAll(t, dir, paths)
}

func TestRunner_Lint(t *testing.T) {
	t.Parallel()
	dir := writeTree(t, lintTree)
	cfg := config.NewConfig()

	result := runTree(t, newRunner(t, cfg), dir, cfg, 4)

	assert.Equal(t, []string{
		"Sources/Cast.swift",
		"Sources/Clean.swift",
		"Sources/Nested/N.swift",
		"Sources/Sugar.swift",
	}, outcomePaths(t, dir, result))

	stats := result.Stats
	assert.Equal(t, 4, stats.FilesDiscovered)
	assert.Equal(t, 4, stats.FilesProcessed)
	assert.Equal(t, 3, stats.FilesWithViolations)
	assert.Equal(t, 3, stats.Violations)
	assert.Equal(t, 1, stats.ViolationsBySeverity[config.SeverityError])
	assert.Equal(t, 2, stats.ViolationsBySeverity[config.SeverityWarning])
	assert.Zero(t, stats.FilesModified)
	assert.True(t, result.HasIssues())
	assert.True(t, result.HasFailures())

	assert.Equal(t, []string{"force_cast", "redundant_parameter", "syntactic_sugar"}, ruleIDs(result.Violations()))
}

func ruleIDs(vs []lint.Violation) []string {
	ids := make([]string, len(vs))
	for i, v := range vs {
		ids[i] = v.RuleID
	}
	return ids
}

func TestRunner_DeterministicAcrossJobCounts(t *testing.T) {
	t.Parallel()
	dir := writeTree(t, lintTree)
	cfg := config.NewConfig()
	r := newRunner(t, cfg)

	serial := runTree(t, r, dir, cfg, 1)
	parallel := runTree(t, r, dir, cfg, 8)

	assert.Equal(t, outcomePaths(t, dir, serial), outcomePaths(t, dir, parallel))
	assert.Equal(t, serial.Violations(), parallel.Violations())
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Fix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		dryRun       bool
		wantModified int
		wantSugar    string
	}{
		{name: "writes corrections", wantModified: 2, wantSugar: "let x: [Int] = []\n"},
		{name: "dry run leaves files", dryRun: true, wantModified: 0, wantSugar: "let x: Array<Int> = []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := writeTree(t, lintTree)
			cfg := config.NewConfig()
			cfg.Fix = true
			cfg.DryRun = tt.dryRun

			result := runTree(t, newRunner(t, cfg), dir, cfg, 2)

			assert.Equal(t, tt.wantModified, result.Stats.FilesModified)
			assert.Equal(t, 2, result.Stats.CorrectionsApplied)
			assert.Zero(t, result.Stats.FilesAtFixCap)
			// Corrected rules no longer report.
			assert.Equal(t, 1, result.Stats.Violations)

			got, err := os.ReadFile(filepath.Join(dir, "Sources", "Sugar.swift"))
			require.NoError(t, err)
			assert.Equal(t, tt.wantSugar, string(got))
		})
	}
}

func TestRunner_Cache(t *testing.T) {
	t.Parallel()
	dir := writeTree(t, lintTree)
	cfg := config.NewConfig()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	ruleset := lint.ResolveRules(registry, cfg)
	store, err := cache.Open(t.TempDir(), ruleset.Fingerprint(), "test")
	require.NoError(t, err)

	pipeline := lint.NewPipeline(lint.NewEngine(swift.New(), ruleset))
	pipeline.Cache = store
	r := runner.New(pipeline)

	first := runTree(t, r, dir, cfg, 2)
	assert.Zero(t, first.Stats.FilesCached)

	second := runTree(t, r, dir, cfg, 2)
	assert.Equal(t, 4, second.Stats.FilesCached)
	assert.Equal(t, ruleIDs(first.Violations()), ruleIDs(second.Violations()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Sources", "Clean.swift"), []byte("let a = b as! Int\n"), 0o644))
	third := runTree(t, r, dir, cfg, 2)
	assert.Equal(t, 3, third.Stats.FilesCached)
	assert.Equal(t, 2, third.Stats.ViolationsBySeverity[config.SeverityError])
}

func TestRunner_OnFile(t *testing.T) {
	t.Parallel()
	dir := writeTree(t, lintTree)
	cfg := config.NewConfig()

	var (
		mu   sync.Mutex
		seen []string
	)
	opts := runner.OptionsFromConfig(cfg, nil, dir)
	opts.OnFile = func(o runner.FileOutcome) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, o.Path)
	}

	result, err := newRunner(t, cfg).Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Len(t, seen, len(result.Files))
}

func TestRunner_Errors(t *testing.T) {
	t.Parallel()
	dir := writeTree(t, lintTree)
	cfg := config.NewConfig()
	r := newRunner(t, cfg)

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		result, err := r.RunFiles(context.Background(), []string{filepath.Join(dir, "Gone.swift")}, runner.Options{Config: cfg})
		require.NoError(t, err)
		require.Len(t, result.Files, 1)
		require.ErrorIs(t, result.Files[0].Error, lint.ErrFileNotFound)
		assert.Equal(t, 1, result.Stats.FilesErrored)
	})

	t.Run("no files", func(t *testing.T) {
		t.Parallel()
		result, err := r.RunFiles(context.Background(), nil, runner.Options{Config: cfg})
		require.NoError(t, err)
		assert.Empty(t, result.Files)
		assert.False(t, result.HasIssues())
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := r.RunFiles(ctx, []string{filepath.Join(dir, "Sources", "Clean.swift")}, runner.Options{Config: cfg})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestResult_Filter(t *testing.T) {
	t.Parallel()
	dir := writeTree(t, lintTree)
	cfg := config.NewConfig()
	result := runTree(t, newRunner(t, cfg), dir, cfg, 2)

	result.Filter(func(_ string, fr *lint.FileResult) []lint.Violation {
		var keep []lint.Violation
		for _, v := range fr.Violations {
			if v.RuleID != "force_cast" {
				keep = append(keep, v)
			}
		}
		return keep
	})

	stats := result.Stats
	assert.Equal(t, 4, stats.FilesDiscovered)
	assert.Equal(t, 4, stats.FilesProcessed)
	assert.Equal(t, 2, stats.FilesWithViolations)
	assert.Equal(t, 2, stats.Violations)
	assert.Zero(t, stats.ViolationsBySeverity[config.SeverityError])
	assert.False(t, result.HasFailures())
	assert.Equal(t, []string{"redundant_parameter", "syntactic_sugar"}, ruleIDs(result.Violations()))
}
