package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/config"
)

// newProject creates a temp directory that is its own VCS root so the
// upward search never leaves it.
func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func loadOpts(dir string) LoadOptions {
	return LoadOptions{WorkingDir: dir, IgnoreUserConfig: true, IgnoreEnv: true}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	root := newProject(t, nil)
	result, err := Load(context.Background(), loadOpts(root))
	require.NoError(t, err)

	assert.Equal(t, config.FormatText, result.Config.Reporter)
	assert.Equal(t, config.RuleFormatID, result.Config.RuleFormat)
	assert.Empty(t, result.LoadedFrom)
	assert.Equal(t, root, result.RootDir)
	assert.Empty(t, result.Paths.Project)
}

func TestLoad_ProjectYAMLFromSubdirectory(t *testing.T) {
	t.Parallel()

	root := newProject(t, map[string]string{
		".swiftlint.yml": `
disabled_rules:
  - trailing_whitespace
opt_in_rules: empty_count
excluded:
  - Pods
line_length:
  warning: 100
  error: 150
force_cast: warning
swift_version: 5.9
`,
		"Sources/App/.keep": "",
	})

	result, err := Load(context.Background(), loadOpts(filepath.Join(root, "Sources", "App")))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, []string{"trailing_whitespace"}, cfg.DisabledRules)
	assert.Equal(t, []string{"empty_count"}, cfg.OptInRules)
	assert.Equal(t, []string{"Pods"}, cfg.Excluded)
	assert.Equal(t, "5.9", cfg.SwiftVersion)
	assert.Equal(t, map[string]any{"warning": 100, "error": 150}, cfg.Rules["line_length"])
	assert.Equal(t, "warning", cfg.Rules["force_cast"])

	assert.Equal(t, []string{filepath.Join(root, ".swiftlint.yml")}, result.LoadedFrom)
	assert.Equal(t, root, result.RootDir, "patterns are relative to the config file")
}

func TestLoad_ProjectTOML(t *testing.T) {
	t.Parallel()

	root := newProject(t, map[string]string{
		".swiftlint.toml": `
reporter = "json"
strict = true
excluded = [".build"]

[line_length]
warning = 90
ignores_urls = true
`,
	})

	result, err := Load(context.Background(), loadOpts(root))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, config.FormatJSON, cfg.Reporter)
	assert.True(t, cfg.Strict)
	assert.Equal(t, []string{".build"}, cfg.Excluded)

	lineLength, ok := cfg.Rules["line_length"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 90, lineLength["warning"])
	assert.Equal(t, true, lineLength["ignores_urls"])
}

func TestLoad_YAMLPreferredOverTOML(t *testing.T) {
	t.Parallel()

	root := newProject(t, map[string]string{
		".swiftlint.yml":  "reporter: checkstyle\n",
		".swiftlint.toml": "reporter = \"json\"\n",
	})

	result, err := Load(context.Background(), loadOpts(root))
	require.NoError(t, err)
	assert.Equal(t, config.FormatCheckstyle, result.Config.Reporter)
}

func TestLoad_ExplicitConfigReplacesProject(t *testing.T) {
	t.Parallel()

	root := newProject(t, map[string]string{
		".swiftlint.yml":      "disabled_rules: [todo]\n",
		"ci/strict-lint.yaml": "strict: true\nexcluded: [Generated]\n",
	})

	opts := loadOpts(root)
	opts.ExplicitPath = filepath.Join(root, "ci", "strict-lint.yaml")
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, result.Config.Strict)
	assert.Empty(t, result.Config.DisabledRules)
	assert.Equal(t, []string{opts.ExplicitPath}, result.LoadedFrom)
	assert.Equal(t, opts.ExplicitPath, result.Paths.Explicit)
	assert.Equal(t, filepath.Join(root, "ci"), result.RootDir)
}

func TestLoad_UserConfigUnderProject(t *testing.T) {
	xdg := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "swiftlint-go"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "swiftlint-go", "config.yml"),
		[]byte("disabled_rules: [todo]\nreporter: summary\n"), 0o644))
	t.Setenv("XDG_CONFIG_HOME", xdg)

	root := newProject(t, map[string]string{
		".swiftlint.yml": "disabled_rules: [line_length]\nreporter: json\n",
	})

	opts := loadOpts(root)
	opts.IgnoreUserConfig = false
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatJSON, result.Config.Reporter)
	assert.Equal(t, []string{"todo", "line_length"}, result.Config.DisabledRules)
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoad_Precedence(t *testing.T) {
	root := newProject(t, map[string]string{
		".swiftlint.yml": "reporter: checkstyle\nexcluded: [Pods]\n",
	})
	t.Setenv("SWIFTLINT_REPORTER", "json")
	t.Setenv("SWIFTLINT_EXCLUDED", "Vendor, Generated")
	t.Setenv("SWIFTLINT_STRICT", "1")

	opts := LoadOptions{WorkingDir: root, IgnoreUserConfig: true}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.FormatJSON, result.Config.Reporter, "environment beats file")
	assert.Equal(t, []string{"Vendor", "Generated"}, result.Config.Excluded)
	assert.True(t, result.Config.Strict)

	opts.CLIConfig = &config.Config{Reporter: config.FormatSARIF, Jobs: 3}
	result, err = Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.FormatSARIF, result.Config.Reporter, "flags beat environment")
	assert.Equal(t, 3, result.Config.Jobs)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			files:   map[string]string{".swiftlint.yml": "excluded: [Pods\n"},
			wantErr: "parse yaml",
		},
		{
			name:    "malformed toml",
			files:   map[string]string{".swiftlint.toml": "reporter = \n"},
			wantErr: "parse toml",
		},
		{
			name:    "wrong type for top-level key",
			files:   map[string]string{".swiftlint.yml": "strict: sometimes\n"},
			wantErr: "strict: expected a boolean",
		},
		{
			name:    "unknown reporter",
			files:   map[string]string{".swiftlint.yml": "reporter: emacs\n"},
			wantErr: `invalid reporter "emacs"`,
		},
		{
			name:    "bad exclusion glob",
			files:   map[string]string{".swiftlint.yml": "excluded: ['Sources/[a']\n"},
			wantErr: "excluded[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := newProject(t, tt.files)
			_, err := Load(context.Background(), loadOpts(root))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	root := newProject(t, nil)
	t.Setenv("SWIFTLINT_JOBS", "many")

	_, err := Load(context.Background(), LoadOptions{WorkingDir: root, IgnoreUserConfig: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SWIFTLINT_JOBS")
}

func TestLoad_WarningThresholdFromEnvironment(t *testing.T) {
	root := newProject(t, map[string]string{".swiftlint.yml": "warning_threshold: 10\n"})
	t.Setenv("SWIFTLINT_WARNING_THRESHOLD", "3")

	result, err := Load(context.Background(), LoadOptions{WorkingDir: root, IgnoreUserConfig: true})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Config.WarningThreshold)

	t.Setenv("SWIFTLINT_WARNING_THRESHOLD", "-1")
	_, err = Load(context.Background(), LoadOptions{WorkingDir: root, IgnoreUserConfig: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warning_threshold")
}

func TestLoad_StrictAndLenientWarns(t *testing.T) {
	t.Parallel()

	root := newProject(t, map[string]string{".swiftlint.yml": "strict: true\nlenient: true\n"})
	result, err := Load(context.Background(), loadOpts(root))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "strict takes precedence")
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outer, ".swiftlint.yml"), []byte("strict: true\n"), 0o644))
	inner := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(inner, ".git"), 0o755))

	found, err := FindProjectConfig(context.Background(), inner)
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = FindProjectConfig(context.Background(), outer)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outer, ".swiftlint.yml"), found)
}

func TestFindProjectConfig_StopsAtSwiftProjectRoot(t *testing.T) {
	t.Parallel()

	markers := map[string]func(dir string) error{
		"package": func(dir string) error {
			return os.WriteFile(filepath.Join(dir, "Package.swift"), []byte("// swift-tools-version:5.9\n"), 0o644)
		},
		"xcodeproj": func(dir string) error { return os.Mkdir(filepath.Join(dir, "App.xcodeproj"), 0o755) },
		"worktree": func(dir string) error {
			return os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: /elsewhere\n"), 0o644)
		},
	}
	for name, mark := range markers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			outer := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(outer, ".swiftlint.yml"), []byte("strict: true\n"), 0o644))
			project := filepath.Join(outer, "App")
			nested := filepath.Join(project, "Sources", "App")
			require.NoError(t, os.MkdirAll(nested, 0o755))
			require.NoError(t, mark(project))

			found, err := FindProjectConfig(context.Background(), nested)
			require.NoError(t, err)
			assert.Empty(t, found)
		})
	}
}

func TestFindProjectConfig_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FindProjectConfig(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := &config.Config{
		DisabledRules: []string{"todo"},
		OnlyRules:     []string{"force_cast"},
		Excluded:      []string{"Pods"},
		Reporter:      config.FormatText,
		Baseline:      "base.json",
		Rules: map[string]any{
			"line_length": map[string]any{"warning": 100},
			"force_cast":  "warning",
		},
	}
	override := &config.Config{
		DisabledRules:    []string{"line_length", "todo"},
		Excluded:         []string{"Carthage"},
		Strict:           true,
		WarningThreshold: 5,
		Rules: map[string]any{
			"line_length": 150,
		},
	}

	got := merge(base, override)

	assert.Equal(t, []string{"todo", "line_length"}, got.DisabledRules)
	assert.Equal(t, []string{"force_cast"}, got.OnlyRules, "nil list keeps base")
	assert.Equal(t, []string{"Carthage"}, got.Excluded)
	assert.Equal(t, config.FormatText, got.Reporter)
	assert.True(t, got.Strict)
	assert.Equal(t, 5, got.WarningThreshold)
	assert.Equal(t, "base.json", got.Baseline, "empty string keeps base")
	assert.Equal(t, 150, got.Rules["line_length"], "rule entries are replaced whole")
	assert.Equal(t, "warning", got.Rules["force_cast"])

	assert.Equal(t, []string{"todo"}, base.DisabledRules, "base is not mutated")
	assert.Equal(t, map[string]any{"warning": 100}, base.Rules["line_length"])
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Len(t, vars, len(envVars))
	assert.Contains(t, vars, "SWIFTLINT_REPORTER")
	assert.Contains(t, vars, "SWIFTLINT_NO_CACHE")
}
