package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/runner"
)

// writeTree creates files under dir and returns dir.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func projectTree(t *testing.T) string {
	t.Helper()
	return writeTree(t, map[string]string{
		"Sources/App/A.swift":               "let a = 1\n",
		"Sources/App/B.swift":               "let b = 2\n",
		"Sources/App/README.md":             "# App\n",
		"Sources/Gen/Model.generated.swift": "let g = 3\n",
		"Tests/AppTests/T.swift":            "let t = 4\n",
		"Pods/Alamofire/Session.swift":      "let p = 5\n",
		".build/debug/C.swift":              "let c = 6\n",
		"Sources/App/.hidden.swift":         "let h = 7\n",
		"scripts/release":                   "#!/usr/bin/env swift\nprint(1)\n",
		"scripts/setup":                     "#!/bin/sh\necho\n",
	})
}

// relAll maps absolute paths back to slash-separated paths under dir.
func relAll(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "walks directories and skips vendored and hidden",
			opts: runner.Options{SkipVendored: true},
			want: []string{
				"Sources/App/A.swift",
				"Sources/App/B.swift",
				"Sources/Gen/Model.generated.swift",
				"Tests/AppTests/T.swift",
			},
		},
		{
			name: "vendored directories when asked",
			opts: runner.Options{},
			want: []string{
				"Pods/Alamofire/Session.swift",
				"Sources/App/A.swift",
				"Sources/App/B.swift",
				"Sources/Gen/Model.generated.swift",
				"Tests/AppTests/T.swift",
			},
		},
		{
			name: "excluded paths and globs",
			opts: runner.Options{SkipVendored: true, Excluded: []string{"Tests", "Sources/**/*.generated.swift"}},
			want: []string{"Sources/App/A.swift", "Sources/App/B.swift"},
		},
		{
			name: "included paths",
			opts: runner.Options{Included: []string{"Sources/App", "Tests/**/T.swift"}},
			want: []string{"Sources/App/A.swift", "Sources/App/B.swift", "Tests/AppTests/T.swift"},
		},
		{
			name: "excluded wins over included",
			opts: runner.Options{Included: []string{"Sources"}, Excluded: []string{"./Sources/Gen/"}},
			want: []string{"Sources/App/A.swift", "Sources/App/B.swift"},
		},
		{
			name: "explicit files bypass exclusion",
			opts: runner.Options{
				Paths:    []string{"Tests/AppTests/T.swift", "scripts/release", "scripts/setup", "Sources/App/README.md"},
				Excluded: []string{"Tests"},
			},
			want: []string{"Tests/AppTests/T.swift", "scripts/release"},
		},
		{
			name: "vendored directory named as a path is walked",
			opts: runner.Options{Paths: []string{"Pods"}, SkipVendored: true},
			want: []string{"Pods/Alamofire/Session.swift"},
		},
		{
			name: "overlapping paths are deduplicated",
			opts: runner.Options{Paths: []string{"Sources/App", ".", "Sources/App/A.swift"}, SkipVendored: true, Excluded: []string{"Tests", "Sources/Gen"}},
			want: []string{"Sources/App/A.swift", "Sources/App/B.swift"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := projectTree(t)
			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relAll(t, dir, files))
		})
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()
	dir := projectTree(t)

	_, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Paths: []string{"missing"}})
	require.Error(t, err)

	_, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Excluded: []string{"Sources/[a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "excluded")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()
	dir := writeTree(t, map[string]string{
		"App/A.swift":      "let a = 1\n",
		"Shared/Lib.swift": "let l = 1\n",
	})
	if err := os.Symlink(filepath.Join(dir, "Shared"), filepath.Join(dir, "App", "Linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Paths: []string{"App"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"App/A.swift"}, relAll(t, dir, files))

	files, err = runner.Discover(context.Background(),
		runner.Options{WorkingDir: dir, Paths: []string{"App"}, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"App/A.swift", "Shared/Lib.swift"}, relAll(t, dir, files))
}
