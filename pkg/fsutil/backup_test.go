package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode fsutil.BackupMode
		want string
	}{
		{mode: fsutil.BackupModeSidecar, want: "App.swift.swiftlint.bak"},
		{mode: fsutil.BackupModeNone, want: ""},
		{mode: "unknown", want: "App.swift.swiftlint.bak"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fsutil.BackupPath("App.swift", tt.mode))
		})
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	enabled := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("disabled by default", func(t *testing.T) {
		t.Parallel()
		path := writeSource(t, "let a = 1\n")

		created, err := fsutil.CreateBackup(ctx, path, fsutil.DefaultBackupConfig())
		require.NoError(t, err)
		assert.False(t, created)
		assert.NoFileExists(t, path+fsutil.BackupSuffix)
	})

	t.Run("first backup is kept", func(t *testing.T) {
		t.Parallel()
		path := writeSource(t, "let original = 1\n")

		created, err := fsutil.CreateBackup(ctx, path, enabled)
		require.NoError(t, err)
		assert.True(t, created)

		require.NoError(t, os.WriteFile(path, []byte("let corrected = 1\n"), 0o640))
		created, err = fsutil.CreateBackup(ctx, path, enabled)
		require.NoError(t, err)
		assert.False(t, created)

		backup, err := os.ReadFile(path + fsutil.BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, "let original = 1\n", string(backup))
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()
		created, err := fsutil.CreateBackup(ctx, filepath.Join(t.TempDir(), "Gone.swift"), enabled)
		require.NoError(t, err)
		assert.False(t, created)
	})
}
