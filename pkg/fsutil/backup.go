package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where the pre-correction copy of a source is kept.
type BackupMode string

const (
	// BackupModeSidecar keeps the copy next to the source, as App.swift.swiftlint.bak.
	BackupModeSidecar BackupMode = "sidecar"
	BackupModeNone    BackupMode = "none"
)

// BackupSuffix is appended to a source path to name its sidecar backup.
const BackupSuffix = ".swiftlint.bak"

// BackupConfig controls backups taken before `--fix` rewrites a file.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig has backups off; enabling them uses sidecar files.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath names the backup of path, or "" when mode keeps none.
// Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies path to its backup location. An existing backup is kept,
// so the copy always holds the content from before the first correction run.
// It reports whether a new backup was written.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	dst := BackupPath(path, cfg.Mode)
	if !cfg.Enabled || dst == "" {
		return false, nil
	}

	switch _, err := os.Stat(dst); {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, classify("stat backup", dst, err)
	}

	content, info, err := ReadFile(ctx, path)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("back up: %w", err)
	}
	if err := WriteAtomic(ctx, dst, content, info.Mode); err != nil {
		return false, fmt.Errorf("back up: %w", err)
	}
	return true, nil
}
