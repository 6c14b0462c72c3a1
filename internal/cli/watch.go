package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/swiftlint-go/internal/logging"
	"github.com/yaklabco/swiftlint-go/pkg/langdetect"
)

// configFileNames are the project configuration files that trigger a reload.
var configFileNames = []string{".swiftlint.yml", ".swiftlint.yaml", ".swiftlint.toml"}

// dirWatcher reports batches of changed Swift and configuration files.
type dirWatcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger
}

// newDirWatcher watches every directory under roots. A file root watches
// its parent directory.
func newDirWatcher(roots []string, debounce time.Duration, logger *log.Logger) (*dirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dw := &dirWatcher{fs: w, debounce: debounce, logger: logger}
	for _, root := range roots {
		if err := dw.addTree(root); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	return dw, nil
}

// addTree watches root and its subdirectories.
func (w *dirWatcher) addTree(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return w.add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return fs.SkipDir
			}
			return walkErr
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (d.Name() == ".git" || langdetect.IsDependencyDir(d.Name())) {
			return fs.SkipDir
		}
		return w.add(path)
	})
}

func (w *dirWatcher) add(dir string) error {
	if slices.Contains(w.fs.WatchList(), dir) {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	return nil
}

// Close stops watching.
func (w *dirWatcher) Close() error {
	return w.fs.Close()
}

// Run calls onChange with the sorted set of changed paths once no further
// change arrives within the debounce period. It returns nil when ctx is done
// and the first error from onChange otherwise.
func (w *dirWatcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string) error) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("could not watch new directory", logging.FieldPath, event.Name, logging.FieldError, err)
					}
					continue
				}
			}
			if !relevantChange(event) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.FieldError, err)

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			slices.Sort(changed)
			clear(pending)
			if err := onChange(ctx, changed); err != nil {
				return err
			}
		}
	}
}

// relevantChange reports whether event touches a Swift or configuration file.
func relevantChange(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	return strings.HasSuffix(event.Name, ".swift") || isConfigFile(event.Name)
}

func isConfigFile(path string) bool {
	return slices.Contains(configFileNames, filepath.Base(path))
}

// watchLint lints once, then again after each batch of changes until ctx is
// done. A changed configuration file rebuilds the session; lint failures
// are reported and watching continues.
func watchLint(
	ctx context.Context,
	session *lintSession,
	paths []string,
	debounce time.Duration,
	reload func() (*lintSession, error),
) error {
	logger := session.logger

	w, err := newDirWatcher(paths, debounce, logger)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()
	// The configuration directory may sit above the linted paths.
	if session.rootDir != "" {
		if err := w.add(session.rootDir); err != nil {
			logger.Warn("configuration changes will not be picked up", logging.FieldError, err)
		}
	}

	if _, err := session.run(ctx, paths); err != nil && ctx.Err() == nil {
		logger.Error("lint failed", logging.FieldError, err)
	}
	logger.Info("watching for changes", logging.FieldPaths, paths)

	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		logger.Info("change detected", logging.FieldFiles, len(changed))
		if slices.ContainsFunc(changed, isConfigFile) {
			next, err := reload()
			if err != nil {
				logger.Error("configuration reload failed", logging.FieldError, err)
				return nil
			}
			session = next
		}
		if _, err := session.run(ctx, paths); err != nil && ctx.Err() == nil {
			logger.Error("lint failed", logging.FieldError, err)
		}
		return nil
	})
}
