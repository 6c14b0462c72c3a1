package runner

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/swiftlint-go/pkg/langdetect"
)

// headSize is how much of an extensionless file is read to find a shebang.
const headSize = 256

// discoverer carries the state of one Discover call.
type discoverer struct {
	ctx      context.Context
	workDir  string
	opts     Options
	included *pathMatcher
	excluded *pathMatcher
	seen     map[string]struct{}
	files    []string
}

// Discover finds Swift files under opts.Paths. Files named explicitly are
// linted even when excluded; directories are walked honoring Included,
// Excluded and SkipVendored. Hidden files and directories are skipped.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	included, err := newPathMatcher(opts.Included)
	if err != nil {
		return nil, fmt.Errorf("included: %w", err)
	}
	excluded, err := newPathMatcher(opts.Excluded)
	if err != nil {
		return nil, fmt.Errorf("excluded: %w", err)
	}

	d := &discoverer{
		ctx:      ctx,
		workDir:  workDir,
		opts:     opts,
		included: included,
		excluded: excluded,
		seen:     make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := d.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}
		if langdetect.IsSwift(absPath, readHead(absPath)) {
			d.add(absPath)
		}
	}

	sort.Strings(d.files)
	return d.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// skipDir reports whether discovery should not descend into dir.
func (d *discoverer) skipDir(path, root string) bool {
	rel := d.rel(path)
	if path != root && strings.HasPrefix(filepath.Base(path), ".") {
		return true
	}
	if d.excluded.match(rel) {
		return true
	}
	if path != root && d.opts.SkipVendored && langdetect.IsVendored(rel+"/") {
		return true
	}
	return !d.included.empty() && !d.included.mayContain(rel)
}

// wantFile reports whether a file found while walking is linted.
func (d *discoverer) wantFile(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") || filepath.Ext(path) == "" {
		return false
	}
	rel := d.rel(path)
	if d.excluded.match(rel) {
		return false
	}
	if !d.included.empty() && !d.included.match(rel) {
		return false
	}
	return langdetect.IsSwift(path, nil)
}

// walk recursively collects Swift files under root.
func (d *discoverer) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if d.skipDir(path, root) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible symlink targets are skipped.
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks || d.skipDir(path, root) {
					return nil
				}
				// Walk the target: WalkDir does not follow a symlinked root.
				return d.walk(realPath)
			}
		}

		if d.wantFile(path) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// readHead returns the first bytes of an extensionless file.
func readHead(path string) []byte {
	if filepath.Ext(path) != "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	head := make([]byte, headSize)
	n, _ := io.ReadFull(f, head)
	return head[:n]
}
