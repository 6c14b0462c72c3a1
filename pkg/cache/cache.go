// Package cache stores lint results on disk so unchanged files are not
// linted again. Entries are msgpack encoded and keyed by file path; each
// entry records the content hash it was computed for.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/swiftlint-go/pkg/fsutil"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
)

// schemaVersion is bumped whenever the entry layout changes.
const schemaVersion uint16 = 1

// dirName is the directory created under the user cache directory.
const dirName = "swiftlint-go"

// entry is the on-disk form of one file's result.
type entry struct {
	Schema     uint16
	Path       string
	Hash       [32]byte
	Violations []lint.Violation
}

// Cache is a directory of per-file results for one configuration.
// A different configuration fingerprint or tool version uses a different
// directory, so stale results are never returned. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string

	hits, misses int
}

// DefaultDir returns the cache root under the user cache directory.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate user cache directory: %w", err)
	}
	return filepath.Join(base, dirName), nil
}

// Open returns the cache for fingerprint and version under root. An empty
// root means DefaultDir.
func Open(root, fingerprint, version string) (*Cache, error) {
	if root == "" {
		var err error
		if root, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	dir := filepath.Join(root, digest(version + "\x00" + fingerprint)[:16])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the directory holding this configuration's entries.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) pathFor(path string) string {
	return filepath.Join(c.dir, digest(path)+".mp")
}

// Lookup implements lint.ResultCache. Unreadable or mismatched entries are
// treated as misses.
func (c *Cache) Lookup(path string, hash [32]byte) ([]lint.Violation, bool) {
	c.mu.RLock()
	data, err := os.ReadFile(c.pathFor(path))
	c.mu.RUnlock()

	var e entry
	ok := err == nil &&
		msgpack.Unmarshal(data, &e) == nil &&
		e.Schema == schemaVersion && e.Path == path && e.Hash == hash

	c.mu.Lock()
	defer c.mu.Unlock()
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	return e.Violations, true
}

// Store implements lint.ResultCache.
func (c *Cache) Store(path string, hash [32]byte, violations []lint.Violation) error {
	data, err := msgpack.Marshal(&entry{Schema: schemaVersion, Path: path, Hash: hash, Violations: violations})
	if err != nil {
		return fmt.Errorf("encode cache entry for %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := fsutil.WriteAtomic(context.Background(), c.pathFor(path), data, 0o600); err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

// Stats returns the number of lookups that hit and missed.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Clear removes every entry of this configuration.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache directory: %w", err)
	}
	for _, e := range entries {
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove cache entry: %w", err)
		}
	}
	return nil
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
