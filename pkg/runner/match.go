package runner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// pathMatcher matches slash-separated relative paths against plain path
// prefixes and glob patterns. A plain entry matches itself and everything
// below it; a glob matches the path or any of its parent directories.
type pathMatcher struct {
	prefixes []string
	globs    []glob.Glob
}

func newPathMatcher(patterns []string) (*pathMatcher, error) {
	m := &pathMatcher{}
	for _, p := range patterns {
		p = strings.TrimSuffix(path.Clean(filepath.ToSlash(p)), "/")
		p = strings.TrimPrefix(p, "./")
		if !strings.ContainsAny(p, "*?[{") {
			m.prefixes = append(m.prefixes, p)
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid path pattern %q: %w", p, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// empty reports whether the matcher has no patterns.
func (m *pathMatcher) empty() bool {
	return len(m.prefixes) == 0 && len(m.globs) == 0
}

// match reports whether rel, or a directory containing it, matches.
func (m *pathMatcher) match(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range m.prefixes {
		if p == "." || rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	for candidate := rel; candidate != "." && candidate != "/"; candidate = path.Dir(candidate) {
		for _, g := range m.globs {
			if g.Match(candidate) {
				return true
			}
		}
	}
	return false
}

// mayContain reports whether a directory could hold a match, so that
// discovery can prune directories outside every included path.
func (m *pathMatcher) mayContain(dir string) bool {
	if m.match(dir) || len(m.globs) > 0 {
		return true
	}
	dir = filepath.ToSlash(dir)
	for _, p := range m.prefixes {
		if dir == "." || strings.HasPrefix(p, dir+"/") {
			return true
		}
	}
	return false
}
