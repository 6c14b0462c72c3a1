// Package source provides the immutable source text model and the coordinate
// conversions between byte offsets, UTF-16 offsets and line/column pairs.
package source

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync/atomic"
	"unicode/utf8"
)

// Text is an immutable source buffer with a cached line table.
// A Text is safe for concurrent use; edits produce a new Text.
type Text struct {
	path    string
	content []byte
	lines   []LineInfo

	// hint caches the index of the last line resolved by LineIndex.
	hint atomic.Int64
}

// New creates a Text for the given path and content.
// The content is copied.
func New(path string, content []byte) *Text {
	cp := make([]byte, len(content))
	copy(cp, content)

	return &Text{
		path:    path,
		content: cp,
		lines:   buildLines(cp),
	}
}

// NewString creates a Text from a string.
func NewString(path, content string) *Text {
	return New(path, []byte(content))
}

// Path returns the logical path of the text.
func (t *Text) Path() string {
	return t.path
}

// Bytes returns the content. Callers must not mutate the returned slice.
func (t *Text) Bytes() []byte {
	return t.content
}

// String returns the content as a string.
func (t *Text) String() string {
	return string(t.content)
}

// Len returns the content length in bytes.
func (t *Text) Len() int {
	return len(t.content)
}

// Hash returns the hex-encoded sha256 of the content.
func (t *Text) Hash() string {
	sum := sha256.Sum256(t.content)
	return hex.EncodeToString(sum[:])
}

// IsEmpty reports whether the text is empty or a single newline.
func (t *Text) IsEmpty() bool {
	return len(t.content) == 0 || (len(t.content) == 1 && t.content[0] == '\n')
}

// Slice returns the bytes of r, clamped to the content.
func (t *Text) Slice(r Range) []byte {
	start := clamp(r.Start, 0, len(t.content))
	end := clamp(r.End, start, len(t.content))
	return t.content[start:end]
}

// Substring returns the text of r, or ok=false when r is out of bounds.
func (t *Text) Substring(r Range) (string, bool) {
	if r.Start < 0 || r.End < r.Start || r.End > len(t.content) {
		return "", false
	}
	return string(t.content[r.Start:r.End]), true
}

// WithContent returns a new Text with the same path and new content.
func (t *Text) WithContent(content []byte) *Text {
	return New(t.path, content)
}

// LineIndex returns the 0-based index of the line containing offset.
// Offsets at or past the end of content resolve to the last line.
func (t *Text) LineIndex(offset int) int {
	if len(t.lines) == 0 {
		return 0
	}
	if offset >= len(t.content) {
		return len(t.lines) - 1
	}
	if offset < 0 {
		return 0
	}

	hint := int(t.hint.Load())
	if hint < len(t.lines) {
		line := t.lines[hint]
		if offset >= line.StartOffset && offset < line.EndOffset {
			return hint
		}
		// Sequential scans usually land on the next line.
		if hint+1 < len(t.lines) {
			next := t.lines[hint+1]
			if offset >= next.StartOffset && offset < next.EndOffset {
				t.hint.Store(int64(hint + 1))
				return hint + 1
			}
		}
	}

	idx := sort.Search(len(t.lines), func(i int) bool {
		return t.lines[i].EndOffset > offset
	})
	if idx >= len(t.lines) {
		idx = len(t.lines) - 1
	}
	t.hint.Store(int64(idx))
	return idx
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// utf16Len returns the number of UTF-16 code units in b.
func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
		b = b[size:]
	}
	return n
}
