package fix

import (
	"fmt"
	"strings"
)

// LineKind marks a line in a hunk.
type LineKind int

const (
	// LineContext is unchanged.
	LineContext LineKind = iota
	// LineAdded appears only in the corrected text.
	LineAdded
	// LineRemoved appears only in the original text.
	LineRemoved
)

// prefix is the unified diff marker for the kind.
func (k LineKind) prefix() byte {
	switch k {
	case LineAdded:
		return '+'
	case LineRemoved:
		return '-'
	default:
		return ' '
	}
}

// DiffLine is one line of a hunk, without its marker.
type DiffLine struct {
	Kind LineKind
	Text string
}

// Hunk is a contiguous group of changes with surrounding context.
// Start lines are 1-based.
type Hunk struct {
	OldStart, OldLines int
	NewStart, NewLines int
	Lines              []DiffLine
}

// Diff is a unified diff of one file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 3

// Unified compares original and corrected content line by line.
// It returns nil when the contents are identical.
func Unified(path string, original, corrected []byte) *Diff {
	if string(original) == string(corrected) {
		return nil
	}

	ops := diffLines(splitLines(original), splitLines(corrected))
	d := &Diff{Path: path, Hunks: groupHunks(ops)}
	for _, op := range ops {
		switch op.Kind {
		case LineAdded:
			d.Additions++
		case LineRemoved:
			d.Deletions++
		}
	}
	if len(d.Hunks) == 0 {
		return nil
	}
	return d
}

// HasChanges reports whether the diff contains any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff with ---/+++ headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
		for _, l := range h.Lines {
			sb.WriteByte(l.Kind.prefix())
			sb.WriteString(l.Text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// diffLines produces an edit script from a longest-common-subsequence table.
func diffLines(a, b []string) []DiffLine {
	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]DiffLine, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			ops = append(ops, DiffLine{Kind: LineContext, Text: a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, DiffLine{Kind: LineRemoved, Text: a[i]})
			i++
		default:
			ops = append(ops, DiffLine{Kind: LineAdded, Text: b[j]})
			j++
		}
	}
	for ; i < len(a); i++ {
		ops = append(ops, DiffLine{Kind: LineRemoved, Text: a[i]})
	}
	for ; j < len(b); j++ {
		ops = append(ops, DiffLine{Kind: LineAdded, Text: b[j]})
	}
	return ops
}

// groupHunks splits an edit script into hunks, merging changes separated by
// at most twice the context.
func groupHunks(ops []DiffLine) []Hunk {
	var hunks []Hunk
	oldLine, newLine := 1, 1

	for idx := 0; idx < len(ops); {
		if ops[idx].Kind == LineContext {
			oldLine++
			newLine++
			idx++
			continue
		}

		start := max(idx-diffContext, 0)
		end := idx
		for end < len(ops) {
			if ops[end].Kind != LineContext {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].Kind == LineContext {
				run++
			}
			if run == len(ops) || run-end > 2*diffContext {
				end = min(end+diffContext, len(ops))
				break
			}
			end = run
		}

		lead := idx - start
		h := Hunk{OldStart: oldLine - lead, NewStart: newLine - lead, Lines: ops[start:end]}
		for _, l := range h.Lines {
			if l.Kind != LineAdded {
				h.OldLines++
			}
			if l.Kind != LineRemoved {
				h.NewLines++
			}
		}
		hunks = append(hunks, h)

		oldLine += h.OldLines - lead
		newLine += h.NewLines - lead
		idx = end
	}
	return hunks
}
