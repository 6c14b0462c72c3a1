// Package baseline records the violations of a run so later runs only
// report new ones. Entries are keyed by file path relative to a root, so a
// baseline written in one checkout applies to another. Within a file a
// violation matches a recorded one by rule, source line text and reason,
// which survives edits that only move code up or down.
package baseline

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/fsutil"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/runner"
)

// ErrNotReadable is returned by Load when the baseline file cannot be
// opened or decoded.
var ErrNotReadable = errors.New("baseline not readable")

// Entry is one recorded violation.
type Entry struct {
	RuleID    string          `json:"rule_id"`
	File      string          `json:"file"`
	Line      int             `json:"line"`
	Character int             `json:"character,omitempty"`
	Severity  config.Severity `json:"severity"`
	Reason    string          `json:"reason"`
	Text      string          `json:"text"`
}

// identity ignores severity so --strict and --lenient runs share a baseline.
type identity struct {
	rule, file, reason, text string
	line, character          int
}

func (e Entry) identity() identity {
	return identity{rule: e.RuleID, file: e.File, reason: e.Reason, text: e.Text, line: e.Line, character: e.Character}
}

// key groups entries that may have moved within a file.
func (e Entry) key() string {
	return e.Text + "\x00" + e.Reason
}

// Baseline is a set of known violations grouped by relative file path.
type Baseline struct {
	root   string
	byFile map[string][]Entry
}

func newBaseline(root string, entries []Entry) *Baseline {
	b := &Baseline{root: root, byFile: make(map[string][]Entry)}
	for _, e := range entries {
		b.byFile[e.File] = append(b.byFile[e.File], e)
	}
	return b
}

// FromResult records every violation of result. Paths are stored relative
// to root.
func FromResult(result *runner.Result, root string) *Baseline {
	b := newBaseline(root, nil)
	if result == nil {
		return b
	}
	for _, f := range result.Files {
		if f.Result == nil || f.Result.FileResult == nil {
			continue
		}
		rel := b.rel(f.Path)
		b.byFile[rel] = append(b.byFile[rel], entries(rel, f.Result.FileResult)...)
	}
	return b
}

// Load reads a baseline written by Write.
func Load(ctx context.Context, path, root string) (*Baseline, error) {
	data, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotReadable, err)
	}
	var list []Entry
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotReadable, path, err)
	}
	return newBaseline(root, list), nil
}

// Entries returns the recorded violations sorted by file, position and rule.
func (b *Baseline) Entries() []Entry {
	var out []Entry
	for _, list := range b.byFile {
		out = append(out, list...)
	}
	slices.SortFunc(out, func(x, y Entry) int {
		return cmp.Or(
			cmp.Compare(x.File, y.File),
			cmp.Compare(x.Line, y.Line),
			cmp.Compare(x.Character, y.Character),
			cmp.Compare(x.RuleID, y.RuleID),
		)
	})
	return out
}

// Len returns the number of recorded violations.
func (b *Baseline) Len() int {
	n := 0
	for _, list := range b.byFile {
		n += len(list)
	}
	return n
}

// Write saves the baseline as indented JSON, replacing path atomically.
func (b *Baseline) Write(ctx context.Context, path string) error {
	list := b.Entries()
	if list == nil {
		list = []Entry{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode baseline: %w", err)
	}
	data = append(data, '\n')
	if err := fsutil.WriteAtomic(ctx, path, data, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write baseline: %w", err)
	}
	return nil
}

// Filter returns the violations of one file that the baseline does not
// account for, in their original order.
//
// Violations identical to a recorded entry are known. The rest are grouped
// by rule and by line text plus reason; a group is reported in full when
// the baseline has no leftover entries for it or fewer than the group holds.
func (b *Baseline) Filter(path string, fr *lint.FileResult) []lint.Violation {
	if fr == nil {
		return nil
	}
	if b == nil || len(fr.Violations) == 0 {
		return fr.Violations
	}
	rel := b.rel(path)
	known := b.byFile[rel]
	if len(known) == 0 {
		return fr.Violations
	}
	current := entries(rel, fr)

	knownIDs := make(map[identity]bool, len(known))
	for _, e := range known {
		knownIDs[e.identity()] = true
	}
	currentIDs := make(map[identity]bool, len(current))
	for _, e := range current {
		currentIDs[e.identity()] = true
	}

	// Recorded entries that no current violation matches exactly, counted
	// per rule and key.
	leftover := make(map[string]map[string]int)
	for _, e := range known {
		if currentIDs[e.identity()] {
			continue
		}
		if leftover[e.RuleID] == nil {
			leftover[e.RuleID] = make(map[string]int)
		}
		leftover[e.RuleID][e.key()]++
	}

	type groupKey struct{ rule, key string }
	groups := make(map[groupKey][]int)
	var order []groupKey
	for i, e := range current {
		if knownIDs[e.identity()] {
			continue
		}
		k := groupKey{e.RuleID, e.key()}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	keep := make([]bool, len(current))
	for _, k := range order {
		indexes := groups[k]
		if n := leftover[k.rule][k.key]; n == 0 || len(indexes) > n {
			for _, i := range indexes {
				keep[i] = true
			}
		}
	}

	out := make([]lint.Violation, 0, len(fr.Violations))
	for i, v := range fr.Violations {
		if keep[i] {
			out = append(out, v)
		}
	}
	return out
}

func (b *Baseline) rel(path string) string {
	if b.root != "" && filepath.IsAbs(path) {
		if rel, err := filepath.Rel(b.root, path); err == nil {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// entries converts the violations of one file, reading line text from the
// linted source.
func entries(rel string, fr *lint.FileResult) []Entry {
	out := make([]Entry, len(fr.Violations))
	for i, v := range fr.Violations {
		e := Entry{
			RuleID:    v.RuleID,
			File:      rel,
			Line:      v.Location.Line,
			Character: v.Location.Character,
			Severity:  v.Severity,
			Reason:    v.Reason,
		}
		if fr.Text != nil {
			e.Text = string(fr.Text.LineContent(v.Location.Line))
		}
		out[i] = e
	}
	return out
}
