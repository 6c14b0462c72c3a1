package region

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// Region is a half-open span [Start, End) with the identifiers disabled in it.
type Region struct {
	Start Location
	End   Location
	// Disabled is sorted; it may contain All.
	Disabled []string
}

// Contains reports whether loc falls inside the region.
func (r Region) Contains(loc Location) bool {
	return !loc.Less(r.Start) && loc.Less(r.End)
}

// Disables reports whether any of ids (or All) is disabled in the region.
func (r Region) Disables(ids ...string) bool {
	for _, d := range r.Disabled {
		if d == All {
			return true
		}
		for _, id := range ids {
			if d == id {
				return true
			}
		}
	}
	return false
}

// DisablesExplicitly reports whether id itself is listed, ignoring All.
func (r Region) DisablesExplicitly(id string) bool {
	_, found := slices.BinarySearch(r.Disabled, id)
	return found
}

// Table is the immutable set of regions for one file. Regions are ordered,
// non-overlapping and cover the whole file.
type Table struct {
	regions  []Region
	commands []Command
}

// Empty returns a table with a single region and nothing disabled.
func Empty() *Table {
	return Build(nil)
}

// FromTree scans comment trivia for directives and builds the table.
func FromTree(tree *syntax.Tree) *Table {
	return Build(Commands(tree.Text(), tree.Comments()))
}

// Commands extracts the directives found in comments, in source order.
// A comment line holds at most one directive, which runs to the end of the line.
func Commands(text *source.Text, comments []syntax.Trivia) []Command {
	var out []Command
	for _, c := range comments {
		body := string(text.Slice(c.Range))
		lineStart := 0
		for lineStart <= len(body) {
			lineEnd := strings.IndexByte(body[lineStart:], '\n')
			if lineEnd < 0 {
				lineEnd = len(body)
			} else {
				lineEnd += lineStart
			}

			line := body[lineStart:lineEnd]
			if idx := strings.Index(line, Prefix); idx >= 0 {
				start := c.Range.Start + lineStart + idx
				end := c.Range.Start + lineEnd
				cmd := ParseCommand(line[idx:], LocationOf(text.LocationAt(end)))
				cmd.Range = source.Range{Start: start, End: end}
				out = append(out, cmd)
			}
			lineStart = lineEnd + 1
		}
	}
	return out
}

// Build computes regions from directives. Line-scoped directives are
// expanded first; invalid directives are ignored.
func Build(commands []Command) *Table {
	var expanded []Command
	for _, cmd := range commands {
		expanded = append(expanded, cmd.Expand()...)
	}
	sort.SliceStable(expanded, func(i, j int) bool {
		return expanded[i].Location.Less(expanded[j].Location)
	})

	disabled := make(map[string]bool)
	regions := []Region{{Start: Location{}, End: EndOfFile}}

	for i := 0; i < len(expanded); {
		at := expanded[i].Location
		// Every command at the same location applies before the next region starts.
		for ; i < len(expanded) && expanded[i].Location == at; i++ {
			apply(disabled, expanded[i])
		}

		set := snapshot(disabled)
		last := &regions[len(regions)-1]
		if slices.Equal(last.Disabled, set) {
			continue
		}
		if last.Start == at {
			last.Disabled = set
			continue
		}
		last.End = at
		regions = append(regions, Region{Start: at, End: EndOfFile, Disabled: set})
	}

	mustBeOrdered(regions)
	return &Table{regions: regions, commands: commands}
}

func apply(disabled map[string]bool, cmd Command) {
	for _, id := range cmd.IDs {
		switch cmd.Action {
		case ActionDisable:
			disabled[id] = true
		case ActionEnable:
			delete(disabled, id)
		}
	}
}

func snapshot(disabled map[string]bool) []string {
	if len(disabled) == 0 {
		return nil
	}
	out := make([]string, 0, len(disabled))
	for id := range disabled {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func mustBeOrdered(regions []Region) {
	for i, r := range regions {
		if !r.Start.Less(r.End) {
			panic(fmt.Sprintf("region: empty region %d [%v, %v)", i, r.Start, r.End))
		}
		if i > 0 && regions[i-1].End != r.Start {
			panic(fmt.Sprintf("region: regions %d and %d are not contiguous", i-1, i))
		}
	}
}

// Regions returns every region in order.
func (t *Table) Regions() []Region {
	return t.regions
}

// Commands returns the directives the table was built from, unexpanded.
func (t *Table) Commands() []Command {
	return t.commands
}

// HasDirectives reports whether any valid directive was found.
func (t *Table) HasDirectives() bool {
	return len(t.regions) > 1 || len(t.regions[0].Disabled) > 0
}

// RegionAt returns the region containing loc.
func (t *Table) RegionAt(loc Location) Region {
	i := sort.Search(len(t.regions), func(i int) bool {
		return loc.Less(t.regions[i].End)
	})
	if i == len(t.regions) {
		i--
	}
	return t.regions[i]
}

// IsDisabled reports whether ruleID, or one of its aliases, is disabled at loc.
func (t *Table) IsDisabled(ruleID string, loc Location, aliases ...string) bool {
	return t.RegionAt(loc).Disables(append([]string{ruleID}, aliases...)...)
}

// IsRangeDisabled reports whether ruleID is disabled anywhere in [start, end].
func (t *Table) IsRangeDisabled(ruleID string, start, end Location, aliases ...string) bool {
	ids := append([]string{ruleID}, aliases...)
	for _, r := range t.regions {
		if start.Less(r.End) && !end.Less(r.Start) && r.Disables(ids...) {
			return true
		}
	}
	return false
}

// RegionsDisabling returns the maximal spans in which ruleID (or All) is disabled.
// Adjacent regions are merged.
func (t *Table) RegionsDisabling(ruleID string, aliases ...string) []Region {
	ids := append([]string{ruleID}, aliases...)
	return t.merge(func(r Region) bool { return r.Disables(ids...) })
}

// RegionsDisablingExplicitly is like RegionsDisabling but ignores All.
func (t *Table) RegionsDisablingExplicitly(ruleID string) []Region {
	return t.merge(func(r Region) bool { return r.DisablesExplicitly(ruleID) })
}

func (t *Table) merge(match func(Region) bool) []Region {
	var out []Region
	for _, r := range t.regions {
		if !match(r) {
			continue
		}
		if n := len(out); n > 0 && out[n-1].End == r.Start {
			out[n-1].End = r.End
			out[n-1].Disabled = union(out[n-1].Disabled, r.Disabled)
			continue
		}
		out = append(out, r)
	}
	return out
}

func union(a, b []string) []string {
	out := append(slices.Clone(a), b...)
	sort.Strings(out)
	return slices.Compact(out)
}

// DisabledIDs returns every identifier disabled anywhere in the file.
func (t *Table) DisabledIDs() []string {
	var out []string
	for _, r := range t.regions {
		out = append(out, r.Disabled...)
	}
	sort.Strings(out)
	return slices.Compact(out)
}
