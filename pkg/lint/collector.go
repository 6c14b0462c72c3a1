package lint

import (
	"bytes"
	"cmp"
	"slices"
	"sync"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/region"
	"github.com/yaklabco/swiftlint-go/pkg/source"
)

// Collector gathers the violations of one file from concurrently running
// rules. It is safe for concurrent use.
type Collector struct {
	mu  sync.Mutex
	raw []Violation
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record adds violations as reported, before any region filtering.
func (c *Collector) Record(vs ...Violation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.raw = append(c.raw, vs...)
}

// Raw returns a copy of every recorded violation.
func (c *Collector) Raw() []Violation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.raw)
}

// Finalize drops suppressed violations, resolves severities, sorts by
// position and rule ID, and removes duplicates of the same rule at the same
// position.
func (c *Collector) Finalize(text *source.Text, regions *region.Table, rules *RuleSet) []Violation {
	idx := newRuleIndex(rules)
	shebang := bytes.HasPrefix(text.Bytes(), []byte("#!"))

	out := make([]Violation, 0, len(c.raw))
	for _, v := range c.Raw() {
		if shebang && v.Location.Line == 1 {
			continue
		}
		rr, parent, known := idx.lookup(v.RuleID)
		aliases := rr.Aliases
		if parent != "" {
			aliases = append([]string{parent}, aliases...)
		}
		if regions.IsDisabled(v.RuleID, region.LocationOf(v.Location), aliases...) {
			continue
		}

		if v.Severity == "" {
			v.Severity = config.SeverityWarning
			if known {
				v.Severity = rr.Rule.Severity()
			}
		}
		v.Severity = adjustSeverity(v.Severity, rules)

		if known {
			if v.RuleName == "" {
				v.RuleName = rr.Rule.Name()
			}
			if v.RuleDescription == "" {
				v.RuleDescription = rr.Rule.Description()
			}
		}
		if v.Path == "" {
			v.Path = text.Path()
		}
		out = append(out, v)
	}

	SortViolations(out)
	return slices.CompactFunc(out, func(a, b Violation) bool {
		return a.RuleID == b.RuleID && a.Location.Offset == b.Location.Offset
	})
}

// SortViolations orders violations by path, position, then rule ID.
func SortViolations(vs []Violation) {
	slices.SortStableFunc(vs, func(a, b Violation) int {
		switch {
		case a.Path != b.Path:
			return cmp.Compare(a.Path, b.Path)
		case a.Location.Offset != b.Location.Offset:
			return a.Location.Offset - b.Location.Offset
		default:
			return cmp.Compare(a.RuleID, b.RuleID)
		}
	})
}

// adjustSeverity applies lenient, then strict, so strict wins when both are set.
func adjustSeverity(s config.Severity, rules *RuleSet) config.Severity {
	if rules == nil {
		return s
	}
	if rules.Lenient && s == config.SeverityError {
		s = config.SeverityWarning
	}
	if rules.Strict && s == config.SeverityWarning {
		s = config.SeverityError
	}
	return s
}

// ruleIndex finds the resolved rule behind a violation's rule ID. Sub-rule
// IDs map to the rule that defines them.
type ruleIndex struct {
	byID  map[string]ResolvedRule
	bySub map[string]ResolvedRule
}

func newRuleIndex(rules *RuleSet) ruleIndex {
	idx := ruleIndex{byID: make(map[string]ResolvedRule), bySub: make(map[string]ResolvedRule)}
	if rules == nil {
		return idx
	}
	for _, rr := range rules.Rules {
		idx.byID[rr.Rule.ID()] = rr
		if p, ok := rr.Rule.(SubRuleProvider); ok {
			for _, sub := range p.SubRuleIDs() {
				idx.bySub[sub] = rr
			}
		}
	}
	return idx
}

func (idx ruleIndex) lookup(id string) (rr ResolvedRule, parent string, found bool) {
	if rr, ok := idx.byID[id]; ok {
		return rr, "", true
	}
	if rr, ok := idx.bySub[id]; ok {
		return rr, rr.Rule.ID(), true
	}
	return ResolvedRule{}, "", false
}
