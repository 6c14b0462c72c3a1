package analysis

import (
	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
)

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by issue count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
	// SortBySeverity sorts by severity (errors first).
	SortBySeverity SortField = "severity"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// RuleMeta is what the analysis knows about a rule besides its violations.
type RuleMeta struct {
	Name    string
	OptIn   bool
	Fixable bool
	Custom  bool
}

// Catalog maps rule identifiers to metadata.
type Catalog map[string]RuleMeta

// CatalogFromRuleSet describes the enabled rules of set, including the
// sub-rules of rules that define them.
func CatalogFromRuleSet(set *lint.RuleSet) Catalog {
	catalog := make(Catalog)
	if set == nil {
		return catalog
	}
	for _, rr := range set.Rules {
		rule := rr.Rule
		catalog[rule.ID()] = RuleMeta{
			Name:    rule.Name(),
			OptIn:   rule.OptIn(),
			Fixable: lint.CanFix(rule),
		}
		if provider, ok := rule.(lint.SubRuleProvider); ok {
			for _, id := range provider.SubRuleIDs() {
				catalog[id] = RuleMeta{Name: id, Custom: true}
			}
		}
	}
	return catalog
}

// Options configures the Analyze function.
type Options struct {
	// IncludeViolations includes the flat violation list.
	IncludeViolations bool

	// IncludeByFile includes the per-file analysis.
	IncludeByFile bool

	// IncludeByRule includes the per-rule analysis.
	IncludeByRule bool

	// SortBy specifies how to sort ByFile and ByRule.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// RuleFormat controls how rule identifiers appear.
	RuleFormat config.RuleFormat

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// Rules supplies opt-in, fixable and custom flags. Rules missing from
	// the catalog are reported as neither.
	Rules Catalog
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeViolations: true,
		IncludeByFile:     true,
		IncludeByRule:     true,
		SortBy:            SortByCount,
		SortDesc:          true,
		RuleFormat:        config.RuleFormatID,
	}
}
