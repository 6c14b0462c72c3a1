package lint

import (
	"slices"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/ruleconfig"
)

// ResolvedRule pairs a configured rule instance with its run settings.
type ResolvedRule struct {
	// Rule is a fresh instance with configuration applied.
	Rule Rule

	// Aliases are deprecated identifiers that also address the rule in
	// suppression directives.
	Aliases []string

	// AutoFix indicates whether corrections from this rule are applied.
	AutoFix bool
}

// IDs returns the rule ID followed by its aliases.
func (rr ResolvedRule) IDs() []string {
	return append([]string{rr.Rule.ID()}, rr.Aliases...)
}

// RuleSet is the outcome of resolving configuration against a registry.
// It is read-only once built and may be shared between goroutines.
type RuleSet struct {
	// Rules are the enabled rules in ID order.
	Rules []ResolvedRule

	// Issues are the configuration problems found while resolving.
	Issues []*ruleconfig.Issue

	// VersionGated lists enabled rules skipped because the configured
	// Swift version is below their minimum.
	VersionGated []string

	// SwiftVersion is the configured language version.
	SwiftVersion Version

	// Strict upgrades warnings to errors; Lenient downgrades errors to warnings.
	Strict  bool
	Lenient bool

	known map[string]bool
}

// Find returns the enabled rule with the given ID.
func (s *RuleSet) Find(id string) (ResolvedRule, bool) {
	for _, rr := range s.Rules {
		if rr.Rule.ID() == id {
			return rr, true
		}
	}
	return ResolvedRule{}, false
}

// IsKnownID reports whether id names any registered rule, deprecated alias,
// or sub-rule, enabled or not.
func (s *RuleSet) IsKnownID(id string) bool {
	return s.known[id]
}

// Fingerprint identifies the enabled rules and their effective options.
func (s *RuleSet) Fingerprint() string {
	fp := s.SwiftVersion.String()
	for _, rr := range s.Rules {
		fp += "|" + rr.Rule.ID() + ":" + rr.Rule.Configuration().Describe().OneLiner()
	}
	if s.Strict {
		fp += "|strict"
	}
	if s.Lenient {
		fp += "|lenient"
	}
	return fp
}

// ResolveRules determines which rules to run based on registry and config.
// Problems are collected in RuleSet.Issues; resolution itself never fails.
func ResolveRules(registry *Registry, cfg *config.Config) *RuleSet {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	set := &RuleSet{
		SwiftVersion: DefaultSwiftVersion,
		Strict:       cfg.Strict,
		Lenient:      cfg.Lenient,
		known:        make(map[string]bool),
	}

	if cfg.SwiftVersion != "" {
		v, err := ParseVersion(cfg.SwiftVersion)
		if err != nil {
			set.Issues = append(set.Issues, &ruleconfig.Issue{
				Kind:    ruleconfig.IssueUnsupportedOption,
				Key:     config.KeySwiftVersion + ": " + cfg.SwiftVersion,
				Message: "Using " + DefaultSwiftVersion.String() + ".",
			})
		} else {
			set.SwiftVersion = v
		}
	}
	if len(cfg.AnalyzerRules) > 0 {
		set.Issues = append(set.Issues, &ruleconfig.Issue{
			Kind:    ruleconfig.IssueUnsupportedOption,
			Key:     config.KeyAnalyzerRules,
			Message: "Analyzer rules need a compiler index.",
		})
	}

	instances := configureAll(registry, cfg, set)

	var subIDs []string
	for _, id := range registry.IDs() {
		set.known[id] = true
		for _, alias := range registry.Aliases(id) {
			set.known[alias] = true
		}
		if p, ok := instances[id].(SubRuleProvider); ok {
			for _, sub := range p.SubRuleIDs() {
				set.known[sub] = true
				subIDs = append(subIDs, sub)
			}
		}
	}

	r := resolver{registry: registry, set: set, subIDs: subIDs}
	enabled := r.enabledIDs(cfg)

	for _, id := range registry.IDs() {
		if !enabled[id] {
			continue
		}
		rule := instances[id]
		if p, ok := rule.(SubRuleProvider); ok {
			p.RestrictSubRules(r.subRuleFilter(cfg))
		}
		if min := rule.MinSwiftVersion(); !min.IsZero() && set.SwiftVersion.Compare(min) < 0 {
			set.VersionGated = append(set.VersionGated, id)
			continue
		}
		set.Rules = append(set.Rules, ResolvedRule{
			Rule:    rule,
			Aliases: registry.Aliases(id),
			AutoFix: autoFix(rule, cfg),
		})
	}
	return set
}

// configureAll creates one instance per registered rule and applies its
// configuration. Unknown rule keys are reported.
func configureAll(registry *Registry, cfg *config.Config, set *RuleSet) map[string]Rule {
	instances := make(map[string]Rule)
	for _, id := range registry.IDs() {
		rule, _ := registry.New(id)
		instances[id] = rule
	}

	keys := make([]string, 0, len(cfg.Rules))
	for key := range cfg.Rules {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var unknown []string
	for _, key := range keys {
		id, renamed, found := registry.Resolve(key)
		if !found {
			unknown = append(unknown, key)
			continue
		}
		if renamed {
			set.Issues = append(set.Issues, &ruleconfig.Issue{
				Kind: ruleconfig.IssueRenamedIdentifier, Key: key, Alternative: id,
			})
			if _, hasCurrent := cfg.Rules[id]; hasCurrent {
				continue
			}
		}

		warnings, err := instances[id].Configuration().Apply(cfg.Rules[key])
		set.Issues = append(set.Issues, warnings...)
		if err != nil {
			set.Issues = append(set.Issues, issuesOf(id, err)...)
		}
	}
	if len(unknown) > 0 {
		set.Issues = append(set.Issues, &ruleconfig.Issue{Kind: ruleconfig.IssueInvalidRuleIDs, Keys: unknown})
	}
	return instances
}

// issuesOf flattens a joined error into issues.
func issuesOf(ruleID string, err error) []*ruleconfig.Issue {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*ruleconfig.Issue
		for _, e := range joined.Unwrap() {
			out = append(out, issuesOf(ruleID, e)...)
		}
		return out
	}
	if issue, ok := err.(*ruleconfig.Issue); ok {
		return []*ruleconfig.Issue{issue}
	}
	return []*ruleconfig.Issue{{Kind: ruleconfig.IssueInvalidConfiguration, RuleID: ruleID, Message: err.Error()}}
}

type resolver struct {
	registry *Registry
	set      *RuleSet
	subIDs   []string
}

// canonical maps configured identifiers to rule IDs. Sub-rule identifiers
// map to nothing; unknown identifiers are reported once per list.
func (r *resolver) canonical(key string, ids []string) []string {
	var out, unknown []string
	for _, raw := range ids {
		id, renamed, found := r.registry.Resolve(raw)
		switch {
		case found && renamed:
			r.set.Issues = append(r.set.Issues, &ruleconfig.Issue{
				Kind: ruleconfig.IssueRenamedIdentifier, Key: raw, Alternative: id,
			})
			out = append(out, id)
		case found:
			out = append(out, id)
		case slices.Contains(r.subIDs, raw):
		default:
			unknown = append(unknown, raw)
		}
	}
	if len(unknown) > 0 {
		r.set.Issues = append(r.set.Issues, &ruleconfig.Issue{
			Kind: ruleconfig.IssueInvalidRuleIDs, Key: key, Keys: unknown,
		})
	}
	return out
}

func (r *resolver) enabledIDs(cfg *config.Config) map[string]bool {
	enabled := make(map[string]bool)

	if len(cfg.OnlyRules) > 0 {
		for _, id := range r.canonical(config.KeyOnlyRules, cfg.OnlyRules) {
			enabled[id] = true
		}
		for _, raw := range cfg.OnlyRules {
			if slices.Contains(r.subIDs, raw) {
				r.enableSubRuleParents(enabled)
			}
		}
	} else {
		for _, rule := range r.registry.Rules() {
			if !rule.OptIn() {
				enabled[rule.ID()] = true
			}
		}
		for _, id := range r.canonical(config.KeyOptInRules, cfg.OptInRules) {
			enabled[id] = true
		}
		for _, id := range r.canonical(config.KeyDisabledRules, cfg.DisabledRules) {
			delete(enabled, id)
		}
	}

	for _, id := range r.canonical("--enable", cfg.EnableRules) {
		enabled[id] = true
	}
	for _, id := range r.canonical("--disable", cfg.DisableRules) {
		delete(enabled, id)
	}
	return enabled
}

func (r *resolver) enableSubRuleParents(enabled map[string]bool) {
	for _, rule := range r.registry.Rules() {
		if _, ok := rule.(SubRuleProvider); ok {
			enabled[rule.ID()] = true
		}
	}
}

// subRuleFilter decides which sub-rules run: with only_rules naming any
// sub-rule, exactly those; otherwise all but the disabled ones.
func (r *resolver) subRuleFilter(cfg *config.Config) func(string) bool {
	listed := func(list []string) map[string]bool {
		m := make(map[string]bool)
		for _, id := range list {
			if slices.Contains(r.subIDs, id) {
				m[id] = true
			}
		}
		return m
	}

	only := listed(cfg.OnlyRules)
	disabled := listed(append(slices.Clone(cfg.DisabledRules), cfg.DisableRules...))
	return func(id string) bool {
		if len(only) > 0 && !only[id] {
			return false
		}
		return !disabled[id]
	}
}

func autoFix(rule Rule, cfg *config.Config) bool {
	if !cfg.Fix || !CanFix(rule) {
		return false
	}
	return len(cfg.FixRules) == 0 || slices.Contains(cfg.FixRules, rule.ID())
}
