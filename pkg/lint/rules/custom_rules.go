package rules

import (
	"errors"
	"regexp"
	"slices"
	"sort"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/ruleconfig"
	"github.com/yaklabco/swiftlint-go/pkg/source"
)

// CustomRulesID is the configuration key holding user-defined regex rules.
const CustomRulesID = "custom_rules"

const defaultCustomMessage = "Regex matched"

// CustomRule is one user-defined regex rule.
type CustomRule struct {
	ID            string
	Name          string
	Message       string
	Regex         string
	Severity      config.Severity
	MatchKinds    []lint.Class
	ExcludedKinds []lint.Class
	Included      []string
	Excluded      []string
	CaptureGroup  int
}

// excludes reports whether a match overlapping classes is filtered out.
func (c CustomRule) excludes(classes []lint.Class) bool {
	for _, class := range classes {
		if len(c.MatchKinds) > 0 && !slices.Contains(c.MatchKinds, class) {
			return true
		}
		if slices.Contains(c.ExcludedKinds, class) {
			return true
		}
	}
	return false
}

// appliesTo reports whether the path filters select path.
func (c CustomRule) appliesTo(rc *lint.RuleContext, path string) bool {
	if len(c.Included) > 0 && !matchesAny(rc, c.Included, path) {
		return false
	}
	return !matchesAny(rc, c.Excluded, path)
}

func matchesAny(rc *lint.RuleContext, patterns []string, path string) bool {
	for _, p := range patterns {
		if re, err := rc.Regex(p); err == nil && re.MatchString(path) {
			return true
		}
	}
	return false
}

// pattern is the rule's regex with multi-line anchors and dot matching newlines.
func (c CustomRule) pattern() string {
	return "(?ms)" + c.Regex
}

// CustomRules runs the regex rules defined under custom_rules. Each defined
// rule reports under its own identifier.
type CustomRules struct {
	lint.BaseRule

	rules   []CustomRule
	enabled func(id string) bool
}

// NewCustomRules creates the rule with no definitions.
func NewCustomRules() lint.Rule {
	return &CustomRules{
		BaseRule: lint.NewBaseRule(
			CustomRulesID,
			"Custom Rules",
			"Create custom rules by providing a regex string. Optionally specify what syntax kinds to match against, "+
				"the severity level, and what message to display.",
			lint.KindStyle,
		),
	}
}

// Defined returns the configured rules.
func (r *CustomRules) Defined() []CustomRule {
	return slices.Clone(r.rules)
}

// SubRuleIDs implements lint.SubRuleProvider.
func (r *CustomRules) SubRuleIDs() []string {
	ids := make([]string, len(r.rules))
	for i, c := range r.rules {
		ids[i] = c.ID
	}
	return ids
}

// RestrictSubRules implements lint.SubRuleProvider.
func (r *CustomRules) RestrictSubRules(enabled func(id string) bool) {
	r.enabled = enabled
}

// Configuration implements lint.Rule.
func (r *CustomRules) Configuration() ruleconfig.Configuration {
	return customRulesConfig{r: r}
}

// Check implements lint.TextRule.
func (r *CustomRules) Check(rc *lint.RuleContext, report *lint.Report) error {
	content := rc.Text.String()
	for _, c := range r.rules {
		if r.enabled != nil && !r.enabled(c.ID) {
			continue
		}
		if !c.appliesTo(rc, rc.Path()) {
			continue
		}
		re, err := rc.Regex(c.pattern())
		if err != nil {
			return err
		}
		for _, m := range re.FindAllStringSubmatchIndex(content, -1) {
			if rc.Cancelled() {
				return rc.Ctx.Err()
			}
			start, end := m[0], m[1]
			if g := c.CaptureGroup; g > 0 && 2*g+1 < len(m) && m[2*g] >= 0 {
				start, end = m[2*g], m[2*g+1]
			}
			if c.excludes(rc.ClassesIn(source.Range{Start: start, End: end})) {
				continue
			}
			v := report.Violation(start, c.Message).WithSeverity(c.Severity).Build()
			v.RuleID = c.ID
			v.RuleName = c.Name
			v.RuleDescription = c.Message
			report.Add(v)
		}
	}
	return nil
}

type customRulesConfig struct {
	r *CustomRules
}

// Apply replaces the defined rules. Invalid definitions are dropped and
// reported; the rest still run.
func (cfg customRulesConfig) Apply(raw any) ([]*ruleconfig.Issue, error) {
	m, ok := ruleconfig.AsMap(raw)
	if !ok {
		return nil, &ruleconfig.Issue{Kind: ruleconfig.IssueInvalidConfiguration, RuleID: CustomRulesID}
	}

	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var (
		warnings []*ruleconfig.Issue
		errs     []error
		defined  []CustomRule
	)
	for _, id := range ids {
		rule, ws, err := parseCustomRule(id, m[id])
		warnings = append(warnings, ws...)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		defined = append(defined, rule)
	}
	cfg.r.rules = defined
	return warnings, errors.Join(errs...)
}

// Describe lists each defined rule with its options.
func (cfg customRulesConfig) Describe() ruleconfig.Description {
	var d ruleconfig.Description
	for _, c := range cfg.r.rules {
		var sub ruleconfig.Description
		if c.Name != "" {
			sub.Add("name", ruleconfig.StringValue(c.Name))
		}
		sub.Add("regex", ruleconfig.StringValue(c.Regex))
		sub.Add("message", ruleconfig.StringValue(c.Message))
		sub.Add("severity", ruleconfig.SeverityValue(string(c.Severity)))
		if len(c.MatchKinds) > 0 {
			sub.Add("match_kinds", ruleconfig.SymbolsValue(classNames(c.MatchKinds)))
		}
		if len(c.ExcludedKinds) > 0 {
			sub.Add("excluded_match_kinds", ruleconfig.SymbolsValue(classNames(c.ExcludedKinds)))
		}
		if len(c.Included) > 0 {
			sub.Add("included", ruleconfig.StringsValue(c.Included))
		}
		if len(c.Excluded) > 0 {
			sub.Add("excluded", ruleconfig.StringsValue(c.Excluded))
		}
		if c.CaptureGroup > 0 {
			sub.Add("capture_group", ruleconfig.IntValue(c.CaptureGroup))
		}
		d.Add(c.ID, ruleconfig.NestedValue(sub))
	}
	return d
}

func classNames(cs []lint.Class) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

func parseCustomRule(id string, raw any) (CustomRule, []*ruleconfig.Issue, error) {
	rule := CustomRule{ID: id, Message: defaultCustomMessage, Severity: config.SeverityWarning}

	m, ok := ruleconfig.AsMap(raw)
	if !ok {
		return rule, nil, &ruleconfig.Issue{Kind: ruleconfig.IssueInvalidConfiguration, RuleID: id}
	}

	var pathWarnings []*ruleconfig.Issue
	set := ruleconfig.NewSet(id).
		String("name", &rule.Name).
		String("message", &rule.Message).
		String("regex", &rule.Regex).
		Strings("included", &rule.Included).
		Strings("excluded", &rule.Excluded).
		Int("capture_group", &rule.CaptureGroup).
		Custom("severity", func(v any) error {
			opt := ruleconfig.SeverityOption{Severity: rule.Severity}
			if err := opt.Apply(id, v); err != nil {
				return err
			}
			rule.Severity = opt.Severity
			return nil
		}, func() (ruleconfig.Value, bool) { return ruleconfig.Value{}, false }).
		Custom("match_kinds", classBinder(id, "match_kinds", &rule.MatchKinds), noDescribe).
		Custom("excluded_match_kinds", classBinder(id, "excluded_match_kinds", &rule.ExcludedKinds), noDescribe).
		Custom("execution_mode", func(any) error { return nil }, noDescribe)

	warnings, err := set.Apply(m)
	if err != nil {
		return rule, warnings, err
	}
	if rule.Regex == "" {
		return rule, warnings, &ruleconfig.Issue{
			Kind: ruleconfig.IssueInvalidConfiguration, RuleID: id, Message: "'regex' is required",
		}
	}
	if _, err := regexp.Compile(rule.pattern()); err != nil {
		return rule, warnings, &ruleconfig.Issue{Kind: ruleconfig.IssueInvalidRegex, RuleID: id, Key: rule.Regex}
	}
	for _, p := range append(slices.Clone(rule.Included), rule.Excluded...) {
		if _, err := regexp.Compile(p); err != nil {
			pathWarnings = append(pathWarnings, &ruleconfig.Issue{Kind: ruleconfig.IssueInvalidRegex, RuleID: id, Key: p})
		}
	}
	if len(rule.MatchKinds) > 0 && len(rule.ExcludedKinds) > 0 {
		warnings = append(warnings, &ruleconfig.Issue{
			Kind:    ruleconfig.IssueInconsistentConfiguration,
			RuleID:  id,
			Message: "the configuration keys 'match_kinds' and 'excluded_match_kinds' cannot appear at the same time",
		})
		rule.ExcludedKinds = nil
	}
	if rule.CaptureGroup < 0 {
		return rule, warnings, &ruleconfig.Issue{
			Kind: ruleconfig.IssueInvalidConfiguration, RuleID: id, Message: "'capture_group' must not be negative",
		}
	}
	return rule, append(warnings, pathWarnings...), nil
}

func noDescribe() (ruleconfig.Value, bool) { return ruleconfig.Value{}, false }

func classBinder(id, key string, p *[]lint.Class) func(any) error {
	return func(v any) error {
		var names []string
		set := ruleconfig.NewSet(id).Strings(key, &names)
		if _, err := set.Apply(map[string]any{key: v}); err != nil {
			return err
		}
		classes := make([]lint.Class, 0, len(names))
		for _, name := range names {
			c := lint.Class(name)
			if !slices.Contains(lint.Classes(), c) {
				return &ruleconfig.Issue{
					Kind: ruleconfig.IssueInvalidConfiguration, RuleID: id,
					Message: "'" + name + "' is not a valid value for '" + key + "'",
				}
			}
			classes = append(classes, c)
		}
		*p = classes
		return nil
	}
}
