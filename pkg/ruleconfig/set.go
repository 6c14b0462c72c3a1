package ruleconfig

import (
	"errors"
	"slices"
	"sort"
	"strings"
)

// Configuration is implemented by every rule configuration.
type Configuration interface {
	// Apply merges raw configuration into the options. Warnings never stop
	// analysis; the error lists options that kept their defaults.
	Apply(raw any) ([]*Issue, error)

	// Describe returns the current option values.
	Describe() Description
}

type binding struct {
	key      string
	apply    func(raw any) error
	describe func() (Value, bool)
}

type deprecation struct {
	alternative string
}

// Set binds option keys to fields of a rule configuration struct.
// A Set is built once per rule instance and is not safe for concurrent Apply.
type Set struct {
	ruleID     string
	bindings   []binding
	deprecated map[string]deprecation
	severity   *SeverityOption
	levels     *SeverityLevels
	validate   func() *Issue
}

// NewSet creates an empty option set for the rule.
func NewSet(ruleID string) *Set {
	return &Set{ruleID: ruleID, deprecated: make(map[string]deprecation)}
}

// RuleID returns the rule the set configures.
func (s *Set) RuleID() string {
	return s.ruleID
}

// Severity binds the "severity" key. A bare string applies it directly.
func (s *Set) Severity(opt *SeverityOption) *Set {
	s.severity = opt
	return s.Custom("severity",
		func(raw any) error { return opt.Apply(s.ruleID, raw) },
		func() (Value, bool) { return SeverityValue(string(opt.Severity)), true })
}

// Levels binds top-level "warning" and "error" keys. A bare integer or
// array applies them directly.
func (s *Set) Levels(levels *SeverityLevels) *Set {
	s.levels = levels
	return s
}

// NestedLevels binds thresholds under their own key, e.g. "function_level".
func (s *Set) NestedLevels(key string, levels *SeverityLevels) *Set {
	return s.Custom(key,
		func(raw any) error { return levels.Apply(s.ruleID, raw) },
		func() (Value, bool) { return NestedValue(levels.Describe()), true })
}

// Flag binds a boolean.
func (s *Set) Flag(key string, p *bool) *Set {
	return s.Custom(key, func(raw any) error {
		v, ok := asBool(raw)
		if !ok {
			return invalid(s.ruleID, "'"+key+"' must be a boolean")
		}
		*p = v
		return nil
	}, func() (Value, bool) { return FlagValue(*p), true })
}

// String binds free text.
func (s *Set) String(key string, p *string) *Set {
	return s.Custom(key, func(raw any) error {
		v, ok := asString(raw)
		if !ok {
			return invalid(s.ruleID, "'"+key+"' must be a string")
		}
		*p = v
		return nil
	}, func() (Value, bool) { return StringValue(*p), true })
}

// Symbol binds one of a fixed set of words.
func (s *Set) Symbol(key string, p *string, allowed ...string) *Set {
	return s.Custom(key, func(raw any) error {
		v, ok := asString(raw)
		if !ok || (len(allowed) > 0 && !slices.Contains(allowed, v)) {
			return invalid(s.ruleID, "'"+key+"' must be one of "+strings.Join(allowed, ", "))
		}
		*p = v
		return nil
	}, func() (Value, bool) { return SymbolValue(*p), true })
}

// Int binds an integer.
func (s *Set) Int(key string, p *int) *Set {
	return s.Custom(key, func(raw any) error {
		v, ok := asInt(raw)
		if !ok {
			return invalid(s.ruleID, "'"+key+"' must be an integer")
		}
		*p = v
		return nil
	}, func() (Value, bool) { return IntValue(*p), true })
}

// Float binds a number.
func (s *Set) Float(key string, p *float64) *Set {
	return s.Custom(key, func(raw any) error {
		v, ok := asFloat(raw)
		if !ok {
			return invalid(s.ruleID, "'"+key+"' must be a number")
		}
		*p = v
		return nil
	}, func() (Value, bool) { return FloatValue(*p), true })
}

// Strings binds a list of strings; a single string is accepted as a one-element list.
func (s *Set) Strings(key string, p *[]string) *Set {
	return s.Custom(key, func(raw any) error {
		v, ok := asStringList(raw)
		if !ok {
			return invalid(s.ruleID, "'"+key+"' must be a list of strings")
		}
		*p = v
		return nil
	}, func() (Value, bool) { return StringsValue(*p), true })
}

// Symbols binds a list restricted to the allowed words.
func (s *Set) Symbols(key string, p *[]string, allowed ...string) *Set {
	return s.Custom(key, func(raw any) error {
		v, ok := asStringList(raw)
		if !ok {
			return invalid(s.ruleID, "'"+key+"' must be a list of symbols")
		}
		for _, item := range v {
			if !slices.Contains(allowed, item) {
				return invalid(s.ruleID, "'"+item+"' is not a valid value for '"+key+"'")
			}
		}
		*p = v
		return nil
	}, func() (Value, bool) { return SymbolsValue(*p), true })
}

// Custom binds a key with caller-provided apply and describe functions.
// describe may report false to omit the key from descriptions.
func (s *Set) Custom(key string, apply func(raw any) error, describe func() (Value, bool)) *Set {
	s.bindings = append(s.bindings, binding{key: key, apply: apply, describe: describe})
	return s
}

// Deprecated marks key as replaced by alternative. Values given under the
// old key are applied to the alternative with a warning.
func (s *Set) Deprecated(key, alternative string) *Set {
	s.deprecated[key] = deprecation{alternative: alternative}
	return s
}

// Validate registers a consistency check run after every Apply.
func (s *Set) Validate(fn func() *Issue) *Set {
	s.validate = fn
	return s
}

func (s *Set) lookup(key string) (binding, bool) {
	for _, b := range s.bindings {
		if b.key == key {
			return b, true
		}
	}
	return binding{}, false
}

// Apply implements Configuration.
func (s *Set) Apply(raw any) ([]*Issue, error) {
	m, ok := asMap(raw)
	if !ok {
		return nil, s.applyShorthand(raw)
	}

	var (
		warnings []*Issue
		errs     []error
		unknown  []string
	)

	if s.levels != nil {
		sub := make(map[string]any)
		for _, key := range []string{"warning", "error"} {
			if v, found := m[key]; found {
				sub[key] = v
			}
		}
		if len(sub) > 0 {
			if err := s.levels.Apply(s.ruleID, sub); err != nil {
				errs = append(errs, err)
			}
		}
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if s.levels != nil && (key == "warning" || key == "error") {
			continue
		}
		value := m[key]

		if dep, isDeprecated := s.deprecated[key]; isDeprecated {
			warnings = append(warnings, &Issue{
				Kind:        IssueDeprecatedOption,
				RuleID:      s.ruleID,
				Key:         key,
				Alternative: dep.alternative,
			})
			if _, explicit := m[dep.alternative]; explicit {
				continue
			}
			if b, found := s.lookup(dep.alternative); found {
				if err := b.apply(value); err != nil {
					errs = append(errs, err)
				}
			}
			continue
		}

		b, found := s.lookup(key)
		if !found {
			unknown = append(unknown, key)
			continue
		}
		if err := b.apply(value); err != nil {
			errs = append(errs, err)
		}
	}

	if len(unknown) > 0 {
		warnings = append(warnings, &Issue{Kind: IssueInvalidKeys, RuleID: s.ruleID, Keys: unknown})
	}
	if s.validate != nil {
		if issue := s.validate(); issue != nil {
			if issue.RuleID == "" {
				issue.RuleID = s.ruleID
			}
			if issue.IsWarning() {
				warnings = append(warnings, issue)
			} else {
				errs = append(errs, issue)
			}
		}
	}
	return warnings, errors.Join(errs...)
}

func (s *Set) applyShorthand(raw any) error {
	if s.levels != nil {
		if _, isString := raw.(string); !isString {
			return s.levels.Apply(s.ruleID, raw)
		}
	}
	if s.severity != nil {
		return s.severity.Apply(s.ruleID, raw)
	}
	return nothingApplied(s.ruleID)
}

// Describe implements Configuration.
func (s *Set) Describe() Description {
	var d Description
	if s.levels != nil {
		d.Options = append(d.Options, s.levels.Describe().Options...)
	}
	for _, b := range s.bindings {
		if v, ok := b.describe(); ok {
			d.Add(b.key, v)
		}
	}
	return d
}
