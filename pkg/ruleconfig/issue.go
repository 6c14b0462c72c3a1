// Package ruleconfig implements typed rule options: applying raw configuration
// values, reporting configuration issues, and describing options for humans.
package ruleconfig

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// IssueKind classifies a configuration issue.
type IssueKind int

const (
	// IssueInvalidConfiguration means a value did not have the expected shape.
	IssueInvalidConfiguration IssueKind = iota
	// IssueNothingApplied means the raw value matched no known form.
	IssueNothingApplied
	// IssueInvalidKeys means the configuration contained unknown keys.
	IssueInvalidKeys
	// IssueDeprecatedOption means a deprecated key was used.
	IssueDeprecatedOption
	// IssueInvalidRegex means a pattern failed to compile.
	IssueInvalidRegex
	// IssueInconsistentConfiguration means options contradict each other.
	IssueInconsistentConfiguration
	// IssueRenamedIdentifier means a rule was referenced by an old identifier.
	IssueRenamedIdentifier
	// IssueInvalidRuleIDs means configuration named rules that do not exist.
	IssueInvalidRuleIDs
	// IssueUnsupportedOption means a recognised option has no effect here.
	IssueUnsupportedOption
)

// Issue is a configuration problem. Issues implement error; warnings are
// reported but never stop analysis.
type Issue struct {
	Kind        IssueKind
	RuleID      string
	Key         string
	Alternative string
	Message     string
	Keys        []string
}

// Error implements error.
func (i *Issue) Error() string {
	switch i.Kind {
	case IssueInvalidConfiguration, IssueNothingApplied:
		detail := "."
		if i.Message != "" {
			detail = ": " + i.Message
		}
		return fmt.Sprintf("Invalid configuration for '%s' rule%s Falling back to default.", i.RuleID, detail)
	case IssueInvalidKeys:
		return fmt.Sprintf("Configuration for '%s' rule contains the invalid key(s) %s.", i.RuleID, quoteList(i.Keys))
	case IssueDeprecatedOption:
		msg := fmt.Sprintf("Configuration option '%s' in '%s' rule is deprecated.", i.Key, i.RuleID)
		if i.Alternative != "" {
			msg += fmt.Sprintf(" Use the option '%s' instead.", i.Alternative)
		}
		return msg
	case IssueInvalidRegex:
		return fmt.Sprintf("Invalid regular expression pattern '%s' used to configure '%s' rule.", i.Key, i.RuleID)
	case IssueInconsistentConfiguration:
		return fmt.Sprintf("Inconsistent configuration for '%s' rule: %s", i.RuleID, i.Message)
	case IssueRenamedIdentifier:
		return fmt.Sprintf("'%s' has been renamed to '%s' and will be completely removed in a future release.",
			i.Key, i.Alternative)
	case IssueInvalidRuleIDs:
		return fmt.Sprintf("The key(s) %s used as rule identifier(s) is/are invalid.", quoteList(i.Keys))
	case IssueUnsupportedOption:
		msg := fmt.Sprintf("'%s' is not supported and will be ignored.", i.Key)
		if i.Message != "" {
			msg += " " + i.Message
		}
		return msg
	default:
		return i.Message
	}
}

// IsWarning reports whether the issue leaves the configuration usable.
func (i *Issue) IsWarning() bool {
	switch i.Kind {
	case IssueInvalidKeys, IssueDeprecatedOption, IssueRenamedIdentifier, IssueInvalidRuleIDs,
		IssueInconsistentConfiguration, IssueUnsupportedOption:
		return true
	default:
		return false
	}
}

// Is matches issues by kind and rule so that errors.Is works with a template.
func (i *Issue) Is(target error) bool {
	var other *Issue
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == i.Kind && (other.RuleID == "" || other.RuleID == i.RuleID)
}

func invalid(ruleID, message string) *Issue {
	return &Issue{Kind: IssueInvalidConfiguration, RuleID: ruleID, Message: message}
}

func nothingApplied(ruleID string) *Issue {
	return &Issue{Kind: IssueNothingApplied, RuleID: ruleID}
}

// IsNothingApplied reports whether err says the raw value was not understood at all.
func IsNothingApplied(err error) bool {
	var issue *Issue
	return errors.As(err, &issue) && issue.Kind == IssueNothingApplied
}

func quoteList(keys []string) string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	quoted := make([]string, len(sorted))
	for i, k := range sorted {
		quoted[i] = "'" + k + "'"
	}
	return strings.Join(quoted, ", ")
}
