package config

// FormatRuleID formats a rule identifier based on the given format.
// Falls back to ID if name is empty.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatName:
		return ruleName
	case RuleFormatCombined:
		return ruleName + " (" + ruleID + ")"
	default:
		return ruleID
	}
}

// IsValid reports whether the output format names a known reporter.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatCheckstyle, FormatSARIF, FormatSummary, FormatGitHubActions, FormatDiff:
		return true
	default:
		return false
	}
}

// OutputFormats lists the reporter names in display order.
func OutputFormats() []OutputFormat {
	return []OutputFormat{
		FormatText, FormatJSON, FormatCheckstyle, FormatSARIF, FormatSummary, FormatGitHubActions, FormatDiff,
	}
}
