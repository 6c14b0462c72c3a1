package configloader

import (
	"slices"

	"github.com/yaklabco/swiftlint-go/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Rule configuration: override replaces a rule's entry as a whole
//   - disabled_rules and opt_in_rules: union of both lists
//   - Other lists: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Reporter != "" {
		result.Reporter = override.Reporter
	}
	if override.SwiftVersion != "" {
		result.SwiftVersion = override.SwiftVersion
	}
	if override.CachePath != "" {
		result.CachePath = override.CachePath
	}
	if override.RuleFormat != "" {
		result.RuleFormat = override.RuleFormat
	}
	if override.WarningThreshold != 0 {
		result.WarningThreshold = override.WarningThreshold
	}
	if override.Baseline != "" {
		result.Baseline = override.Baseline
	}
	if override.WriteBaseline != "" {
		result.WriteBaseline = override.WriteBaseline
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Booleans can only be switched on by a later source.
	result.Strict = result.Strict || override.Strict
	result.Lenient = result.Lenient || override.Lenient
	result.AllowZeroLintableFiles = result.AllowZeroLintableFiles || override.AllowZeroLintableFiles
	result.Fix = result.Fix || override.Fix
	result.DryRun = result.DryRun || override.DryRun
	result.NoCache = result.NoCache || override.NoCache
	result.NoBackups = result.NoBackups || override.NoBackups

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	result.Rules = mergeRules(result.Rules, override.Rules)

	result.DisabledRules = union(result.DisabledRules, override.DisabledRules)
	result.OptInRules = union(result.OptInRules, override.OptInRules)

	replace := func(dst *[]string, src []string) {
		if src != nil {
			*dst = slices.Clone(src)
		}
	}
	replace(&result.OnlyRules, override.OnlyRules)
	replace(&result.AnalyzerRules, override.AnalyzerRules)
	replace(&result.Included, override.Included)
	replace(&result.Excluded, override.Excluded)
	replace(&result.EnableRules, override.EnableRules)
	replace(&result.DisableRules, override.DisableRules)
	replace(&result.FixRules, override.FixRules)

	return result
}

// mergeRules overlays override's rule entries on base.
func mergeRules(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(override))
	for key, val := range base {
		result[key] = val
	}
	for key, val := range override {
		result[key] = val
	}
	return result
}

// union appends the items of b missing from a, keeping first-seen order.
func union(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	out := slices.Clone(a)
	for _, item := range b {
		if !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	return out
}
