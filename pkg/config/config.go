// Package config defines core configuration types for swiftlint-go.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

import "strings"

// Severity represents the severity level of a violation.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ParseSeverity parses "warning" or "error", ignoring case.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityWarning:
		return SeverityWarning, true
	case SeverityError:
		return SeverityError, true
	default:
		return "", false
	}
}

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	return s == SeverityWarning || s == SeverityError
}

// Rank orders severities; errors rank above warnings.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode"` // "sidecar"
}

// OutputFormat names a reporter.
type OutputFormat string

const (
	FormatText          OutputFormat = "xcode"
	FormatJSON          OutputFormat = "json"
	FormatCheckstyle    OutputFormat = "checkstyle"
	FormatSARIF         OutputFormat = "sarif"
	FormatSummary       OutputFormat = "summary"
	FormatGitHubActions OutputFormat = "github-actions-logging"
	FormatDiff          OutputFormat = "diff"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatID       RuleFormat = "id"       // "force_cast"
	RuleFormatName     RuleFormat = "name"     // "Force Cast"
	RuleFormatCombined RuleFormat = "combined" // "Force Cast (force_cast)"
)

// Top-level configuration keys. Every other top-level key configures a rule.
const (
	KeyDisabledRules = "disabled_rules"
	KeyOptInRules    = "opt_in_rules"
	KeyOnlyRules     = "only_rules"
	KeyAnalyzerRules = "analyzer_rules"
	KeyIncluded      = "included"
	KeyExcluded      = "excluded"
	KeyReporter      = "reporter"
	KeyStrict        = "strict"
	KeyLenient       = "lenient"
	KeySwiftVersion  = "swift_version"
	KeyCachePath     = "cache_path"
	KeyBackups       = "backups"
	KeyAllowZero     = "allow_zero_lintable_files"
	KeyWarningLimit  = "warning_threshold"
	KeyBaseline      = "baseline"
	KeyWriteBaseline = "write_baseline"
)

// TopLevelKeys lists the keys that are not rule identifiers.
func TopLevelKeys() []string {
	return []string{
		KeyDisabledRules, KeyOptInRules, KeyOnlyRules, KeyAnalyzerRules, KeyIncluded, KeyExcluded,
		KeyReporter, KeyStrict, KeyLenient, KeySwiftVersion, KeyCachePath, KeyBackups, KeyAllowZero,
		KeyWarningLimit, KeyBaseline, KeyWriteBaseline,
	}
}

// IsTopLevelKey reports whether key is a top-level option rather than a rule identifier.
func IsTopLevelKey(key string) bool {
	for _, k := range TopLevelKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// Config is the root configuration structure.
type Config struct {
	// DisabledRules turns off rules that are on by default.
	DisabledRules []string `yaml:"disabled_rules,omitempty" toml:"disabled_rules"`

	// OptInRules turns on rules that are off by default.
	OptInRules []string `yaml:"opt_in_rules,omitempty" toml:"opt_in_rules"`

	// OnlyRules, when set, is the exact set of enabled rules.
	OnlyRules []string `yaml:"only_rules,omitempty" toml:"only_rules"`

	// AnalyzerRules are accepted for compatibility; analyzer rules need a compiler index.
	AnalyzerRules []string `yaml:"analyzer_rules,omitempty" toml:"analyzer_rules"`

	// Included limits linting to these paths.
	Included []string `yaml:"included,omitempty" toml:"included"`

	// Excluded paths and glob patterns are skipped.
	Excluded []string `yaml:"excluded,omitempty" toml:"excluded"`

	// Reporter is the output format.
	Reporter OutputFormat `yaml:"reporter,omitempty" toml:"reporter"`

	// Strict upgrades warnings to errors.
	Strict bool `yaml:"strict,omitempty" toml:"strict"`

	// Lenient downgrades errors to warnings.
	Lenient bool `yaml:"lenient,omitempty" toml:"lenient"`

	// SwiftVersion gates rules with a minimum language version.
	SwiftVersion string `yaml:"swift_version,omitempty" toml:"swift_version"`

	// CachePath overrides the cache directory.
	CachePath string `yaml:"cache_path,omitempty" toml:"cache_path"`

	// AllowZeroLintableFiles makes an empty file set succeed.
	AllowZeroLintableFiles bool `yaml:"allow_zero_lintable_files,omitempty" toml:"allow_zero_lintable_files"`

	// WarningThreshold fails the run once this many warnings are reported.
	// Zero disables it.
	WarningThreshold int `yaml:"warning_threshold,omitempty" toml:"warning_threshold"`

	// Baseline is a file of known violations that are not reported again.
	Baseline string `yaml:"baseline,omitempty" toml:"baseline"`

	// WriteBaseline is where the run's violations are saved as a new baseline.
	WriteBaseline string `yaml:"write_baseline,omitempty" toml:"write_baseline"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// Rules holds raw per-rule configuration keyed by rule identifier.
	// In files these keys appear at the top level.
	Rules map[string]any `yaml:"-" toml:"-"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-correction.
	Fix bool `yaml:"-" toml:"-"`

	// DryRun shows what would be fixed without writing.
	DryRun bool `yaml:"-" toml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-" toml:"-"`

	// Jobs is the number of files linted in parallel (0 means one per CPU).
	Jobs int `yaml:"-" toml:"-"`

	// NoCache disables the result cache.
	NoCache bool `yaml:"-" toml:"-"`

	// EnableRules and DisableRules are rule IDs given on the command line.
	EnableRules  []string `yaml:"-" toml:"-"`
	DisableRules []string `yaml:"-" toml:"-"`

	// FixRules limits correction to specific rule IDs.
	FixRules []string `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Reporter: FormatText,
		Rules:    make(map[string]any),
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		RuleFormat: RuleFormatID,
		Jobs:       0,
	}
}

// RuleOptions returns the raw configuration for a rule and whether it was set.
func (c *Config) RuleOptions(ruleID string) (any, bool) {
	if c == nil || c.Rules == nil {
		return nil, false
	}
	raw, ok := c.Rules[ruleID]
	return raw, ok
}
