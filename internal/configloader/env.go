package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/swiftlint-go/pkg/config"
)

const envVarPrefix = "SWIFTLINT_"

// envVar is one SWIFTLINT_* override. set receives the raw value and the
// full variable name for error messages.
type envVar struct {
	suffix string
	help   string
	set    func(cfg *config.Config, name, value string) error
}

func stringVar(suffix, help string, dst func(*config.Config) *string) envVar {
	return envVar{suffix: suffix, help: help, set: func(cfg *config.Config, _, value string) error {
		*dst(cfg) = value
		return nil
	}}
}

func boolVar(suffix, help string, dst func(*config.Config) *bool) envVar {
	return envVar{suffix: suffix, help: help, set: func(cfg *config.Config, name, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", name, value)
		}
		*dst(cfg) = b
		return nil
	}}
}

func intVar(suffix, help string, dst func(*config.Config) *int) envVar {
	return envVar{suffix: suffix, help: help, set: func(cfg *config.Config, name, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", name, value)
		}
		*dst(cfg) = n
		return nil
	}}
}

func listVar(suffix, help string, dst func(*config.Config) *[]string) envVar {
	return envVar{suffix: suffix, help: help, set: func(cfg *config.Config, _, value string) error {
		*dst(cfg) = splitList(value)
		return nil
	}}
}

// envVars is applied in order, so later entries win when two touch the
// same field.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{
		suffix: "REPORTER",
		help:   "Reporter: xcode, json, checkstyle, sarif, summary, github-actions-logging, diff",
		set: func(cfg *config.Config, _, value string) error {
			cfg.Reporter = config.OutputFormat(value)
			return nil
		},
	},
	stringVar("SWIFT_VERSION", "Swift language version used for rule gating",
		func(c *config.Config) *string { return &c.SwiftVersion }),
	stringVar("CACHE_PATH", "Directory for the linter cache",
		func(c *config.Config) *string { return &c.CachePath }),
	boolVar("STRICT", "Treat warnings as errors: true or false",
		func(c *config.Config) *bool { return &c.Strict }),
	boolVar("LENIENT", "Treat errors as warnings: true or false",
		func(c *config.Config) *bool { return &c.Lenient }),
	boolVar("NO_CACHE", "Disable the linter cache: true or false",
		func(c *config.Config) *bool { return &c.NoCache }),
	intVar("WARNING_THRESHOLD", "Fail once this many warnings are reported (0 = off)",
		func(c *config.Config) *int { return &c.WarningThreshold }),
	stringVar("BASELINE", "Baseline file of known violations to suppress",
		func(c *config.Config) *string { return &c.Baseline }),
	intVar("JOBS", "Number of parallel workers (0 = auto)",
		func(c *config.Config) *int { return &c.Jobs }),
	listVar("INCLUDED", "Comma-separated paths to lint",
		func(c *config.Config) *[]string { return &c.Included }),
	listVar("EXCLUDED", "Comma-separated paths and globs to skip",
		func(c *config.Config) *[]string { return &c.Excluded }),
	listVar("DISABLED_RULES", "Comma-separated rule identifiers to disable",
		func(c *config.Config) *[]string { return &c.DisabledRules }),
	listVar("OPT_IN_RULES", "Comma-separated opt-in rule identifiers to enable",
		func(c *config.Config) *[]string { return &c.OptInRules }),
}

// LoadFromEnv applies SWIFTLINT_* overrides to cfg. Unset and empty
// variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		name := envVarPrefix + v.suffix
		value, ok := os.LookupEnv(name)
		if !ok || value == "" {
			continue
		}
		if err := v.set(cfg, name, value); err != nil {
			return err
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank elements.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ListEnvVars maps every supported variable name to its help text.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for _, v := range envVars {
		out[envVarPrefix+v.suffix] = v.help
	}
	return out
}
