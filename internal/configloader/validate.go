package configloader

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/fsutil"
)

// ValidationError is one problem with a configuration value. Field is the
// config key (for example "excluded[2]"), FilePath the file it came from
// when known.
type ValidationError struct {
	Field    string
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.FilePath != "" {
		msg = e.FilePath + ": " + msg
	}
	return msg
}

// ValidationResult splits findings into errors, which stop the run with exit
// status 2, and warnings, which are logged.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks the top-level options of a configuration. Per-rule
// configuration is checked when rules are resolved.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Reporter != "" && !cfg.Reporter.IsValid() {
		names := make([]string, 0, len(config.OutputFormats()))
		for _, f := range config.OutputFormats() {
			names = append(names, string(f))
		}
		result.Errors = append(result.Errors, ValidationError{
			Field:   config.KeyReporter,
			Value:   cfg.Reporter,
			Message: fmt.Sprintf("invalid reporter %q; must be one of: %s", cfg.Reporter, strings.Join(names, ", ")),
		})
	}

	if cfg.WarningThreshold < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   config.KeyWarningLimit,
			Value:   cfg.WarningThreshold,
			Message: "warning_threshold must be >= 0 (0 disables it)",
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	switch mode := fsutil.BackupMode(cfg.Backups.Mode); mode {
	case "", fsutil.BackupModeSidecar, fsutil.BackupModeNone:
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   config.KeyBackups + ".mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be %s or %s", mode, fsutil.BackupModeSidecar, fsutil.BackupModeNone),
		})
	}

	if cfg.Strict && cfg.Lenient {
		result.Warnings = append(result.Warnings, ValidationError{
			Message: "both strict and lenient are set; strict takes precedence",
		})
	}

	validatePatterns(config.KeyIncluded, cfg.Included, result)
	validatePatterns(config.KeyExcluded, cfg.Excluded, result)

	return result
}

// validatePatterns checks that glob entries in included or excluded compile.
func validatePatterns(field string, patterns []string, result *ValidationResult) {
	for i, p := range patterns {
		p = path.Clean(filepath.ToSlash(p))
		if !strings.ContainsAny(p, "*?[{") {
			continue
		}
		if _, err := glob.Compile(p, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Value:   p,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}
