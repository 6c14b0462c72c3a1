package cli

import (
	"errors"
	"strings"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/runner"
)

// Exit codes for swiftlint.
const (
	// ExitSuccess indicates no error-severity violations.
	ExitSuccess = 0

	// ExitLintFailure indicates error-severity violations (warnings count
	// under --strict) or files that could not be linted.
	ExitLintFailure = 1

	// ExitUsageError indicates invalid command-line usage or configuration.
	ExitUsageError = 2

	// ExitInternalError indicates an unexpected failure.
	ExitInternalError = 3
)

// ErrLintIssuesFound is returned when the run should exit with ExitLintFailure.
// It carries no message worth logging; the reporter already printed the findings.
var ErrLintIssuesFound = errors.New("lint issues found")

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// usageError marks err as a usage or configuration problem.
func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: ExitUsageError, err: err}
}

// ExitCode maps the error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrLintIssuesFound) {
		return ExitLintFailure
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// Cobra reports unknown commands and argument errors as plain errors.
	msg := err.Error()
	if strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag") ||
		strings.Contains(msg, "arg(s)") {
		return ExitUsageError
	}
	return ExitInternalError
}

// ExitCodeFromResult determines the exit code for a finished run. Strict mode
// has already promoted warnings to errors by the time violations are collected.
// A positive warningThreshold also fails the run once that many warnings
// were reported.
func ExitCodeFromResult(result *runner.Result, warningThreshold int) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasFailures() || result.Stats.FilesErrored > 0 {
		return ExitLintFailure
	}
	if WarningThresholdExceeded(result, warningThreshold) {
		return ExitLintFailure
	}
	return ExitSuccess
}

// WarningThresholdExceeded reports whether result holds at least threshold
// warnings. A threshold of zero or less never trips.
func WarningThresholdExceeded(result *runner.Result, threshold int) bool {
	if result == nil || threshold <= 0 {
		return false
	}
	return result.Stats.ViolationsBySeverity[config.SeverityWarning] >= threshold
}
