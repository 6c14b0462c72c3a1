package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/runner"
)

// JSONViolation is one element of the JSON report array.
type JSONViolation struct {
	Character int    `json:"character"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	Reason    string `json:"reason"`
	RuleID    string `json:"rule_id"`
	Severity  string `json:"severity"`
	Type      string `json:"type"`
}

// JSONReporter formats results as a JSON array of violations.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return len(output), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) []JSONViolation {
	output := make([]JSONViolation, 0)
	eachViolation(result, func(file runner.FileOutcome, i int) {
		v := file.Result.Violations[i]
		output = append(output, JSONViolation{
			Character: v.Location.Character,
			File:      r.opts.displayPath(file.Path),
			Line:      v.Location.Line,
			Reason:    v.Reason,
			RuleID:    v.RuleID,
			Severity:  titleSeverity(v.Severity),
			Type:      v.RuleName,
		})
	})
	return output
}

// titleSeverity returns "Warning" or "Error".
func titleSeverity(s config.Severity) string {
	if s == config.SeverityError {
		return "Error"
	}
	return "Warning"
}

// severityName returns "warning" or "error", defaulting empty to warning.
func severityName(s config.Severity) string {
	if s == config.SeverityError {
		return string(config.SeverityError)
	}
	return string(config.SeverityWarning)
}
