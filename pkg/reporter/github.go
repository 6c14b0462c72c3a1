package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/swiftlint-go/pkg/runner"
)

// GitHubActionsReporter emits workflow commands that GitHub Actions turns
// into inline annotations.
type GitHubActionsReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewGitHubActionsReporter creates a new GitHub Actions logging reporter.
func NewGitHubActionsReporter(opts Options) *GitHubActionsReporter {
	return &GitHubActionsReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *GitHubActionsReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var total int
	eachViolation(result, func(file runner.FileOutcome, i int) {
		v := file.Result.Violations[i]
		fmt.Fprintf(r.bw, "::%s file=%s,line=%d,col=%d::%s (%s)\n",
			severityName(v.Severity),
			escapeProperty(r.opts.displayPath(file.Path)),
			v.Location.Line,
			v.Location.Character,
			escapeData(v.Reason),
			v.RuleID,
		)
		total++
	})
	return total, nil
}

// escapeData escapes a workflow command message.
func escapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}

// escapeProperty escapes a workflow command property value.
func escapeProperty(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C").Replace(s)
}
