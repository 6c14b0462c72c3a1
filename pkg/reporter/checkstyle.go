package reporter

import (
	"bufio"
	"context"
	"encoding/xml"
	"fmt"

	"github.com/yaklabco/swiftlint-go/pkg/runner"
)

// checkstyleVersion is the format version consumers such as Jenkins expect.
const checkstyleVersion = "4.3"

type checkstyleDocument struct {
	XMLName xml.Name         `xml:"checkstyle"`
	Version string           `xml:"version,attr"`
	Files   []checkstyleFile `xml:"file"`
}

type checkstyleFile struct {
	Name   string            `xml:"name,attr"`
	Errors []checkstyleError `xml:"error"`
}

type checkstyleError struct {
	Line     int    `xml:"line,attr"`
	Column   int    `xml:"column,attr"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr"`
}

// CheckstyleReporter formats results as Checkstyle XML, one file element
// per file with violations.
type CheckstyleReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewCheckstyleReporter creates a new Checkstyle reporter.
func NewCheckstyleReporter(opts Options) *CheckstyleReporter {
	return &CheckstyleReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *CheckstyleReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	doc := checkstyleDocument{Version: checkstyleVersion}
	var total int
	if result != nil {
		for _, file := range result.Files {
			if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Violations) == 0 {
				continue
			}
			entry := checkstyleFile{Name: r.opts.displayPath(file.Path)}
			for _, v := range file.Result.Violations {
				entry.Errors = append(entry.Errors, checkstyleError{
					Line:     v.Location.Line,
					Column:   v.Location.Character,
					Severity: severityName(v.Severity),
					Message:  v.Reason,
					Source:   "swiftlint.rules." + v.RuleID,
				})
				total++
			}
			doc.Files = append(doc.Files, entry)
		}
	}

	if _, err := r.bw.WriteString(xml.Header); err != nil {
		return 0, fmt.Errorf("write checkstyle: %w", err)
	}
	encoder := xml.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.Indent("", "\t")
	}
	if err := encoder.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode checkstyle: %w", err)
	}
	if err := r.bw.WriteByte('\n'); err != nil {
		return 0, fmt.Errorf("write checkstyle: %w", err)
	}
	return total, nil
}
