package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/swiftlint-go/internal/ui/pretty"
	"github.com/yaklabco/swiftlint-go/pkg/runner"
	"github.com/yaklabco/swiftlint-go/pkg/source"
)

// TextReporter formats results in the Xcode diagnostic format, one
// violation per line, so editors can jump to each location.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var total int
	if result != nil {
		for _, file := range result.Files {
			if file.Error != nil {
				fmt.Fprintf(r.bw, "%s: %s\n",
					r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
					r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
				)
				continue
			}
			if file.Result == nil || file.Result.FileResult == nil {
				continue
			}

			path := r.opts.displayPath(file.Path)
			for i := range file.Result.Violations {
				v := &file.Result.Violations[i]
				var sourceLine string
				if r.opts.ShowContext {
					sourceLine = lineOf(file.Result.Text, v.Location.Line)
				}
				fmt.Fprint(r.bw, r.styles.FormatViolation(path, v, sourceLine, r.opts.RuleFormat))
				total++
			}
		}
	}

	if r.opts.ShowSummary && result != nil {
		summaryOut := io.Writer(r.bw)
		if r.opts.ErrorWriter != nil {
			summaryOut = r.opts.ErrorWriter
		}
		fmt.Fprint(summaryOut, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return total, nil
}

// lineOf returns the content of a 1-based line without its terminator.
func lineOf(text *source.Text, line int) string {
	if text == nil {
		return ""
	}
	return string(text.LineContent(line))
}
