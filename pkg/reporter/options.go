package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/swiftlint-go/pkg/analysis"
	"github.com/yaklabco/swiftlint-go/pkg/config"
)

const bufWriterSize = 64 * 1024

// Options configures every reporter. Fields a format does not use are
// ignored.
type Options struct {
	Writer io.Writer

	// ErrorWriter receives the trailing summary line of the text format so
	// stdout stays parseable.
	ErrorWriter io.Writer

	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowContext prints the offending source line under each text entry.
	ShowContext bool
	ShowSummary bool

	// Compact disables indentation in JSON, SARIF and checkstyle output.
	Compact bool

	RuleFormat config.RuleFormat

	// WorkingDir, when set, makes reported paths relative to it.
	WorkingDir string

	// Rules describes the enabled rules for the summary and SARIF formats.
	Rules analysis.Catalog

	ToolVersion string
}

// DefaultOptions writes text to stdout with a summary on stderr.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
		RuleFormat:  config.RuleFormatID,
		ToolVersion: "dev",
	}
}

func (o Options) displayPath(path string) string {
	return analysis.RelativePath(path, o.WorkingDir)
}
