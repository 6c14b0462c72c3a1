package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/swiftlint-go/pkg/config"
)

// Format represents an output format. It is the same value the
// configuration's reporter key holds.
type Format = config.OutputFormat

// Output formats supported by the reporter.
const (
	FormatText          = config.FormatText
	FormatJSON          = config.FormatJSON
	FormatCheckstyle    = config.FormatCheckstyle
	FormatSARIF         = config.FormatSARIF
	FormatSummary       = config.FormatSummary
	FormatGitHubActions = config.FormatGitHubActions
	FormatDiff          = config.FormatDiff
)

// ParseFormat parses a format string, returning an error for unknown formats.
// "text" is accepted as another name for the xcode format.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "", "text":
		return FormatText, nil
	}
	f := Format(formatStr)
	if !f.IsValid() {
		names := make([]string, 0, len(config.OutputFormats()))
		for _, known := range config.OutputFormats() {
			names = append(names, string(known))
		}
		return "", fmt.Errorf("unknown format %q; valid formats: %s", formatStr, strings.Join(names, ", "))
	}
	return f, nil
}
