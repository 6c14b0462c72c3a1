package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Found 12 violations (2 serious, 10 warnings) in 3 files, 4 corrected".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.Violations == 0 {
		msg := s.Success.Render("Done linting! Found 0 violations") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))
		if stats.CorrectionsApplied > 0 {
			msg += ", " + s.Success.Render(fmt.Sprintf("%d corrected in %d %s",
				stats.CorrectionsApplied, stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles)))
		}
		return msg + "\n"
	}

	var parts []string

	var severityParts []string
	if errors := stats.ViolationsBySeverity[config.SeverityError]; errors > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d serious", errors)))
	}
	if warnings := stats.ViolationsBySeverity[config.SeverityWarning]; warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", warnings, plural(warnings, "warning", "warnings"))))
	}

	head := fmt.Sprintf("Done linting! Found %d %s", stats.Violations, plural(stats.Violations, "violation", "violations"))
	if len(severityParts) > 0 {
		head += " (" + strings.Join(severityParts, ", ") + ")"
	}
	head += fmt.Sprintf(" in %d %s", stats.FilesWithViolations, plural(stats.FilesWithViolations, wordFile, wordFiles))
	parts = append(parts, head)

	if stats.CorrectionsApplied > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d corrected in %d %s",
			stats.CorrectionsApplied, stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles))))
	}
	if stats.FilesAtFixCap > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s did not settle",
			stats.FilesAtFixCap, plural(stats.FilesAtFixCap, wordFile, wordFiles))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value string) {
		builder.WriteString("  " + label + strings.Repeat(" ", max(1, 20-len(label))) + value + "\n")
	}

	row("Files linted:", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesCached > 0 {
		row("From cache:", s.Dim.Render(strconv.Itoa(stats.FilesCached)))
	}
	if stats.FilesWithViolations > 0 {
		row("With violations:", s.Failure.Render(strconv.Itoa(stats.FilesWithViolations)))
	}
	if stats.FilesModified > 0 {
		row("Files corrected:", s.Success.Render(strconv.Itoa(stats.FilesModified)))
	}
	if stats.FilesErrored > 0 {
		row("Unreadable:", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}

	builder.WriteString("\n")
	row("Violations:", s.SummaryValue.Render(strconv.Itoa(stats.Violations)))
	if errors := stats.ViolationsBySeverity[config.SeverityError]; errors > 0 {
		row("  Errors:", s.Error.Render(strconv.Itoa(errors)))
	}
	if warnings := stats.ViolationsBySeverity[config.SeverityWarning]; warnings > 0 {
		row("  Warnings:", s.Warning.Render(strconv.Itoa(warnings)))
	}
	builder.WriteString("\n")

	switch {
	case stats.ViolationsBySeverity[config.SeverityError] > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case stats.ViolationsBySeverity[config.SeverityWarning] > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
