package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
)

// XcodeLine formats a violation the way Xcode parses build diagnostics:
//
//	path:line:character: warning: Rule Name Violation: reason (rule_id)
//
// path is passed separately so callers can shorten it.
func XcodeLine(path string, v *lint.Violation) string {
	severity := v.Severity
	if severity == "" {
		severity = config.SeverityWarning
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s Violation: %s (%s)",
		path, v.Location.Line, v.Location.Character, severity, v.RuleName, v.Reason, v.RuleID)
}

// FormatViolation formats a violation for terminal output. The layout
// matches XcodeLine; styling only adds color. When sourceLine is set, the
// line is echoed below with a caret under the violation.
func (s *Styles) FormatViolation(path string, v *lint.Violation, sourceLine string, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d:", s.FilePath.Render(path), v.Location.Line, v.Location.Character)
	name := v.RuleName
	if name == "" {
		name = v.RuleID
	}
	ruleIdentifier := config.FormatRuleID(ruleFormat, v.RuleID, v.RuleName)

	fmt.Fprintf(&builder, "%s %s: %s %s (%s)\n",
		location,
		s.FormatSeverity(v.Severity),
		s.RuleName.Render(name+" Violation:"),
		s.Reason.Render(v.Reason),
		s.RuleID.Render(ruleIdentifier),
	)

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, v.Location.Column))
	}
	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	default:
		return s.Warning.Render("warning")
	}
}

// FormatSourceContext formats the source line with a caret marker. column
// is the 1-based byte column; the caret is placed by display width so it
// lines up under wide characters.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "    "
	line = strings.TrimRight(line, "\r\n")
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		prefix := line
		if column-1 < len(line) {
			prefix = line[:column-1]
		}
		pad := runewidth.StringWidth(strings.ReplaceAll(prefix, "\t", "    "))
		builder.WriteString(indent + strings.Repeat(" ", pad) + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		word := "violations"
		if issueCount == 1 {
			word = "violation"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, word))
	}
	return header
}
