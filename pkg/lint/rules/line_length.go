package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/ruleconfig"
	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

const urlPattern = `[a-zA-Z][a-zA-Z0-9+.-]*://[^\s"'<>)]+`

// LineLengthRule checks that lines do not exceed a maximum length.
type LineLengthRule struct {
	lint.BaseRule

	levels                      ruleconfig.SeverityLevels
	ignoresURLs                 bool
	ignoresFunctionDeclarations bool
	ignoresComments             bool
	ignoresInterpolatedStrings  bool
}

// NewLineLengthRule creates the rule with thresholds 120 and 200.
func NewLineLengthRule() lint.Rule {
	return &LineLengthRule{
		BaseRule: lint.NewBaseRule(
			"line_length",
			"Line Length",
			"Lines should not span too many characters.",
			lint.KindMetrics,
		),
		levels: ruleconfig.Levels(120, 200),
	}
}

// Configuration implements lint.Rule.
func (r *LineLengthRule) Configuration() ruleconfig.Configuration {
	return ruleconfig.NewSet(r.ID()).
		Levels(&r.levels).
		Flag("ignores_urls", &r.ignoresURLs).
		Flag("ignores_function_declarations", &r.ignoresFunctionDeclarations).
		Flag("ignores_comments", &r.ignoresComments).
		Flag("ignores_interpolated_strings", &r.ignoresInterpolatedStrings)
}

// Check implements lint.TextRule.
func (r *LineLengthRule) Check(rc *lint.RuleContext, report *lint.Report) error {
	var signatures []source.Range
	if r.ignoresFunctionDeclarations {
		signatures = functionSignatures(rc)
	}

	for line := 1; line <= rc.Text.LineCount(); line++ {
		if rc.Cancelled() {
			return rc.Ctx.Err()
		}
		lineRange, ok := rc.Text.LineRange(line)
		if !ok || lineRange.Len() <= r.levels.Warning {
			continue
		}
		if r.skipLine(rc, line, lineRange, signatures) {
			continue
		}

		content := strings.TrimRight(string(rc.Text.Slice(lineRange)), "\r")
		if r.ignoresURLs {
			content = stripURLs(rc, content)
		}
		content = stripObjectLiterals(content, "#colorLiteral")
		content = stripObjectLiterals(content, "#imageLiteral")

		length := utf8.RuneCountInString(content)
		severity, limit, exceeded := r.levels.Exceeded(length)
		if !exceeded {
			continue
		}
		report.AtWithSeverity(lineRange.Start, severity,
			fmt.Sprintf("Line should be %d characters or less; currently it has %d characters", limit, length))
	}
	return nil
}

func (r *LineLengthRule) skipLine(rc *lint.RuleContext, line int, lineRange source.Range, signatures []source.Range) bool {
	if r.ignoresComments && rc.LineIsComment(line) {
		return true
	}
	if r.ignoresInterpolatedStrings {
		if i := strings.Index(string(rc.Text.Slice(lineRange)), `\(`); i >= 0 && rc.InString(lineRange.Start+i) {
			return true
		}
	}
	for _, sig := range signatures {
		if sig.Overlaps(lineRange) {
			return true
		}
	}
	return false
}

// functionSignatures returns the ranges of function and initializer
// declarations up to their bodies.
func functionSignatures(rc *lint.RuleContext) []source.Range {
	var out []source.Range
	for _, kind := range []syntax.Kind{syntax.KindFunctionDecl, syntax.KindInitializerDecl} {
		for _, decl := range rc.NodesOfKind(kind) {
			end := decl.End()
			if body := decl.FirstChildOfKind(syntax.KindCodeBlock); body.IsValid() {
				end = body.Start() + 1
			}
			out = append(out, source.Range{Start: decl.Start(), End: end})
		}
	}
	return out
}

func stripURLs(rc *lint.RuleContext, content string) string {
	re, err := rc.Regex(urlPattern)
	if err != nil {
		return content
	}
	return re.ReplaceAllString(content, "")
}

// stripObjectLiterals replaces each `delimiter(...)` with a single character.
func stripObjectLiterals(content, delimiter string) string {
	open := delimiter + "("
	for {
		start := strings.Index(content, open)
		if start < 0 {
			return content
		}
		end := strings.IndexByte(content[start:], ')')
		if end < 0 {
			return content
		}
		content = content[:start] + "#" + content[start+end+1:]
	}
}

// Examples implements lint.ExampleProvider.
func (r *LineLengthRule) Examples() lint.Examples {
	long := strings.Repeat("/", 121)
	return lint.Examples{
		NonTriggering: []string{
			strings.Repeat("/", 120) + "\n",
			strings.Repeat("#colorLiteral(red: 0.9607843161, green: 0.7058823705, blue: 0.200000003, alpha: 1)", 120) + "\n",
		},
		Triggering: []string{
			"↓" + long + "\n",
			"↓let x = " + strings.Repeat("a", 120) + "\n",
		},
	}
}
