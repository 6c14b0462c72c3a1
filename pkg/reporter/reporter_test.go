package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/fix"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/reporter"
	"github.com/yaklabco/swiftlint-go/pkg/runner"
	"github.com/yaklabco/swiftlint-go/pkg/source"
)

const workDir = "/work"

func sampleResult() *runner.Result {
	castText := source.NewString("/work/Sources/Cast.swift", "import UIKit\nlet y = z as! Int\n")
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "/work/Sources/Cast.swift",
				Result: &lint.PipelineResult{FileResult: &lint.FileResult{
					Text: castText,
					Violations: []lint.Violation{{
						RuleID:          "force_cast",
						RuleName:        "Force Cast",
						RuleDescription: "Force casts should be avoided",
						Severity:        config.SeverityError,
						Reason:          "Force casts should be avoided",
						Location:        source.Location{Offset: 23, Line: 2, Column: 11, Character: 11},
					}},
				}},
			},
			{
				Path: "/work/Sources/Clean.swift",
				Result: &lint.PipelineResult{FileResult: &lint.FileResult{
					Text: source.NewString("/work/Sources/Clean.swift", "let a = 1\n"),
				}},
			},
			{
				Path: "/work/Sources/Todo.swift",
				Result: &lint.PipelineResult{FileResult: &lint.FileResult{
					Violations: []lint.Violation{{
						RuleID:   "todo",
						RuleName: "Todo",
						Reason:   "TODOs should be resolved (fix, later)",
						Location: source.Location{Line: 1, Column: 4, Character: 4},
					}},
				}},
			},
		},
		Stats: runner.Stats{
			FilesProcessed:       3,
			FilesWithViolations:  2,
			Violations:           2,
			ViolationsBySeverity: map[config.Severity]int{config.SeverityError: 1, config.SeverityWarning: 1},
		},
	}
}

func report(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()
	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"
	opts.WorkingDir = workDir
	rep, err := reporter.New(opts)
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), count
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "xcode", want: reporter.FormatText},
		{input: "json", want: reporter.FormatJSON},
		{input: "checkstyle", want: reporter.FormatCheckstyle},
		{input: "sarif", want: reporter.FormatSARIF},
		{input: "summary", want: reporter.FormatSummary},
		{input: "github-actions-logging", want: reporter.FormatGitHubActions},
		{input: "diff", want: reporter.FormatDiff},
		{input: "emoji", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "github-actions-logging")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range config.OutputFormats() {
		rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: format})
		require.NoError(t, err, format)
		assert.NotNil(t, rep)
	}

	_, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: "html"})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatText}, sampleResult())

	assert.Equal(t, 2, count)
	assert.Equal(t,
		"Sources/Cast.swift:2:11: error: Force Cast Violation: Force casts should be avoided (force_cast)\n"+
			"Sources/Todo.swift:1:4: warning: Todo Violation: TODOs should be resolved (fix, later) (todo)\n",
		out)
}

func TestTextReporter_ContextAndSummary(t *testing.T) {
	t.Parallel()

	var out, summary bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer:      &out,
		ErrorWriter: &summary,
		Format:      reporter.FormatText,
		Color:       "never",
		ShowContext: true,
		ShowSummary: true,
	})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "    let y = z as! Int\n              ^\n")
	assert.Equal(t, "Done linting! Found 2 violations (1 serious, 1 warning) in 2 files\n", summary.String())
}

func TestTextReporter_FileError(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{{Path: "/work/Gone.swift", Error: lint.ErrFileNotFound}}}
	out, count := report(t, reporter.Options{Format: reporter.FormatText}, result)

	assert.Zero(t, count)
	assert.Equal(t, "Gone.swift: error: file not found\n", out)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatJSON}, sampleResult())
	assert.Equal(t, 2, count)

	var got []reporter.JSONViolation
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []reporter.JSONViolation{
		{Character: 11, File: "Sources/Cast.swift", Line: 2, Reason: "Force casts should be avoided", RuleID: "force_cast", Severity: "Error", Type: "Force Cast"},
		{Character: 4, File: "Sources/Todo.swift", Line: 1, Reason: "TODOs should be resolved (fix, later)", RuleID: "todo", Severity: "Warning", Type: "Todo"},
	}, got)

	empty, _ := report(t, reporter.Options{Format: reporter.FormatJSON, Compact: true}, nil)
	assert.Equal(t, "[]\n", empty)
}

func TestCheckstyleReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatCheckstyle}, sampleResult())
	assert.Equal(t, 2, count)
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))

	var doc struct {
		Version string `xml:"version,attr"`
		Files   []struct {
			Name   string `xml:"name,attr"`
			Errors []struct {
				Line     int    `xml:"line,attr"`
				Column   int    `xml:"column,attr"`
				Severity string `xml:"severity,attr"`
				Source   string `xml:"source,attr"`
			} `xml:"error"`
		} `xml:"file"`
	}
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "4.3", doc.Version)
	require.Len(t, doc.Files, 2)
	assert.Equal(t, "Sources/Cast.swift", doc.Files[0].Name)
	assert.Equal(t, 2, doc.Files[0].Errors[0].Line)
	assert.Equal(t, 11, doc.Files[0].Errors[0].Column)
	assert.Equal(t, "error", doc.Files[0].Errors[0].Severity)
	assert.Equal(t, "swiftlint.rules.force_cast", doc.Files[0].Errors[0].Source)
}

func TestGitHubActionsReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatGitHubActions}, sampleResult())
	assert.Equal(t, 2, count)
	assert.Equal(t,
		"::error file=Sources/Cast.swift,line=2,col=11::Force casts should be avoided (force_cast)\n"+
			"::warning file=Sources/Todo.swift,line=1,col=4::TODOs should be resolved (fix, later) (todo)\n",
		out)
}

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatSARIF, ToolVersion: "1.2.3"}, sampleResult())
	assert.Equal(t, 2, count)

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]

	assert.Equal(t, "2.1.0", doc.Version)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	assert.Len(t, run.AutomationDetails.GUID, 36)
	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "force_cast", run.Tool.Driver.Rules[0].ID)
	require.Len(t, run.Results, 2)
	assert.Equal(t, "warning", run.Results[1].Level)
	assert.Equal(t, 1, run.Results[1].RuleIndex)
	assert.Equal(t, "Sources/Todo.swift", run.Results[1].Locations[0].PhysicalLocation.ArtifactLocation.URI)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	original := []byte("let x: Array<Int> = []\n")
	corrected := []byte("let x: [Int] = []\n")
	result := &runner.Result{Files: []runner.FileOutcome{
		{
			Path: "/work/A.swift",
			Result: &lint.PipelineResult{
				FileResult: &lint.FileResult{},
				Diff:       fix.Unified("/work/A.swift", original, corrected),
				Correction: &lint.CorrectionResult{Applied: []fix.Correction{
					{RuleID: "syntactic_sugar"}, {RuleID: "syntactic_sugar"},
				}},
			},
		},
		{Path: "/work/B.swift", Result: &lint.PipelineResult{FileResult: &lint.FileResult{}}},
	}}

	out, count := report(t, reporter.Options{Format: reporter.FormatDiff, ShowSummary: true}, result)

	assert.Equal(t, 1, count)
	assert.Contains(t, out, "# corrected by syntactic_sugar\ndiff --git a/A.swift b/A.swift\n--- a/A.swift\n+++ b/A.swift\n")
	assert.Contains(t, out, "-let x: Array<Int> = []\n+let x: [Int] = []\n")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 1 deletion(-)")
	assert.NotContains(t, out, "B.swift")

	empty, count := report(t, reporter.Options{Format: reporter.FormatDiff}, nil)
	assert.Empty(t, empty)
	assert.Zero(t, count)
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowSummary)
	assert.Equal(t, config.RuleFormatID, opts.RuleFormat)
}
