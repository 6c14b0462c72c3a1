// Package reporter formats lint results for terminals, editors and CI systems.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/swiftlint-go/pkg/analysis"
	"github.com/yaklabco/swiftlint-go/pkg/runner"
)

// Reporter writes a run's violations and returns how many it reported.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer presents an aggregated analysis.Report rather than raw results.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// analyzed adapts a Renderer into a Reporter by running the aggregation
// first.
type analyzed struct {
	renderer Renderer
	opts     analysis.Options
}

var _ Reporter = analyzed{}

func (a analyzed) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func withAnalysis(r Renderer, opts Options) Reporter {
	return analyzed{renderer: r, opts: analysis.Options{
		IncludeByFile: true,
		IncludeByRule: true,
		SortBy:        analysis.SortByCount,
		SortDesc:      true,
		RuleFormat:    opts.RuleFormat,
		WorkingDir:    opts.WorkingDir,
		Rules:         opts.Rules,
	}}
}

//nolint:gochecknoglobals // Read-only lookup table.
var constructors = map[Format]func(Options) Reporter{
	FormatText:          func(o Options) Reporter { return NewTextReporter(o) },
	FormatJSON:          func(o Options) Reporter { return NewJSONReporter(o) },
	FormatCheckstyle:    func(o Options) Reporter { return NewCheckstyleReporter(o) },
	FormatSARIF:         func(o Options) Reporter { return NewSARIFReporter(o) },
	FormatGitHubActions: func(o Options) Reporter { return NewGitHubActionsReporter(o) },
	FormatDiff:          func(o Options) Reporter { return NewDiffReporter(o) },
	FormatSummary:       func(o Options) Reporter { return withAnalysis(NewSummaryRenderer(o), o) },
}

// New returns the reporter for opts.Format, defaulting to xcode-style text
// on stdout.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}
	newReporter, ok := constructors[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return newReporter(opts), nil
}

// eachViolation calls fn for every violation in path order.
func eachViolation(result *runner.Result, fn func(file runner.FileOutcome, index int)) {
	if result == nil {
		return
	}
	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		for i := range file.Result.Violations {
			fn(file, i)
		}
	}
}
