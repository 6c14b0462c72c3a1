package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/runner"
)

// RelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func RelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	ruleMap   map[string]*RuleAnalysis
	fileMap   map[string]*FileAnalysis
	ruleFiles map[string]map[string]bool
	fileRules map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		ruleMap:   make(map[string]*RuleAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

// normalizeSeverity returns the severity, defaulting to warning.
func normalizeSeverity(sev config.Severity) config.Severity {
	if sev == "" {
		return config.SeverityWarning
	}
	return sev
}

func (ctx *analysisContext) fileAnalysis(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileRules[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) ruleAnalysis(v *lint.Violation, meta RuleMeta) *RuleAnalysis {
	if _, ok := ctx.ruleMap[v.RuleID]; !ok {
		name := v.RuleName
		if name == "" {
			name = meta.Name
		}
		ctx.ruleMap[v.RuleID] = &RuleAnalysis{
			RuleID:   v.RuleID,
			RuleName: name,
			OptIn:    meta.OptIn,
			Custom:   meta.Custom,
			Fixable:  meta.Fixable,
		}
		ctx.ruleFiles[v.RuleID] = make(map[string]bool)
	}
	return ctx.ruleMap[v.RuleID]
}

func (ctx *analysisContext) buildByRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for ruleID, ra := range ctx.ruleMap {
		for f := range ctx.ruleFiles[ruleID] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	sortRuleAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	var result []FileAnalysis
	for path, fa := range ctx.fileMap {
		if fa.Issues == 0 {
			continue
		}
		for r := range ctx.fileRules[path] {
			fa.Rules = append(fa.Rules, r)
		}
		slices.Sort(fa.Rules)
		result = append(result, *fa)
	}
	sortFileAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through violations to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{Timestamp: time.Now()}
	if result == nil {
		return report
	}

	ctx := newAnalysisContext()
	report.Totals.Corrections = result.Stats.CorrectionsApplied

	for _, file := range result.Files {
		report.Totals.Files++
		if file.Error != nil {
			report.Totals.FilesErrored++
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		if len(file.Result.Violations) > 0 {
			report.Totals.FilesWithIssues++
		}

		displayPath := RelativePath(file.Path, opts.WorkingDir)
		fa := ctx.fileAnalysis(displayPath)

		for i := range file.Result.Violations {
			v := &file.Result.Violations[i]
			meta := opts.Rules[v.RuleID]
			severity := normalizeSeverity(v.Severity)

			report.Totals.Issues++
			fa.Issues++
			ra := ctx.ruleAnalysis(v, meta)
			ra.Issues++
			switch severity {
			case config.SeverityError:
				report.Totals.Errors++
				fa.Errors++
				ra.Errors++
			default:
				report.Totals.Warnings++
				fa.Warnings++
				ra.Warnings++
			}
			if meta.Fixable {
				report.Totals.Fixable++
			}

			ctx.fileRules[displayPath][v.RuleID] = true
			ctx.ruleFiles[v.RuleID][displayPath] = true

			if opts.IncludeViolations {
				report.Violations = append(report.Violations, ViolationEntry{
					FilePath:  displayPath,
					RuleID:    v.RuleID,
					RuleName:  ra.RuleName,
					Severity:  string(severity),
					Reason:    v.Reason,
					Line:      v.Location.Line,
					Character: v.Location.Character,
					Fixable:   meta.Fixable,
				})
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = ctx.buildByRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}
	return report
}

// counts is the part of an analysis row the sort functions compare.
type counts struct {
	key                      string
	issues, errors, warnings int
}

func compareCounts(left, right counts, sortBy SortField, desc bool) int {
	switch sortBy {
	case SortByAlpha:
		// Alphabetical sorting is always ascending (A-Z)
		return cmp.Compare(left.key, right.key)
	case SortBySeverity:
		// Errors first, then warnings (always descending by severity)
		result := cmp.Compare(right.errors, left.errors)
		if result == 0 {
			result = cmp.Compare(right.warnings, left.warnings)
		}
		if result == 0 {
			result = cmp.Compare(right.issues, left.issues)
		}
		if result == 0 {
			result = cmp.Compare(left.key, right.key)
		}
		return result
	default: // SortByCount
		result := cmp.Compare(left.issues, right.issues)
		if desc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(left.key, right.key)
		}
		return result
	}
}

func sortRuleAnalysis(rules []RuleAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(rules, func(left, right RuleAnalysis) int {
		return compareCounts(
			counts{left.RuleID, left.Issues, left.Errors, left.Warnings},
			counts{right.RuleID, right.Issues, right.Errors, right.Warnings},
			sortBy, desc)
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		return compareCounts(
			counts{left.Path, left.Issues, left.Errors, left.Warnings},
			counts{right.Path, right.Issues, right.Errors, right.Warnings},
			sortBy, desc)
	})
}
