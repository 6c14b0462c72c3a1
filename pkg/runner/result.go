package runner

import (
	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
)

// FileOutcome wraps PipelineResult with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// May be nil if the file encountered an error during processing.
	Result *lint.PipelineResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesCached is the number of files whose result came from the cache.
	FilesCached int

	// FilesSkipped is the number of files not written after a concurrent modification.
	FilesSkipped int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// FilesWithViolations is the number of files with at least one violation.
	FilesWithViolations int

	// FilesModified is the number of files written with corrections.
	FilesModified int

	// FilesAtFixCap is the number of files whose corrections did not settle.
	FilesAtFixCap int

	// Violations is the total number of violations across all files.
	Violations int

	// ViolationsBySeverity counts violations per severity.
	ViolationsBySeverity map[config.Severity]int

	// CorrectionsApplied is the total number of corrections applied.
	CorrectionsApplied int

	// RuleErrors is the number of rule failures across all files.
	RuleErrors int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any violation has error severity.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.ViolationsBySeverity[config.SeverityError] > 0
}

// HasIssues reports whether any violations were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.Violations > 0
}

// Violations returns every violation of the run in path order.
func (r *Result) Violations() []lint.Violation {
	if r == nil {
		return nil
	}
	var out []lint.Violation
	for _, f := range r.Files {
		if f.Result != nil && f.Result.FileResult != nil {
			out = append(out, f.Result.Violations...)
		}
	}
	return out
}

// Filter replaces each file's violations with what keep returns and
// recomputes Stats. It is applied after the run, so the result cache still
// holds everything the rules reported.
func (r *Result) Filter(keep func(path string, fr *lint.FileResult) []lint.Violation) {
	if r == nil || keep == nil {
		return
	}
	files := r.Files
	discovered := r.Stats.FilesDiscovered
	r.Files = make([]FileOutcome, 0, len(files))
	r.Stats = newStats()
	r.Stats.FilesDiscovered = discovered
	for _, f := range files {
		if f.Result != nil && f.Result.FileResult != nil {
			f.Result.Violations = keep(f.Path, f.Result.FileResult)
		}
		r.accumulate(f)
	}
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		ViolationsBySeverity: make(map[config.Severity]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	pr := outcome.Result
	if pr == nil {
		return
	}

	r.Stats.FilesProcessed++
	if pr.Cached {
		r.Stats.FilesCached++
	}
	if pr.Skipped {
		r.Stats.FilesSkipped++
	}
	if pr.Written {
		r.Stats.FilesModified++
	}
	if c := pr.Correction; c != nil {
		r.Stats.CorrectionsApplied += len(c.Applied)
		if c.CapReached {
			r.Stats.FilesAtFixCap++
		}
	}

	if pr.FileResult == nil {
		return
	}
	n := len(pr.Violations)
	r.Stats.Violations += n
	r.Stats.RuleErrors += len(pr.RuleErrors)
	if n > 0 {
		r.Stats.FilesWithViolations++
	}
	for _, v := range pr.Violations {
		severity := v.Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		r.Stats.ViolationsBySeverity[severity]++
	}
}
