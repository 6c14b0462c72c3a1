package analysis

import "time"

// Report is one lint run folded into the views renderers draw from: the flat
// violation list, per-file and per-rule tallies, and run totals.
type Report struct {
	Violations []ViolationEntry
	ByFile     []FileAnalysis
	ByRule     []RuleAnalysis
	Totals     Totals
	Timestamp  time.Time
}

// ViolationEntry is one violation with its path relative to the working directory.
type ViolationEntry struct {
	FilePath  string
	RuleID    string
	RuleName  string
	Severity  string
	Reason    string
	Line      int
	Character int
	Fixable   bool
}

// Totals counts a whole run. Errors are what SwiftLint calls serious violations.
type Totals struct {
	Files           int
	FilesWithIssues int
	FilesErrored    int
	Issues          int
	Errors          int
	Warnings        int
	Fixable         int
	Corrections     int
}

// HasIssues reports whether the run found any violation.
func (t Totals) HasIssues() bool { return t.Issues > 0 }

// FileAnalysis tallies one file.
type FileAnalysis struct {
	Path     string
	Issues   int
	Errors   int
	Warnings int
	Rules    []string
}

// RuleAnalysis tallies one rule across the run. Custom marks the sub-rules
// declared under custom_rules.
type RuleAnalysis struct {
	RuleID   string
	RuleName string
	OptIn    bool
	Custom   bool
	Fixable  bool
	Issues   int
	Errors   int
	Warnings int
	Files    []string
}
