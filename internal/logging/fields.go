package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldReason     = "reason"
	FieldStatus     = "status"

	// Run options.
	FieldFix          = "fix"
	FieldDryRun       = "dry_run"
	FieldJobs         = "jobs"
	FieldReporter     = "reporter"
	FieldSwiftVersion = "swift_version"
	FieldCache        = "cache"
	FieldBaseline     = "baseline"
	FieldThreshold    = "threshold"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesCached     = "files_cached"
	FieldViolations      = "violations"
	FieldWarnings        = "warnings"
	FieldSuppressed      = "suppressed"
	FieldCorrections     = "corrections"
	FieldFilesModified   = "files_modified"
	FieldPasses          = "passes"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldRule  = "rule"
	FieldRules = "rules"
)
