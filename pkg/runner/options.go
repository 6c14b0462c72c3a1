// Package runner provides multi-file linting orchestration.
package runner

import "github.com/yaklabco/swiftlint-go/pkg/config"

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// the Included and Excluded patterns.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Included limits discovery to these paths or glob patterns, relative
	// to WorkingDir. Empty means everything under Paths.
	Included []string

	// Excluded paths or glob patterns are skipped, relative to WorkingDir.
	Excluded []string

	// SkipVendored skips dependency directories such as Pods and Carthage.
	SkipVendored bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config

	// OnFile, if set, is called as each file finishes, in completion order.
	// Calls are serialized.
	OnFile func(FileOutcome)
}

// OptionsFromConfig fills Included, Excluded and Jobs from cfg.
func OptionsFromConfig(cfg *config.Config, paths []string, workDir string) Options {
	opts := Options{Paths: paths, WorkingDir: workDir, Config: cfg, SkipVendored: true}
	if cfg != nil {
		opts.Included = cfg.Included
		opts.Excluded = cfg.Excluded
		opts.Jobs = cfg.Jobs
	}
	return opts
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
