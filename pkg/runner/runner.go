package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/swiftlint-go/internal/logging"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
)

// Runner lints many Swift files concurrently through one lint.Pipeline.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New returns a Runner over pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers the Swift files under opts.Paths and lints them.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files, opts)
}

// RunFiles lints files with at most opts.Jobs workers (CPU count when unset).
// A failing file is recorded in its outcome and does not stop the others.
// Outcomes keep the order of files; on cancellation the files finished so far
// are returned together with the error.
func (r *Runner) RunFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)
	logger := logging.FromContext(ctx)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	outcomes := make([]FileOutcome, len(files))
	var notify sync.Mutex

	var g errgroup.Group
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcome := r.lintFile(ctx, path, pipelineOpts, logger)
			outcomes[i] = outcome
			if opts.OnFile != nil {
				notify.Lock()
				opts.OnFile(outcome)
				notify.Unlock()
			}
			return nil
		})
	}
	waitErr := g.Wait()

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if waitErr != nil {
		return result, fmt.Errorf("run cancelled: %w", waitErr)
	}
	return result, nil
}

func (r *Runner) lintFile(ctx context.Context, path string, opts lint.PipelineOptions, logger *log.Logger) FileOutcome {
	pr, err := r.Pipeline.ProcessFile(ctx, path, opts)
	switch {
	case err == nil:
	case lint.IsPipelineError(err), ctx.Err() != nil:
		logger.Debug("file not linted", logging.FieldPath, path, logging.FieldError, err)
		return FileOutcome{Path: path, Error: err}
	default:
		logger.Error("file not linted", logging.FieldPath, path, logging.FieldError, err)
		return FileOutcome{Path: path, Error: err}
	}

	if pr.Skipped {
		logger.Warn("corrections not written", logging.FieldPath, path, logging.FieldReason, pr.SkipReason)
	} else {
		logger.Debug("file done", logging.FieldPath, path, logging.FieldStatus, pr.Summary())
	}
	return FileOutcome{Path: path, Result: pr}
}
