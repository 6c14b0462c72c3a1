package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/fix"
	"github.com/yaklabco/swiftlint-go/pkg/fsutil"
	"github.com/yaklabco/swiftlint-go/pkg/source"
)

// Errors a file can fail with, matched with errors.Is. Anything else that
// escapes ProcessFile is unexpected.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineResult is the outcome for one Swift file. The embedded FileResult
// holds the violations of the final text, that is after corrections when
// fixing.
type PipelineResult struct {
	*FileResult

	Path string

	// OriginalInfo snapshots the file as read; nil for in-memory content.
	OriginalInfo *fsutil.FileInfo

	// Correction is nil unless fixing.
	Correction *CorrectionResult

	// Modified is set when corrections changed the text; ModifiedContent
	// then holds the corrected bytes.
	Modified        bool
	ModifiedContent []byte

	// Diff is set for dry runs that would change the file.
	Diff *fix.Diff

	// Skipped files were not written because they changed on disk while
	// their corrections were computed.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool

	// Cached is set when Violations came from the result cache. CacheError
	// records a failed store, which does not fail the file.
	Cached     bool
	CacheError error
}

// Summary is a short status for per-file log lines.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "corrected (backup created)"
	case pr.Written:
		return "corrected"
	case pr.Modified:
		return "corrections pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "violations found"
	default:
		return "ok"
	}
}

// PipelineOptions selects between linting, fixing and dry runs.
type PipelineOptions struct {
	Fix    bool
	DryRun bool
	Backup fsutil.BackupConfig

	// StrictRaceDetection re-hashes the file before writing corrections
	// instead of trusting its size and modification time.
	StrictRaceDetection bool
}

// DefaultPipelineOptions lints only, with strict race detection for when
// fixing is turned on.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// ResultCache stores the violations of a file keyed by its content hash.
// Implementations must be safe for concurrent use.
type ResultCache interface {
	Lookup(path string, hash [32]byte) ([]Violation, bool)
	Store(path string, hash [32]byte, violations []Violation) error
}

// Pipeline orchestrates the safe processing of a single file.
type Pipeline struct {
	// Engine parses, lints and corrects.
	Engine *Engine

	// Cache, when set, skips linting files whose content is unchanged.
	// It is bypassed while fixing.
	Cache ResultCache
}

// NewPipeline creates a new pipeline with the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile lints the Swift file at path. Unchanged files are answered
// from the cache when linting only. When fixing, the corrected text is linted
// and then, unless this is a dry run, written back atomically after an
// optional backup, provided the file did not change on disk meanwhile.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*PipelineResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	useCache := p.Cache != nil && !opts.Fix
	if useCache {
		if vs, ok := p.Cache.Lookup(path, info.Hash); ok {
			return &PipelineResult{
				FileResult:   &FileResult{Text: source.New(path, content), Violations: vs, RuleErrors: map[string]error{}},
				Path:         path,
				OriginalInfo: info,
				Cached:       true,
			}, nil
		}
	}

	result, err := p.ProcessContent(ctx, source.New(path, content), opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info
	if useCache && len(result.RuleErrors) == 0 {
		result.CacheError = p.Cache.Store(path, info.Hash, result.Violations)
	}
	if !result.Modified || opts.DryRun {
		return result, nil
	}

	modified, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, err
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return result, nil
}

// ProcessContent corrects and lints in-memory text without file I/O.
func (p *Pipeline) ProcessContent(ctx context.Context, text *source.Text, opts PipelineOptions) (*PipelineResult, error) {
	result := &PipelineResult{Path: text.Path()}

	final := text
	if opts.Fix {
		correction, err := p.Engine.Correct(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		result.Correction = correction
		if correction.Changed() {
			final = correction.Text
			result.Modified = true
			result.ModifiedContent = final.Bytes()
		}
	}

	fileResult, err := p.Engine.LintFile(ctx, final)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
	result.FileResult = fileResult

	if opts.DryRun && result.Modified {
		result.Diff = fix.Unified(text.Path(), text.Bytes(), final.Bytes())
	}
	return result, nil
}

// checkModified reports whether a file changed on disk since it was read.
func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	modified, err := info.Changed(ctx, strict)
	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return modified, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure)
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:                 cfg.Fix,
		DryRun:              cfg.DryRun,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
	}
}
