package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/swiftlint-go/internal/configloader"
	"github.com/yaklabco/swiftlint-go/internal/logging"
	"github.com/yaklabco/swiftlint-go/pkg/analysis"
	"github.com/yaklabco/swiftlint-go/pkg/baseline"
	"github.com/yaklabco/swiftlint-go/pkg/cache"
	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/metrics"
	"github.com/yaklabco/swiftlint-go/pkg/parser/swift"
	"github.com/yaklabco/swiftlint-go/pkg/reporter"
	"github.com/yaklabco/swiftlint-go/pkg/runner"
)

// defaultDebounce is how long watch mode waits for changes to settle.
const defaultDebounce = 300 * time.Millisecond

type lintFlags struct {
	reporter    string
	enable      []string
	disable     []string
	fixRules    []string
	ruleFormat  string
	context     bool
	compact     bool
	metricsFile string
	watch       bool
	debounce    time.Duration
}

func newLintCommand(global *globalFlags, info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Swift files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags, global, info)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint Swift files for style and correctness issues.

By default, lints every .swift file under the current directory, honoring
the included and excluded paths of the configuration. Specify paths to lint
specific files or directories.

Examples:
  swiftlint lint                       # Lint current directory
  swiftlint lint Sources/              # Lint one directory
  swiftlint lint --fix                 # Correct violations in place
  swiftlint lint --fix --dry-run       # Print corrections as a diff
  swiftlint lint --reporter json       # Output as JSON for CI
  swiftlint lint --strict              # Treat warnings as errors
  swiftlint lint --watch               # Re-lint when files change`

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "correct violations in place")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "print corrections as a diff without writing files")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "upgrade warnings to errors")
	cmd.Flags().BoolVar(&cfg.Lenient, "lenient", false, "downgrade errors to warnings")
	cmd.Flags().StringVar(&flags.reporter, "reporter", "",
		"output format: "+strings.Join(reporterNames(), ", ")+" (default xcode)")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of files linted in parallel (0 = one per CPU)")
	cmd.Flags().BoolVar(&cfg.NoCache, "no-cache", false, "do not read or write the result cache")
	cmd.Flags().StringVar(&cfg.CachePath, "cache-path", "", "directory for the result cache")
	cmd.Flags().StringVar(&cfg.SwiftVersion, "swift-version", "", "Swift language version used to gate rules")
	cmd.Flags().BoolVar(&cfg.AllowZeroLintableFiles, "allow-zero-lintable-files", false,
		"succeed when no Swift files are found")
	cmd.Flags().StringVar(&cfg.Baseline, "baseline", "", "do not report violations recorded in this baseline file")
	cmd.Flags().StringVar(&cfg.WriteBaseline, "write-baseline", "", "save this run's violations as a baseline file")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit corrections to specific rule IDs")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatID),
		"rule identifier format in output: id, name, or combined")
	cmd.Flags().BoolVar(&flags.context, "context", false, "echo the source line under each violation")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify json, checkstyle and sarif output")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus metrics for the run to this file")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "lint again whenever a Swift or configuration file changes")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", defaultDebounce, "quiet period before re-linting in watch mode")
}

func reporterNames() []string {
	formats := config.OutputFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

func runLint(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *lintFlags, global *globalFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if err := applyLintFlags(cmd, cliCfg, flags); err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	paths, err := absPaths(workDir, args)
	if err != nil {
		return err
	}

	session, err := newLintSession(ctx, cmd, cliCfg, flags, global, info, workDir)
	if err != nil {
		return err
	}

	if flags.watch {
		return watchLint(ctx, session, paths, flags.debounce, func() (*lintSession, error) {
			return newLintSession(ctx, cmd, cliCfg, flags, global, info, workDir)
		})
	}

	result, err := session.run(ctx, paths)
	if err != nil {
		return err
	}
	if ExitCodeFromResult(result, session.cfg.WarningThreshold) != ExitSuccess {
		logger.Debug("lint failed", logging.FieldViolations, result.Stats.Violations)
		return ErrLintIssuesFound
	}
	return nil
}

// applyLintFlags copies flag values that need validation into the CLI config.
func applyLintFlags(cmd *cobra.Command, cliCfg *config.Config, flags *lintFlags) error {
	if cliCfg.DryRun {
		cliCfg.Fix = true
	}
	cliCfg.EnableRules = flags.enable
	cliCfg.DisableRules = flags.disable
	cliCfg.FixRules = flags.fixRules

	switch {
	case cmd.Flags().Changed("reporter"):
		format, err := reporter.ParseFormat(flags.reporter)
		if err != nil {
			return usageError(err)
		}
		cliCfg.Reporter = format
	case cliCfg.DryRun:
		cliCfg.Reporter = config.FormatDiff
	}

	switch format := config.RuleFormat(flags.ruleFormat); format {
	case config.RuleFormatID, config.RuleFormatName, config.RuleFormatCombined:
		cliCfg.RuleFormat = format
	default:
		return usageError(fmt.Errorf("invalid rule format %q: must be id, name, or combined", flags.ruleFormat))
	}

	if cliCfg.Jobs < 0 {
		return usageError(fmt.Errorf("invalid --jobs %d: must not be negative", cliCfg.Jobs))
	}
	return nil
}

// absPaths resolves args against workDir and checks that each exists.
func absPaths(workDir string, args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{workDir}, nil
	}
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		path := arg
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, usageError(fmt.Errorf("path does not exist: %s", arg))
			}
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// lintSession holds everything built from one configuration load.
type lintSession struct {
	cfg         *config.Config
	rootDir     string
	workDir     string
	baseline    *baseline.Baseline
	loadedFrom  []string
	ruleset     *lint.RuleSet
	runner      *runner.Runner
	reporter    reporter.Reporter
	recorder    *metrics.Recorder
	metricsFile string
	logger      *log.Logger
}

func newLintSession(
	ctx context.Context,
	cmd *cobra.Command,
	cliCfg *config.Config,
	flags *lintFlags,
	global *globalFlags,
	info BuildInfo,
	workDir string,
) (*lintSession, error) {
	logger := logging.FromContext(ctx)

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, usageError(fmt.Errorf("load configuration: %w", err))
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	cfg := loadResult.Config
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}

	ruleset := lint.ResolveRules(lint.DefaultRegistry, cfg)
	for _, issue := range ruleset.Issues {
		logger.Warn(issue.Error())
	}
	if len(ruleset.VersionGated) > 0 {
		logger.Debug("rules skipped for swift version",
			logging.FieldSwiftVersion, ruleset.SwiftVersion.String(),
			logging.FieldRules, ruleset.VersionGated,
		)
	}

	engine := lint.NewEngine(swift.New(), ruleset)
	engine.Options.RuleJobs = cfg.Jobs

	session := &lintSession{
		cfg:         cfg,
		rootDir:     loadResult.RootDir,
		workDir:     workDir,
		loadedFrom:  loadResult.LoadedFrom,
		ruleset:     ruleset,
		metricsFile: flags.metricsFile,
		logger:      logger,
	}
	if flags.metricsFile != "" {
		session.recorder = metrics.NewRecorder()
		engine.Options.Observer = session.recorder
	}

	if cfg.Baseline != "" {
		session.baseline, err = baseline.Load(ctx, cfg.Baseline, workDir)
		if err != nil {
			return nil, usageError(err)
		}
		logger.Debug("loaded baseline", logging.FieldBaseline, cfg.Baseline, logging.FieldViolations, session.baseline.Len())
	}

	pipeline := lint.NewPipeline(engine)
	if !cfg.NoCache && !cfg.Fix {
		resultCache, err := cache.Open(cfg.CachePath, ruleset.Fingerprint(), info.Version)
		if err != nil {
			logger.Warn("result cache disabled", logging.FieldError, err)
		} else {
			pipeline.Cache = resultCache
			logger.Debug("using result cache", logging.FieldCache, resultCache.Dir())
		}
	}
	session.runner = runner.New(pipeline)

	format, err := reporter.ParseFormat(string(cfg.Reporter))
	if err != nil {
		return nil, usageError(err)
	}
	session.reporter, err = reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       global.color,
		ShowContext: flags.context,
		ShowSummary: true,
		Compact:     flags.compact,
		RuleFormat:  cfg.RuleFormat,
		WorkingDir:  workDir,
		Rules:       analysis.CatalogFromRuleSet(ruleset),
		ToolVersion: info.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}

	logger.Debug("configuration resolved",
		logging.FieldReporter, format,
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldRules, len(ruleset.Rules),
	)
	return session, nil
}

// run lints paths once and reports the result.
func (s *lintSession) run(ctx context.Context, paths []string) (*runner.Result, error) {
	started := time.Now()
	opts := runner.OptionsFromConfig(s.cfg, paths, s.rootDir)

	s.logger.Debug("starting lint run",
		logging.FieldPaths, paths,
		logging.FieldWorkingDir, s.rootDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := s.runner.Run(ctx, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, usageError(err)
		}
		return nil, fmt.Errorf("lint run failed: %w", err)
	}

	if result.Stats.FilesDiscovered == 0 && !s.cfg.AllowZeroLintableFiles {
		return nil, &exitError{
			code: ExitLintFailure,
			err:  errors.New("no lintable files found at paths: " + strings.Join(paths, ", ")),
		}
	}

	s.logOutcomes(result)

	if s.cfg.WriteBaseline != "" {
		if err := baseline.FromResult(result, s.workDir).Write(ctx, s.cfg.WriteBaseline); err != nil {
			return nil, err
		}
		s.logger.Info("baseline written", logging.FieldBaseline, s.cfg.WriteBaseline, logging.FieldViolations, result.Stats.Violations)
	}
	if s.baseline != nil {
		before := result.Stats.Violations
		result.Filter(s.baseline.Filter)
		s.logger.Debug("baseline applied", logging.FieldBaseline, s.cfg.Baseline,
			logging.FieldSuppressed, before-result.Stats.Violations)
	}

	if _, err := s.reporter.Report(ctx, result); err != nil {
		return nil, fmt.Errorf("report results: %w", err)
	}

	if WarningThresholdExceeded(result, s.cfg.WarningThreshold) {
		s.logger.Error("number of warnings exceeded threshold",
			logging.FieldThreshold, s.cfg.WarningThreshold,
			logging.FieldWarnings, result.Stats.ViolationsBySeverity[config.SeverityWarning],
		)
	}

	if s.recorder != nil {
		if err := s.recorder.WriteFile(s.metricsFile); err != nil {
			s.logger.Warn("could not write metrics", logging.FieldOutput, s.metricsFile, logging.FieldError, err)
		}
	}

	s.logger.Debug("lint run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesCached, result.Stats.FilesCached,
		logging.FieldViolations, result.Stats.Violations,
		logging.FieldCorrections, result.Stats.CorrectionsApplied,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldDuration, time.Since(started).Round(time.Millisecond),
	)
	return result, nil
}

// logOutcomes reports per-file conditions that do not appear in reporter output.
func (s *lintSession) logOutcomes(result *runner.Result) {
	for _, file := range result.Files {
		if file.Result == nil {
			continue
		}
		if c := file.Result.Correction; c != nil && c.CapReached {
			s.logger.Warn("corrections did not settle; run --fix again",
				logging.FieldPath, file.Path,
				logging.FieldPasses, c.Passes,
			)
		}
		if file.Result.CacheError != nil {
			s.logger.Debug("cache write failed", logging.FieldPath, file.Path, logging.FieldError, file.Result.CacheError)
		}
	}
}
