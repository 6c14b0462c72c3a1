// Package main is the entry point for the swiftlint CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/swiftlint-go/internal/cli"
	"github.com/yaklabco/swiftlint-go/internal/logging"

	// Import rules package to register built-in rules via init().
	_ "github.com/yaklabco/swiftlint-go/pkg/lint/rules"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, cli.ErrLintIssuesFound) && !errors.Is(err, context.Canceled) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	if errors.Is(err, context.Canceled) {
		return cli.ExitSuccess
	}
	return cli.ExitCode(err)
}
