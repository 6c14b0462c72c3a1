// Package cli provides the Cobra command structure for swiftlint.
package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/swiftlint-go/internal/configloader"
	"github.com/yaklabco/swiftlint-go/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	color      string
	verbose    bool
	quiet      bool
	logLevel   string
}

// NewRootCommand creates the root swiftlint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "swiftlint",
		Short: "A tool to enforce Swift style and conventions",
		Long: `swiftlint checks Swift source files against a configurable set of rules
and can correct many violations in place.

Rules are configured in .swiftlint.yml (or .swiftlint.toml), found by
searching upward from the working directory. Violations can be silenced
in source with "// swiftlint:disable <rule>" comments.

Environment:
` + envHelp(),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.SetLevel(logging.LevelFromFlags(flags.verbose, flags.quiet, flags.logLevel))
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a .swiftlint.yml or .swiftlint.toml file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newLintCommand(flags, info))
	rootCmd.AddCommand(newRulesCommand(flags))
	rootCmd.AddCommand(newDocsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(flags.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// envHelp lists the supported environment variables for the long help.
func envHelp() string {
	vars := configloader.ListEnvVars()
	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		width = max(width, len(name))
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "  %-*s  %s\n", width, name, vars[name])
	}
	return strings.TrimRight(sb.String(), "\n")
}
