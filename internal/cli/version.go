package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yaklabco/swiftlint-go/internal/logging"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of swiftlint.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")
			logger.SetPrefix("")

			logger.Info("swiftlint",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
				logging.FieldSwiftVersion, lint.DefaultSwiftVersion.String(),
				"go", runtime.Version(),
			)
		},
	}

	return cmd
}
