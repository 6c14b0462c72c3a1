package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/swiftlint-go/internal/logging"
	"github.com/yaklabco/swiftlint-go/pkg/docs"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
)

func newDocsCommand() *cobra.Command {
	var opts docs.Options

	cmd := &cobra.Command{
		Use:   "docs <dir>",
		Short: "Generate rule documentation",
		Long: `Write one Markdown page per rule, plus a rule directory grouped by kind,
into the given directory. With --html, each page is also rendered to HTML.

Examples:
  swiftlint docs site/rules          Write Markdown pages
  swiftlint docs --html site/rules   Write Markdown and HTML pages`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.FromContext(cmd.Context())
			written, err := docs.Write(args[0], lint.DefaultRegistry.Rules(), opts)
			if err != nil {
				return err
			}
			logger.Info("wrote rule documentation",
				logging.FieldOutput, args[0],
				logging.FieldFiles, len(written),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.HTML, "html", false, "also render each page to HTML")

	return cmd
}
