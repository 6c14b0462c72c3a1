package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/yaklabco/swiftlint-go/internal/configloader"
	"github.com/yaklabco/swiftlint-go/internal/logging"
	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint/rules"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	pack   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .swiftlint.yml configuration file",
		Long: `Create a new .swiftlint.yml configuration file in the current directory.
The file can be customized to enable or disable rules, change thresholds,
and choose which paths are linted.

Examples:
  swiftlint init                     Create a minimal .swiftlint.yml
  swiftlint init --full              List every rule with its default options
  swiftlint init --format toml       Create .swiftlint.toml instead
  swiftlint init --pack strict       Start from the strict rule pack
  swiftlint init --output ci.yml     Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), cmd.ErrOrStderr(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "list every rule with its default options")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .swiftlint.yml or .swiftlint.toml)")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"start from a rule pack: "+strings.Join(rules.PackNames(), ", "))

	return cmd
}

func runInit(ctx context.Context, stderr io.Writer, flags *initFlags) error {
	logger := logging.NewWithWriter(stderr, "info")

	if flags.format != "yaml" && flags.format != "toml" {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or toml", flags.format))
	}

	var pack *rules.Pack
	if flags.pack != "" {
		if pack = rules.PackByName(flags.pack); pack == nil {
			return usageError(fmt.Errorf("unknown pack %q: must be one of %s",
				flags.pack, strings.Join(rules.PackNames(), ", ")))
		}
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".swiftlint.yml"
		if flags.format == "toml" {
			outputPath = ".swiftlint.toml"
		}
	}
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	var content []byte
	if pack != nil {
		content, err = packTemplate(*pack, flags.format)
	} else {
		content, err = config.GenerateTemplate(config.TemplateOptions{
			Full:   flags.full,
			Format: flags.format,
		})
	}
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteFile(ctx, absPath, content, flags.force); err != nil {
		return usageError(err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if pack != nil {
		logger.Info("applied rule pack", "pack", pack.Name)
	}
	logger.Info("run 'swiftlint rules' to see all available rules")
	return nil
}

// packTemplate renders a configuration seeded with pack.
func packTemplate(pack rules.Pack, format string) ([]byte, error) {
	cfg := &config.Config{Excluded: []string{".build", "Pods", "Carthage"}}
	pack.Apply(cfg)
	header := config.DefaultTemplateHeader() + "\n# Rule pack: " + pack.Name + "\n# " + pack.Description

	if format == "toml" {
		var sb strings.Builder
		sb.WriteString(header + "\n\n")
		if err := toml.NewEncoder(&sb).Encode(cfg.ToMap()); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return []byte(sb.String()), nil
	}
	return cfg.ToYAMLWithHeader(header)
}
