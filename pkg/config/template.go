package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every rule with its default options.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string

	// IncludeRules is a list of rule IDs to include.
	// If empty, all rules are included.
	IncludeRules []string
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	OptIn       bool
	Kind        string
	CanFix      bool
	// Options is the rule's default configuration in on-disk shape.
	Options map[string]any
}

// RuleInfoProvider is a function that returns rule information.
// This allows decoupling from the lint package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the lint package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "toml" {
		return generateTOMLTemplate(opts)
	}
	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	return []byte(DefaultTemplateHeader() + `

# Rules that are on by default but should not run.
# disabled_rules:
#   - trailing_whitespace

# Rules that are off by default but should run.
# opt_in_rules:
#   - empty_count

# Paths to lint (defaults to the current directory).
# included:
#   - Sources

# Paths and glob patterns to skip.
excluded:
  - .build
  - Pods
  - Carthage

# Reporter: xcode, json, checkstyle, sarif, summary, github-actions-logging
# reporter: xcode

# Treat warnings as errors.
# strict: false

# Fail once this many warnings are reported.
# warning_threshold: 50

# Known violations to leave unreported; create one with --write-baseline.
# baseline: .swiftlint-baseline.json

# Per-rule configuration uses the rule identifier as the key.
# line_length:
#   warning: 120
#   error: 200
#   ignores_comments: true
# force_cast: warning
`)
}

func generateFullTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
#
# This template lists every rule with its default options.

excluded:
  - .build
  - Pods
  - Carthage

reporter: xcode
`)

	var optIn []string
	for _, rule := range selectRules(opts.IncludeRules) {
		if rule.OptIn {
			optIn = append(optIn, rule.ID)
		}

		fmt.Fprintf(&buf, "\n# %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "# %s\n", wrapComment(rule.Description, commentWrapWidth))
		if rule.Kind != "" {
			fmt.Fprintf(&buf, "# Kind: %s\n", rule.Kind)
		}
		if rule.CanFix {
			buf.WriteString("# Correctable: yes\n")
		}
		if len(rule.Options) == 0 {
			continue
		}

		body, err := yaml.Marshal(map[string]any{rule.ID: rule.Options})
		if err != nil {
			return nil, fmt.Errorf("encode options for %s: %w", rule.ID, err)
		}
		buf.Write(body)
	}

	if len(optIn) > 0 {
		buf.WriteString("\n# Opt-in rules are off unless listed here.\n# opt_in_rules:\n")
		for _, id := range optIn {
			fmt.Fprintf(&buf, "#   - %s\n", id)
		}
	}
	return buf.Bytes(), nil
}

func generateTOMLTemplate(opts TemplateOptions) ([]byte, error) {
	doc := map[string]any{
		KeyExcluded: []string{".build", "Pods", "Carthage"},
		KeyReporter: string(FormatText),
	}
	if opts.Full {
		for _, rule := range selectRules(opts.IncludeRules) {
			if len(rule.Options) > 0 {
				doc[rule.ID] = rule.Options
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("encode toml template: %w", err)
	}
	return buf.Bytes(), nil
}

// selectRules returns registered rules filtered by include, sorted by ID.
func selectRules(include []string) []RuleInfo {
	var rules []RuleInfo
	if DefaultRuleInfoProvider != nil {
		rules = DefaultRuleInfoProvider()
	}

	if len(include) > 0 {
		includeSet := make(map[string]bool, len(include))
		for _, id := range include {
			includeSet[id] = true
		}
		filtered := make([]RuleInfo, 0, len(include))
		for _, r := range rules {
			if includeSet[r.ID] {
				filtered = append(filtered, r)
			}
		}
		rules = filtered
	}

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})
	return rules
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# swiftlint-go configuration
# Place this file at the project root as .swiftlint.yml or .swiftlint.toml`
}
