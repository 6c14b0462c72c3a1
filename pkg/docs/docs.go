// Package docs generates rule reference pages in Markdown and, optionally,
// HTML rendered with goldmark.
package docs

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yaklabco/swiftlint-go/pkg/lint"
)

// DirectoryPage is the base name of the index page.
const DirectoryPage = "rule_directory"

const filePermissions = 0o644

// Options controls what Write produces.
type Options struct {
	// HTML also renders every page to a standalone .html file.
	HTML bool
}

// KindTitle returns the display name of a rule kind, e.g. "Idiomatic".
func KindTitle(k lint.Kind) string {
	return cases.Title(language.English).String(string(k))
}

// RulePage renders the Markdown page for one rule.
func RulePage(r lint.Rule) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", r.Name())
	fmt.Fprintf(&sb, "%s\n\n", r.Description())

	fmt.Fprintf(&sb, "* **Identifier:** `%s`\n", r.ID())
	fmt.Fprintf(&sb, "* **Enabled by default:** %s\n", yesNo(!r.OptIn()))
	fmt.Fprintf(&sb, "* **Supports autocorrection:** %s\n", yesNo(lint.CanFix(r)))
	fmt.Fprintf(&sb, "* **Kind:** %s\n", r.Kind())
	if v := r.MinSwiftVersion(); !v.IsZero() {
		fmt.Fprintf(&sb, "* **Minimum Swift version:** %s\n", v)
	}
	if desc := r.Configuration().Describe(); !desc.IsEmpty() {
		sb.WriteString("* **Default configuration:**\n")
		for _, line := range strings.Split(desc.Markdown(), "\n") {
			sb.WriteString("  " + line + "\n")
		}
	}

	if p, ok := r.(lint.ExampleProvider); ok {
		ex := p.Examples()
		writeExamples(&sb, "Non Triggering Examples", ex.NonTriggering)
		writeExamples(&sb, "Triggering Examples", ex.Triggering)
	}
	return sb.String()
}

func writeExamples(sb *strings.Builder, title string, examples []string) {
	if len(examples) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n## %s\n", title)
	for _, ex := range examples {
		fmt.Fprintf(sb, "\n```swift\n%s\n```\n", strings.TrimRight(ex, "\n"))
	}
}

// Directory renders the index page: rules grouped by kind, then by identifier.
func Directory(rules []lint.Rule) string {
	byKind := make(map[lint.Kind][]lint.Rule)
	for _, r := range rules {
		byKind[r.Kind()] = append(byKind[r.Kind()], r)
	}
	kinds := make([]lint.Kind, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	var sb strings.Builder
	sb.WriteString("# Rule Directory\n")
	for _, k := range kinds {
		group := byKind[k]
		slices.SortFunc(group, func(a, b lint.Rule) int { return strings.Compare(a.ID(), b.ID()) })
		fmt.Fprintf(&sb, "\n## %s\n\n", KindTitle(k))
		for _, r := range group {
			fmt.Fprintf(&sb, "* [%s](%s.md)\n", r.Name(), r.ID())
		}
	}
	return sb.String()
}

// RenderHTML converts a Markdown page into a standalone HTML document.
// Links to sibling .md pages are rewritten to .html.
func RenderHTML(title, markdown string) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("render %s: %w", title, err)
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&out, "<title>%s</title>\n", html.EscapeString(title))
	out.WriteString("</head>\n<body>\n")
	out.WriteString(strings.ReplaceAll(body.String(), `.md"`, `.html"`))
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

// Write generates one page per rule plus the directory page under dir and
// returns the written paths in order.
func Write(dir string, rules []lint.Rule, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create docs directory: %w", err)
	}

	var written []string
	emit := func(base, title, markdown string) error {
		mdPath := filepath.Join(dir, base+".md")
		if err := os.WriteFile(mdPath, []byte(markdown), filePermissions); err != nil {
			return fmt.Errorf("write %s: %w", mdPath, err)
		}
		written = append(written, mdPath)
		if !opts.HTML {
			return nil
		}
		page, err := RenderHTML(title, markdown)
		if err != nil {
			return err
		}
		htmlPath := filepath.Join(dir, base+".html")
		if err := os.WriteFile(htmlPath, page, filePermissions); err != nil {
			return fmt.Errorf("write %s: %w", htmlPath, err)
		}
		written = append(written, htmlPath)
		return nil
	}

	sorted := slices.Clone(rules)
	slices.SortFunc(sorted, func(a, b lint.Rule) int { return strings.Compare(a.ID(), b.ID()) })
	for _, r := range sorted {
		if err := emit(r.ID(), r.Name(), RulePage(r)); err != nil {
			return written, err
		}
	}
	if err := emit(DirectoryPage, "Rule Directory", Directory(sorted)); err != nil {
		return written, err
	}
	return written, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
