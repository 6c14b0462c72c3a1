package reporter

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/swiftlint-go/internal/ui/pretty"
	"github.com/yaklabco/swiftlint-go/pkg/fix"
	"github.com/yaklabco/swiftlint-go/pkg/runner"
)

// DiffReporter prints what `lint --dry-run` would change as git-style unified
// diffs, one per corrected file, each preceded by the rules that changed it.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter returns a DiffReporter writing to opts.Writer.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Report implements Reporter. The count is the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
				r.styles.Error.Render("error: "+file.Error.Error()))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		diff := file.Result.Diff
		files++
		additions += diff.Additions
		deletions += diff.Deletions

		var rules []string
		if c := file.Result.Correction; c != nil {
			for _, applied := range c.Applied {
				rules = append(rules, applied.RuleID)
			}
		}
		r.writeFile(diff, rules)
	}

	if files > 0 && r.opts.ShowSummary {
		fmt.Fprintln(r.out, r.summary(files, additions, deletions))
	}
	return files, nil
}

func (r *DiffReporter) writeFile(diff *fix.Diff, rules []string) {
	path := filepath.ToSlash(r.opts.displayPath(diff.Path))

	if len(rules) > 0 {
		slices.Sort(rules)
		fmt.Fprintln(r.out, r.styles.Dim.Render("# corrected by "+strings.Join(slices.Compact(rules), ", ")))
	}
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render("diff --git a/"+path+" b/"+path))
	fmt.Fprintln(r.out, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, h := range diff.Hunks {
		fmt.Fprintln(r.out, r.styles.DiffHunk.Render(
			fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)))
		for _, line := range h.Lines {
			switch line.Kind {
			case fix.LineAdded:
				fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+"+line.Text))
			case fix.LineRemoved:
				fmt.Fprintln(r.out, r.styles.DiffRemove.Render("-"+line.Text))
			default:
				fmt.Fprintln(r.out, r.styles.DiffContext.Render(" "+line.Text))
			}
		}
	}
	fmt.Fprintln(r.out)
}

// summary mirrors git's "N files changed, N insertions(+), N deletions(-)".
func (r *DiffReporter) summary(files, additions, deletions int) string {
	parts := []string{plural(files, "file", "files") + " changed"}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(plural(additions, "insertion", "insertions")+"(+)"))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(plural(deletions, "deletion", "deletions")+"(-)"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
