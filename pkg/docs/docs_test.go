package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/docs"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/lint/rules"
)

func registry(t *testing.T) *lint.Registry {
	t.Helper()
	reg := lint.NewRegistry()
	rules.RegisterAll(reg)
	return reg
}

func rule(t *testing.T, id string) lint.Rule {
	t.Helper()
	r, ok := registry(t).Get(id)
	require.True(t, ok, id)
	return r
}

func TestKindTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Idiomatic", docs.KindTitle(lint.KindIdiomatic))
	assert.Equal(t, "Performance", docs.KindTitle(lint.KindPerformance))
}

func TestRulePage(t *testing.T) {
	t.Parallel()

	page := docs.RulePage(rule(t, "force_cast"))

	assert.True(t, strings.HasPrefix(page, "# Force Cast\n\nForce casts should be avoided\n"))
	assert.Contains(t, page, "* **Identifier:** `force_cast`\n")
	assert.Contains(t, page, "* **Enabled by default:** Yes\n")
	assert.Contains(t, page, "* **Supports autocorrection:** No\n")
	assert.Contains(t, page, "* **Kind:** idiomatic\n")
	assert.Contains(t, page, "  <table>")
	assert.Contains(t, page, "## Triggering Examples\n\n```swift\nNSNumber() ↓as! Int\n```\n")
	assert.NotContains(t, page, "Minimum Swift version")
}

func TestRulePage_OptInAndVersionGated(t *testing.T) {
	t.Parallel()

	page := docs.RulePage(rule(t, "empty_count"))
	assert.Contains(t, page, "* **Enabled by default:** No\n")
	assert.Contains(t, page, "* **Minimum Swift version:** 5.0\n")
}

func TestRulePage_Correctable(t *testing.T) {
	t.Parallel()

	page := docs.RulePage(rule(t, "syntactic_sugar"))
	assert.Contains(t, page, "* **Supports autocorrection:** Yes\n")
}

func TestDirectory(t *testing.T) {
	t.Parallel()

	dir := docs.Directory(registry(t).Rules())

	assert.True(t, strings.HasPrefix(dir, "# Rule Directory\n"))
	idiomatic := strings.Index(dir, "## Idiomatic")
	lintHeading := strings.Index(dir, "## Lint")
	require.NotEqual(t, -1, idiomatic)
	require.NotEqual(t, -1, lintHeading)
	assert.Less(t, idiomatic, lintHeading, "kinds are sorted")
	assert.Contains(t, dir, "* [Force Cast](force_cast.md)\n")
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	page, err := docs.RenderHTML("A & B", "# Title\n\nSee [x](x.md).\n\n<table><tr><td>raw</td></tr></table>\n")
	require.NoError(t, err)

	out := string(page)
	assert.Contains(t, out, "<title>A &amp; B</title>")
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, `<a href="x.html">x</a>`)
	assert.Contains(t, out, "<td>raw</td>", "raw HTML tables are kept")
}

func TestWrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    docs.Options
		perRule int
	}{
		{name: "markdown only", opts: docs.Options{}, perRule: 1},
		{name: "with html", opts: docs.Options{HTML: true}, perRule: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join(t.TempDir(), "docs")
			ruleList := registry(t).Rules()

			written, err := docs.Write(dir, ruleList, tt.opts)
			require.NoError(t, err)
			assert.Len(t, written, (len(ruleList)+1)*tt.perRule)

			data, err := os.ReadFile(filepath.Join(dir, "force_cast.md"))
			require.NoError(t, err)
			assert.Contains(t, string(data), "# Force Cast")

			_, err = os.Stat(filepath.Join(dir, docs.DirectoryPage+".md"))
			require.NoError(t, err)

			_, err = os.Stat(filepath.Join(dir, "force_cast.html"))
			assert.Equal(t, tt.opts.HTML, err == nil)
		})
	}
}
