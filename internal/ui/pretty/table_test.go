package pretty_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/internal/ui/pretty"
	"github.com/yaklabco/swiftlint-go/pkg/config"
)

func TestTableFormatter_Format(t *testing.T) {
	t.Parallel()
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 80)

	columns := []pretty.Column{{Title: "rule"}, {Title: "count", AlignRight: true}}
	rows := []pretty.TableRow{
		{Cells: []string{"force_cast", "2"}, Severity: config.SeverityError},
		{Cells: []string{"todo", "10"}},
	}
	got := formatter.Format(columns, rows, &pretty.TableRow{Cells: []string{"total", "12"}})

	want := strings.Join([]string{
		"rule        count",
		"=================",
		"force_cast      2",
		"todo           10",
		"-----------------",
		"total          12",
		"=================",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestTableFormatter_ShrinksToTerminal(t *testing.T) {
	t.Parallel()
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 30)

	columns := []pretty.Column{{Title: "file", Shrink: true}, {Title: "n", AlignRight: true}}
	rows := []pretty.TableRow{{Cells: []string{strings.Repeat("Sources/", 8) + "A.swift", "1"}}}
	got := formatter.Format(columns, rows, nil)

	for _, line := range strings.Split(strings.TrimRight(got, "\n"), "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 30)
	}
	assert.Contains(t, got, "…")
}

func TestTableFormatter_WideCells(t *testing.T) {
	t.Parallel()
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 80)

	got := formatter.Format([]pretty.Column{{Title: "name"}, {Title: "n"}},
		[]pretty.TableRow{{Cells: []string{"名前", "1"}}, {Cells: []string{"ab", "2"}}}, nil)

	lines := strings.Split(got, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, runewidth.StringWidth(lines[2]), runewidth.StringWidth(lines[3]))
}

func TestTerminalWidth_NonTerminal(t *testing.T) {
	t.Parallel()
	assert.Zero(t, pretty.TerminalWidth(&bytes.Buffer{}))
}
