package pretty

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/yaklabco/swiftlint-go/pkg/config"
)

// Table formatting constants.
const (
	tablePadding   = 2
	minColumnWidth = 4
	heavySeparator = "="
	lightSeparator = "-"
	ellipsis       = "…"
)

// Column describes one table column.
type Column struct {
	Title string

	// AlignRight right-aligns cells, for counts.
	AlignRight bool

	// Shrink marks the column that gives up width when the table is wider
	// than the terminal.
	Shrink bool
}

// TableRow represents a single row of cells. Severity colors the row; an
// empty severity leaves it plain.
type TableRow struct {
	Cells    []string
	Severity config.Severity
}

// TableFormatter formats rows as a styled, width-aware table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter. A termWidth of zero
// never shrinks columns.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// TerminalWidth returns the width of the terminal behind w, or zero when w
// is not a terminal.
func TerminalWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return 0
}

// Format renders the header, rows, and an optional footer row separated by
// a heavy rule.
func (t *TableFormatter) Format(columns []Column, rows []TableRow, footer *TableRow) string {
	widths := t.columnWidths(columns, rows, footer)

	var builder strings.Builder
	titles := make([]string, len(columns))
	for i, c := range columns {
		titles[i] = c.Title
	}
	builder.WriteString(t.formatCells(columns, widths, titles, t.styles.TableHeader))
	builder.WriteString(t.separator(widths, heavySeparator))

	for _, row := range rows {
		builder.WriteString(t.formatCells(columns, widths, row.Cells, t.rowStyle(row.Severity)))
	}

	if footer != nil {
		builder.WriteString(t.separator(widths, lightSeparator))
		builder.WriteString(t.formatCells(columns, widths, footer.Cells, t.styles.Bold))
	}
	builder.WriteString(t.separator(widths, heavySeparator))
	return builder.String()
}

func (t *TableFormatter) columnWidths(columns []Column, rows []TableRow, footer *TableRow) []int {
	widths := make([]int, len(columns))
	measure := func(cells []string) {
		for i := range min(len(cells), len(widths)) {
			widths[i] = max(widths[i], runewidth.StringWidth(cells[i]))
		}
	}
	for i, c := range columns {
		widths[i] = max(minColumnWidth, runewidth.StringWidth(c.Title))
	}
	for _, row := range rows {
		measure(row.Cells)
	}
	if footer != nil {
		measure(footer.Cells)
	}

	total := t.totalWidth(widths)
	if t.termWidth <= 0 || total <= t.termWidth {
		return widths
	}
	for i, c := range columns {
		if !c.Shrink {
			continue
		}
		widths[i] = max(minColumnWidth, widths[i]-(total-t.termWidth))
		break
	}
	return widths
}

func (t *TableFormatter) totalWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	return total + tablePadding*max(0, len(widths)-1)
}

func (t *TableFormatter) separator(widths []int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.totalWidth(widths))) + "\n"
}

// formatCells pads before styling so escape codes do not skew widths.
func (t *TableFormatter) formatCells(columns []Column, widths []int, cells []string, style lipgloss.Style) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		var cell string
		if i < len(cells) {
			cell = runewidth.Truncate(cells[i], widths[i], ellipsis)
		}
		if c.AlignRight {
			cell = runewidth.FillLeft(cell, widths[i])
		} else {
			cell = runewidth.FillRight(cell, widths[i])
		}
		parts[i] = style.Render(cell)
	}
	return strings.TrimRight(strings.Join(parts, strings.Repeat(" ", tablePadding)), " ") + "\n"
}

func (t *TableFormatter) rowStyle(severity config.Severity) lipgloss.Style {
	switch severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	default:
		return lipgloss.NewStyle()
	}
}
