// Package table provides utilities for rendering formatted tables in the terminal.
package table

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column represents a table column with its configuration.
type Column struct {
	Header   string
	MinWidth int
	MaxWidth int
	Align    Alignment
}

// Alignment specifies how content should be aligned within a column.
type Alignment int

const (
	// AlignLeft aligns content to the left.
	AlignLeft Alignment = iota
	// AlignRight aligns content to the right.
	AlignRight
)

// Cell is a value with an optional style. The style is applied after the value is
// truncated and padded, so it never affects the column width.
type Cell struct {
	Value string
	Style *lipgloss.Style
}

// Styled returns a cell rendered with style.
func Styled(value string, style lipgloss.Style) Cell {
	return Cell{Value: value, Style: &style}
}

// Table represents a table with columns and rows.
type Table struct {
	columns []Column
	rows    [][]Cell
	widths  []int
}

var headerStyle = lipgloss.NewStyle().Bold(true)

// New creates a new table with the specified columns.
func New(columns ...Column) *Table {
	t := &Table{
		columns: columns,
		widths:  make([]int, len(columns)),
	}

	// Initialize widths with header lengths and minimum widths
	for i, col := range columns {
		t.widths[i] = max(lipgloss.Width(col.Header), col.MinWidth)
	}

	return t
}

// AddRow adds a row of plain values to the table.
func (t *Table) AddRow(values ...string) {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Cell{Value: v}
	}
	t.AddCells(cells...)
}

// AddCells adds a row of cells to the table.
func (t *Table) AddCells(cells ...Cell) {
	// Ensure we have the right number of values
	row := make([]Cell, len(t.columns))
	copy(row, cells)

	// Update column widths based on content
	for i, c := range row {
		t.widths[i] = max(t.widths[i], lipgloss.Width(c.Value))
	}

	t.rows = append(t.rows, row)
}

// calculateFinalWidths applies max width constraints and returns final widths.
func (t *Table) calculateFinalWidths() []int {
	widths := make([]int, len(t.widths))
	copy(widths, t.widths)

	for i, col := range t.columns {
		if col.MaxWidth > 0 && widths[i] > col.MaxWidth {
			widths[i] = col.MaxWidth
		}
	}

	return widths
}

// truncate shortens s to width display columns, adding an ellipsis if needed.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return string(runes[:width])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// formatCell formats a cell according to column width and alignment.
func formatCell(c Cell, width int, align Alignment) string {
	value := truncate(c.Value, width)
	pad := strings.Repeat(" ", max(0, width-lipgloss.Width(value)))
	if c.Style != nil {
		value = c.Style.Render(value)
	}
	switch align {
	case AlignRight:
		return pad + value
	default:
		return value + pad
	}
}

// RenderHeader returns the formatted header row.
func (t *Table) RenderHeader() string {
	widths := t.calculateFinalWidths()
	var parts []string

	for i, col := range t.columns {
		parts = append(parts, formatCell(Cell{Value: col.Header}, widths[i], col.Align))
	}

	return headerStyle.Render(strings.Join(parts, " │ "))
}

// RenderSeparator returns the separator line between header and rows.
func (t *Table) RenderSeparator() string {
	widths := t.calculateFinalWidths()
	var parts []string

	for _, w := range widths {
		parts = append(parts, strings.Repeat("─", w))
	}

	return strings.Join(parts, "─┼─")
}

// RenderRow returns a formatted row at the specified index. A highlight style, if
// given, is applied to cells of column highlight that have no style of their own.
func (t *Table) RenderRow(index int, highlight ...Highlight) string {
	if index < 0 || index >= len(t.rows) {
		return ""
	}

	widths := t.calculateFinalWidths()
	row := t.rows[index]
	var parts []string

	for i, col := range t.columns {
		c := row[i]
		for _, h := range highlight {
			if h.Column == i && c.Style == nil {
				style := h.Style
				c.Style = &style
			}
		}
		parts = append(parts, formatCell(c, widths[i], col.Align))
	}

	return strings.Join(parts, " │ ")
}

// RowCount returns the number of rows in the table.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Render returns the complete table as a string.
func (t *Table) Render() string {
	lines := []string{t.RenderHeader(), t.RenderSeparator()}

	for i := range t.rows {
		lines = append(lines, t.RenderRow(i))
	}

	return strings.Join(lines, "\n")
}

// Highlight styles every cell of one column.
type Highlight struct {
	Column int
	Style  lipgloss.Style
}

// PrintOptions configures how the table is printed.
type PrintOptions struct {
	// Indent is the prefix added to each line (e.g., "  " for two-space indent).
	Indent string
	// Highlight styles one column, when set.
	Highlight *Highlight
	// Writer is the output destination. Defaults to os.Stdout if nil.
	Writer io.Writer
}

// DefaultPrintOptions returns default print options.
func DefaultPrintOptions() PrintOptions {
	return PrintOptions{
		Indent: "  ",
		Writer: os.Stdout,
	}
}

// Print outputs the table to the configured writer with the specified options.
func (t *Table) Print(opts PrintOptions) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	var highlight []Highlight
	if opts.Highlight != nil {
		highlight = append(highlight, *opts.Highlight)
	}

	fmt.Fprintln(opts.Writer)
	fmt.Fprintf(opts.Writer, "%s%s\n", opts.Indent, t.RenderHeader())
	fmt.Fprintf(opts.Writer, "%s%s\n", opts.Indent, t.RenderSeparator())

	for i := 0; i < t.RowCount(); i++ {
		fmt.Fprintf(opts.Writer, "%s%s\n", opts.Indent, t.RenderRow(i, highlight...))
	}
	fmt.Fprintln(opts.Writer)
}
