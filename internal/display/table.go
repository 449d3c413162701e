package display

import (
	"fmt"
	"strings"
)

// Table renders an aligned two-space-separated text table. One row can
// be highlighted (the next prayer) and any row can be dimmed (already
// passed).
type Table struct {
	headers   []string
	rows      [][]string
	highlight int
	dimmed    map[int]bool
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers:   headers,
		highlight: -1,
		dimmed:    make(map[int]bool),
	}
}

// AddRow appends a row of values.
func (t *Table) AddRow(values ...string) {
	t.rows = append(t.rows, values)
}

// Highlight marks the row index (0-based) to render in the accent color.
func (t *Table) Highlight(idx int) {
	t.highlight = idx
}

// DimRow marks a row index to render dimmed.
func (t *Table) DimRow(idx int) {
	t.dimmed[idx] = true
}

// Render produces the formatted table with a two-space leading indent.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder

	sb.WriteString("  " + Bold(formatRow(t.headers, widths)) + "\n")

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	sb.WriteString(Dim("  "+strings.Join(sep, "  ")) + "\n")

	for i, row := range t.rows {
		line := formatRow(row, widths)
		switch {
		case i == t.highlight:
			sb.WriteString("  " + Accent(line) + "\n")
		case t.dimmed[i]:
			sb.WriteString("  " + Dim(line) + "\n")
		default:
			sb.WriteString("  " + line + "\n")
		}
	}

	return sb.String()
}

// formatRow left-pads each cell to its column width.
func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = fmt.Sprintf("%-*s", w, cell)
	}
	return strings.Join(parts, "  ")
}
