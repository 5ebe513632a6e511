package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = 2

// Table accumulates rows and renders them as aligned columns under a styled
// header and separator. Widths are measured on visible text, so styled cells
// line up.
type Table struct {
	headers []string
	rows    [][]string
}

func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// Row appends a row; missing cells render empty and extra cells are dropped.
func (t *Table) Row(cells ...string) *Table {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return t
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) widths() []int {
	w := make([]int, len(t.headers))
	for i, h := range t.headers {
		w[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			w[i] = max(w[i], lipgloss.Width(cell))
		}
	}
	return w
}

func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}
	widths := t.widths()

	var b strings.Builder
	writeLine := func(cells []string, style func(string) string) {
		for i, cell := range cells {
			b.WriteString(style(cell))
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+columnGap))
			}
		}
		b.WriteString("\n")
	}

	writeLine(t.headers, func(s string) string { return StyleHeader.Render(s) })
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	writeLine(sep, func(s string) string { return StyleDim.Render(s) })
	for _, row := range t.rows {
		writeLine(row, func(s string) string { return s })
	}
	return b.String()
}
