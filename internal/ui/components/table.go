package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bgeneto/costwatch/internal/ui/styles"
)

// TableRow is one row of rendered cells. Highlight marks rows styled as
// the grand-total row.
type TableRow struct {
	Cells     []string
	Highlight bool
}

// RenderTable renders a simple left-aligned table with a ruled header.
// Column widths follow the widest cell per column.
func RenderTable(headers []string, rows []TableRow) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row.Cells {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var lines []string

	headerCells := make([]string, len(headers))
	for i, h := range headers {
		headerCells[i] = pad(h, widths[i])
	}
	lines = append(lines, styles.TableHeaderStyle.Render(strings.Join(headerCells, "  ")))

	if len(rows) == 0 {
		lines = append(lines, styles.HelpStyle.Render("(empty)"))
		return strings.Join(lines, "\n")
	}

	for _, row := range rows {
		cells := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			cells[i] = pad(cell, widths[i])
		}
		line := strings.Join(cells, "  ")
		if row.Highlight {
			line = styles.TableTotalRowStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
