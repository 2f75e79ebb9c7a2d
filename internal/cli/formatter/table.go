package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Widths are measured on visible text so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	return RenderTableAligned(headers, rows, nil)
}

// RenderTableAligned is RenderTable with the columns listed in right
// padded on the left, for numeric data.
func RenderTableAligned(headers []string, rows [][]string, right map[int]bool) string {
	if len(headers) == 0 {
		return ""
	}
	widths := columnWidths(headers, rows)

	var b strings.Builder
	for i, h := range headers {
		writeCell(&b, StyleHeader.Render(h), widths, i, right[i])
	}
	b.WriteString("\n")

	for i, w := range widths {
		writeCell(&b, StyleDim.Render(strings.Repeat("─", w)), widths, i, false)
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(&b, cell, widths, i, right[i])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

// writeCell pads cell to its column width. The last column is never
// padded on the right, so lines carry no trailing spaces.
func writeCell(b *strings.Builder, cell string, widths []int, i int, alignRight bool) {
	pad := max(widths[i]-lipgloss.Width(cell), 0)
	last := i == len(widths)-1
	if alignRight {
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(cell)
		if !last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
		return
	}
	b.WriteString(cell)
	if !last {
		b.WriteString(strings.Repeat(" ", pad+colGap))
	}
}
