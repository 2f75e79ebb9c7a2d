package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Active bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders items as an indented tree with box-drawing connectors.
// The active item gets an amber ▶ marker and details are right-aligned
// badges. A pipe is drawn under an ancestor only while it has siblings
// still to come.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	open := []bool{}
	widest := 0
	for i, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for lvl := 1; lvl < item.Level; lvl++ {
				if lvl < len(open) && open[lvl] {
					prefix.WriteString(treePipe)
				} else {
					prefix.WriteString(treeBlank)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}
		for len(open) <= item.Level {
			open = append(open, false)
		}
		open[item.Level] = !item.IsLast

		title := item.Title
		if item.Active {
			title = StyleYellowBold.Render("▶ " + title)
		}
		contents[i] = prefix.String() + title
		widest = max(widest, lipgloss.Width(contents[i]))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(contents[i])
		if item.Detail != "" {
			pad := widest - lipgloss.Width(contents[i])
			b.WriteString(strings.Repeat(" ", pad+2))
			b.WriteString(StyleBlue.Render("[ " + item.Detail + " ]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
