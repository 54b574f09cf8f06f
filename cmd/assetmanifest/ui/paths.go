package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PathTable renders a numbered list of matched paths under a title.
type PathTable struct {
	Title string
	Paths []string
}

// NewPathTable creates an empty PathTable.
func NewPathTable(title string) *PathTable {
	return &PathTable{Title: title}
}

// Add appends a path; rows are numbered in insertion order.
func (t *PathTable) Add(paths ...string) {
	t.Paths = append(t.Paths, paths...)
}

// View renders the table. An empty table renders only its title.
func (t *PathTable) View(styles Styles) string {
	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}
	if len(t.Paths) == 0 {
		return sb.String()
	}

	numWidth := len(strconv.Itoa(len(t.Paths)))
	pathWidth := lipgloss.Width("Path")
	for _, p := range t.Paths {
		pathWidth = max(pathWidth, lipgloss.Width(p))
	}

	num := styles.Bold.Padding(0, 1).Width(numWidth + 2).Align(lipgloss.Right)
	head := styles.Bold.Padding(0, 1)
	cell := styles.Body.Padding(0, 1)
	sep := styles.Muted.Render("|")

	sb.WriteString(num.Render("#") + sep + head.Render("Path") + "\n")
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", numWidth+pathWidth+5)) + "\n")
	for i, p := range t.Paths {
		sb.WriteString(num.Inherit(styles.Muted).Render(strconv.Itoa(i+1)) + sep + cell.Render(p) + "\n")
	}
	return sb.String()
}
