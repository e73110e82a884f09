package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title string
	Level int
	// IsLast marks the last child of its parent.
	IsLast bool
	// LastAncestors[i] is true when the ancestor at level i+1 is itself a
	// last child, so no guide line is drawn below it.
	LastAncestors []bool
	Bold          bool
	Note          string
	Detail        string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters for connectors. Details are right-aligned and
// notes are printed dimmed under their item.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string // prefix + title (styled)
		badge   string // styled badge or ""
		note    string // styled note lines or ""
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0
	maxBadgeWidth := 0

	// Pass 1: build each line's content and track max visible width.
	for idx, item := range items {
		guides := treeGuides(item)
		var prefix string
		if item.Level > 0 {
			prefix = guides
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		if item.Bold {
			title = Bold(title)
		}
		content := prefix + title
		lines[idx].content = content

		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(item.Detail)
			if w := lipgloss.Width(lines[idx].badge); w > maxBadgeWidth {
				maxBadgeWidth = w
			}
		}
		if item.Note != "" {
			lines[idx].note = noteLines(item, guides)
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	// Pass 2: render with right-aligned badges.
	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			pad += maxBadgeWidth - lipgloss.Width(li.badge)
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
		b.WriteString(li.note)
	}

	return b.String()
}

// treeGuides draws the vertical connectors for every ancestor level.
func treeGuides(item TreeItem) string {
	var b strings.Builder
	for i := 1; i < item.Level; i++ {
		if i-1 < len(item.LastAncestors) && item.LastAncestors[i-1] {
			b.WriteString(treeBlank)
		} else {
			b.WriteString(treePipe)
		}
	}
	return b.String()
}

func noteLines(item TreeItem, guides string) string {
	indent := guides
	if item.Level == 0 || item.IsLast {
		indent += treeBlank
	} else {
		indent += treePipe
	}
	var b strings.Builder
	for _, line := range strings.Split(item.Note, "\n") {
		b.WriteString(indent + StyleItalic.Render(line) + "\n")
	}
	return b.String()
}
