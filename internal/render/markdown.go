package render

import (
	"strings"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/outline"
)

// MarkdownRenderer regenerates the outline dialect from a resolved tree, so
// computed durations are written back next to each label. Tags are dropped.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render emits one bullet per node, two spaces of indent per level.
func (r *MarkdownRenderer) Render(tree *domain.Node) (string, error) {
	var b strings.Builder
	for _, child := range tree.Children {
		writeMarkdownNode(&b, child, 0)
	}
	return b.String(), nil
}

func writeMarkdownNode(b *strings.Builder, n *domain.Node, level int) {
	b.WriteString(strings.Repeat("  ", level))
	b.WriteString("- ")
	if token := annotationTokens(n); token != "" {
		b.WriteString(token)
		b.WriteString(" ")
	}
	// The note belongs on the bullet line; continuation lines follow it.
	head, rest, wrapped := strings.Cut(n.Label, "\n")
	b.WriteString(head)
	if n.Note != "" {
		b.WriteString(" " + outline.NoteDelimiter + " " + n.Note)
	}
	if wrapped {
		b.WriteString("\n" + rest)
	}
	b.WriteString("\n")

	for _, child := range n.Children {
		writeMarkdownNode(b, child, level+1)
	}
}

// annotationTokens rebuilds "[8h]" and "{^^30%}" in parser syntax.
func annotationTokens(n *domain.Node) string {
	if n.Duration == nil {
		return ""
	}
	token := "[" + domain.FormatHours(*n.Duration) + "h]"
	if n.HasPercentage() && *n.PercentageLevel > 0 {
		token += "{" + strings.Repeat("^", *n.PercentageLevel) + domain.FormatHours(*n.Percentage) + "%}"
	}
	return token
}
