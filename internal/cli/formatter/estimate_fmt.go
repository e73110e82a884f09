package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/estimator"
)

const shareBarWidth = 20

// FormatEstimate renders a resolved tree with a header and a one-line
// summary underneath.
func FormatEstimate(tree *domain.Node, format domain.NumberFormat) string {
	var b strings.Builder
	b.WriteString(Header("Estimate"))
	b.WriteString("\n\n")
	b.WriteString(FormatEstimateTree(tree, format))
	b.WriteString("\n")
	b.WriteString(FormatSummary(estimator.Summarize(tree), format))
	b.WriteString("\n")
	return b.String()
}

// FormatEstimateTree renders every top-level item of tree with its
// descendants, durations right-aligned.
func FormatEstimateTree(tree *domain.Node, format domain.NumberFormat) string {
	var items []TreeItem
	for _, child := range tree.Children {
		items = appendTreeItems(items, child, 0, false, nil, format)
	}
	if len(items) == 0 {
		return Dim("(empty outline)") + "\n"
	}
	return RenderTree(items)
}

func appendTreeItems(items []TreeItem, n *domain.Node, level int, isLast bool, lastAncestors []bool, format domain.NumberFormat) []TreeItem {
	items = append(items, TreeItem{
		Title:         nodeTitle(n, format),
		Level:         level,
		IsLast:        isLast,
		LastAncestors: lastAncestors,
		Bold:          !n.IsLeaf(),
		Note:          strings.ReplaceAll(n.Note, domain.NoteBreak, "\n"),
		Detail:        format.FormatDuration(n.Duration),
	})

	childAncestors := lastAncestors
	if level > 0 {
		childAncestors = append(lastAncestors[:len(lastAncestors):len(lastAncestors)], isLast)
	}
	for i, child := range n.Children {
		items = appendTreeItems(items, child, level+1, i == len(n.Children)-1, childAncestors, format)
	}
	return items
}

func nodeTitle(n *domain.Node, format domain.NumberFormat) string {
	parts := make([]string, 0, len(n.Tags)+2)
	for _, tag := range n.Tags {
		parts = append(parts, TagBadge(tag.Color, tag.Text))
	}
	parts = append(parts, n.Label)
	if n.HasPercentage() {
		parts = append(parts, Dim(fmt.Sprintf("{%s%s%%}",
			strings.Repeat("^", *n.PercentageLevel), format.FormatHours(*n.Percentage))))
	}
	return strings.Join(parts, " ")
}

// FormatSummary renders totals such as "Total 26,4h · 6 items · 4 leaves".
func FormatSummary(s estimator.Summary, format domain.NumberFormat) string {
	line := fmt.Sprintf("%s %s %s %d items %s %d leaves",
		Bold("Total"),
		StyleGreen.Render(format.FormatDuration(s.Total)),
		Dim("·"), s.Nodes,
		Dim("·"), s.Leaves,
	)
	if s.Unestimated > 0 {
		line += " " + StyleYellow.Render(fmt.Sprintf("(%d without estimate)", s.Unestimated))
	}
	return line
}

// FormatBreakdown renders a table of top-level items with their share of
// the total.
func FormatBreakdown(tree *domain.Node, format domain.NumberFormat) string {
	total := tree.DurationOr(0)
	rows := make([][]string, 0, len(tree.Children))
	for _, child := range tree.Children {
		share := 0.0
		if total > 0 {
			share = child.DurationOr(0) / total
		}
		rows = append(rows, []string{
			child.Label,
			format.FormatDuration(child.Duration),
			RenderShare(share, shareBarWidth),
		})
	}
	return RenderTable([]string{"ITEM", "HOURS", "SHARE"}, rows)
}
