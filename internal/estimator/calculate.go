// Package estimator resolves the durations of a parsed outline tree.
//
// Resolution runs in three fixed phases: a bottom-up sum, a percentage
// adjustment against ancestor sibling sums, and a second bottom-up sum so
// ancestors pick up the adjusted values. All functions mutate the tree in
// place and only touch Duration fields.
package estimator

import "github.com/alexanderramin/estimate/internal/domain"

// CalculateDurations resolves every duration under root.
//
// Running it twice on the same tree is not idempotent for percentage nodes
// whose siblings changed in between; compute on a fresh parse (or a Clone of
// one) instead.
func CalculateDurations(root *domain.Node) {
	CalculateParentDuration(root)
	AdjustDurationsByPercentage(root, nil)
	CalculateParentDuration(root)
}

// CalculateParentDuration sets each node's duration to the sum of its
// children's durations, children first. Absent durations count as zero. A
// node whose children sum to zero keeps whatever duration it already had.
func CalculateParentDuration(n *domain.Node) {
	var total float64
	for _, child := range n.Children {
		CalculateParentDuration(child)
		total += child.DurationOr(0)
	}
	if total > 0 {
		n.SetDuration(total)
	}
}

// AdjustDurationsByPercentage applies percentage rules, children before
// their parent. ancestors holds the path from the root down to, but not
// including, n.
//
// A node with percentage p at level L takes p% of the summed durations of
// the other children of ancestors[len(ancestors)-L]. When that ancestor does
// not exist, or the sum is zero, the node keeps its placeholder.
func AdjustDurationsByPercentage(n *domain.Node, ancestors []*domain.Node) {
	path := append(ancestors[:len(ancestors):len(ancestors)], n)
	for _, child := range n.Children {
		AdjustDurationsByPercentage(child, path)
	}

	if !n.HasPercentage() || *n.PercentageLevel <= 0 {
		return
	}

	idx := len(ancestors) - *n.PercentageLevel
	if idx < 0 {
		return
	}

	siblingSum := SiblingSum(ancestors[idx], n)
	if siblingSum > 0 {
		n.SetDuration(siblingSum * *n.Percentage / 100)
	}
}

// SiblingSum totals the durations of parent's children other than exclude.
func SiblingSum(parent, exclude *domain.Node) float64 {
	var sum float64
	for _, sibling := range parent.Children {
		if sibling == exclude {
			continue
		}
		sum += sibling.DurationOr(0)
	}
	return sum
}
