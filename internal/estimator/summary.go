package estimator

import "github.com/alexanderramin/estimate/internal/domain"

// Summary aggregates a resolved tree for reporting.
type Summary struct {
	Total           *float64 // root duration; nil when nothing was estimated
	Nodes           int      // bullets, excluding the synthetic root
	Leaves          int
	Estimated       int // leaves with a duration
	Unestimated     int // leaves without one
	PercentageNodes int
	MaxDepth        int // 1 for a flat list
}

// Summarize walks the tree under root. Call it after CalculateDurations.
func Summarize(root *domain.Node) Summary {
	s := Summary{}
	if root.Duration != nil {
		s.Total = domain.Float64Ptr(*root.Duration)
	}

	root.Walk(func(n *domain.Node, depth int) bool {
		if depth == 0 {
			return true
		}
		s.Nodes++
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		if n.HasPercentage() {
			s.PercentageNodes++
		}
		if n.IsLeaf() {
			s.Leaves++
			if n.Duration != nil {
				s.Estimated++
			} else {
				s.Unestimated++
			}
		}
		return true
	})

	return s
}

// CountChanged compares a resolved tree with a Clone taken before
// CalculateDurations and counts the bullets whose duration was rewritten.
// Both trees must have the same shape.
func CountChanged(parsed, resolved *domain.Node) int {
	changed := 0
	for i, child := range resolved.Children {
		if i >= len(parsed.Children) {
			break
		}
		before := parsed.Children[i]
		if !sameDuration(before.Duration, child.Duration) {
			changed++
		}
		changed += CountChanged(before, child)
	}
	return changed
}

func sameDuration(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
