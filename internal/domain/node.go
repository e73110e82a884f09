package domain

// NoteBreak joins the segments of a note when a bullet carries more than one
// [!] delimiter.
const NoteBreak = "<br>"

// Tag is an inline colour-coded label extracted from a bullet.
type Tag struct {
	Color string
	Text  string
}

// Node is one outline bullet, or the synthetic root that wraps the top-level
// bullets of a document.
//
// Duration is nil until a value is parsed or computed. Percentage and
// PercentageLevel are either both set or both nil; when set, the parser
// places a zero Duration as a placeholder for the calculator.
type Node struct {
	Label           string
	Duration        *float64
	Percentage      *float64
	PercentageLevel *int
	Note            string
	Tags            []Tag
	Children        []*Node
}

// NewNode creates a childless node with the given label.
func NewNode(label string) *Node {
	return &Node{Label: label}
}

// AddChild appends child in document order.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// HasPercentage reports whether the node carries a percentage rule.
func (n *Node) HasPercentage() bool {
	return n.Percentage != nil && n.PercentageLevel != nil
}

// DurationOr returns the node's duration, or def when none is set.
func (n *Node) DurationOr(def float64) float64 {
	return Float64FromPtrWithDefault(def, n.Duration)
}

// SetDuration stores hours as the node's duration.
func (n *Node) SetDuration(hours float64) {
	n.Duration = &hours
}

// Walk visits n and its descendants in document order. depth is 0 for n.
// Returning false from fn skips the visited node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	c := &Node{
		Label:           n.Label,
		Duration:        cloneFloat(n.Duration),
		Percentage:      cloneFloat(n.Percentage),
		PercentageLevel: cloneInt(n.PercentageLevel),
		Note:            n.Note,
	}
	if len(n.Tags) > 0 {
		c.Tags = append([]Tag(nil), n.Tags...)
	}
	for _, child := range n.Children {
		c.AddChild(child.Clone())
	}
	return c
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
