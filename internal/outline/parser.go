// Package outline parses the indented bullet dialect used for estimates into
// a domain.Node tree.
//
// A bullet line starts with "-" after leading whitespace and may carry three
// inline annotations:
//
//	[8h]            explicit duration in hours
//	{^^30%}         percentage of the sibling sum, carets count ancestor levels
//	[t:red]text[/t] coloured tag
//
// Everything after "[!]" is a note. Non-bullet lines continue the label of
// the most recent bullet. Parsing is best-effort: text that does not match an
// annotation stays in the label and no input is rejected.
package outline

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alexanderramin/estimate/internal/domain"
)

// NoteDelimiter separates a bullet's label from its note.
const NoteDelimiter = "[!]"

var (
	durationPattern   = regexp.MustCompile(`\[(\d+(?:\.\d+)?)h\]`)
	percentagePattern = regexp.MustCompile(`\{(\^+)(\d+(?:\.\d+)?)%\}`)
	tagPattern        = regexp.MustCompile(`\[t:(.*?)\](.*?)\[/t\]`)
)

// stackEntry pairs a candidate parent with the indent it was declared at.
type stackEntry struct {
	node   *domain.Node
	indent int
}

// Parse converts outline text into a tree under a synthetic root. The root
// carries no duration or percentage; top-level bullets are its children.
func Parse(text string) *domain.Node {
	root := domain.NewNode("root")
	stack := []stackEntry{{node: root, indent: -1}}
	var current *domain.Node

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !strings.HasPrefix(trimmed, "-") {
			if current != nil {
				current.Label += "\n" + line
			}
			continue
		}

		indent := indentLevel(line)
		node := parseBullet(trimmed)

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		stack[len(stack)-1].node.AddChild(node)
		stack = append(stack, stackEntry{node: node, indent: indent})
		current = node
	}

	return root
}

// ParseReader reads all of r and parses it. Only read errors are returned.
func ParseReader(r io.Reader) (*domain.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading outline: %w", err)
	}
	return Parse(string(data)), nil
}

// indentLevel counts leading whitespace characters. Tabs count as one.
func indentLevel(line string) int {
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	return utf8.RuneCountInString(line[:len(line)-len(rest)])
}

// parseBullet builds a node from a trimmed bullet line.
func parseBullet(line string) *domain.Node {
	node := &domain.Node{}
	text := line

	if m := durationPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			node.SetDuration(v)
		}
		text = strings.Replace(text, m[0], "", 1)
	}

	if m := percentagePattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[2], 64); err == nil {
			node.Percentage = domain.Float64Ptr(v)
			node.PercentageLevel = domain.IntPtr(len(m[1]))
			// Percentage wins over an explicit duration on the same line.
			node.SetDuration(0)
		}
		text = strings.Replace(text, m[0], "", 1)
	}

	text = strings.TrimLeft(text, "- ")
	parts := strings.Split(text, NoteDelimiter)
	label := strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		node.Note = strings.TrimSpace(strings.Join(parts[1:], domain.NoteBreak))
	}

	node.Tags, node.Label = extractTags(label)
	return node
}

// extractTags removes every [t:color]text[/t] span from label, returning the
// tags in order and the trimmed remainder.
func extractTags(label string) ([]domain.Tag, string) {
	matches := tagPattern.FindAllStringSubmatch(label, -1)
	if len(matches) == 0 {
		return nil, label
	}

	tags := make([]domain.Tag, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, domain.Tag{Color: m[1], Text: m[2]})
		label = strings.TrimSpace(strings.Replace(label, m[0], "", 1))
	}
	return tags, label
}
