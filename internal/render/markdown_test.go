package render

import (
	"strings"
	"testing"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/estimator"
	"github.com/alexanderramin/estimate/internal/outline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderMarkdown(t *testing.T, text string) string {
	t.Helper()
	root := outline.Parse(text)
	estimator.CalculateDurations(root)
	out, err := NewMarkdownRenderer().Render(root)
	require.NoError(t, err)
	return out
}

func TestMarkdownRenderer_WritesComputedDurations(t *testing.T) {
	got := renderMarkdown(t, "- A [99h]\n  - B [3h]\n  - C [5h]")
	assert.Equal(t, "- [8h] A\n  - [3h] B\n  - [5h] C\n", got)
}

func TestMarkdownRenderer_PercentageToken(t *testing.T) {
	got := renderMarkdown(t, "- A\n  - B [10h]\n  - C {^50%}")
	assert.Equal(t, "- [15h] A\n  - [10h] B\n  - [5h]{^50%} C\n", got)
}

func TestMarkdownRenderer_NodeWithoutDuration(t *testing.T) {
	got := renderMarkdown(t, "- A\n  - B")
	assert.Equal(t, "- A\n  - B\n", got)
}

func TestMarkdownRenderer_NoteAndTags(t *testing.T) {
	got := renderMarkdown(t, "- [t:red]hot[/t] Task [2h] [!] remember X")
	assert.Equal(t, "- [2h] Task [!] remember X\n", got, "tags are not round-tripped")
}

func TestMarkdownRenderer_NoteStaysOnBulletLine(t *testing.T) {
	got := renderMarkdown(t, "- A [1h] [!] check with ops\n  wrapped line\n- B [2h]")
	assert.Equal(t, "- [1h] A [!] check with ops\n  wrapped line\n- [2h] B\n", got)
}

func TestMarkdownRenderer_KeepsWrittenPrecision(t *testing.T) {
	got := renderMarkdown(t, "- A [1.255h]\n- B [0.125h]")
	assert.Equal(t, "- [1.255h] A\n- [0.125h] B\n", got)
}

func TestMarkdownRenderer_AllTopLevelItems(t *testing.T) {
	got := renderMarkdown(t, "- A [1h]\n- B [2h]")
	assert.Equal(t, "- [1h] A\n- [2h] B\n", got)
}

func TestMarkdownRenderer_EmptyTree(t *testing.T) {
	out, err := NewMarkdownRenderer().Render(domain.NewNode("root"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

// TestMarkdownRenderer_RoundTrip re-parses rendered output and expects the
// same labels, durations, percentages and notes.
func TestMarkdownRenderer_RoundTrip(t *testing.T) {
	inputs := map[string]string{
		"flat":         "- A [1h]\n- B [2.5h]",
		"nested":       "- A\n  - B [3h]\n    - C [1.25h]\n  - D [4h]",
		"percentage":   "- A\n  - B [10h]\n  - C {^50%}\n  - D {^^5%}",
		"notes":        "- A [2h] [!] check with ops\n  - B [1h] [!] first [!] second",
		"continuation": "- A [1h]\n  wrapped line\n- B [2h]",
		"wrapped note": "- A [1h] [!] check with ops\n  wrapped line\n- B [2h]",
		"nested note":  "- A\n  - B [1h] [!] note\n    wrapped\n    twice\n  - C [2h]",
		"precision":    "- A [1.255h]\n- B\n  - C [0.125h]\n  - D {^12.5%}",
		"unestimated":  "- A\n  - B\n- C [1h]",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			first := outline.Parse(input)
			estimator.CalculateDurations(first)

			rendered, err := NewMarkdownRenderer().Render(first)
			require.NoError(t, err)

			second := outline.Parse(rendered)
			estimator.CalculateDurations(second)

			assertSameTree(t, first, second)
		})
	}
}

func assertSameTree(t *testing.T, want, got *domain.Node) {
	t.Helper()
	assert.Equal(t, normalizeLabel(want.Label), normalizeLabel(got.Label))
	assert.Equal(t, want.Duration, got.Duration, "duration of %q", want.Label)
	assert.Equal(t, want.Percentage, got.Percentage, "percentage of %q", want.Label)
	assert.Equal(t, want.PercentageLevel, got.PercentageLevel, "percentage level of %q", want.Label)
	assert.Equal(t, want.Note, got.Note, "note of %q", want.Label)
	require.Len(t, got.Children, len(want.Children), "children of %q", want.Label)
	for i := range want.Children {
		assertSameTree(t, want.Children[i], got.Children[i])
	}
}

// normalizeLabel collapses whitespace so re-indented continuation lines compare equal.
func normalizeLabel(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
