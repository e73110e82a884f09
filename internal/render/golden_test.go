package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/estimator"
	"github.com/alexanderramin/estimate/internal/outline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goldenTest compares got against testdata/<name>.golden.
// Set GOLDEN_UPDATE=1 to regenerate golden files.
func goldenTest(t *testing.T, name, got string) {
	t.Helper()

	goldenPath := filepath.Join("testdata", name+".golden")

	if os.Getenv("GOLDEN_UPDATE") == "1" {
		require.NoError(t, os.WriteFile(goldenPath, []byte(got), 0644))
		t.Logf("updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		t.Fatalf("golden file %s does not exist; run with GOLDEN_UPDATE=1 to create it", goldenPath)
	}
	require.NoError(t, err)

	assert.Equal(t, string(expected), got,
		"output does not match golden file %s; run with GOLDEN_UPDATE=1 to update", goldenPath)
}

// loadFixture parses and resolves testdata/<name>.md.
func loadFixture(t *testing.T, name string) *domain.Node {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name+".md"))
	require.NoError(t, err)
	root := outline.Parse(string(data))
	estimator.CalculateDurations(root)
	return root
}

func TestMarkdownRenderer_Golden_Project(t *testing.T) {
	got, err := NewMarkdownRenderer().Render(loadFixture(t, "project"))
	require.NoError(t, err)
	goldenTest(t, "project_markdown", got)
}
