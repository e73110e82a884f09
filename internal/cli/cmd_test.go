package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/estimate/internal/config"
	"github.com/alexanderramin/estimate/internal/repository"
	"github.com/alexanderramin/estimate/internal/service"
	"github.com/alexanderramin/estimate/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPDF struct{ calls int }

func (s *stubPDF) Render(context.Context, string) ([]byte, error) {
	s.calls++
	return []byte("%PDF-stub"), nil
}

var fixedNow = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*App, *repository.SQLiteRunRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	runs := repository.NewSQLiteRunRepo(database)
	app := &App{
		Config:        config.Default(),
		Runs:          runs,
		UoW:           testutil.NewTestUoW(database),
		PDF:           &stubPDF{},
		IsInteractive: func() bool { return false },
		Confirm: func(string) (bool, error) {
			t.Fatal("unexpected confirmation prompt")
			return false, nil
		},
		Now: func() time.Time { return fixedNow },
	}
	return app, runs
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeOutline(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func fileContent(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestEstimateCmd_WritesInPlace(t *testing.T) {
	app, runs := newTestApp(t)
	src := writeOutline(t, "- A [99h]\n  - B [3h]\n  - C [5h]\n")

	out, err := execute(t, app, src)
	require.NoError(t, err)

	assert.Equal(t, "- [8h] A\n  - [3h] B\n  - [5h] C\n", fileContent(t, src))
	assert.Contains(t, out, "✔ Parsed 3 items, total 8h (1 updated)")
	assert.Contains(t, out, "✔ Wrote markdown to")
	assert.NotContains(t, out, "PDF")

	all, err := runs.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEstimateCmd_MissingSource(t *testing.T) {
	app, _ := newTestApp(t)
	missing := filepath.Join(t.TempDir(), "nope.md")

	_, err := execute(t, app, missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrSourceNotFound)
	assert.Equal(t, "source file not found: "+missing, err.Error())
}

func TestEstimateCmd_DirectoryRejected(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := execute(t, app, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestEstimateCmd_RequiresSource(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := execute(t, app)
	assert.Error(t, err)
}

func TestEstimateCmd_ConfirmDeclinedLeavesSource(t *testing.T) {
	app, runs := newTestApp(t)
	app.IsInteractive = func() bool { return true }
	var asked string
	app.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}
	original := "- A\n  - B [1h]\n"
	src := writeOutline(t, original)

	out, err := execute(t, app, src)
	require.NoError(t, err)

	assert.Contains(t, asked, "Overwrite")
	assert.Contains(t, out, "Aborted")
	assert.Equal(t, original, fileContent(t, src))
	all, err := runs.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEstimateCmd_ConfirmAccepted(t *testing.T) {
	app, _ := newTestApp(t)
	app.IsInteractive = func() bool { return true }
	app.Confirm = func(string) (bool, error) { return true, nil }
	src := writeOutline(t, "- A\n  - B [1h]\n")

	_, err := execute(t, app, src)
	require.NoError(t, err)
	assert.Equal(t, "- [1h] A\n  - [1h] B\n", fileContent(t, src))
}

func TestEstimateCmd_YesSkipsPrompt(t *testing.T) {
	app, _ := newTestApp(t)
	app.IsInteractive = func() bool { return true }
	src := writeOutline(t, "- A [2h]\n")

	_, err := execute(t, app, src, "--yes")
	require.NoError(t, err)
	assert.Equal(t, "- [2h] A\n", fileContent(t, src))
}

func TestEstimateCmd_SeparateMarkdownOutputSkipsPrompt(t *testing.T) {
	app, _ := newTestApp(t)
	app.IsInteractive = func() bool { return true }
	src := writeOutline(t, "- A [2h]\n")
	mdOut := filepath.Join(filepath.Dir(src), "resolved.md")

	_, err := execute(t, app, src, "--md-outfile", mdOut)
	require.NoError(t, err)
	assert.Equal(t, "- A [2h]\n", fileContent(t, src))
	assert.Equal(t, "- [2h] A\n", fileContent(t, mdOut))
}

func TestEstimateCmd_RenderWritesHTMLAndPDF(t *testing.T) {
	app, _ := newTestApp(t)
	pdf := &stubPDF{}
	app.PDF = pdf
	src := writeOutline(t, "- Big [1202.5h]\n")
	dir := filepath.Dir(src)
	htmlOut := filepath.Join(dir, "plan.html")

	out, err := execute(t, app, src, "--render", "--html-outfile", htmlOut, "--locale", "en")
	require.NoError(t, err)

	assert.Equal(t, 1, pdf.calls)
	assert.Equal(t, "%PDF-stub", fileContent(t, filepath.Join(dir, "plan.pdf")))
	assert.Contains(t, fileContent(t, htmlOut), "1,202.5h")
	assert.Contains(t, out, "✔ Wrote HTML to")
	assert.Contains(t, out, "✔ Wrote PDF to")
	assert.Contains(t, out, "total 1,202.5h")
}

func TestEstimateCmd_CustomPDFPath(t *testing.T) {
	app, _ := newTestApp(t)
	src := writeOutline(t, "- A [1h]\n")
	pdfOut := filepath.Join(t.TempDir(), "custom.pdf")

	_, err := execute(t, app, src, "--render", "--pdf-outfile", pdfOut)
	require.NoError(t, err)
	assert.FileExists(t, pdfOut)
}

func TestEstimateCmd_InvalidLocale(t *testing.T) {
	app, _ := newTestApp(t)
	src := writeOutline(t, "- A [1h]\n")

	_, err := execute(t, app, src, "--locale", "fr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported locale")
}

func TestShowCmd_PrintsTreeWithoutWriting(t *testing.T) {
	app, runs := newTestApp(t)
	original := "- A\n  - B [10h]\n  - C {^50%}\n"
	src := writeOutline(t, original)

	out, err := execute(t, app, "show", src, "--breakdown")
	require.NoError(t, err)

	assert.Contains(t, out, "ESTIMATE")
	assert.Contains(t, out, "15h")
	assert.Contains(t, out, "{^50%}")
	assert.Contains(t, out, "Total 15h")
	assert.Contains(t, out, "SHARE")
	assert.Equal(t, original, fileContent(t, src))

	all, err := runs.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestShowCmd_Markdown(t *testing.T) {
	app, _ := newTestApp(t)
	src := writeOutline(t, "- Alpha\n  - Beta [8h]\n")

	out, err := execute(t, app, "show", src, "--markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "8h")
}

func TestViewCmd_NonInteractivePrintsTree(t *testing.T) {
	app, _ := newTestApp(t)
	app.RunViewer = func(tea.Model) error {
		t.Fatal("viewer must not start without a terminal")
		return nil
	}
	src := writeOutline(t, "- A [3h]\n")

	out, err := execute(t, app, "view", src)
	require.NoError(t, err)
	assert.Contains(t, out, "A  3h")
}

func TestViewCmd_InteractiveRunsViewer(t *testing.T) {
	app, _ := newTestApp(t)
	app.IsInteractive = func() bool { return true }
	var got tea.Model
	app.RunViewer = func(m tea.Model) error {
		got = m
		return nil
	}
	src := writeOutline(t, "- A [3h]\n")

	_, err := execute(t, app, "view", src)
	require.NoError(t, err)

	vm, ok := got.(viewerModel)
	require.True(t, ok)
	assert.Equal(t, "plan.md", vm.title)
	assert.Contains(t, vm.content, "Total 3h")
}

func TestBatchCmd_ProcessesAll(t *testing.T) {
	app, runs := newTestApp(t)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(a, []byte("- A [1h]\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("- B\n  - C [2h]\n"), 0o644))

	out, err := execute(t, app, "batch", a, b, "--jobs", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Processed 2 documents")
	assert.Equal(t, "- [2h] B\n  - [2h] C\n", fileContent(t, b))

	all, err := runs.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBatchCmd_DuplicateSourcesProcessedOnce(t *testing.T) {
	app, runs := newTestApp(t)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(a, []byte("- A\n  - B [1h]\n"), 0o644))

	out, err := execute(t, app, "batch", a, filepath.Join(dir, ".", "a.md"), a)
	require.NoError(t, err)

	assert.Contains(t, out, "Processed 1 documents")
	assert.Equal(t, "- [1h] A\n  - [1h] B\n", fileContent(t, a))
	all, err := runs.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBatchCmd_ConfirmDeclinedLeavesSources(t *testing.T) {
	app, runs := newTestApp(t)
	app.IsInteractive = func() bool { return true }
	var asked string
	app.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(a, []byte("- A\n  - B [1h]\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("- C [2h]\n"), 0o644))

	out, err := execute(t, app, "batch", a, b)
	require.NoError(t, err)

	assert.Equal(t, "Overwrite 2 files with their computed estimates?", asked)
	assert.Contains(t, out, "Aborted")
	assert.Equal(t, "- A\n  - B [1h]\n", fileContent(t, a))
	all, err := runs.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBatchCmd_YesSkipsPrompt(t *testing.T) {
	app, _ := newTestApp(t)
	app.IsInteractive = func() bool { return true }
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(a, []byte("- A\n  - B [1h]\n"), 0o644))

	_, err := execute(t, app, "batch", "-y", a)
	require.NoError(t, err)
	assert.Equal(t, "- [1h] A\n  - [1h] B\n", fileContent(t, a))
}

func TestBatchCmd_MissingSourceStopsBeforeWriting(t *testing.T) {
	app, _ := newTestApp(t)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(a, []byte("- A [1h]\n"), 0o644))

	_, err := execute(t, app, "batch", a, filepath.Join(dir, "missing.md"))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrSourceNotFound)
	assert.Equal(t, "- A [1h]\n", fileContent(t, a))
}

func TestHistoryCmd_ListsRuns(t *testing.T) {
	app, _ := newTestApp(t)
	src := writeOutline(t, "- A [4h]\n")
	_, err := execute(t, app, src)
	require.NoError(t, err)

	out, err := execute(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "SOURCE")
	assert.Contains(t, out, "plan.md")
	assert.Contains(t, out, "4h")

	out, err = execute(t, app, "history", "--source", filepath.Join(t.TempDir(), "other.md"))
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded yet.")
}

func TestHistoryCmd_Disabled(t *testing.T) {
	app, _ := newTestApp(t)
	app.Runs = nil
	app.UoW = nil

	_, err := execute(t, app, "history")
	assert.ErrorIs(t, err, errHistoryDisabled)
}
