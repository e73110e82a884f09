package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/render"
	"github.com/alexanderramin/estimate/internal/repository"
	"github.com/alexanderramin/estimate/internal/testutil"
	"github.com/stretchr/testify/require"
)

// fakePDF records the HTML it was given and returns a stub document.
type fakePDF struct {
	calls atomic.Int32
	err   error

	mu   sync.Mutex
	html []string
}

func (f *fakePDF) Render(_ context.Context, html string) ([]byte, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	f.html = append(f.html, html)
	f.mu.Unlock()
	return []byte("%PDF-1.4 fake"), nil
}

// recordingObserver collects use-case events.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.events))
	for _, e := range o.events {
		out = append(out, e.Name)
	}
	return out
}

func testRenderers(pdf render.PDFRenderer) Renderers {
	return Renderers{
		Markdown: render.NewMarkdownRenderer(),
		HTML:     render.NewHTMLRenderer(domain.GermanFormat, "de"),
		PDF:      pdf,
	}
}

// setupService returns a service backed by an in-memory history store.
func setupService(t *testing.T, pdf render.PDFRenderer, observers ...UseCaseObserver) (EstimateService, *repository.SQLiteRunRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	runs := repository.NewSQLiteRunRepo(database)
	svc := NewEstimateService(testRenderers(pdf), runs, testutil.NewTestUoW(database), observers...)
	return svc, runs
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

var errBoom = errors.New("boom")

// syncBuffer is a goroutine-safe writer for log assertions.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
