package testutil

import (
	"strings"
	"time"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/google/uuid"
)

// Run options
type RunOption func(*domain.EstimateRun)

func WithTotal(hours float64) RunOption {
	return func(r *domain.EstimateRun) {
		r.TotalHours = &hours
	}
}

func WithoutTotal() RunOption {
	return func(r *domain.EstimateRun) {
		r.TotalHours = nil
	}
}

func WithCreatedAt(t time.Time) RunOption {
	return func(r *domain.EstimateRun) {
		r.CreatedAt = t
	}
}

func WithRendered(pdfPath string) RunOption {
	return func(r *domain.EstimateRun) {
		r.Rendered = true
		r.PDFPath = pdfPath
	}
}

func WithCounts(nodes, leaves int) RunOption {
	return func(r *domain.EstimateRun) {
		r.NodeCount = nodes
		r.LeafCount = leaves
	}
}

// NewTestRun builds a run for sourcePath that writes markdown back in place.
func NewTestRun(sourcePath string, opts ...RunOption) *domain.EstimateRun {
	r := &domain.EstimateRun{
		ID:           uuid.New().String(),
		SourcePath:   sourcePath,
		MarkdownPath: sourcePath,
		TotalHours:   domain.Float64Ptr(8),
		NodeCount:    3,
		LeafCount:    2,
		CreatedAt:    time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Outline joins lines into outline text. It keeps test inputs readable
// without raw string indentation noise.
func Outline(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}
