// Package render turns a resolved estimate tree into markdown, HTML and PDF.
//
// Renderers take the synthetic document root produced by outline.Parse and
// render each of its children as a top-level item. They never mutate the tree.
package render

import (
	"context"
	"errors"

	"github.com/alexanderramin/estimate/internal/domain"
)

// ErrPDFUnavailable is returned when no PDF engine can be started.
var ErrPDFUnavailable = errors.New("pdf renderer unavailable")

// Renderer maps a resolved tree to text.
type Renderer interface {
	Render(tree *domain.Node) (string, error)
}

// PDFRenderer converts a self-contained HTML document into PDF bytes.
type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// Compile-time interface checks.
var (
	_ Renderer    = (*MarkdownRenderer)(nil)
	_ Renderer    = (*HTMLRenderer)(nil)
	_ PDFRenderer = (*ChromePDF)(nil)
)
