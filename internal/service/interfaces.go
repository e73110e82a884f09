// Package service runs the estimation pipeline: read an outline, resolve its
// durations, render it and record the run.
package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/estimator"
	"github.com/alexanderramin/estimate/internal/render"
)

// ErrSourceNotFound is returned when the outline file does not exist.
var ErrSourceNotFound = errors.New("source file not found")

// Renderers bundles the output stages. HTML and PDF may be nil when the
// caller never asks for them.
type Renderers struct {
	Markdown render.Renderer
	HTML     render.Renderer
	PDF      render.PDFRenderer
}

// Options selects the optional outputs of Estimate. Markdown is always
// produced.
type Options struct {
	HTML bool
	PDF  bool // implies HTML
}

// Request describes one document to process.
type Request struct {
	SourcePath   string
	MarkdownPath string // defaults to SourcePath
	HTMLPath     string // optional HTML dump
	PDFPath      string // defaults to SourcePath with a .pdf extension
	Render       bool   // produce the PDF
}

// Result holds everything produced for one document.
type Result struct {
	// Parsed is the outline as written; Tree is the resolved copy.
	Parsed   *domain.Node
	Tree     *domain.Node
	Summary  estimator.Summary
	Changed  int // bullets whose duration the calculation rewrote
	Markdown string
	HTML     string
	PDF      []byte

	// Paths written by ProcessFile; empty when the output was skipped.
	MarkdownPath string
	HTMLPath     string
	PDFPath      string

	Run *domain.EstimateRun
}

type EstimateService interface {
	Estimate(ctx context.Context, text string, opts Options) (*Result, error)
	ProcessFile(ctx context.Context, req Request) (*Result, error)
	ProcessBatch(ctx context.Context, reqs []Request, concurrency int) ([]*Result, error)
}

type HistoryService interface {
	List(ctx context.Context, sourcePath string, limit int) ([]*domain.EstimateRun, error)
	Get(ctx context.Context, id string) (*domain.EstimateRun, error)
}
