package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/alexanderramin/estimate/internal/db"
	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/estimator"
	"github.com/alexanderramin/estimate/internal/outline"
	"github.com/alexanderramin/estimate/internal/render"
	"github.com/alexanderramin/estimate/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const outputFileMode = 0o644

type estimateService struct {
	renderers Renderers
	runs      repository.RunRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
	now       func() time.Time
}

// NewEstimateService wires the pipeline. runs and uow may be nil, in which
// case no history is recorded.
func NewEstimateService(
	renderers Renderers,
	runs repository.RunRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) EstimateService {
	return &estimateService{
		renderers: renderers,
		runs:      runs,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *estimateService) Estimate(ctx context.Context, text string, opts Options) (result *Result, err error) {
	startedAt := time.Now()
	fields := map[string]any{"html": opts.HTML || opts.PDF, "pdf": opts.PDF}
	defer func() { observe(ctx, s.observer, "estimate", startedAt, fields, err) }()

	result, err = s.estimate(ctx, text, opts)
	if err != nil {
		return nil, err
	}
	fields["nodes"] = result.Summary.Nodes
	fields["changed"] = result.Changed
	return result, nil
}

func (s *estimateService) estimate(ctx context.Context, text string, opts Options) (*Result, error) {
	parsed := outline.Parse(text)
	tree := parsed.Clone()
	estimator.CalculateDurations(tree)

	result := &Result{
		Parsed:  parsed,
		Tree:    tree,
		Summary: estimator.Summarize(tree),
		Changed: estimator.CountChanged(parsed, tree),
	}

	md, err := s.renderers.Markdown.Render(tree)
	if err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	result.Markdown = md

	if !opts.HTML && !opts.PDF {
		return result, nil
	}
	if s.renderers.HTML == nil {
		return nil, errors.New("rendering html: no html renderer configured")
	}
	html, err := s.renderers.HTML.Render(tree)
	if err != nil {
		return nil, fmt.Errorf("rendering html: %w", err)
	}
	result.HTML = html

	if !opts.PDF {
		return result, nil
	}
	if s.renderers.PDF == nil {
		return nil, fmt.Errorf("rendering pdf: %w", render.ErrPDFUnavailable)
	}
	pdf, err := s.renderers.PDF.Render(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	result.PDF = pdf
	return result, nil
}

func (s *estimateService) ProcessFile(ctx context.Context, req Request) (result *Result, err error) {
	startedAt := time.Now()
	fields := map[string]any{"source": req.SourcePath, "render": req.Render}
	defer func() { observe(ctx, s.observer, "process-file", startedAt, fields, err) }()

	result, err = s.processFile(ctx, req)
	if err != nil {
		return nil, err
	}
	if s.runs != nil {
		if err = s.runs.Create(ctx, result.Run); err != nil {
			return nil, fmt.Errorf("recording run: %w", err)
		}
	}
	fields["nodes"] = result.Summary.Nodes
	return result, nil
}

// processFile runs one document end to end without touching history.
func (s *estimateService) processFile(ctx context.Context, req Request) (*Result, error) {
	req = req.withDefaults()

	text, err := readSource(req.SourcePath)
	if err != nil {
		return nil, err
	}

	result, err := s.estimate(ctx, text, Options{HTML: req.HTMLPath != "", PDF: req.Render})
	if err != nil {
		return nil, fmt.Errorf("processing %s: %w", req.SourcePath, err)
	}

	if err := writeOutput(req.MarkdownPath, []byte(result.Markdown)); err != nil {
		return nil, err
	}
	result.MarkdownPath = req.MarkdownPath

	if req.HTMLPath != "" {
		if err := writeOutput(req.HTMLPath, []byte(result.HTML)); err != nil {
			return nil, err
		}
		result.HTMLPath = req.HTMLPath
	}

	if req.Render {
		if err := writeOutput(req.PDFPath, result.PDF); err != nil {
			return nil, err
		}
		result.PDFPath = req.PDFPath
	}

	result.Run = s.newRun(req, result)
	return result, nil
}

func (s *estimateService) newRun(req Request, result *Result) *domain.EstimateRun {
	run := &domain.EstimateRun{
		ID:           uuid.New().String(),
		SourcePath:   canonicalSource(req.SourcePath),
		MarkdownPath: canonicalSource(req.MarkdownPath),
		NodeCount:    result.Summary.Nodes,
		LeafCount:    result.Summary.Leaves,
		Rendered:     req.Render,
		CreatedAt:    s.now(),
	}
	if result.Summary.Total != nil {
		run.TotalHours = domain.Float64Ptr(*result.Summary.Total)
	}
	if req.Render {
		run.PDFPath = canonicalSource(req.PDFPath)
	}
	return run
}

// ProcessBatch processes every request concurrently, at most concurrency at
// a time. The first failure cancels the remaining documents and nothing is
// recorded. On success all runs are recorded in one transaction.
func (s *estimateService) ProcessBatch(ctx context.Context, reqs []Request, concurrency int) (results []*Result, err error) {
	startedAt := time.Now()
	fields := map[string]any{"documents": len(reqs), "concurrency": concurrency}
	defer func() { observe(ctx, s.observer, "process-batch", startedAt, fields, err) }()

	if concurrency <= 0 {
		concurrency = 1
	}

	results = make([]*Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.processFile(gctx, req)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	if err = s.recordRuns(ctx, results); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *estimateService) recordRuns(ctx context.Context, results []*Result) error {
	switch {
	case s.uow != nil:
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txRuns := repository.NewSQLiteRunRepo(tx)
			for _, res := range results {
				if err := txRuns.Create(ctx, res.Run); err != nil {
					return fmt.Errorf("recording run for %s: %w", res.Run.SourcePath, err)
				}
			}
			return nil
		})
	case s.runs != nil:
		for _, res := range results {
			if err := s.runs.Create(ctx, res.Run); err != nil {
				return fmt.Errorf("recording run for %s: %w", res.Run.SourcePath, err)
			}
		}
	}
	return nil
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, outputFileMode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
