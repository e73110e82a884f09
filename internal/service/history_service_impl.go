package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/repository"
)

type historyService struct {
	runs     repository.RunRepo
	observer UseCaseObserver
}

func NewHistoryService(runs repository.RunRepo, observers ...UseCaseObserver) HistoryService {
	return &historyService{
		runs:     runs,
		observer: useCaseObserverOrNoop(observers),
	}
}

// List returns recent runs, newest first. A non-empty sourcePath restricts
// the result to runs of that document. limit <= 0 means no limit.
func (s *historyService) List(ctx context.Context, sourcePath string, limit int) (runs []*domain.EstimateRun, err error) {
	startedAt := time.Now()
	fields := map[string]any{"source": sourcePath, "limit": limit}
	defer func() { observe(ctx, s.observer, "list-history", startedAt, fields, err) }()

	if sourcePath == "" {
		runs, err = s.runs.List(ctx, limit)
	} else {
		runs, err = s.runs.ListBySource(ctx, canonicalSource(sourcePath), limit)
	}
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	fields["count"] = len(runs)
	return runs, nil
}

func (s *historyService) Get(ctx context.Context, id string) (*domain.EstimateRun, error) {
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", id, err)
	}
	return run, nil
}
