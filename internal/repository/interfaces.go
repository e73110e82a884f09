package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/estimate/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type RunRepo interface {
	Create(ctx context.Context, r *domain.EstimateRun) error
	GetByID(ctx context.Context, id string) (*domain.EstimateRun, error)
	List(ctx context.Context, limit int) ([]*domain.EstimateRun, error)
	ListBySource(ctx context.Context, sourcePath string, limit int) ([]*domain.EstimateRun, error)
	Delete(ctx context.Context, id string) error
}
