package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/estimate/internal/db"
	"github.com/alexanderramin/estimate/internal/domain"
)

const runColumns = `id, source_path, markdown_path, pdf_path, total_hours, node_count, leaf_count, rendered, created_at`

// SQLiteRunRepo implements RunRepo using a SQLite database.
type SQLiteRunRepo struct {
	db db.DBTX
}

// NewSQLiteRunRepo creates a SQLiteRunRepo on a *sql.DB or a transaction.
func NewSQLiteRunRepo(db db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: db}
}

func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.EstimateRun) error {
	query := `INSERT INTO estimate_runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.SourcePath,
		run.MarkdownPath,
		run.PDFPath,
		nullableFloatToValue(run.TotalHours),
		run.NodeCount,
		run.LeafCount,
		boolToInt(run.Rendered),
		formatTime(run.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting estimate run: %w", err)
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.EstimateRun, error) {
	query := `SELECT ` + runColumns + ` FROM estimate_runs WHERE id = ?`
	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("estimate run %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning estimate run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs first. A non-positive limit returns all.
func (r *SQLiteRunRepo) List(ctx context.Context, limit int) ([]*domain.EstimateRun, error) {
	query := `SELECT ` + runColumns + ` FROM estimate_runs
		ORDER BY created_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limitOrAll(limit))
	if err != nil {
		return nil, fmt.Errorf("listing estimate runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// ListBySource returns the runs for one source document, most recent first.
func (r *SQLiteRunRepo) ListBySource(ctx context.Context, sourcePath string, limit int) ([]*domain.EstimateRun, error) {
	query := `SELECT ` + runColumns + ` FROM estimate_runs
		WHERE source_path = ?
		ORDER BY created_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, sourcePath, limitOrAll(limit))
	if err != nil {
		return nil, fmt.Errorf("listing estimate runs by source: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func (r *SQLiteRunRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM estimate_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting estimate run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("estimate run %s: %w", id, ErrNotFound)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.EstimateRun, error) {
	var run domain.EstimateRun
	var total sql.NullFloat64
	var rendered int
	var createdAt string

	err := row.Scan(
		&run.ID, &run.SourcePath, &run.MarkdownPath, &run.PDFPath,
		&total, &run.NodeCount, &run.LeafCount, &rendered, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	run.TotalHours = floatFromNull(total)
	run.Rendered = intToBool(rendered)
	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	return &run, nil
}

func scanRuns(rows *sql.Rows) ([]*domain.EstimateRun, error) {
	var runs []*domain.EstimateRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning estimate run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating estimate runs: %w", err)
	}
	return runs, nil
}
