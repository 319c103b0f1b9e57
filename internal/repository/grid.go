package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"crosswords-analytics/internal/domain"
)

type GridRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewGridRepository(db *sql.DB, logger zerolog.Logger) *GridRepository {
	return &GridRepository{db: db, logger: logger}
}

// Get returns the grid with the given id, or domain.ErrGridNotFound.
func (r *GridRepository) Get(ctx context.Context, id int) (*domain.Grid, error) {
	var g domain.Grid
	var publishedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT id, version, rows, cols, published_at, created_at
		FROM grids WHERE id = $1
	`, id).Scan(&g.ID, &g.Version, &g.Rows, &g.Cols, &publishedAt, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Debug().Int("grid_id", id).Msg("grid not found")
		return nil, domain.ErrGridNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting grid %d: %w", id, err)
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		g.PublishedAt = &t
	}
	return &g, nil
}

// Exists reports whether a grid with the given id exists.
func (r *GridRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM grids WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking grid %d: %w", id, err)
	}
	return exists, nil
}

// List returns every grid ordered by id.
func (r *GridRepository) List(ctx context.Context) ([]domain.Grid, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, version, rows, cols, published_at, created_at
		FROM grids ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing grids: %w", err)
	}
	defer rows.Close()

	var grids []domain.Grid
	for rows.Next() {
		var g domain.Grid
		var publishedAt sql.NullTime
		if err := rows.Scan(&g.ID, &g.Version, &g.Rows, &g.Cols, &publishedAt, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning grid: %w", err)
		}
		if publishedAt.Valid {
			t := publishedAt.Time
			g.PublishedAt = &t
		}
		grids = append(grids, g)
	}
	return grids, rows.Err()
}

// Count returns the total number of grids.
func (r *GridRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM grids`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting grids: %w", err)
	}
	return n, nil
}

// CountPublished returns the number of grids released to players.
func (r *GridRepository) CountPublished(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM grids WHERE published_at IS NOT NULL`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting published grids: %w", err)
	}
	return n, nil
}
