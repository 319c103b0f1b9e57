package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"crosswords-analytics/internal/domain"
)

// SubmissionRepository reads submission rows from the platform database. The
// analytics service never writes: every statement here is a SELECT.
type SubmissionRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSubmissionRepository(db *sql.DB, logger zerolog.Logger) *SubmissionRepository {
	return &SubmissionRepository{db: db, logger: logger}
}

const submissionColumns = `
	s.id, s.user_id, s.grid_id, COALESCE(u.pseudo, ''),
	s.final_score, s.completion_time_seconds,
	s.words_found, s.total_words, s.joker_used, s.submitted_at`

// ListByGrid returns every submission for one grid, joined with the
// submitting user's pseudo, ordered by submission time then id so downstream
// computations are deterministic.
func (r *SubmissionRepository) ListByGrid(ctx context.Context, gridID int) ([]domain.Submission, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submission s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.grid_id = $1
		ORDER BY s.submitted_at, s.id
	`, gridID)
	if err != nil {
		return nil, fmt.Errorf("listing submissions for grid %d: %w", gridID, err)
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

// ListAll returns every submission on the platform, for global computations.
func (r *SubmissionRepository) ListAll(ctx context.Context) ([]domain.Submission, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submission s
		LEFT JOIN users u ON u.id = s.user_id
		ORDER BY s.submitted_at, s.id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

// Count returns the total number of submissions.
func (r *SubmissionRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submission`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting submissions: %w", err)
	}
	return n, nil
}

func scanSubmissions(rows *sql.Rows) ([]domain.Submission, error) {
	var subs []domain.Submission
	for rows.Next() {
		var s domain.Submission
		var score sql.NullFloat64
		var completionTime sql.NullInt64
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.GridID, &s.Pseudo,
			&score, &completionTime,
			&s.WordsFound, &s.TotalWords, &s.JokerUsed, &s.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		if score.Valid {
			v := score.Float64
			s.FinalScore = &v
		}
		if completionTime.Valid {
			v := int(completionTime.Int64)
			s.CompletionTimeSeconds = &v
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
