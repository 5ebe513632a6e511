package repository

import (
	"context"
	"fmt"

	"github.com/tzofim/peula/internal/db"
	"github.com/tzofim/peula/internal/domain"
)

// SQLFeedbackRepo implements FeedbackRepo on SQLite or PostgreSQL.
type SQLFeedbackRepo struct {
	db db.DBTX
}

// NewSQLFeedbackRepo creates a new SQLFeedbackRepo.
func NewSQLFeedbackRepo(conn db.DBTX) *SQLFeedbackRepo {
	return &SQLFeedbackRepo{db: conn}
}

func (r *SQLFeedbackRepo) Create(ctx context.Context, f *domain.Feedback) error {
	query := `INSERT INTO feedback (id, peula_id, component_index, comment, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.PeulaID,
		f.ComponentIndex,
		f.Comment,
		formatTime(f.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting feedback: %w", err)
	}
	return nil
}

func (r *SQLFeedbackRepo) ListByPeula(ctx context.Context, peulaID string) ([]*domain.Feedback, error) {
	query := `SELECT id, peula_id, component_index, comment, created_at
		FROM feedback WHERE peula_id = ? ORDER BY created_at, id`
	return r.list(ctx, query, peulaID)
}

func (r *SQLFeedbackRepo) ListAll(ctx context.Context) ([]*domain.Feedback, error) {
	query := `SELECT id, peula_id, component_index, comment, created_at
		FROM feedback ORDER BY created_at, id`
	return r.list(ctx, query)
}

func (r *SQLFeedbackRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM feedback WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting feedback: %w", err)
	}
	return nil
}

func (r *SQLFeedbackRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing feedback: %w", err)
	}
	defer rows.Close()

	items := []*domain.Feedback{}
	for rows.Next() {
		var f domain.Feedback
		var createdAt string
		if err := rows.Scan(&f.ID, &f.PeulaID, &f.ComponentIndex, &f.Comment, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning feedback row: %w", err)
		}
		if f.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		items = append(items, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feedback: %w", err)
	}
	return items, nil
}
