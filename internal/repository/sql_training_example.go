package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tzofim/peula/internal/db"
	"github.com/tzofim/peula/internal/domain"
)

// SQLTrainingExampleRepo implements TrainingExampleRepo on SQLite or PostgreSQL.
type SQLTrainingExampleRepo struct {
	db db.DBTX
}

// NewSQLTrainingExampleRepo creates a new SQLTrainingExampleRepo.
func NewSQLTrainingExampleRepo(conn db.DBTX) *SQLTrainingExampleRepo {
	return &SQLTrainingExampleRepo{db: conn}
}

func (r *SQLTrainingExampleRepo) Create(ctx context.Context, e *domain.TrainingExample) error {
	query := `INSERT INTO training_examples (id, title, content, notes, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Title,
		e.Content,
		nullableString(e.Notes),
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting training example: %w", err)
	}
	return nil
}

func (r *SQLTrainingExampleRepo) GetByID(ctx context.Context, id string) (*domain.TrainingExample, error) {
	query := `SELECT id, title, content, notes, created_at FROM training_examples WHERE id = ?`
	e, err := scanTrainingExample(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("training example", id)
	}
	return e, err
}

func (r *SQLTrainingExampleRepo) List(ctx context.Context) ([]*domain.TrainingExample, error) {
	query := `SELECT id, title, content, notes, created_at
		FROM training_examples ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing training examples: %w", err)
	}
	defer rows.Close()

	examples := []*domain.TrainingExample{}
	for rows.Next() {
		e, err := scanTrainingExample(rows)
		if err != nil {
			return nil, err
		}
		examples = append(examples, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating training examples: %w", err)
	}
	return examples, nil
}

func (r *SQLTrainingExampleRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM training_examples WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting training example: %w", err)
	}
	return nil
}

func scanTrainingExample(row rowScanner) (*domain.TrainingExample, error) {
	var e domain.TrainingExample
	var notes sql.NullString
	var createdAt string
	if err := row.Scan(&e.ID, &e.Title, &e.Content, &notes, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning training example: %w", err)
	}
	e.Notes = stringPtr(notes)
	var err error
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}
