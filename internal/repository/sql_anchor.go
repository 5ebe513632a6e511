package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tzofim/peula/internal/db"
	"github.com/tzofim/peula/internal/domain"
)

// SQLAnchorRepo implements AnchorRepo on SQLite or PostgreSQL.
type SQLAnchorRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLAnchorRepo creates a new SQLAnchorRepo. uow is used by Reorder; it
// may be nil for tx-scoped repos.
func NewSQLAnchorRepo(conn db.DBTX, uow db.UnitOfWork) *SQLAnchorRepo {
	return &SQLAnchorRepo{db: conn, uow: uow}
}

func (r *SQLAnchorRepo) Create(ctx context.Context, a *domain.TzofimAnchor) error {
	query := `INSERT INTO tzofim_anchors (id, text, category, display_order, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Text, a.Category, a.DisplayOrder, formatTime(a.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting anchor: %w", err)
	}
	return nil
}

func (r *SQLAnchorRepo) GetByID(ctx context.Context, id string) (*domain.TzofimAnchor, error) {
	query := `SELECT id, text, category, display_order, created_at FROM tzofim_anchors WHERE id = ?`
	a, err := scanAnchor(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("anchor", id)
	}
	return a, err
}

func (r *SQLAnchorRepo) List(ctx context.Context) ([]*domain.TzofimAnchor, error) {
	query := `SELECT id, text, category, display_order, created_at
		FROM tzofim_anchors ORDER BY display_order, created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing anchors: %w", err)
	}
	defer rows.Close()

	anchors := []*domain.TzofimAnchor{}
	for rows.Next() {
		a, err := scanAnchor(rows)
		if err != nil {
			return nil, err
		}
		anchors = append(anchors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating anchors: %w", err)
	}
	return anchors, nil
}

func (r *SQLAnchorRepo) Update(ctx context.Context, a *domain.TzofimAnchor) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tzofim_anchors SET text = ?, category = ?, display_order = ? WHERE id = ?`,
		a.Text, a.Category, a.DisplayOrder, a.ID)
	if err != nil {
		return fmt.Errorf("updating anchor: %w", err)
	}
	return requireOneRow(res, "anchor", a.ID)
}

func (r *SQLAnchorRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tzofim_anchors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting anchor: %w", err)
	}
	return requireOneRow(res, "anchor", id)
}

func (r *SQLAnchorRepo) Reorder(ctx context.Context, ids []string) error {
	if r.uow == nil {
		return r.reorder(ctx, ids)
	}
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLAnchorRepo(tx, nil).reorder(ctx, ids)
	})
}

func (r *SQLAnchorRepo) reorder(ctx context.Context, ids []string) error {
	for i, id := range ids {
		res, err := r.db.ExecContext(ctx, `UPDATE tzofim_anchors SET display_order = ? WHERE id = ?`, i, id)
		if err != nil {
			return fmt.Errorf("reordering anchor %s: %w", id, err)
		}
		if err := requireOneRow(res, "anchor", id); err != nil {
			return err
		}
	}
	return nil
}

func scanAnchor(row rowScanner) (*domain.TzofimAnchor, error) {
	var a domain.TzofimAnchor
	var createdAt string
	if err := row.Scan(&a.ID, &a.Text, &a.Category, &a.DisplayOrder, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning anchor: %w", err)
	}
	var err error
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &a, nil
}

func requireOneRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows: %w", entity, err)
	}
	if n == 0 {
		return domain.NewNotFoundError(entity, id)
	}
	return nil
}
