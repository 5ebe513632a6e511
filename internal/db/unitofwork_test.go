package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzofim/peula/internal/db"
)

func newAnchorUoW(t *testing.T) (*sql.DB, *db.SQLUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLUnitOfWork(database, db.DialectSQLite)
}

func insertAnchor(ctx context.Context, tx db.DBTX, id string, order int) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO tzofim_anchors (id, text, category, display_order, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, "anchor "+id, "values", order, "2026-01-01T00:00:00Z")
	return err
}

func anchorCount(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM tzofim_anchors`).Scan(&n))
	return n
}

func TestWithinTx_CommitsAllWrites(t *testing.T) {
	database, uow := newAnchorUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		for i, id := range []string{"a", "b", "c"} {
			if err := insertAnchor(ctx, tx, id, i); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, anchorCount(t, database))
}

func TestWithinTx_ErrorDiscardsEarlierWrites(t *testing.T) {
	database, uow := newAnchorUoW(t)
	stop := errors.New("stop after first write")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertAnchor(ctx, tx, "a", 0); err != nil {
			return err
		}
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Zero(t, anchorCount(t, database))
}

func TestWithinTx_PanicRollsBackAndRepanics(t *testing.T) {
	database, uow := newAnchorUoW(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertAnchor(ctx, tx, "a", 0)
			panic("boom")
		})
	})
	assert.Zero(t, anchorCount(t, database))
}

type queryRecorder struct {
	db.DBTX
	queries []string
}

func (r *queryRecorder) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	r.queries = append(r.queries, query)
	return nil, nil
}

func TestBind(t *testing.T) {
	ctx := context.Background()
	rec := &queryRecorder{}

	assert.Same(t, db.DBTX(rec), db.Bind(rec, db.DialectSQLite))

	bound := db.Bind(rec, db.DialectPostgres)
	_, err := bound.ExecContext(ctx, `UPDATE tzofim_anchors SET display_order = ? WHERE id = ?`, 1, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{`UPDATE tzofim_anchors SET display_order = $1 WHERE id = $2`}, rec.queries)
}
