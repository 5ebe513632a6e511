package testutil

import (
	"context"
	"database/sql"
	"sync"

	"github.com/tzofim/peula/internal/db"
)

// FaultyUoW wraps a real UnitOfWork and fails the FailAt-th write (1-based)
// issued inside a transaction. Reads are never counted or failed.
type FaultyUoW struct {
	Inner  db.UnitOfWork
	FailAt int
	Err    error

	mu     sync.Mutex
	writes []string
}

// NewFaultyUoW returns a FaultyUoW over a SQLite transaction manager.
func NewFaultyUoW(database *sql.DB, failAt int, err error) *FaultyUoW {
	return &FaultyUoW{Inner: NewTestUoW(database), FailAt: failAt, Err: err}
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &faultyTx{DBTX: tx, uow: u})
	})
}

// Writes lists the statements attempted so far, including the failed one.
func (u *FaultyUoW) Writes() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.writes...)
}

func (u *FaultyUoW) record(query string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.writes = append(u.writes, query)
	return len(u.writes) == u.FailAt
}

type faultyTx struct {
	db.DBTX
	uow *FaultyUoW
}

func (t *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if t.uow.record(query) {
		return nil, t.uow.Err
	}
	return t.DBTX.ExecContext(ctx, query, args...)
}
