package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tzofim/peula/internal/db"
)

// Backend names a Record Store implementation.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Options selects and configures the Record Store backend.
type Options struct {
	Backend Backend
	// Path is the SQLite database file (or ":memory:").
	Path string
	// DSN is the PostgreSQL connection string.
	DSN string
}

// Store bundles the four repositories behind one backend. Callers depend on
// the interfaces only; the backend is picked once, in Open.
type Store struct {
	Backend          Backend
	Peulot           PeulaRepo
	Feedback         FeedbackRepo
	TrainingExamples TrainingExampleRepo
	Anchors          AnchorRepo

	sqlDB *sql.DB
}

// Open creates the Store described by opts.
func Open(opts Options) (*Store, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendSQLite:
		path := opts.Path
		if path == "" {
			path = ":memory:"
		}
		database, err := db.OpenDB(path)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(database, db.DialectSQLite), nil
	case BackendPostgres:
		database, err := db.OpenPostgres(opts.DSN)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(database, db.DialectPostgres), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (want memory, sqlite or postgres)", opts.Backend)
	}
}

// NewSQLStore wires SQL repositories over an open, migrated database.
func NewSQLStore(database *sql.DB, dialect db.Dialect) *Store {
	conn := db.Bind(database, dialect)
	uow := db.NewSQLUnitOfWork(database, dialect)
	backend := BackendSQLite
	if dialect == db.DialectPostgres {
		backend = BackendPostgres
	}
	return &Store{
		Backend:          backend,
		Peulot:           NewSQLPeulaRepo(conn),
		Feedback:         NewSQLFeedbackRepo(conn),
		TrainingExamples: NewSQLTrainingExampleRepo(conn),
		Anchors:          NewSQLAnchorRepo(conn, uow),
		sqlDB:            database,
	}
}

// NewMemoryStore wires in-memory repositories sharing one state.
func NewMemoryStore() *Store {
	data := newMemoryData()
	return &Store{
		Backend:          BackendMemory,
		Peulot:           &MemoryPeulaRepo{data: data},
		Feedback:         &MemoryFeedbackRepo{data: data},
		TrainingExamples: &MemoryTrainingExampleRepo{data: data},
		Anchors:          &MemoryAnchorRepo{data: data},
	}
}

// Ping checks the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.PingContext(ctx)
}

// Close releases the underlying database, if any.
func (s *Store) Close() error {
	if s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
