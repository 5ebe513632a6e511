package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tzofim/peula/internal/db"
	"github.com/tzofim/peula/internal/domain"
)

// SQLPeulaRepo implements PeulaRepo on SQLite or PostgreSQL.
type SQLPeulaRepo struct {
	db db.DBTX
}

// NewSQLPeulaRepo creates a new SQLPeulaRepo. conn must already be bound to
// its dialect (see db.Bind).
func NewSQLPeulaRepo(conn db.DBTX) *SQLPeulaRepo {
	return &SQLPeulaRepo{db: conn}
}

const peulaColumns = `id, title, topic, age_group, duration, group_size, goals,
	available_materials, special_considerations, content, version, created_at`

func (r *SQLPeulaRepo) Create(ctx context.Context, p *domain.Peula) error {
	content, err := p.Content.Encode()
	if err != nil {
		return fmt.Errorf("encoding peula content: %w", err)
	}
	materials, err := encodeStrings(p.AvailableMaterials)
	if err != nil {
		return err
	}
	if p.Version == 0 {
		p.Version = 1
	}
	query := `INSERT INTO peulot (` + peulaColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.Title,
		p.Topic,
		p.AgeGroup,
		p.Duration,
		p.GroupSize,
		p.Goals,
		materials,
		nullableString(p.SpecialConsiderations),
		string(content),
		p.Version,
		formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting peula: %w", err)
	}
	return nil
}

func (r *SQLPeulaRepo) GetByID(ctx context.Context, id string) (*domain.Peula, error) {
	query := `SELECT ` + peulaColumns + ` FROM peulot WHERE id = ?`
	p, err := r.scanPeula(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("peula", id)
	}
	return p, err
}

func (r *SQLPeulaRepo) List(ctx context.Context) ([]*domain.Peula, error) {
	query := `SELECT ` + peulaColumns + ` FROM peulot ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing peulot: %w", err)
	}
	defer rows.Close()

	peulot := []*domain.Peula{}
	for rows.Next() {
		p, err := r.scanPeula(rows)
		if err != nil {
			return nil, err
		}
		peulot = append(peulot, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating peulot: %w", err)
	}
	return peulot, nil
}

func (r *SQLPeulaRepo) UpdateContent(ctx context.Context, id string, mutate ContentMutator) (*domain.Peula, error) {
	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		content := current.Content.Clone()
		if err := mutate(&content); err != nil {
			return nil, err
		}
		raw, err := content.Encode()
		if err != nil {
			return nil, fmt.Errorf("encoding peula content: %w", err)
		}

		res, err := r.db.ExecContext(ctx,
			`UPDATE peulot SET content = ?, version = version + 1 WHERE id = ? AND version = ?`,
			string(raw), id, current.Version)
		if err != nil {
			return nil, fmt.Errorf("updating peula content: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("checking peula update: %w", err)
		}
		if n == 1 {
			current.Content = content
			current.Version++
			return current, nil
		}
		// Lost the race: another writer bumped the version. Re-read and retry.
	}
	return nil, fmt.Errorf("peula %s: %w", id, ErrConcurrentUpdate)
}

func (r *SQLPeulaRepo) Delete(ctx context.Context, id string) error {
	// feedback rows go with it through ON DELETE CASCADE.
	_, err := r.db.ExecContext(ctx, `DELETE FROM peulot WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting peula: %w", err)
	}
	return nil
}

func (r *SQLPeulaRepo) scanPeula(row rowScanner) (*domain.Peula, error) {
	var p domain.Peula
	var materials, content, createdAt string
	var considerations sql.NullString

	err := row.Scan(
		&p.ID, &p.Title, &p.Topic, &p.AgeGroup, &p.Duration, &p.GroupSize, &p.Goals,
		&materials, &considerations, &content, &p.Version, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning peula: %w", err)
	}

	p.AvailableMaterials, err = decodeStrings(materials)
	if err != nil {
		return nil, fmt.Errorf("peula %s: %w", p.ID, err)
	}
	p.SpecialConsiderations = stringPtr(considerations)
	p.Content, err = domain.DecodePeulaContent([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("peula %s: %w", p.ID, err)
	}
	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &p, nil
}
