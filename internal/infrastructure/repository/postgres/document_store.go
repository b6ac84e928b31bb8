package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/pitchside/leaguedesk/internal/domain/document"
)

// DocumentStore keeps each named document as one jsonb row. The upsert
// replaces the payload wholesale, matching the write-whole-document contract.
type DocumentStore struct {
	db *sqlx.DB
}

func NewDocumentStore(db *sqlx.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func Open(dbURL string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

type documentRow struct {
	Name    string `db:"name"`
	Payload []byte `db:"payload"`
}

func (s *DocumentStore) ReadDocument(ctx context.Context, name string) ([]byte, error) {
	if !document.KnownName(name) {
		return nil, fmt.Errorf("unknown document %q", name)
	}

	var row documentRow
	err := s.db.GetContext(ctx, &row, `SELECT name, payload FROM documents WHERE name = $1`, name)
	if err == nil {
		return row.Payload, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("select document %s: %w", name, err)
	}

	// First read of a never-written document seeds the empty array so the
	// next reader sees the same value.
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (name, payload, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (name) DO NOTHING`,
		name, document.EmptyArray,
	)
	if err != nil {
		return nil, fmt.Errorf("initialize document %s: %w", name, err)
	}

	return append([]byte(nil), document.EmptyArray...), nil
}

func (s *DocumentStore) WriteDocument(ctx context.Context, name string, payload []byte) error {
	if !document.KnownName(name) {
		return fmt.Errorf("unknown document %q", name)
	}
	if len(payload) == 0 {
		return fmt.Errorf("document %q payload is empty", name)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (name, payload, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`,
		name, payload,
	)
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", name, err)
	}

	return nil
}
