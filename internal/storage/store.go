// Package storage implements the event store over Postgres.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/classtools/push-relay/internal/core"
)

// Store persists push events as one JSONB document per delivery ID. It
// satisfies core.EventStore; the extra read methods exist for the operator
// CLI, not the relay pipeline.
type Store struct {
	db    *sqlx.DB
	table string
}

// NewStore creates a Store writing to the given table. The table name comes
// from configuration and is quoted, so deployments can point the relay at a
// different collection without a code change.
func NewStore(db *sqlx.DB, table string) *Store {
	return &Store{db: db, table: table}
}

// Upsert inserts the event or fully replaces the existing document with the
// same ID. The replacement covers every column, so repeated deliveries of one
// ID converge to the most recent delivery's payload and annotations. Postgres
// row-level atomicity makes the operation atomic per ID.
func (s *Store) Upsert(ctx context.Context, event *core.PushEvent) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, payload, received_at, received_semester)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			payload = EXCLUDED.payload,
			received_at = EXCLUDED.received_at,
			received_semester = EXCLUDED.received_semester`,
		pq.QuoteIdentifier(s.table))

	var semester sql.NullString
	if event.ReceivedSemester != "" {
		semester = sql.NullString{String: event.ReceivedSemester, Valid: true}
	}

	if _, err := s.db.ExecContext(ctx, query, event.ID, []byte(event.Payload), event.ReceivedAt, semester); err != nil {
		return fmt.Errorf("upsert push event %s: %w", event.ID, err)
	}
	return nil
}

// Exists reports whether a document with the given delivery ID is stored.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, pq.QuoteIdentifier(s.table))

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("look up push event %s: %w", id, err)
	}
	return exists, nil
}
