package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"scanhub/internal/lifecycle"
	"scanhub/pkg/platform/sentinel"
)

// PostgresStore persists envelope streams in an append-only table keyed by
// (envelope_id, version). The primary key enforces per-aggregate append
// ordering: an append at a stale expected version hits a unique violation
// and surfaces as sentinel.ErrVersionConflict.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps a pgx pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const schema = `
CREATE TABLE IF NOT EXISTS scan_envelope_events (
	envelope_id UUID        NOT NULL,
	version     BIGINT      NOT NULL,
	event_type  TEXT        NOT NULL,
	payload     JSONB       NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (envelope_id, version)
)`

// EnsureSchema creates the event table if missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure event schema: %w", err)
	}
	return nil
}

// Append writes the batch in one transaction at consecutive versions
// starting after expectedVersion. All rows commit or none do.
func (s *PostgresStore) Append(ctx context.Context, envelopeID uuid.UUID, expectedVersion int64, events []lifecycle.Event) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback(ctx)

	var current int64
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM scan_envelope_events WHERE envelope_id = $1`,
		envelopeID).Scan(&current)
	if err != nil {
		return fmt.Errorf("read stream version: %w", err)
	}
	if current != expectedVersion {
		return sentinel.ErrVersionConflict
	}

	for i, ev := range events {
		eventType, payload, err := lifecycle.MarshalEvent(ev)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO scan_envelope_events (envelope_id, version, event_type, payload) VALUES ($1, $2, $3, $4)`,
			envelopeID, expectedVersion+int64(i)+1, eventType, payload)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return sentinel.ErrVersionConflict
			}
			return fmt.Errorf("insert event: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

// Load reads the stream in version order; an unknown envelope yields an
// empty slice.
func (s *PostgresStore) Load(ctx context.Context, envelopeID uuid.UUID) ([]lifecycle.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT event_type, payload FROM scan_envelope_events WHERE envelope_id = $1 ORDER BY version`,
		envelopeID)
	if err != nil {
		return nil, fmt.Errorf("load stream: %w", err)
	}
	defer rows.Close()

	var events []lifecycle.Event
	for rows.Next() {
		var eventType string
		var payload []byte
		if err := rows.Scan(&eventType, &payload); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		ev, err := lifecycle.UnmarshalEvent(eventType, payload)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stream: %w", err)
	}
	return events, nil
}
