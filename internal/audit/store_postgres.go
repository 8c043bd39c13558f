package audit

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const eventsTable = "audit_events"

var eventColumns = []string{
	"occurred_at", "actor_email", "subject", "action", "request_id", "client_ip",
}

// PostgresStore persists audit events in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	query, args, err := psql.Insert(eventsTable).
		Columns(eventColumns...).
		Values(event.Timestamp, event.ActorEmail, event.Subject,
			event.Action, event.RequestID, event.ClientIP).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	builder := psql.Select(eventColumns...).
		From(eventsTable).
		OrderBy("occurred_at DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	return s.list(ctx, builder)
}

func (s *PostgresStore) ListBySubject(ctx context.Context, subject string) ([]Event, error) {
	builder := psql.Select(eventColumns...).
		From(eventsTable).
		Where(sq.Eq{"subject": subject}).
		OrderBy("occurred_at DESC")
	return s.list(ctx, builder)
}

func (s *PostgresStore) list(ctx context.Context, builder sq.SelectBuilder) ([]Event, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Timestamp, &e.ActorEmail, &e.Subject,
			&e.Action, &e.RequestID, &e.ClientIP); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return out, nil
}
