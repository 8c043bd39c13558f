package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"notarium/internal/sentinel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const adminsTable = "admins"

// PostgresStore persists the admin directory in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed admin directory.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Grant marks email as an admin. Granting twice is a no-op that keeps the
// original grant record.
func (s *PostgresStore) Grant(ctx context.Context, email, grantedBy string) error {
	query, args, err := psql.Insert(adminsTable).
		Columns("email", "granted_by", "granted_at").
		Values(normalize(email), grantedBy, time.Now().UTC()).
		Suffix("ON CONFLICT (email) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("grant admin: %w", err)
	}
	return nil
}

// Revoke removes the admin flag.
func (s *PostgresStore) Revoke(ctx context.Context, email string) error {
	query, args, err := psql.Delete(adminsTable).
		Where(sq.Eq{"email": normalize(email)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("revoke admin: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoke admin rows: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// IsAdmin reports whether email carries the admin flag.
func (s *PostgresStore) IsAdmin(ctx context.Context, email string) (bool, error) {
	query, args, err := psql.Select("1").
		From(adminsTable).
		Where(sq.Eq{"email": normalize(email)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build select: %w", err)
	}
	var one int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("admin lookup: %w", err)
	}
	return true, nil
}

// List returns all admin entries.
func (s *PostgresStore) List(ctx context.Context) ([]Record, error) {
	query, args, err := psql.Select("email", "granted_by", "granted_at").
		From(adminsTable).
		OrderBy("granted_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Email, &r.GrantedBy, &r.GrantedAt); err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return out, nil
}
