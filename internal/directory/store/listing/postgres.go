package listing

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"notarium/internal/directory/models"
	"notarium/internal/sentinel"
	id "notarium/pkg/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const listingsTable = "listings"

var listingColumns = []string{
	"id", "name", "title", "location", "contact_phone", "contact_email",
	"rating", "review_count", "biography", "services", "portrait_url",
	"verified", "visible", "created_at", "updated_at",
}

// PostgresStore persists listings in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed listing store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Insert adds a listing. Inserting an existing id fails.
func (s *PostgresStore) Insert(ctx context.Context, l models.Listing) error {
	services, err := json.Marshal(l.Services)
	if err != nil {
		return fmt.Errorf("encode services: %w", err)
	}

	query, args, err := psql.Insert(listingsTable).
		Columns(listingColumns...).
		Values(uuid.UUID(l.ID), l.Name, l.Title, l.Location, l.ContactPhone,
			l.ContactEmail, l.Rating, l.ReviewCount, l.Biography, services,
			l.PortraitURL, l.Verified, l.Visible, l.CreatedAt, l.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

// FindByID retrieves a listing by its UUID.
func (s *PostgresStore) FindByID(ctx context.Context, listingID id.ListingID) (*models.Listing, error) {
	query, args, err := psql.Select(listingColumns...).
		From(listingsTable).
		Where(sq.Eq{"id": uuid.UUID(listingID)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	l, err := scanListing(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find listing by id: %w", err)
	}
	return l, nil
}

// ListRaw returns up to limit records in stored document shape. A limit below
// 1 means no bound.
func (s *PostgresStore) ListRaw(ctx context.Context, limit int) ([]models.RawListing, error) {
	builder := psql.Select(listingColumns...).
		From(listingsTable).
		OrderBy("created_at DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var out []models.RawListing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		out = append(out, l.Raw())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return out, nil
}

// SetVerified flips the verification flag.
func (s *PostgresStore) SetVerified(ctx context.Context, listingID id.ListingID, verified bool) error {
	return s.setFlag(ctx, listingID, "verified", verified)
}

// SetVisible flips the visibility flag.
func (s *PostgresStore) SetVisible(ctx context.Context, listingID id.ListingID, visible bool) error {
	return s.setFlag(ctx, listingID, "visible", visible)
}

func (s *PostgresStore) setFlag(ctx context.Context, listingID id.ListingID, column string, value bool) error {
	query, args, err := psql.Update(listingsTable).
		Set(column, value).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": uuid.UUID(listingID)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update listing %s: %w", column, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update listing rows: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// Count returns the total number of listings.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	return s.countWhere(ctx, nil)
}

// CountVerified returns the number of verified listings.
func (s *PostgresStore) CountVerified(ctx context.Context) (int, error) {
	return s.countWhere(ctx, sq.Eq{"verified": true})
}

// CountHidden returns the number of hidden listings.
func (s *PostgresStore) CountHidden(ctx context.Context) (int, error) {
	return s.countWhere(ctx, sq.Eq{"visible": false})
}

func (s *PostgresStore) countWhere(ctx context.Context, pred any) (int, error) {
	builder := psql.Select("COUNT(*)").From(listingsTable)
	if pred != nil {
		builder = builder.Where(pred)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return count, nil
}

type listingRow interface {
	Scan(dest ...any) error
}

func scanListing(row listingRow) (*models.Listing, error) {
	var l models.Listing
	var listingID uuid.UUID
	var services []byte
	if err := row.Scan(&listingID, &l.Name, &l.Title, &l.Location,
		&l.ContactPhone, &l.ContactEmail, &l.Rating, &l.ReviewCount,
		&l.Biography, &services, &l.PortraitURL, &l.Verified, &l.Visible,
		&l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(services, &l.Services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	l.ID = id.ListingID(listingID)
	return &l, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
