package audit

import (
	"context"

	pkgerrors "notarium/pkg/domain-errors"
)

var (
	// ErrNotFound keeps storage-specific 404s consistent across implementations.
	ErrNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
)

type Store interface {
	Append(ctx context.Context, event Event) error
	// ListRecent returns the newest events first, up to limit.
	ListRecent(ctx context.Context, limit int) ([]Event, error)
	// ListBySubject returns events for one subject, newest first.
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
}
