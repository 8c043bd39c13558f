// Package listing provides listing record stores. The in-memory variant backs
// the demo environment and tests; the PostgreSQL variant backs production.
package listing

import (
	"context"
	"slices"
	"strings"
	"sync"

	"notarium/internal/directory/models"
	"notarium/internal/sentinel"
	id "notarium/pkg/domain"
)

// ErrNotFound is returned when a listing is not found.
var ErrNotFound = sentinel.ErrNotFound

// InMemory stores listings in memory for the demo environment.
type InMemory struct {
	mu       sync.RWMutex
	listings map[string]models.Listing
}

// NewInMemory creates an in-memory listing store.
func NewInMemory() *InMemory {
	return &InMemory{listings: make(map[string]models.Listing)}
}

// Insert adds a listing. Inserting an existing id fails.
func (s *InMemory) Insert(_ context.Context, l models.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := l.ID.String()
	if _, exists := s.listings[key]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.listings[key] = l
	return nil
}

// FindByID retrieves a listing by its UUID.
func (s *InMemory) FindByID(_ context.Context, listingID id.ListingID) (*models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.listings[listingID.String()]; ok {
		return &l, nil
	}
	return nil, ErrNotFound
}

// ListRaw returns up to limit records in stored document shape, newest first,
// matching the postgres store's ordering. A limit below 1 means no bound.
func (s *InMemory) ListRaw(_ context.Context, limit int) ([]models.RawListing, error) {
	s.mu.RLock()
	all := make([]models.Listing, 0, len(s.listings))
	for _, l := range s.listings {
		all = append(all, l)
	}
	s.mu.RUnlock()

	slices.SortFunc(all, func(a, b models.Listing) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	out := make([]models.RawListing, 0, len(all))
	for _, l := range all {
		out = append(out, l.Raw())
	}
	return out, nil
}

// SetVerified flips the verification flag.
func (s *InMemory) SetVerified(_ context.Context, listingID id.ListingID, verified bool) error {
	return s.update(listingID, func(l *models.Listing) { l.Verified = verified })
}

// SetVisible flips the visibility flag.
func (s *InMemory) SetVisible(_ context.Context, listingID id.ListingID, visible bool) error {
	return s.update(listingID, func(l *models.Listing) { l.Visible = visible })
}

func (s *InMemory) update(listingID id.ListingID, mutate func(*models.Listing)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := listingID.String()
	l, ok := s.listings[key]
	if !ok {
		return ErrNotFound
	}
	mutate(&l)
	s.listings[key] = l
	return nil
}

// Count returns the total number of listings.
func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listings), nil
}

// CountVerified returns the number of verified listings.
func (s *InMemory) CountVerified(ctx context.Context) (int, error) {
	return s.countWhere(func(l models.Listing) bool { return l.Verified })
}

// CountHidden returns the number of hidden listings.
func (s *InMemory) CountHidden(ctx context.Context) (int, error) {
	return s.countWhere(func(l models.Listing) bool { return !l.Visible })
}

func (s *InMemory) countWhere(match func(models.Listing) bool) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, l := range s.listings {
		if match(l) {
			n++
		}
	}
	return n, nil
}
