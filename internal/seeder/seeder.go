// Package seeder populates in-memory stores with demo data so a fresh
// instance has a browsable directory and a working admin console.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"notarium/internal/audit"
	"notarium/internal/directory/models"
	"notarium/internal/directory/synth"
)

// ListingStore defines methods for seeding listings.
type ListingStore interface {
	Insert(ctx context.Context, l models.Listing) error
}

// AdminDirectory defines methods for seeding admin grants.
type AdminDirectory interface {
	Grant(ctx context.Context, email, grantedBy string) error
}

// AuditStore defines methods for seeding audit events.
type AuditStore interface {
	Append(ctx context.Context, event audit.Event) error
}

// Seeder populates in-memory stores with demo data.
type Seeder struct {
	listings ListingStore
	admins   AdminDirectory
	audit    AuditStore
	logger   *slog.Logger
	count    int
	seed     uint64
}

type Option func(*Seeder)

// WithCount sets how many demo listings to generate.
func WithCount(n int) Option {
	return func(s *Seeder) {
		if n > 0 {
			s.count = n
		}
	}
}

// WithSeed fixes the generator seed so repeated startups produce the same
// demo directory.
func WithSeed(seed uint64) Option {
	return func(s *Seeder) {
		s.seed = seed
	}
}

// New creates a new seeder.
func New(listings ListingStore, admins AdminDirectory, auditStore AuditStore, logger *slog.Logger, opts ...Option) *Seeder {
	s := &Seeder{
		listings: listings,
		admins:   admins,
		audit:    auditStore,
		logger:   logger,
		count:    24,
		seed:     7,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeedAll populates all stores with demo data.
func (s *Seeder) SeedAll(ctx context.Context) error {
	s.logger.Info("seeding demo data...")

	listings, err := s.seedListings(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed listings: %w", err)
	}

	if err := s.seedAdmins(ctx); err != nil {
		return fmt.Errorf("failed to seed admins: %w", err)
	}

	if err := s.seedAuditEvents(ctx, listings); err != nil {
		return fmt.Errorf("failed to seed audit events: %w", err)
	}

	s.logger.Info("demo data seeded successfully",
		"listings", len(listings),
	)

	return nil
}

func (s *Seeder) seedListings(ctx context.Context) ([]models.Listing, error) {
	gen := synth.NewWithRand(rand.New(rand.NewPCG(s.seed, s.seed)))

	listings := gen.Listings(s.count)
	// A couple of hidden entries so the admin queue has something to restore.
	for i := range listings {
		if i%8 == 7 {
			listings[i].Visible = false
		}
	}

	for _, l := range listings {
		if err := s.listings.Insert(ctx, l); err != nil {
			return nil, err
		}
	}
	return listings, nil
}

func (s *Seeder) seedAdmins(ctx context.Context) error {
	if s.admins == nil {
		return nil
	}
	demoAdmins := []string{
		"moderator@example.com",
		"reviewer@example.com",
	}
	for _, email := range demoAdmins {
		if err := s.admins.Grant(ctx, email, "seed"); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedAuditEvents(ctx context.Context, listings []models.Listing) error {
	if s.audit == nil || len(listings) == 0 {
		return nil
	}
	now := time.Now()

	events := []struct {
		listingIdx int
		action     audit.AuditEvent
		actor      string
		offset     time.Duration
	}{
		{0, audit.EventListingSubmitted, "", -3 * time.Hour},
		{0, audit.EventListingVerified, "moderator@example.com", -2 * time.Hour},
		{1, audit.EventListingSubmitted, "", -2 * time.Hour},
		{2, audit.EventListingSubmitted, "", -90 * time.Minute},
		{2, audit.EventListingHidden, "reviewer@example.com", -1 * time.Hour},
		{2, audit.EventListingUnhidden, "moderator@example.com", -30 * time.Minute},
	}

	for _, e := range events {
		if e.listingIdx >= len(listings) {
			continue
		}
		event := audit.Event{
			Timestamp:  now.Add(e.offset),
			ActorEmail: e.actor,
			Subject:    listings[e.listingIdx].ID.String(),
			Action:     string(e.action),
		}
		if err := s.audit.Append(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
