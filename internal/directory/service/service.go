// Package service orchestrates the directory: browsing, registration, and the
// admin verification and visibility workflows.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"notarium/internal/audit"
	dirmetrics "notarium/internal/directory/metrics"
	"notarium/internal/directory/models"
	"notarium/internal/directory/query"
	"notarium/internal/sentinel"
	id "notarium/pkg/domain"
	dErrors "notarium/pkg/domain-errors"
	"notarium/pkg/requestcontext"
)

// RecordSource feeds the browse pipeline. Implementations must not fail; a
// degraded read reports synthetic=true instead.
type RecordSource interface {
	Fetch(ctx context.Context, maxCount int) ([]models.Listing, bool)
}

// ListingStore persists canonical listing records.
type ListingStore interface {
	Insert(ctx context.Context, l models.Listing) error
	FindByID(ctx context.Context, listingID id.ListingID) (*models.Listing, error)
	SetVerified(ctx context.Context, listingID id.ListingID, verified bool) error
	SetVisible(ctx context.Context, listingID id.ListingID, visible bool) error
	Count(ctx context.Context) (int, error)
	CountVerified(ctx context.Context) (int, error)
	CountHidden(ctx context.Context) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Limits bounds query shapes; zero values fall back to defaults.
type Limits struct {
	FetchLimit      int
	DefaultPageSize int
	MaxPageSize     int
	FeaturedCount   int
}

func (l Limits) withDefaults() Limits {
	if l.FetchLimit <= 0 {
		l.FetchLimit = 200
	}
	if l.DefaultPageSize <= 0 {
		l.DefaultPageSize = 9
	}
	if l.MaxPageSize <= 0 {
		l.MaxPageSize = 50
	}
	if l.FeaturedCount <= 0 {
		l.FeaturedCount = 6
	}
	return l
}

// Service orchestrates directory queries and listing lifecycle management.
type Service struct {
	source         RecordSource
	listings       ListingStore
	limits         Limits
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *dirmetrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *dirmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(source RecordSource, listings ListingStore, limits Limits, opts ...Option) *Service {
	s := &Service{
		source:   source,
		listings: listings,
		limits:   limits.withDefaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BrowseQuery is one directory page request.
type BrowseQuery struct {
	Page     int
	PageSize int
	Criteria query.Criteria
}

// BrowseResult is one directory page plus provenance.
type BrowseResult struct {
	Page      query.Page
	Synthetic bool
}

// Browse runs the full pipeline: fetch, filter, sort, paginate. Callers
// without admin rights must not set Criteria.IncludeHidden.
func (s *Service) Browse(ctx context.Context, q BrowseQuery) (*BrowseResult, error) {
	start := time.Now()

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = s.limits.DefaultPageSize
	}
	if pageSize > s.limits.MaxPageSize {
		pageSize = s.limits.MaxPageSize
	}

	listings, synthetic := s.source.Fetch(ctx, s.limits.FetchLimit)
	filtered := query.Filter(listings, q.Criteria)
	page := query.Paginate(filtered, pageSize, q.Page)

	s.observeBrowse(start)
	return &BrowseResult{Page: page, Synthetic: synthetic}, nil
}

// Featured returns the top verified listings for the landing page.
func (s *Service) Featured(ctx context.Context) (*BrowseResult, error) {
	return s.Browse(ctx, BrowseQuery{
		Page:     1,
		PageSize: s.limits.FeaturedCount,
		Criteria: query.Criteria{VerifiedOnly: true},
	})
}

// Get returns one publicly visible listing. Hidden listings are reported as
// not found so visibility state does not leak.
func (s *Service) Get(ctx context.Context, listingID id.ListingID) (*models.Listing, error) {
	if listingID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "listing ID required")
	}
	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, wrapListingErr(err, "failed to load listing")
	}
	if !listing.Visible {
		return nil, dErrors.New(dErrors.CodeNotFound, "listing not found")
	}
	return listing, nil
}

// Submit registers a notary. New listings start unverified and visible so
// they appear in search but without the verified badge until reviewed.
func (s *Service) Submit(ctx context.Context, req *models.SubmitListingRequest) (*models.Listing, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid listing submission")
	}

	now := time.Now().UTC()
	listing := models.Listing{
		ID:           id.NewListingID(),
		Name:         req.Name,
		Title:        req.Title,
		Location:     req.Location(),
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Rating:       models.DefaultRating,
		Biography:    req.Biography,
		Services:     req.Services,
		PortraitURL:  req.PortraitURL,
		Verified:     false,
		Visible:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if listing.Title == "" {
		listing.Title = models.DefaultTitle
	}
	if listing.Biography == "" {
		listing.Biography = models.DefaultBiography
	}
	if listing.ContactPhone == "" {
		listing.ContactPhone = models.DefaultContact
	}
	if listing.ContactEmail == "" {
		listing.ContactEmail = models.DefaultContact
	}

	if err := s.listings.Insert(ctx, listing); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create listing")
	}

	s.logAudit(ctx, string(audit.EventListingSubmitted),
		"listing_id", listing.ID,
		"listing_name", listing.Name,
	)
	if s.metrics != nil {
		s.metrics.IncrementListingsSubmitted()
	}
	return &listing, nil
}

// SetVerification flips the verified badge and returns the updated listing.
func (s *Service) SetVerification(ctx context.Context, listingID id.ListingID, verified bool) (*models.Listing, error) {
	listing, err := s.setFlag(ctx, listingID, verified, s.listings.SetVerified)
	if err != nil {
		return nil, err
	}

	event := audit.EventListingUnverified
	if verified {
		event = audit.EventListingVerified
	}
	s.logAudit(ctx, string(event), "listing_id", listingID)
	if s.metrics != nil {
		s.metrics.IncrementVerificationToggle(verified)
	}
	return listing, nil
}

// SetVisibility flips directory inclusion and returns the updated listing.
func (s *Service) SetVisibility(ctx context.Context, listingID id.ListingID, visible bool) (*models.Listing, error) {
	listing, err := s.setFlag(ctx, listingID, visible, s.listings.SetVisible)
	if err != nil {
		return nil, err
	}

	event := audit.EventListingHidden
	if visible {
		event = audit.EventListingUnhidden
	}
	s.logAudit(ctx, string(event), "listing_id", listingID)
	if s.metrics != nil {
		s.metrics.IncrementVisibilityToggle(visible)
	}
	return listing, nil
}

func (s *Service) setFlag(ctx context.Context, listingID id.ListingID, value bool,
	set func(context.Context, id.ListingID, bool) error) (*models.Listing, error) {
	if listingID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "listing ID required")
	}
	if err := set(ctx, listingID, value); err != nil {
		return nil, wrapListingErr(err, "failed to update listing")
	}
	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, wrapListingErr(err, "failed to reload listing")
	}
	return listing, nil
}

// DashboardStats summarizes the directory for the admin overview.
type DashboardStats struct {
	TotalListings    int
	VerifiedListings int
	HiddenListings   int
	PendingListings  int
}

// Dashboard gathers counts concurrently.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalListings, err = s.listings.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.VerifiedListings, err = s.listings.CountVerified(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.HiddenListings, err = s.listings.CountHidden(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to gather dashboard stats")
	}

	stats.PendingListings = stats.TotalListings - stats.VerifiedListings
	return &stats, nil
}

func (s *Service) observeBrowse(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveBrowse(start)
	}
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if s.logger != nil {
		args := append(attributes, "event", event, "log_type", "audit")
		s.logger.InfoContext(ctx, event, args...)
	}
	if s.auditPublisher != nil {
		_ = s.auditPublisher.Emit(ctx, audit.Event{
			Action:  event,
			Subject: extractListingID(attributes),
		})
	}
}

func extractListingID(attributes []any) string {
	for i := 0; i+1 < len(attributes); i += 2 {
		if attributes[i] == "listing_id" {
			switch v := attributes[i+1].(type) {
			case id.ListingID:
				return v.String()
			case string:
				return v
			}
		}
	}
	return ""
}

func wrapListingErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "listing not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}
