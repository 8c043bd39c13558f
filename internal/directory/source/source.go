// Package source adapts the listing store into the record feed the directory
// pipeline consumes. A failed or empty read degrades to synthetic listings
// instead of an error so browse pages always have content.
package source

import (
	"context"
	"log/slog"
	"strconv"

	"notarium/internal/directory/models"
	"notarium/internal/directory/query"
	"notarium/internal/directory/synth"
	"notarium/internal/platform/tracing"
)

// Lister is the raw record feed, normally backed by the listing store.
type Lister interface {
	ListRaw(ctx context.Context, limit int) ([]models.RawListing, error)
}

// Metrics records fallback occurrences.
type Metrics interface {
	IncSyntheticFallback()
}

type Source struct {
	lister  Lister
	gen     *synth.Generator
	logger  *slog.Logger
	tracer  tracing.Tracer
	metrics Metrics
}

type Option func(*Source)

func WithLogger(l *slog.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithTracer(t tracing.Tracer) Option {
	return func(s *Source) {
		if t != nil {
			s.tracer = t
		}
	}
}

func WithMetrics(m Metrics) Option {
	return func(s *Source) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithGenerator overrides the fallback generator. Tests inject a seeded one.
func WithGenerator(g *synth.Generator) Option {
	return func(s *Source) {
		if g != nil {
			s.gen = g
		}
	}
}

func New(lister Lister, opts ...Option) *Source {
	s := &Source{
		lister: lister,
		gen:    synth.New(),
		logger: slog.Default(),
		tracer: tracing.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch reads up to maxCount records and normalizes them. On a store error or
// an empty result it substitutes maxCount synthetic listings and reports
// synthetic=true. Fetch never fails.
func (s *Source) Fetch(ctx context.Context, maxCount int) ([]models.Listing, bool) {
	ctx, span := s.tracer.Start(ctx, "source.Fetch",
		tracing.Attribute{Key: "max_count", Value: strconv.Itoa(maxCount)})

	raws, err := s.lister.ListRaw(ctx, maxCount)
	span.End(err)

	if err != nil {
		s.logger.WarnContext(ctx, "listing fetch failed, serving synthetic records",
			"error", err, "max_count", maxCount)
		return s.fallback(maxCount), true
	}
	if len(raws) == 0 {
		s.logger.InfoContext(ctx, "listing store empty, serving synthetic records",
			"max_count", maxCount)
		return s.fallback(maxCount), true
	}

	listings := make([]models.Listing, 0, len(raws))
	for _, raw := range raws {
		listings = append(listings, query.Normalize(raw))
	}
	return listings, false
}

func (s *Source) fallback(maxCount int) []models.Listing {
	if s.metrics != nil {
		s.metrics.IncSyntheticFallback()
	}
	return s.gen.Listings(maxCount)
}
