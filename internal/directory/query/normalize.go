// Package query implements the directory pipeline's pure stages:
// normalization of raw store documents, predicate filtering, and
// sort/pagination. All functions are side-effect free and never mutate
// their inputs, so one fetched batch can feed several consumer surfaces.
package query

import (
	"time"

	"notarium/internal/directory/models"
	id "notarium/pkg/domain"
)

// Normalize converts a raw store document into the canonical listing shape.
// Every optional field receives its display default, so the result is always
// renderable. Business validation is deliberately absent here: that is the
// registration workflow's concern.
func Normalize(raw models.RawListing) models.Listing {
	listingID, err := id.ParseListingID(raw.ID)
	if err != nil {
		listingID = id.NewListingID()
	}

	l := models.Listing{
		ID:           listingID,
		Name:         stringOr(raw.Name, models.DefaultName),
		Title:        stringOr(raw.Title, models.DefaultTitle),
		Location:     stringOr(raw.Location, ""),
		ContactPhone: stringOr(raw.ContactPhone, models.DefaultContact),
		ContactEmail: stringOr(raw.ContactEmail, models.DefaultContact),
		Rating:       intOr(raw.Rating, models.DefaultRating),
		ReviewCount:  intOr(raw.ReviewCount, 0),
		Biography:    stringOr(raw.Biography, models.DefaultBiography),
		Services:     dedupe(raw.Services),
		PortraitURL:  stringOr(raw.PortraitURL, ""),
		Verified:     raw.Verified != nil && *raw.Verified,
		Visible:      visibleFrom(raw),
		CreatedAt:    timeOr(raw.CreatedAt),
		UpdatedAt:    timeOr(raw.UpdatedAt),
	}

	if l.Rating < 1 {
		l.Rating = 1
	} else if l.Rating > 5 {
		l.Rating = 5
	}
	if l.ReviewCount < 0 {
		l.ReviewCount = 0
	}

	return l
}

// visibleFrom resolves visibility with a permissive default: unset means
// visible, so legacy records lacking the field are never hidden. The legacy
// isActive field is consulted only when isVisible is absent.
func visibleFrom(raw models.RawListing) bool {
	if raw.Visible != nil {
		return *raw.Visible
	}
	if raw.Active != nil {
		return *raw.Active
	}
	return true
}

func stringOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func timeOr(v *time.Time) time.Time {
	if v == nil {
		return time.Time{}
	}
	return *v
}

// dedupe returns the service tags with duplicates collapsed, preserving
// first-seen order.
func dedupe(services []string) []string {
	out := make([]string, 0, len(services))
	seen := make(map[string]struct{}, len(services))
	for _, s := range services {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
