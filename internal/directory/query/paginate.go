package query

import (
	"slices"
	"strings"

	"notarium/internal/directory/models"
)

// Page is one window of a sorted listing sequence.
type Page struct {
	Listings   []models.Listing
	Number     int // 1-based, clamped to TotalPages
	TotalPages int // >= 1 even for an empty input
	TotalCount int
}

// Paginate sorts the listings (ascending by name, case-insensitive, ties
// broken by id for determinism) and slices out the requested 1-based page.
// Page numbers beyond the last page clamp to the last page rather than
// erroring, so a consumer holding a stale page number after filters narrowed
// the result still gets content. The input slice is not modified.
func Paginate(listings []models.Listing, pageSize, pageNumber int) Page {
	if pageSize < 1 {
		pageSize = 1
	}

	sorted := slices.Clone(listings)
	slices.SortFunc(sorted, compareListings)

	totalPages := (len(sorted) + pageSize - 1) / pageSize
	if totalPages < 1 {
		// Callers display an empty-state page 1.
		totalPages = 1
	}

	if pageNumber < 1 {
		pageNumber = 1
	} else if pageNumber > totalPages {
		pageNumber = totalPages
	}

	start := (pageNumber - 1) * pageSize
	end := min(start+pageSize, len(sorted))
	if start > len(sorted) {
		start = len(sorted)
	}

	return Page{
		Listings:   sorted[start:end],
		Number:     pageNumber,
		TotalPages: totalPages,
		TotalCount: len(sorted),
	}
}

func compareListings(a, b models.Listing) int {
	if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}
