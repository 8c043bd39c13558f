package query

import (
	"strings"

	"notarium/internal/directory/models"
)

// All is the sentinel criteria value meaning "no restriction".
const All = "all"

// Criteria is one query's combined filter parameters. Fields are
// independently optional; zero values impose no restriction.
type Criteria struct {
	// VerifiedOnly restricts results to listings a reviewer has approved.
	VerifiedOnly bool
	// State restricts by the region part of the location ("all" or "" = any).
	State string
	// Service restricts by service tag membership ("all" or "" = any).
	Service string
	// Search is a case-insensitive substring match over name and location.
	Search string
	// IncludeHidden lifts the implicit visibility requirement. Admin
	// surfaces set this so hidden listings can be reviewed and restored.
	IncludeHidden bool
}

// Filter returns the listings satisfying every active predicate. Predicates
// compose with AND and are order-independent. The input is never mutated; a
// new slice is always returned.
func Filter(listings []models.Listing, c Criteria) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if matches(&l, c) {
			out = append(out, l)
		}
	}
	return out
}

func matches(l *models.Listing, c Criteria) bool {
	if !c.IncludeHidden && !l.Visible {
		return false
	}
	if c.VerifiedOnly && !l.Verified {
		return false
	}
	if restricts(c.State) && l.State() != c.State {
		return false
	}
	if restricts(c.Service) && !l.OffersService(c.Service) {
		return false
	}
	if c.Search != "" && !searchMatch(l, c.Search) {
		return false
	}
	return true
}

func restricts(v string) bool {
	return v != "" && v != All
}

// searchMatch tests the search text against name and location independently;
// a substring hit in either field satisfies the predicate.
func searchMatch(l *models.Listing, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(l.Name), needle) ||
		strings.Contains(strings.ToLower(l.Location), needle)
}
