package models

import (
	"slices"
	"strings"
	"time"

	id "notarium/pkg/domain"
)

// Display defaults applied by normalization. Every optional field has one so
// a listing is always renderable.
const (
	DefaultName      = "Unnamed Notary"
	DefaultTitle     = "Notary Public"
	DefaultContact   = "Not provided"
	DefaultRating    = 5
	DefaultBiography = "This notary has not added a biography yet."
)

// ServiceVocabulary is the fixed set of service tags a listing may carry.
var ServiceVocabulary = []string{
	"Real Estate",
	"Loan Documents",
	"Power of Attorney",
	"Wills & Trusts",
	"Affidavits",
	"Apostille",
	"Mobile Notary",
	"Remote Online Notarization",
}

// Listing is the canonical directory record. Verified and Visible are
// independent flags: both must hold for a listing to appear in the public
// directory.
type Listing struct {
	ID           id.ListingID `json:"id"`
	Name         string       `json:"name"`
	Title        string       `json:"title"`
	Location     string       `json:"location"` // "City, ST"
	ContactPhone string       `json:"contact_phone"`
	ContactEmail string       `json:"contact_email"`
	Rating       int          `json:"rating"` // 1-5
	ReviewCount  int          `json:"review_count"`
	Biography    string       `json:"biography"`
	Services     []string     `json:"services"`
	PortraitURL  string       `json:"portrait_url,omitempty"`
	Verified     bool         `json:"verified"`
	Visible      bool         `json:"visible"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// State returns the region part of the location ("City, ST" -> "ST").
// Locations without a comma return the whole string.
func (l *Listing) State() string {
	if _, after, ok := strings.Cut(l.Location, ", "); ok {
		return after
	}
	return l.Location
}

// OffersService reports whether the listing carries the given service tag.
func (l *Listing) OffersService(service string) bool {
	return slices.Contains(l.Services, service)
}

// RawListing mirrors the stored document shape: every display field is
// optional and the legacy visibility field name is still honored. Stores
// return this shape; query.Normalize converts it to a Listing.
type RawListing struct {
	ID           string     `json:"id"`
	Name         *string    `json:"name,omitempty"`
	Title        *string    `json:"title,omitempty"`
	Location     *string    `json:"location,omitempty"`
	ContactPhone *string    `json:"contactPhone,omitempty"`
	ContactEmail *string    `json:"contactEmail,omitempty"`
	Rating       *int       `json:"rating,omitempty"`
	ReviewCount  *int       `json:"reviewCount,omitempty"`
	Biography    *string    `json:"bio,omitempty"`
	Services     []string   `json:"services,omitempty"`
	PortraitURL  *string    `json:"portraitUrl,omitempty"`
	Verified     *bool      `json:"isVerified,omitempty"`
	Visible      *bool      `json:"isVisible,omitempty"`
	// Active is the legacy visibility field; consulted only when Visible is absent.
	Active    *bool      `json:"isActive,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Raw converts a canonical listing back to the stored document shape.
// Used by stores when persisting and by tests for round-trip checks.
func (l *Listing) Raw() RawListing {
	name, title, location := l.Name, l.Title, l.Location
	phone, email, bio := l.ContactPhone, l.ContactEmail, l.Biography
	rating, reviews := l.Rating, l.ReviewCount
	portrait := l.PortraitURL
	verified, visible := l.Verified, l.Visible
	created, updated := l.CreatedAt, l.UpdatedAt

	return RawListing{
		ID:           l.ID.String(),
		Name:         &name,
		Title:        &title,
		Location:     &location,
		ContactPhone: &phone,
		ContactEmail: &email,
		Rating:       &rating,
		ReviewCount:  &reviews,
		Biography:    &bio,
		Services:     slices.Clone(l.Services),
		PortraitURL:  &portrait,
		Verified:     &verified,
		Visible:      &visible,
		CreatedAt:    &created,
		UpdatedAt:    &updated,
	}
}
