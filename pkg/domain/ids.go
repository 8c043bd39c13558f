// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "notarium/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a ListingID where an AdminID is expected.
type (
	ListingID uuid.UUID
	AdminID   uuid.UUID
)

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseListingID(s string) (ListingID, error) {
	id, err := parseUUID(s, "listing ID")
	return ListingID(id), err
}

func ParseAdminID(s string) (AdminID, error) {
	id, err := parseUUID(s, "admin ID")
	return AdminID(id), err
}

// NewListingID returns a fresh random listing identifier.
func NewListingID() ListingID {
	return ListingID(uuid.New())
}

// String methods - for logging and debugging.

func (id ListingID) String() string { return uuid.UUID(id).String() }
func (id AdminID) String() string   { return uuid.UUID(id).String() }

// Text marshaling - IDs render as canonical UUID strings in JSON payloads.

func (id ListingID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id AdminID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }

func (id *ListingID) UnmarshalText(b []byte) error {
	parsed, err := ParseListingID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *AdminID) UnmarshalText(b []byte) error {
	parsed, err := ParseAdminID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// IsNil checks - used for service-layer validation.

func (id ListingID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id AdminID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	return parsed, nil
}
