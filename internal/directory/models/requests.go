package models

import (
	"net/mail"
	"slices"
	"strings"

	dErrors "notarium/pkg/domain-errors"
)

// SubmitListingRequest carries a notary's registration submission.
// New listings start unverified and visible.
type SubmitListingRequest struct {
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	ContactPhone string   `json:"contact_phone"`
	ContactEmail string   `json:"contact_email"`
	Biography    string   `json:"biography"`
	Services     []string `json:"services"`
	PortraitURL  string   `json:"portrait_url"`
}

// Normalize trims whitespace and collapses duplicate service tags.
func (r *SubmitListingRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Title = strings.TrimSpace(r.Title)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.TrimSpace(r.State)
	r.ContactPhone = strings.TrimSpace(r.ContactPhone)
	r.ContactEmail = strings.TrimSpace(r.ContactEmail)
	r.Biography = strings.TrimSpace(r.Biography)
	r.PortraitURL = strings.TrimSpace(r.PortraitURL)

	seen := make(map[string]struct{}, len(r.Services))
	services := r.Services[:0]
	for _, s := range r.Services {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		services = append(services, s)
	}
	r.Services = services
}

// Validate enforces the registration wizard's field rules.
func (r *SubmitListingRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if len(r.Name) > 128 {
		return dErrors.New(dErrors.CodeValidation, "name must be 128 characters or less")
	}
	if r.City == "" || r.State == "" {
		return dErrors.New(dErrors.CodeValidation, "city and state are required")
	}
	if r.ContactEmail != "" {
		if _, err := mail.ParseAddress(r.ContactEmail); err != nil {
			return dErrors.New(dErrors.CodeValidation, "contact email is not a valid address")
		}
	}
	if len(r.Services) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one service is required")
	}
	for _, s := range r.Services {
		if !slices.Contains(ServiceVocabulary, s) {
			return dErrors.New(dErrors.CodeValidation, "unknown service: "+s)
		}
	}
	return nil
}

// Location joins the city and state fields into the canonical composite form.
func (r *SubmitListingRequest) Location() string {
	return r.City + ", " + r.State
}
