package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "notarium/pkg/domain-errors"
)

func TestListingState(t *testing.T) {
	l := &Listing{Location: "Albany, NY"}
	assert.Equal(t, "NY", l.State())

	l = &Listing{Location: "Statewide"}
	assert.Equal(t, "Statewide", l.State())
}

func TestListingStateSplitsOnFirstComma(t *testing.T) {
	l := &Listing{Location: "Podunk, TX, USA"}
	assert.Equal(t, "TX, USA", l.State())
}

func TestOffersService(t *testing.T) {
	l := &Listing{Services: []string{"Real Estate", "Apostille"}}
	assert.True(t, l.OffersService("Apostille"))
	assert.False(t, l.OffersService("Loan Documents"))
}

func TestSubmitListingRequestNormalize(t *testing.T) {
	req := &SubmitListingRequest{
		Name:     "  Ada Lovelace  ",
		City:     " Albany ",
		State:    "NY ",
		Services: []string{"Real Estate", " Real Estate ", "", "Apostille"},
	}
	req.Normalize()

	assert.Equal(t, "Ada Lovelace", req.Name)
	assert.Equal(t, "Albany", req.City)
	assert.Equal(t, []string{"Real Estate", "Apostille"}, req.Services)
}

func TestSubmitListingRequestValidate(t *testing.T) {
	valid := func() *SubmitListingRequest {
		return &SubmitListingRequest{
			Name:         "Ada Lovelace",
			City:         "Albany",
			State:        "NY",
			ContactEmail: "ada@example.com",
			Services:     []string{"Real Estate"},
		}
	}

	require.NoError(t, valid().Validate())

	cases := []struct {
		name   string
		mutate func(*SubmitListingRequest)
	}{
		{"missing name", func(r *SubmitListingRequest) { r.Name = "" }},
		{"missing city", func(r *SubmitListingRequest) { r.City = "" }},
		{"missing state", func(r *SubmitListingRequest) { r.State = "" }},
		{"bad email", func(r *SubmitListingRequest) { r.ContactEmail = "not-an-email" }},
		{"no services", func(r *SubmitListingRequest) { r.Services = nil }},
		{"unknown service", func(r *SubmitListingRequest) { r.Services = []string{"Time Travel"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid()
			tc.mutate(req)
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestSubmitListingRequestLocation(t *testing.T) {
	req := &SubmitListingRequest{City: "Albany", State: "NY"}
	assert.Equal(t, "Albany, NY", req.Location())
}
