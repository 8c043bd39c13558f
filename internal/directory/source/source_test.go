package source

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notarium/internal/directory/models"
	"notarium/internal/directory/synth"
)

type stubLister struct {
	raws []models.RawListing
	err  error
}

func (s stubLister) ListRaw(context.Context, int) ([]models.RawListing, error) {
	return s.raws, s.err
}

type countingMetrics struct{ fallbacks int }

func (m *countingMetrics) IncSyntheticFallback() { m.fallbacks++ }

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func seededGen() *synth.Generator {
	return synth.NewWithRand(rand.New(rand.NewPCG(1, 1)))
}

func TestFetch_NormalizesStoreRecords(t *testing.T) {
	lister := stubLister{raws: []models.RawListing{
		{Name: strPtr("Ada Lovelace"), Location: strPtr("Austin, TX"), Verified: boolPtr(true)},
		{},
	}}
	src := New(lister, WithGenerator(seededGen()))

	listings, synthetic := src.Fetch(context.Background(), 10)

	require.Len(t, listings, 2)
	assert.False(t, synthetic)
	assert.Equal(t, "Ada Lovelace", listings[0].Name)
	assert.True(t, listings[0].Verified)
	assert.Equal(t, models.DefaultName, listings[1].Name)
	assert.True(t, listings[1].Visible, "visibility defaults on")
}

func TestFetch_FallsBackOnError(t *testing.T) {
	m := &countingMetrics{}
	src := New(stubLister{err: errors.New("connection refused")},
		WithGenerator(seededGen()), WithMetrics(m))

	listings, synthetic := src.Fetch(context.Background(), 12)

	assert.True(t, synthetic)
	assert.Len(t, listings, 12)
	assert.Equal(t, 1, m.fallbacks)
	for _, l := range listings {
		assert.True(t, l.Visible)
	}
}

func TestFetch_FallsBackOnEmpty(t *testing.T) {
	src := New(stubLister{}, WithGenerator(seededGen()))

	listings, synthetic := src.Fetch(context.Background(), 5)

	assert.True(t, synthetic)
	assert.Len(t, listings, 5)
}

func TestFetch_NeverReturnsNilListings(t *testing.T) {
	src := New(stubLister{err: errors.New("boom")}, WithGenerator(seededGen()))

	listings, synthetic := src.Fetch(context.Background(), 0)

	assert.True(t, synthetic)
	assert.NotNil(t, listings)
	assert.Empty(t, listings)
}
