package synth

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notarium/internal/directory/models"
)

func seeded(seed uint64) *Generator {
	return NewWithRand(rand.New(rand.NewPCG(seed, seed)))
}

func TestGenerator_Deterministic(t *testing.T) {
	a := seeded(42).Listings(10)
	b := seeded(42).Listings(10)

	require.Len(t, a, 10)
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].Location, b[i].Location)
		assert.Equal(t, a[i].Services, b[i].Services)
		assert.Equal(t, a[i].Verified, b[i].Verified)
	}
}

func TestGenerator_ListingShape(t *testing.T) {
	for _, l := range seeded(7).Listings(50) {
		require.False(t, l.ID.IsNil())
		assert.NotEmpty(t, l.Name)
		assert.NotEmpty(t, l.Title)
		assert.NotEmpty(t, l.Location)
		assert.NotEmpty(t, l.State())
		assert.GreaterOrEqual(t, l.Rating, 1)
		assert.LessOrEqual(t, l.Rating, 5)
		assert.True(t, l.Visible, "synthetic listings are always visible")

		require.GreaterOrEqual(t, len(l.Services), 2)
		require.LessOrEqual(t, len(l.Services), 5)
		seen := map[string]bool{}
		for _, s := range l.Services {
			assert.Contains(t, models.ServiceVocabulary, s)
			assert.False(t, seen[s], "duplicate service %q", s)
			seen[s] = true
		}
	}
}

func TestGenerator_VerifiedMix(t *testing.T) {
	listings := seeded(99).Listings(1000)

	verified := 0
	for _, l := range listings {
		if l.Verified {
			verified++
		}
	}
	assert.InDelta(t, 700, verified, 75)
}

func TestGenerator_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, l := range seeded(3).Listings(100) {
		key := l.ID.String()
		require.False(t, seen[key])
		seen[key] = true
	}
}

func TestGenerator_EmptyCount(t *testing.T) {
	assert.Empty(t, New().Listings(0))
	assert.Empty(t, New().Listings(-3))
}
