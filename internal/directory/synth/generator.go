// Package synth generates placeholder notary listings. The record source
// substitutes them when the real store is unreachable or empty, so directory
// views never render broken.
package synth

import (
	"fmt"
	"math/rand/v2"
	"time"

	"notarium/internal/directory/models"
	id "notarium/pkg/domain"
)

var firstNames = []string{
	"Ava", "Carlos", "Dana", "Elena", "Frank", "Grace", "Hiro", "Imani",
	"James", "Keisha", "Luis", "Maria", "Noah", "Olivia", "Priya", "Quinn",
	"Rosa", "Samuel", "Tanya", "Victor",
}

var lastNames = []string{
	"Alvarez", "Brooks", "Chen", "Daniels", "Edwards", "Flores", "Garcia",
	"Hughes", "Ivanov", "Johnson", "Kim", "Lopez", "Morgan", "Nguyen",
	"Okafor", "Patel", "Reyes", "Singh", "Turner", "Williams",
}

var cities = []struct {
	city  string
	state string
}{
	{"Albany", "NY"}, {"Austin", "TX"}, {"Boston", "MA"}, {"Chicago", "IL"},
	{"Denver", "CO"}, {"Houston", "TX"}, {"Miami", "FL"}, {"Nashville", "TN"},
	{"New York", "NY"}, {"Phoenix", "AZ"}, {"Portland", "OR"}, {"Sacramento", "CA"},
	{"Seattle", "WA"}, {"Tampa", "FL"},
}

var titles = []string{
	"Notary Public",
	"Mobile Notary",
	"Notary Signing Agent",
	"Certified Loan Signing Agent",
}

// verifiedProbability is the share of synthetic listings marked verified,
// approximating the mix of a healthy production directory.
const verifiedProbability = 0.7

// Generator produces synthetic listings from a deterministic PRNG. Inject a
// seeded rand for reproducible output in tests; use New for ambient seeding
// in production wiring.
type Generator struct {
	rnd *rand.Rand
}

// New returns a generator seeded from ambient entropy. Each call may differ.
func New() *Generator {
	return NewWithRand(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewWithRand returns a generator drawing from the provided source.
func NewWithRand(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Listings generates n synthetic listings. n below 1 yields an empty slice.
func (g *Generator) Listings(n int) []models.Listing {
	out := make([]models.Listing, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, g.Listing())
	}
	return out
}

// Listing generates one synthetic listing. Visibility is always true:
// fallback data exists to be shown.
func (g *Generator) Listing() models.Listing {
	first := pick(g.rnd, firstNames)
	last := pick(g.rnd, lastNames)
	place := cities[g.rnd.IntN(len(cities))]
	now := time.Now().UTC()

	return models.Listing{
		ID:           id.NewListingID(),
		Name:         first + " " + last,
		Title:        pick(g.rnd, titles),
		Location:     place.city + ", " + place.state,
		ContactPhone: fmt.Sprintf("(555) 01%02d-%04d", g.rnd.IntN(100), g.rnd.IntN(10000)),
		ContactEmail: models.DefaultContact,
		Rating:       3 + g.rnd.IntN(3),
		ReviewCount:  g.rnd.IntN(120),
		Biography:    fmt.Sprintf("%s %s is a commissioned notary serving the %s area.", first, last, place.city),
		Services:     g.services(),
		Verified:     g.rnd.Float64() < verifiedProbability,
		Visible:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// services draws 2-5 distinct tags from the fixed vocabulary.
func (g *Generator) services() []string {
	count := 2 + g.rnd.IntN(4)
	perm := g.rnd.Perm(len(models.ServiceVocabulary))

	out := make([]string, 0, count)
	for _, idx := range perm[:count] {
		out = append(out, models.ServiceVocabulary[idx])
	}
	return out
}

func pick(rnd *rand.Rand, values []string) string {
	return values[rnd.IntN(len(values))]
}
