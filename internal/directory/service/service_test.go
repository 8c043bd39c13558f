package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"notarium/internal/directory/models"
	"notarium/internal/directory/query"
	"notarium/internal/directory/source"
	"notarium/internal/directory/store/listing"
	"notarium/internal/directory/synth"
	dErrors "notarium/pkg/domain-errors"
)

func newTestService(t *testing.T) (*Service, *listing.InMemory) {
	t.Helper()
	store := listing.NewInMemory()
	gen := synth.NewWithRand(rand.New(rand.NewPCG(1, 1)))
	src := source.New(store, source.WithGenerator(gen))
	return New(src, store, Limits{}), store
}

func submitRequest(name string) *models.SubmitListingRequest {
	return &models.SubmitListingRequest{
		Name:     name,
		City:     "Austin",
		State:    "TX",
		Services: []string{"Real Estate"},
	}
}

func TestSubmitValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := submitRequest("")
	if _, err := svc.Submit(ctx, req); err == nil {
		t.Fatalf("expected validation error for empty name")
	}

	req = submitRequest("Ada Lovelace")
	req.Services = []string{"Skydiving"}
	if _, err := svc.Submit(ctx, req); err == nil {
		t.Fatalf("expected validation error for unknown service")
	}

	if _, err := svc.Submit(ctx, submitRequest("Ada Lovelace")); err != nil {
		t.Fatalf("expected submission to succeed: %v", err)
	}
}

func TestSubmitDefaultsAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Submit(ctx, submitRequest("Ada Lovelace"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.Verified {
		t.Fatalf("new listings must start unverified")
	}
	if !created.Visible {
		t.Fatalf("new listings must start visible")
	}
	if created.Title != models.DefaultTitle {
		t.Fatalf("expected default title, got %q", created.Title)
	}
	if created.Biography != models.DefaultBiography {
		t.Fatalf("expected default biography, got %q", created.Biography)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Ada Lovelace" {
		t.Fatalf("unexpected name %q", got.Name)
	}
}

func TestBrowseServesStoredRecords(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Carol", "Alice", "Bob"} {
		if _, err := svc.Submit(ctx, submitRequest(name)); err != nil {
			t.Fatalf("submit %s: %v", name, err)
		}
	}

	result, err := svc.Browse(ctx, BrowseQuery{Page: 1})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if result.Synthetic {
		t.Fatalf("expected stored records, got synthetic")
	}
	if result.Page.TotalCount != 3 {
		t.Fatalf("expected 3 listings, got %d", result.Page.TotalCount)
	}
	if result.Page.Listings[0].Name != "Alice" {
		t.Fatalf("expected name-sorted order, got %q first", result.Page.Listings[0].Name)
	}
}

func TestBrowsePagesByDefaultSize(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 22; i++ {
		name := fmt.Sprintf("Notary %02d", i)
		if _, err := svc.Submit(ctx, submitRequest(name)); err != nil {
			t.Fatalf("submit %s: %v", name, err)
		}
	}

	first, err := svc.Browse(ctx, BrowseQuery{Page: 1})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if first.Page.Number != 1 {
		t.Fatalf("expected page 1, got %d", first.Page.Number)
	}
	if len(first.Page.Listings) != 9 {
		t.Fatalf("expected 9 listings on page 1, got %d", len(first.Page.Listings))
	}
	if first.Page.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 22 listings, got %d", first.Page.TotalPages)
	}
	if first.Page.TotalCount != 22 {
		t.Fatalf("expected total count 22, got %d", first.Page.TotalCount)
	}

	last, err := svc.Browse(ctx, BrowseQuery{Page: 3})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if len(last.Page.Listings) != 4 {
		t.Fatalf("expected 4 listings on the last page, got %d", len(last.Page.Listings))
	}
}

func TestBrowseFallsBackWhenEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Browse(context.Background(), BrowseQuery{Page: 1})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if !result.Synthetic {
		t.Fatalf("expected synthetic fallback on empty store")
	}
	if result.Page.TotalCount == 0 {
		t.Fatalf("expected synthetic listings to fill the page")
	}
}

func TestBrowseHidesListingsFromPublic(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Submit(ctx, submitRequest("Ada Lovelace"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	other, err := svc.Submit(ctx, submitRequest("Grace Hopper"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := svc.SetVisibility(ctx, created.ID, false); err != nil {
		t.Fatalf("hide: %v", err)
	}

	public, err := svc.Browse(ctx, BrowseQuery{Page: 1})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if public.Page.TotalCount != 1 {
		t.Fatalf("expected 1 public listing, got %d", public.Page.TotalCount)
	}
	if public.Page.Listings[0].ID != other.ID {
		t.Fatalf("expected only the visible listing")
	}

	admin, err := svc.Browse(ctx, BrowseQuery{Page: 1, Criteria: query.Criteria{IncludeHidden: true}})
	if err != nil {
		t.Fatalf("admin browse: %v", err)
	}
	if admin.Page.TotalCount != 2 {
		t.Fatalf("expected 2 listings for admin, got %d", admin.Page.TotalCount)
	}

	if _, err := svc.Get(ctx, created.ID); !dErrors.HasCode(err, dErrors.CodeNotFound) {
		t.Fatalf("expected not found for hidden listing, got %v", err)
	}
}

func TestFeaturedReturnsVerifiedOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	verified, err := svc.Submit(ctx, submitRequest("Ada Lovelace"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Submit(ctx, submitRequest("Grace Hopper")); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.SetVerification(ctx, verified.ID, true); err != nil {
		t.Fatalf("verify: %v", err)
	}

	featured, err := svc.Featured(ctx)
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if featured.Page.TotalCount != 1 {
		t.Fatalf("expected only the verified listing, got %d", featured.Page.TotalCount)
	}
	if featured.Page.Listings[0].ID != verified.ID {
		t.Fatalf("expected the verified listing first")
	}
}

func TestDashboardCounts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, _ := svc.Submit(ctx, submitRequest("Ada Lovelace"))
	b, _ := svc.Submit(ctx, submitRequest("Grace Hopper"))
	if _, err := svc.Submit(ctx, submitRequest("Katherine Johnson")); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.SetVerification(ctx, a.ID, true); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if _, err := svc.SetVisibility(ctx, b.ID, false); err != nil {
		t.Fatalf("hide: %v", err)
	}

	stats, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.TotalListings != 3 || stats.VerifiedListings != 1 ||
		stats.HiddenListings != 1 || stats.PendingListings != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
