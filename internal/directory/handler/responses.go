package handler

import (
	"time"

	"notarium/internal/directory/models"
	"notarium/internal/directory/service"
)

type ListingResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Title        string    `json:"title"`
	Location     string    `json:"location"`
	State        string    `json:"state"`
	ContactPhone string    `json:"contact_phone"`
	ContactEmail string    `json:"contact_email"`
	Rating       int       `json:"rating"`
	ReviewCount  int       `json:"review_count"`
	Biography    string    `json:"biography"`
	Services     []string  `json:"services"`
	PortraitURL  string    `json:"portrait_url,omitempty"`
	Verified     bool      `json:"verified"`
	Visible      bool      `json:"visible"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PageResponse struct {
	Listings   []ListingResponse `json:"listings"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	TotalCount int               `json:"total_count"`
	Synthetic  bool              `json:"synthetic"`
}

type FeaturedResponse struct {
	Listings  []ListingResponse `json:"listings"`
	Synthetic bool              `json:"synthetic"`
}

type DashboardResponse struct {
	TotalListings    int `json:"total_listings"`
	VerifiedListings int `json:"verified_listings"`
	HiddenListings   int `json:"hidden_listings"`
	PendingListings  int `json:"pending_listings"`
}

// Response mapping functions - convert domain objects to HTTP DTOs

func toListingResponse(l models.Listing) ListingResponse {
	return ListingResponse{
		ID:           l.ID.String(),
		Name:         l.Name,
		Title:        l.Title,
		Location:     l.Location,
		State:        l.State(),
		ContactPhone: l.ContactPhone,
		ContactEmail: l.ContactEmail,
		Rating:       l.Rating,
		ReviewCount:  l.ReviewCount,
		Biography:    l.Biography,
		Services:     l.Services,
		PortraitURL:  l.PortraitURL,
		Verified:     l.Verified,
		Visible:      l.Visible,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func toListingResponses(listings []models.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	return out
}

func toPageResponse(result *service.BrowseResult) *PageResponse {
	return &PageResponse{
		Listings:   toListingResponses(result.Page.Listings),
		Page:       result.Page.Number,
		TotalPages: result.Page.TotalPages,
		TotalCount: result.Page.TotalCount,
		Synthetic:  result.Synthetic,
	}
}

func toFeaturedResponse(result *service.BrowseResult) *FeaturedResponse {
	return &FeaturedResponse{
		Listings:  toListingResponses(result.Page.Listings),
		Synthetic: result.Synthetic,
	}
}

func toDashboardResponse(stats *service.DashboardStats) *DashboardResponse {
	return &DashboardResponse{
		TotalListings:    stats.TotalListings,
		VerifiedListings: stats.VerifiedListings,
		HiddenListings:   stats.HiddenListings,
		PendingListings:  stats.PendingListings,
	}
}
