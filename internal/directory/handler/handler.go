// Package handler exposes the directory over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"notarium/internal/directory/models"
	"notarium/internal/directory/query"
	"notarium/internal/directory/service"
	id "notarium/pkg/domain"
	dErrors "notarium/pkg/domain-errors"
	"notarium/pkg/platform/httputil"
	"notarium/pkg/requestcontext"
)

// Service defines the directory operations the transport needs.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	Browse(ctx context.Context, q service.BrowseQuery) (*service.BrowseResult, error)
	Featured(ctx context.Context) (*service.BrowseResult, error)
	Get(ctx context.Context, listingID id.ListingID) (*models.Listing, error)
	Submit(ctx context.Context, req *models.SubmitListingRequest) (*models.Listing, error)
	SetVerification(ctx context.Context, listingID id.ListingID, verified bool) (*models.Listing, error)
	SetVisibility(ctx context.Context, listingID id.ListingID, visible bool) (*models.Listing, error)
	Dashboard(ctx context.Context) (*service.DashboardStats, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the routes anyone may call.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/directory", h.HandleBrowse)
	r.Get("/directory/featured", h.HandleFeatured)
	r.Get("/directory/{id}", h.HandleGet)
	r.Post("/listings", h.HandleSubmit)
}

// RegisterAdmin mounts the routes that must sit behind the admin gate.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/listings", h.HandleAdminListings)
	r.Get("/admin/dashboard", h.HandleDashboard)
	r.Post("/admin/listings/{id}/verify", h.setVerification(true))
	r.Post("/admin/listings/{id}/unverify", h.setVerification(false))
	r.Post("/admin/listings/{id}/hide", h.setVisibility(false))
	r.Post("/admin/listings/{id}/unhide", h.setVisibility(true))
}

// HandleBrowse serves one filtered, sorted directory page.
func (h *Handler) HandleBrowse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.Browse(ctx, browseQueryFromRequest(r, false))
	if err != nil {
		h.logError(ctx, "browse failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPageResponse(result))
}

// HandleFeatured serves the landing page strip of verified listings.
func (h *Handler) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.Featured(ctx)
	if err != nil {
		h.logError(ctx, "featured failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toFeaturedResponse(result))
}

// HandleGet serves one listing's public profile.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listingID, err := id.ParseListingID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid listing id"))
		return
	}

	listing, err := h.service.Get(ctx, listingID)
	if err != nil {
		h.logError(ctx, "get listing failed", err, "listing_id", listingID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListingResponse(*listing))
}

// HandleSubmit accepts a notary registration.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[models.SubmitListingRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	listing, err := h.service.Submit(ctx, req)
	if err != nil {
		h.logError(ctx, "submit listing failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toListingResponse(*listing))
}

// HandleAdminListings serves the moderation queue, hidden listings included.
func (h *Handler) HandleAdminListings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.Browse(ctx, browseQueryFromRequest(r, true))
	if err != nil {
		h.logError(ctx, "admin listings failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPageResponse(result))
}

// HandleDashboard serves the admin overview counts.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.service.Dashboard(ctx)
	if err != nil {
		h.logError(ctx, "dashboard failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDashboardResponse(stats))
}

func (h *Handler) setVerification(verified bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		listingID, err := id.ParseListingID(chi.URLParam(r, "id"))
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid listing id"))
			return
		}

		listing, err := h.service.SetVerification(ctx, listingID, verified)
		if err != nil {
			h.logError(ctx, "set verification failed", err, "listing_id", listingID)
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, toListingResponse(*listing))
	}
}

func (h *Handler) setVisibility(visible bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		listingID, err := id.ParseListingID(chi.URLParam(r, "id"))
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid listing id"))
			return
		}

		listing, err := h.service.SetVisibility(ctx, listingID, visible)
		if err != nil {
			h.logError(ctx, "set visibility failed", err, "listing_id", listingID)
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, toListingResponse(*listing))
	}
}

// browseQueryFromRequest maps query string params onto the pipeline criteria.
// Absent filters default to match-all.
func browseQueryFromRequest(r *http.Request, includeHidden bool) service.BrowseQuery {
	q := r.URL.Query()
	return service.BrowseQuery{
		Page:     intParam(q.Get("page"), 1),
		PageSize: intParam(q.Get("pageSize"), 0),
		Criteria: query.Criteria{
			VerifiedOnly:  q.Get("verified") == "true",
			State:         stringOrAll(q.Get("state")),
			Service:       stringOrAll(q.Get("service")),
			Search:        strings.TrimSpace(q.Get("q")),
			IncludeHidden: includeHidden,
		},
	}
}

func intParam(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func stringOrAll(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return query.All
	}
	return raw
}

func (h *Handler) logError(ctx context.Context, msg string, err error, args ...any) {
	if h.logger == nil {
		return
	}
	args = append(args, "error", err)
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	h.logger.ErrorContext(ctx, msg, args...)
}
