// Package httptransport assembles the HTTP surface: middleware stack, public
// directory routes, the admin console behind its gate, and operational
// endpoints.
package httptransport

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"notarium/internal/authz"
	"notarium/internal/directory/handler"
	"notarium/internal/platform/health"
	"notarium/pkg/platform/middleware/device"
	"notarium/pkg/platform/middleware/metadata"
	request "notarium/pkg/platform/middleware/request"
)

// Config tunes the router's middleware stack.
type Config struct {
	RequestTimeout time.Duration
	TrustedProxies []netip.Prefix
}

// NewRouter wires all endpoints with middleware. The admin gate applies only
// to the admin subtree; everything else is public.
func NewRouter(
	cfg Config,
	h *handler.Handler,
	gate *authz.Gate,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	metaCfg := metadata.DefaultConfig()
	metaCfg.TrustedProxies = cfg.TrustedProxies
	r.Use(metadata.NewMiddleware(metaCfg).Handler)
	r.Use(device.Middleware)
	r.Use(request.Logger(logger))
	r.Use(request.LatencyMiddleware(request.NewMetrics()))
	if cfg.RequestTimeout > 0 {
		r.Use(request.Timeout(cfg.RequestTimeout))
	}

	healthHandler.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(public chi.Router) {
		public.Use(request.ContentTypeJSON)
		h.RegisterPublic(public)
	})

	r.Group(func(admin chi.Router) {
		admin.Use(gate.RequireAdmin)
		h.RegisterAdmin(admin)
	})

	return r
}
