// Package health exposes liveness, readiness, and status probes for the
// directory service.
package health

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"notarium/pkg/platform/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// CheckFunc probes one dependency. A nil return means healthy.
type CheckFunc func() error

type namedCheck struct {
	name  string
	check CheckFunc
}

// Handler serves the health endpoints. Checks run only on the readiness
// probe; liveness stays dependency-free so a broken database cannot get
// the process restarted.
type Handler struct {
	startTime   time.Time
	environment string

	mu     sync.RWMutex
	checks []namedCheck
}

func New(environment string) *Handler {
	return &Handler{
		startTime:   time.Now(),
		environment: environment,
	}
}

// RegisterCheck adds a named dependency check for the readiness probe.
// Checks run in registration order.
func (h *Handler) RegisterCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks = append(h.checks, namedCheck{name: name, check: check})
}

// Register mounts the probe routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleStatus)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}

// HandleLiveness always answers 200 while the process is up.
func (h *Handler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// CheckResult reports the outcome of a single dependency check.
type CheckResult struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

// ReadinessResponse is the readiness probe body.
type ReadinessResponse struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

// HandleReadiness runs every registered check and answers 503 when any
// dependency is down.
func (h *Handler) HandleReadiness(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	checks := make([]namedCheck, len(h.checks))
	copy(checks, h.checks)
	h.mu.RUnlock()

	response := ReadinessResponse{
		Status: "ready",
		Checks: make(map[string]CheckResult, len(checks)),
	}

	status := http.StatusOK
	for _, c := range checks {
		started := time.Now()
		result := CheckResult{Status: "up"}
		if err := c.check(); err != nil {
			result.Status = "down"
			result.Error = err.Error()
			response.Status = "not_ready"
			status = http.StatusServiceUnavailable
		}
		result.LatencyMS = time.Since(started).Milliseconds()
		response.Checks[c.name] = result
	}

	httputil.WriteJSON(w, status, response)
}

// StatusResponse is the general health status body.
type StatusResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	Version       string `json:"version"`
	Environment   string `json:"environment"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Timestamp     string `json:"timestamp"`
}

// HandleStatus reports version and uptime for humans and dashboards.
func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{
		Status:        "healthy",
		Service:       "notarium",
		Version:       Version,
		Environment:   h.environment,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}
