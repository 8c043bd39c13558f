package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"notarium/internal/audit"
	"notarium/internal/authn"
	"notarium/internal/authz"
	adminstore "notarium/internal/authz/store/admin"
	"notarium/internal/directory/handler"
	dirmetrics "notarium/internal/directory/metrics"
	"notarium/internal/directory/service"
	"notarium/internal/directory/source"
	liststore "notarium/internal/directory/store/listing"
	"notarium/internal/platform/config"
	"notarium/internal/platform/database"
	"notarium/internal/platform/health"
	"notarium/internal/platform/httpserver"
	"notarium/internal/platform/logger"
	"notarium/internal/platform/tracing"
	"notarium/internal/seeder"
	httptransport "notarium/internal/transport/http"
	"notarium/pkg/platform/middleware/metadata"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	log.Info("initializing notarium",
		"addr", cfg.Server.Addr,
		"environment", cfg.Server.Environment,
		"demo_mode", cfg.Database.DSN == "",
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	healthHandler := health.New(cfg.Server.Environment)

	// An empty DSN selects the in-memory stores. Postgres is the production
	// path; the in-memory path exists for demos and local development.
	var (
		listingStore service.ListingStore
		lister       source.Lister
		adminDir     authz.AdminDirectory
		auditStore   audit.Store
	)
	if cfg.Database.DSN != "" {
		pool, err := database.Open(ctx, database.Config{
			URL:             cfg.Database.DSN,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		healthHandler.RegisterCheck("database", func() error {
			checkCtx, checkCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer checkCancel()
			return pool.HealthCheck(checkCtx)
		})

		pg := liststore.NewPostgres(pool.DB())
		listingStore = pg
		lister = pg
		adminDir = adminstore.NewPostgres(pool.DB())
		auditStore = audit.NewPostgresStore(pool.DB())
	} else {
		mem := liststore.NewInMemory()
		listingStore = mem
		lister = mem
		memAdmins := adminstore.NewInMemory()
		adminDir = memAdmins
		memAudit := audit.NewInMemoryStore()
		auditStore = memAudit

		if cfg.Directory.SeedDemo {
			s := seeder.New(mem, memAdmins, memAudit, log,
				seeder.WithCount(cfg.Directory.SeedCount),
			)
			if err := s.SeedAll(ctx); err != nil {
				log.Error("failed to seed demo data", "error", err)
				os.Exit(1)
			}
		}
	}

	publisher := audit.NewPublisher(auditStore,
		audit.WithAsyncBuffer(256),
		audit.WithPublisherLogger(log),
	)
	defer publisher.Close()

	metrics := dirmetrics.New()

	src := source.New(lister,
		source.WithLogger(log),
		source.WithTracer(tracing.NewOTel()),
		source.WithMetrics(metrics),
	)

	svc := service.New(src, listingStore,
		service.Limits{
			FetchLimit:      cfg.Directory.FetchLimit,
			DefaultPageSize: cfg.Directory.DefaultPageSize,
			MaxPageSize:     cfg.Directory.MaxPageSize,
			FeaturedCount:   cfg.Directory.FeaturedCount,
		},
		service.WithLogger(log),
		service.WithAuditPublisher(publisher),
		service.WithMetrics(metrics),
	)

	trustedProxies, err := metadata.ParsePrefixes(cfg.Server.TrustedProxies)
	if err != nil {
		log.Error("invalid trusted proxy configuration", "error", err)
		os.Exit(1)
	}

	tokens := authn.NewTokenService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	policy := authz.NewPolicy(splitEmails(cfg.Auth.AdminEmails), authz.WithDirectory(adminDir))
	gate := authz.NewGate(policy, tokens, cfg.Auth.AdminTokenHash)

	router := httptransport.NewRouter(
		httptransport.Config{
			RequestTimeout: cfg.Server.RequestTimeout,
			TrustedProxies: trustedProxies,
		},
		handler.New(svc, log),
		gate,
		healthHandler,
		log,
	)

	srv := httpserver.New(httpserver.Config{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}, router)

	log.Info("starting http server", "addr", cfg.Server.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

// splitEmails turns the comma-separated allowlist into a slice, dropping
// empty entries so a trailing comma does not grant the empty email.
func splitEmails(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
