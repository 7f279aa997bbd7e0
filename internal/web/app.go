package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"Storefront/internal/catalog"
	"Storefront/internal/receipt"
	"Storefront/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

type Deps struct {
	Catalog  *catalog.Catalog
	Source   catalog.Source
	Receipts receipt.Store

	TaxRate            decimal.Decimal
	SessionLimitPerMin int
	SessionTTL         time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

const (
	readyTimeout   = 2 * time.Second
	archiveTimeout = 3 * time.Second

	defaultSessionLimit = 30
	defaultSessionTTL   = 30 * time.Minute
)

func NewHandler(deps Deps, httpDeps HTTPDeps) (http.Handler, error) {
	if deps.Catalog == nil {
		return nil, errors.New("web: nil catalog")
	}
	if deps.Receipts == nil {
		return nil, errors.New("web: nil receipt store")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.SessionLimitPerMin <= 0 {
		deps.SessionLimitPerMin = defaultSessionLimit
	}
	if deps.SessionTTL <= 0 {
		deps.SessionTTL = defaultSessionTTL
	}
	if httpDeps.Log == nil {
		httpDeps.Log = zap.NewNop()
	}

	r := chi.NewRouter()
	setupMiddleware(r, httpDeps)
	metrics := setupMetrics(r, httpDeps)

	s := &Server{
		Log:      httpDeps.Log,
		Catalog:  deps.Catalog,
		Receipts: deps.Receipts,
		TaxRate:  deps.TaxRate,
		Now:      deps.Now,
		Metrics:  metrics,
	}
	var gauge prometheus.Gauge
	if metrics != nil {
		gauge = metrics.Sessions
	}
	s.sessions = newSessionTable(deps.SessionTTL, deps.Now, gauge)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	limiter := kit.NewIPRateLimiter(deps.SessionLimitPerMin, time.Minute)
	r.With(limiter.Middleware).Post("/sessions", s.createSession)
	r.Get("/sessions/{id}/view", s.view)
	r.Post("/sessions/{id}/events", s.dispatch)
	r.Delete("/sessions/{id}", s.endSession)

	(&catalog.Server{Catalog: deps.Catalog}).Register(r)

	r.Get("/receipts", s.listReceipts)
	r.Get("/receipts/{id}", s.getReceipt)

	return r, nil
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) *kit.Metrics {
	if deps.Registry == nil {
		return nil
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.RoutePattern))

	if deps.MetricsEnabled {
		r.With(kit.MetricsAuth(deps.MetricsToken)).
			Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}
	return metrics
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if deps.Source != nil {
			if err := deps.Source.Ping(ctx); err != nil {
				log.Warn("readyz failed: catalog source", zap.Error(err))
				kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog not ready", nil)
				return
			}
		}

		if err := deps.Receipts.Ping(ctx); err != nil {
			log.Warn("readyz failed: receipts", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "receipts not ready", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
