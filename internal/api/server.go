// Package api exposes account dashboards over HTTP. Each request is one
// dashboard event applied to the account's session.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/cashiering/internal/config"
	"github.com/Veraticus/cashiering/internal/dashboard"
	"github.com/Veraticus/cashiering/internal/delivery"
	"github.com/Veraticus/cashiering/internal/export"
	"github.com/Veraticus/cashiering/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config wires a Server.
type Config struct {
	Repo      service.ItemRepository
	Logger    *slog.Logger
	Registry  *prometheus.Registry
	Metrics   *Metrics
	Recorder  *delivery.Recorder
	Now       func() time.Time
	Dashboard config.DashboardConfig
	Timeout   time.Duration
}

// Server serves account dashboards.
type Server struct {
	sessions *Sessions
	recorder *delivery.Recorder
	metrics  *Metrics
	registry *prometheus.Registry
	logger   *slog.Logger
	now      func() time.Time
	timeout  time.Duration
}

// NewServer builds a server. Missing registry, metrics, recorder and clock get defaults.
func NewServer(cfg Config) *Server {
	s := &Server{
		recorder: cfg.Recorder,
		metrics:  cfg.Metrics,
		registry: cfg.Registry,
		logger:   cfg.Logger,
		now:      cfg.Now,
		timeout:  cfg.Timeout,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(s.registry)
	}
	if s.recorder == nil {
		s.recorder = delivery.NewRecorder(1000)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.timeout <= 0 {
		s.timeout = 15 * time.Second
	}

	sink := delivery.NewMultiSink(delivery.NewLogSink(s.logger), s.recorder)
	dash := cfg.Dashboard
	s.sessions = NewSessions(func(accountID string) *dashboard.Session {
		controller := delivery.NewController(sink,
			delivery.WithLogger(s.logger),
			delivery.WithClock(s.now),
			delivery.WithCarriers(dash.Carriers),
			delivery.WithAddresses(dash.Addresses))
		return dashboard.NewSession(accountID, cfg.Repo,
			dashboard.WithLogger(s.logger.With("account_id", accountID)),
			dashboard.WithViewParams(dash.Params),
			dashboard.WithDelivery(controller))
	})
	s.sessions.onNew = s.metrics.ActiveSessions.Inc
	return s
}

// Recorder returns the store of confirmed delivery requests.
func (s *Server) Recorder() *delivery.Recorder { return s.recorder }

// Router constructs the chi router with base middleware and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observability)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/accounts/{accountID}", func(r chi.Router) {
		r.Get("/dashboard", s.getDashboard)
		r.Put("/view", s.putView)
		r.Post("/refresh", s.refresh)
		r.Post("/selection/{key}/toggle", s.toggleSelection)
		r.Delete("/selection", s.clearSelection)
		r.Post("/delivery/open", s.openDelivery)
		r.Patch("/delivery", s.patchDelivery)
		r.Post("/delivery/cancel", s.cancelDelivery)
		r.Post("/delivery/confirm", s.confirmDelivery)
		r.Get("/items/{key}", s.getItem)
		r.Get("/export.xlsx", s.exportView(export.FormatXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
		r.Get("/export.pdf", s.exportView(export.FormatPDF, "application/pdf"))
	})
	r.Get("/deliveries/{requestID}/manifest.pdf", s.deliveryManifest)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, r, http.StatusNotFound, errResponse{Error: "route not found"})
	})

	return r
}
