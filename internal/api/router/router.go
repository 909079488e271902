package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/siemlab/console/internal/api/handlers"
	"github.com/siemlab/console/internal/api/middleware"
	"github.com/siemlab/console/internal/config"
	"github.com/siemlab/console/internal/pkg/logger"
	"github.com/siemlab/console/internal/pkg/metrics"
)

// Handlers collects the gateway's handler set
type Handlers struct {
	Health   *handlers.HealthHandler
	View     *handlers.ViewHandler
	Incident *handlers.IncidentHandler
	Lab      *handlers.LabHandler
	Hunting  *handlers.HuntingHandler
}

// New assembles the gateway router
func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200

	// Health checks and metrics
	r.Get("/health", h.Health.Healthz)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Alerts
	r.Route("/api/v1/alerts", func(r chi.Router) {
		r.Get("/", h.View.ListAlerts)
		r.Get("/{id}", h.View.GetAlert)
	})

	// Devices
	r.Get("/api/v1/devices", h.View.ListDevices)

	// Incidents
	r.Route("/api/v1/incidents", func(r chi.Router) {
		r.Get("/", h.View.ListIncidents)
		r.Get("/{id}", h.View.GetIncident)
		r.Patch("/{id}", h.Incident.Update)
	})

	// Snapshot refresh
	r.Post("/api/v1/refresh", h.View.Refresh)

	// Hunting
	r.Post("/api/v1/query/kql", h.Hunting.Run)

	// Labs
	r.Route("/api/v1/labs", func(r chi.Router) {
		r.Get("/scenarios", h.Lab.ListScenarios)
		r.Post("/sessions", h.Lab.StartSession)
		r.Get("/sessions/{id}", h.Lab.GetSession)
		r.Post("/sessions/{id}/answers", h.Lab.SubmitAnswer)
		r.Post("/sessions/{id}/advance", h.Lab.Advance)
		r.Delete("/sessions/{id}", h.Lab.CloseSession)
		r.Post("/challenge-sessions", h.Lab.StartChallengeSession)
		r.Post("/challenge-sessions/{id}/submit", h.Lab.SubmitChallenge)
		r.Post("/reset", h.Lab.Reset)
	})

	return r
}
