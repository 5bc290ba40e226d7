package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"insightcli/internal/config"
	"insightcli/internal/middleware"
	"insightcli/internal/services"
)

// RouterDeps carries the wired services the router mounts
type RouterDeps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Analysis *services.AnalysisService
	Health   *services.HealthService
}

// NewRouter assembles the full API router with the standard middleware chain
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// RequestID must come first so every downstream log line carries a trace_id
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.Timeout(deps.Config.Server.WriteTimeout, deps.Logger))

	limiter := middleware.NewRateLimiter(100, 200, deps.Logger)
	r.Use(limiter.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/health", NewHealthHandler(deps.Health, deps.Logger).Routes())
		r.Mount("/analyze", NewAnalyzeHandler(deps.Analysis, deps.Config.Server.MaxUploadBytes, deps.Logger).Routes())

		insightsHandler := NewInsightsHandler(deps.Analysis, deps.Config.Insights, deps.Logger)
		r.Route("/insights", func(r chi.Router) {
			r.Use(middleware.ContentType("application/json", deps.Logger))
			r.Mount("/", insightsHandler.Routes())
		})
	})

	return r
}
