package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"agroyield/app"
	"agroyield/internal"
	"agroyield/ports"
)

// App is the HTTP surface over the advisory engine
type App struct {
	router   *chi.Mux
	service  *app.AdvisoryService
	exporter ports.CurveExporter
	log      *internal.Logger
}

// Config holds HTTP application configuration
type Config struct {
	Port string
}

// NewApp creates the HTTP application around an advisory service
func NewApp(service *app.AdvisoryService, exporter ports.CurveExporter) *App {
	a := &App{
		router:   chi.NewRouter(),
		service:  service,
		exporter: exporter,
		log:      internal.DefaultLogger.Named("ui"),
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)
	a.router.Get("/api/parameters", a.handleListParameters)
	a.router.Get("/api/results/recent", a.handleRecentResults)

	a.router.Post("/api/predict", a.handlePredict)
	a.router.Post("/api/optimum", a.handleOptimum)
	a.router.Post("/api/curve", a.handleCurve)
	a.router.Post("/api/curve/export", a.handleCurveExport)
	a.router.Post("/api/scenarios", a.handleScenarios)
	a.router.Post("/api/budget", a.handleBudget)
	a.router.Post("/api/report", a.handleReport)
}

// Router exposes the mux for embedding and tests
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server on the configured port
func (a *App) Start(config Config) error {
	addr := ":" + config.Port
	a.log.Info("advisory API listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
