// Package api provides the HTTP API layer for the Smart Task API.
package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"smart-task-api/internal/api/handlers"
	"smart-task-api/internal/api/middleware"
	"smart-task-api/internal/api/response"
	"smart-task-api/internal/config"
	"smart-task-api/internal/logging"
	"smart-task-api/internal/tasks"
)

const serverVersion = "1.0.0"

// Router represents the main API router
type Router struct {
	config    *config.Config
	mux       *chi.Mux
	service   *tasks.Service
	suggester *tasks.Suggester
	db        *sql.DB
	logger    logging.Logger
}

// NewRouter creates a new API router with middleware and routes
func NewRouter(cfg *config.Config, service *tasks.Service, suggester *tasks.Suggester, db *sql.DB, logger logging.Logger) *Router {
	r := &Router{
		config:    cfg,
		mux:       chi.NewRouter(),
		service:   service,
		suggester: suggester,
		db:        db,
		logger:    logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Handler returns the HTTP handler
func (r *Router) Handler() http.Handler {
	return r.mux
}

// setupMiddleware configures the middleware stack
func (r *Router) setupMiddleware() {
	// Recovery middleware (should be first)
	r.mux.Use(chimiddleware.Recoverer)

	r.mux.Use(chimiddleware.Timeout(30 * time.Second))

	loggingMiddleware := middleware.NewLoggingMiddleware(r.logger)
	r.mux.Use(loggingMiddleware.Handler())

	corsMiddleware := middleware.NewPermissiveCORSMiddleware()
	r.mux.Use(corsMiddleware.Handler())

	// Request size limit (1MB)
	r.mux.Use(chimiddleware.RequestSize(1 * 1024 * 1024))

	// Heartbeat for load balancer health checks
	r.mux.Use(chimiddleware.Heartbeat("/ping"))
}

// setupRoutes configures API routes
func (r *Router) setupRoutes() {
	var pinger handlers.Pinger
	if r.db != nil {
		pinger = r.db
	}
	healthHandler := handlers.NewHealthHandler(r.config, pinger)
	r.mux.Get("/health", healthHandler.Handle)

	crudHandler := handlers.NewTaskCRUDHandler(r.service)
	suggestionsHandler := handlers.NewSuggestionsHandler(r.suggester, r.logger)
	statisticsHandler := handlers.NewStatisticsHandler(r.service)

	r.mux.Route("/api/v1", func(rtr chi.Router) {
		rtr.Get("/health", healthHandler.Handle)

		rtr.Route("/tasks", func(taskRouter chi.Router) {
			taskRouter.Get("/", crudHandler.ListTasks)
			taskRouter.Post("/", crudHandler.CreateTask)

			// Fixed paths before the ID wildcard.
			taskRouter.Get("/suggestions/smart", suggestionsHandler.GetSmartSuggestions)
			taskRouter.Get("/statistics/overview", statisticsHandler.GetOverview)

			taskRouter.Get("/{id}", crudHandler.GetTask)
			taskRouter.Put("/{id}", crudHandler.UpdateTask)
			taskRouter.Delete("/{id}", crudHandler.DeleteTask)
		})
	})

	// Root endpoint with server info
	r.mux.Get("/", r.handleRoot)

	r.mux.NotFound(r.handleNotFound)
	r.mux.MethodNotAllowed(r.handleMethodNotAllowed)
}

// handleRoot serves the welcome payload with endpoint discovery info
func (r *Router) handleRoot(w http.ResponseWriter, _ *http.Request) {
	response.WriteSuccess(w, map[string]interface{}{
		"message": "Welcome to Smart Task Management API",
		"version": serverVersion,
		"endpoints": map[string]string{
			"tasks":       "/api/v1/tasks",
			"suggestions": "/api/v1/tasks/suggestions/smart",
			"statistics":  "/api/v1/tasks/statistics/overview",
			"health":      "/health",
		},
	})
}

func (r *Router) handleNotFound(w http.ResponseWriter, req *http.Request) {
	response.WriteNotFound(w, "Endpoint not found", req.URL.Path)
}

func (r *Router) handleMethodNotAllowed(w http.ResponseWriter, req *http.Request) {
	response.WriteMethodNotAllowed(w, "Method not allowed", req.Method+" "+req.URL.Path)
}
