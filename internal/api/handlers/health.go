package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"smart-task-api/internal/api/response"
	"smart-task-api/internal/config"
)

// Pinger checks connectivity to a backing store
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler provides health check functionality
type HealthHandler struct {
	config    *config.Config
	db        Pinger
	startTime time.Time
}

// HealthStatus represents the health check response structure
type HealthStatus struct {
	Status    string           `json:"status"`
	Server    string           `json:"server"`
	Version   string           `json:"version"`
	Uptime    string           `json:"uptime"`
	Timestamp string           `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
	System    SystemInfo       `json:"system"`
}

// Check represents an individual health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo represents system information
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(cfg *config.Config, db Pinger) *HealthHandler {
	return &HealthHandler{
		config:    cfg,
		db:        db,
		startTime: time.Now(),
	}
}

// Handle processes health check requests
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	status := HealthStatus{
		Server:    "smart-task-api",
		Version:   "1.0.0",
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    h.performHealthChecks(ctx),
		System: SystemInfo{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
		},
	}

	status.Status = "healthy"
	statusCode := http.StatusOK
	for _, check := range status.Checks {
		if check.Status != "healthy" {
			status.Status = "unhealthy"
			statusCode = http.StatusServiceUnavailable
			break
		}
	}

	response.WriteJSON(w, statusCode, status)
}

// performHealthChecks runs the individual dependency checks
func (h *HealthHandler) performHealthChecks(ctx context.Context) map[string]Check {
	checks := make(map[string]Check)

	if h.db != nil {
		start := time.Now()
		if err := h.db.PingContext(ctx); err != nil {
			checks["database"] = Check{Status: "unhealthy", Message: err.Error()}
		} else {
			checks["database"] = Check{
				Status:  "healthy",
				Latency: time.Since(start).String(),
			}
		}
	}

	return checks
}
