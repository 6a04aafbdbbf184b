package handlers

import (
	"net/http"

	"smart-task-api/internal/api/response"
	"smart-task-api/internal/tasks"
)

// StatisticsHandler serves the aggregate task overview
type StatisticsHandler struct {
	service *tasks.Service
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(service *tasks.Service) *StatisticsHandler {
	return &StatisticsHandler{service: service}
}

// GetOverview handles GET /tasks/statistics/overview
func (h *StatisticsHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		response.WriteInternalError(w, "Failed to compute statistics", err.Error())
		return
	}

	response.WriteSuccess(w, stats)
}
