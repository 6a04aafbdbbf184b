// Package handlers provides HTTP request handlers for the Smart Task API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"smart-task-api/internal/api/response"
	"smart-task-api/internal/tasks"
	"smart-task-api/pkg/types"
)

// TaskCRUDHandler handles task create/read/update/delete operations
type TaskCRUDHandler struct {
	service *tasks.Service
}

// NewTaskCRUDHandler creates a new task CRUD handler
func NewTaskCRUDHandler(service *tasks.Service) *TaskCRUDHandler {
	return &TaskCRUDHandler{service: service}
}

// CreateTaskRequest represents the task creation payload
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `json:"status,omitempty"`
}

// UpdateTaskRequest represents a partial task update payload; absent
// fields are left untouched
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

// CreateTask handles POST /tasks
func (h *TaskCRUDHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, "Invalid JSON request", err.Error())
		return
	}

	task := types.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != "" {
		status, err := types.ParseTaskStatus(req.Status)
		if err != nil {
			response.WriteValidationError(w, "Validation failed", err.Error())
			return
		}
		task.Status = status
	}

	if err := h.service.CreateTask(r.Context(), &task); err != nil {
		writeTaskError(w, err, "Failed to create task")
		return
	}

	response.WriteJSON(w, http.StatusCreated, task, "Task created successfully")
}

// GetTask handles GET /tasks/{id}
func (h *TaskCRUDHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	task, err := h.service.GetTask(r.Context(), taskID)
	if err != nil {
		writeTaskError(w, err, "Failed to get task")
		return
	}

	response.WriteSuccess(w, task)
}

// UpdateTask handles PUT /tasks/{id}
func (h *TaskCRUDHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, "Invalid JSON request", err.Error())
		return
	}

	update := tasks.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status, err := types.ParseTaskStatus(*req.Status)
		if err != nil {
			response.WriteValidationError(w, "Validation failed", err.Error())
			return
		}
		update.Status = &status
	}

	task, err := h.service.UpdateTask(r.Context(), taskID, &update)
	if err != nil {
		writeTaskError(w, err, "Failed to update task")
		return
	}

	response.WriteSuccess(w, task, "Task updated successfully")
}

// DeleteTask handles DELETE /tasks/{id}
func (h *TaskCRUDHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	if err := h.service.DeleteTask(r.Context(), taskID); err != nil {
		writeTaskError(w, err, "Failed to delete task")
		return
	}

	response.WriteSuccess(w, map[string]string{"id": taskID},
		fmt.Sprintf("Task with id: %s deleted successfully", taskID))
}

// ListTasks handles GET /tasks with filtering, sorting, and pagination
func (h *TaskCRUDHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filters, err := parseListFilters(r)
	if err != nil {
		response.WriteBadRequest(w, "Invalid query parameters", err.Error())
		return
	}

	taskList, err := h.service.ListTasks(r.Context(), filters)
	if err != nil {
		writeTaskError(w, err, "Failed to list tasks")
		return
	}

	if taskList == nil {
		taskList = []types.Task{}
	}

	response.WriteSuccess(w, taskList)
}

// parseListFilters builds task filters from list query parameters
func parseListFilters(r *http.Request) (*tasks.TaskFilters, error) {
	query := r.URL.Query()
	filters := &tasks.TaskFilters{
		SortBy:    query.Get("sort_by"),
		SortOrder: tasks.SortOrder(query.Get("sort_order")),
	}

	if raw := query.Get("status"); raw != "" {
		for _, value := range strings.Split(raw, ",") {
			status, err := types.ParseTaskStatus(strings.TrimSpace(value))
			if err != nil {
				return nil, err
			}
			filters.Status = append(filters.Status, status)
		}
	}

	if raw := query.Get("due_date_from"); raw != "" {
		from, err := parseDateParam(raw, false)
		if err != nil {
			return nil, fmt.Errorf("invalid due_date_from: %w", err)
		}
		filters.DueFrom = &from
	}
	if raw := query.Get("due_date_to"); raw != "" {
		to, err := parseDateParam(raw, true)
		if err != nil {
			return nil, fmt.Errorf("invalid due_date_to: %w", err)
		}
		filters.DueTo = &to
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid limit: %w", err)
		}
		filters.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid offset: %w", err)
		}
		filters.Offset = offset
	}

	return filters, nil
}

// parseDateParam accepts either a date (YYYY-MM-DD) or an RFC 3339
// timestamp. Plain dates are interpreted as UTC and expand to the start
// or end of that day; RFC 3339 values keep their own offset.
func parseDateParam(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return day.Add(24*time.Hour - time.Nanosecond), nil
	}
	return day, nil
}

// writeTaskError maps service errors to API error responses
func writeTaskError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, tasks.ErrTaskNotFound):
		response.WriteNotFound(w, "Task not found", err.Error())
	case errors.Is(err, tasks.ErrInvalidTask):
		response.WriteValidationError(w, "Validation failed", err.Error())
	case errors.Is(err, tasks.ErrInvalidFilters):
		response.WriteBadRequest(w, "Invalid query parameters", err.Error())
	default:
		response.WriteInternalError(w, message, err.Error())
	}
}
