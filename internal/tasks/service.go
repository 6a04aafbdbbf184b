package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smart-task-api/pkg/types"
)

// ErrTaskNotFound is returned when a task ID does not exist in the store.
var ErrTaskNotFound = errors.New("task not found")

// ErrInvalidTask marks task validation failures so the API layer can map
// them to a 422 response.
var ErrInvalidTask = errors.New("invalid task")

// ErrInvalidFilters marks list filter validation failures.
var ErrInvalidFilters = errors.New("invalid filters")

// Repository defines the interface for task data access
type Repository interface {
	Create(ctx context.Context, task *types.Task) error
	GetByID(ctx context.Context, id string) (*types.Task, error)
	Update(ctx context.Context, task *types.Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *TaskFilters) ([]types.Task, error)
	ListTitles(ctx context.Context) ([]string, error)
	ListDescriptions(ctx context.Context) ([]string, error)
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status types.TaskStatus) (int, error)
	CountDueBetween(ctx context.Context, from, to time.Time, excludeStatus types.TaskStatus) (int, error)
}

// ServiceConfig represents configuration for the task service
type ServiceConfig struct {
	DefaultPageSize int           `json:"default_page_size"`
	MaxPageSize     int           `json:"max_page_size"`
	DueSoonWindow   time.Duration `json:"due_soon_window"`
}

// DefaultServiceConfig returns default service configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		DefaultPageSize: 20,
		MaxPageSize:     100,
		DueSoonWindow:   7 * 24 * time.Hour,
	}
}

// Service provides task management business logic
type Service struct {
	repository Repository
	validator  *Validator
	filter     *FilterManager
	config     ServiceConfig
	now        func() time.Time
}

// NewService creates a new task service
func NewService(repo Repository, config ServiceConfig) *Service {
	return &Service{
		repository: repo,
		validator:  NewValidator(),
		filter:     NewFilterManager(),
		config:     config,
		now:        time.Now,
	}
}

// TaskUpdate represents a partial task update. Nil fields are left
// untouched.
type TaskUpdate struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	Status      *types.TaskStatus `json:"status,omitempty"`
}

// CreateTask validates and stores a new task, assigning its ID and
// timestamps
func (s *Service) CreateTask(ctx context.Context, task *types.Task) error {
	if task.Status == "" {
		task.Status = types.TaskStatusPending
	}

	if err := s.validator.ValidateTask(task); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTask, err)
	}

	now := s.now().UTC()
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.repository.Create(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetTask retrieves a task by ID
func (s *Service) GetTask(ctx context.Context, id string) (*types.Task, error) {
	task, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// UpdateTask applies a partial update to an existing task; only the
// provided fields change
func (s *Service) UpdateTask(ctx context.Context, id string, update *TaskUpdate) (*types.Task, error) {
	task, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing task: %w", err)
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = update.Description
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	if update.Status != nil {
		task.Status = *update.Status
	}

	if err := s.validator.ValidateUpdate(task, update); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTask, err)
	}

	task.UpdatedAt = s.now().UTC()

	if err := s.repository.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task by ID
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ListTasks lists tasks with filtering, sorting, and pagination
func (s *Service) ListTasks(ctx context.Context, filters *TaskFilters) ([]types.Task, error) {
	if err := s.filter.ValidateFilters(filters); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilters, err)
	}

	if filters.Limit == 0 {
		filters.Limit = s.config.DefaultPageSize
	}
	if filters.Limit > s.config.MaxPageSize {
		filters.Limit = s.config.MaxPageSize
	}

	taskList, err := s.repository.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return taskList, nil
}

// Statistics computes the aggregate task overview
func (s *Service) Statistics(ctx context.Context) (*types.Statistics, error) {
	total, err := s.repository.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	stats := &types.Statistics{TotalTasks: total}

	statusCounts := []struct {
		status types.TaskStatus
		target *int
	}{
		{types.TaskStatusPending, &stats.PendingTasks},
		{types.TaskStatusInProgress, &stats.InProgressTasks},
		{types.TaskStatusCompleted, &stats.CompletedTasks},
	}
	for _, sc := range statusCounts {
		count, err := s.repository.CountByStatus(ctx, sc.status)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s tasks: %w", sc.status, err)
		}
		*sc.target = count
	}

	now := s.now().UTC()
	dueSoon, err := s.repository.CountDueBetween(ctx, now, now.Add(s.config.DueSoonWindow), types.TaskStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks due soon: %w", err)
	}
	stats.TasksDueSoon = dueSoon

	if total > 0 {
		stats.CompletionRate = float64(stats.CompletedTasks) / float64(total)
	}

	return stats, nil
}
