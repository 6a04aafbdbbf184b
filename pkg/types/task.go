// Package types provides the shared task domain model for the Smart Task API.
package types

import (
	"fmt"
	"time"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether the status is one of the known lifecycle states
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// ParseTaskStatus parses a status string into a TaskStatus
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("invalid task status: %q", s)
	}
	return status, nil
}

// Task represents a single task record
type Task struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	Status      TaskStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"creation_date" db:"created_at"`
	UpdatedAt   time.Time  `json:"modified_date" db:"updated_at"`
}

// Suggestion represents a single suggested task title. Suggestions are
// generated fresh per request and never persisted.
type Suggestion struct {
	SuggestedTitle string `json:"suggested_title"`
}

// Statistics represents an aggregate overview of all stored tasks
type Statistics struct {
	TotalTasks      int     `json:"total_tasks"`
	PendingTasks    int     `json:"pending_tasks"`
	InProgressTasks int     `json:"in_progress_tasks"`
	CompletedTasks  int     `json:"completed_tasks"`
	TasksDueSoon    int     `json:"tasks_due_soon"`
	CompletionRate  float64 `json:"completion_rate"`
}
