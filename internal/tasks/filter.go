package tasks

import (
	"fmt"
	"strings"
	"time"

	"smart-task-api/pkg/types"
)

// SortOrder represents sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// Sortable fields, keyed by their API names.
const (
	SortByCreationDate = "creation_date"
	SortByDueDate      = "due_date"
)

// TaskFilters represents filtering, sorting, and pagination criteria for
// task listings
type TaskFilters struct {
	Status    []types.TaskStatus `json:"status,omitempty"`
	DueFrom   *time.Time         `json:"due_from,omitempty"`
	DueTo     *time.Time         `json:"due_to,omitempty"`
	SortBy    string             `json:"sort_by,omitempty"`
	SortOrder SortOrder          `json:"sort_order,omitempty"`
	Offset    int                `json:"offset"`
	Limit     int                `json:"limit"`
}

// FilterManager builds SQL clauses from task filters
type FilterManager struct {
	sortColumns map[string]string
}

// NewFilterManager creates a new filter manager
func NewFilterManager() *FilterManager {
	return &FilterManager{
		sortColumns: map[string]string{
			SortByCreationDate: "created_at",
			SortByDueDate:      "due_date",
		},
	}
}

// ValidateFilters checks filter values against known statuses and sort
// fields
func (fm *FilterManager) ValidateFilters(filters *TaskFilters) error {
	for _, status := range filters.Status {
		if !status.Valid() {
			return fmt.Errorf("invalid status filter: %q", status)
		}
	}

	if filters.SortBy != "" {
		if _, ok := fm.sortColumns[filters.SortBy]; !ok {
			return fmt.Errorf("invalid sort field: %q (use %s or %s)", filters.SortBy, SortByCreationDate, SortByDueDate)
		}
	}

	if filters.SortOrder != "" && filters.SortOrder != SortOrderAsc && filters.SortOrder != SortOrderDesc {
		return fmt.Errorf("invalid sort order: %q (use asc or desc)", filters.SortOrder)
	}

	if filters.Limit < 0 || filters.Offset < 0 {
		return fmt.Errorf("limit and offset must not be negative")
	}

	return nil
}

// BuildWhereClause builds a parameterized SQL WHERE clause from filters
func (fm *FilterManager) BuildWhereClause(filters *TaskFilters) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if len(filters.Status) > 0 {
		placeholders := make([]string, len(filters.Status))
		for i, status := range filters.Status {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, string(status))
			argIndex++
		}
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ", ")))
	}

	if filters.DueFrom != nil {
		conditions = append(conditions, fmt.Sprintf("due_date >= $%d", argIndex))
		args = append(args, *filters.DueFrom)
		argIndex++
	}
	if filters.DueTo != nil {
		conditions = append(conditions, fmt.Sprintf("due_date <= $%d", argIndex))
		args = append(args, *filters.DueTo)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	return whereClause, args
}

// BuildOrderClause builds a SQL ORDER BY clause from the sort settings.
// Unknown fields fall back to the default ordering rather than reaching
// the database.
func (fm *FilterManager) BuildOrderClause(filters *TaskFilters) string {
	column, ok := fm.sortColumns[filters.SortBy]
	if !ok {
		column = "created_at"
	}

	direction := "DESC"
	if filters.SortOrder == SortOrderAsc {
		direction = "ASC"
	}

	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}
