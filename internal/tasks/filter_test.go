package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-task-api/pkg/types"
)

func TestValidateFilters(t *testing.T) {
	fm := NewFilterManager()

	assert.NoError(t, fm.ValidateFilters(&TaskFilters{}))
	assert.NoError(t, fm.ValidateFilters(&TaskFilters{
		Status:    []types.TaskStatus{types.TaskStatusPending},
		SortBy:    SortByDueDate,
		SortOrder: SortOrderAsc,
	}))

	assert.Error(t, fm.ValidateFilters(&TaskFilters{Status: []types.TaskStatus{"archived"}}))
	assert.Error(t, fm.ValidateFilters(&TaskFilters{SortBy: "priority"}))
	assert.Error(t, fm.ValidateFilters(&TaskFilters{SortOrder: "sideways"}))
	assert.Error(t, fm.ValidateFilters(&TaskFilters{Limit: -1}))
}

func TestBuildWhereClause(t *testing.T) {
	fm := NewFilterManager()

	where, args := fm.BuildWhereClause(&TaskFilters{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	where, args = fm.BuildWhereClause(&TaskFilters{
		Status:  []types.TaskStatus{types.TaskStatusPending, types.TaskStatusInProgress},
		DueFrom: &from,
		DueTo:   &to,
	})

	assert.Equal(t, "WHERE status IN ($1, $2) AND due_date >= $3 AND due_date <= $4", where)
	require.Len(t, args, 4)
	assert.Equal(t, "pending", args[0])
	assert.Equal(t, "in_progress", args[1])
	assert.Equal(t, from, args[2])
	assert.Equal(t, to, args[3])
}

func TestBuildOrderClause(t *testing.T) {
	fm := NewFilterManager()

	assert.Equal(t, "ORDER BY created_at DESC", fm.BuildOrderClause(&TaskFilters{}))
	assert.Equal(t, "ORDER BY created_at ASC", fm.BuildOrderClause(&TaskFilters{
		SortBy:    SortByCreationDate,
		SortOrder: SortOrderAsc,
	}))
	assert.Equal(t, "ORDER BY due_date DESC", fm.BuildOrderClause(&TaskFilters{
		SortBy:    SortByDueDate,
		SortOrder: SortOrderDesc,
	}))
	// Unknown fields fall back to the default ordering.
	assert.Equal(t, "ORDER BY created_at DESC", fm.BuildOrderClause(&TaskFilters{SortBy: "priority"}))
}
