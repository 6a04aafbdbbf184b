package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStatusValid(t *testing.T) {
	assert.True(t, TaskStatusPending.Valid())
	assert.True(t, TaskStatusInProgress.Valid())
	assert.True(t, TaskStatusCompleted.Valid())
	assert.False(t, TaskStatus("archived").Valid())
	assert.False(t, TaskStatus("").Valid())
}

func TestParseTaskStatus(t *testing.T) {
	status, err := ParseTaskStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, TaskStatusInProgress, status)

	_, err = ParseTaskStatus("done")
	assert.Error(t, err)

	_, err = ParseTaskStatus("Pending")
	assert.Error(t, err, "status values are case sensitive")
}

func TestTaskJSONFieldNames(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "abc",
		Title:     "Write minutes",
		Status:    TaskStatusPending,
		CreatedAt: created,
		UpdatedAt: created,
	}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.Contains(t, fields, "creation_date")
	assert.Contains(t, fields, "modified_date")
	assert.NotContains(t, fields, "description", "nil description is omitted")
	assert.NotContains(t, fields, "due_date", "nil due date is omitted")
}
