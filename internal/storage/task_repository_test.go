package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-task-api/internal/tasks"
	"smart-task-api/pkg/types"
)

func newTestRepository(t *testing.T) *TaskRepository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, Migrate(context.Background(), db))

	return NewTaskRepository(db)
}

func seedTask(t *testing.T, repo *TaskRepository, id, title string, description *string, due *time.Time, status types.TaskStatus, createdAt time.Time) types.Task {
	t.Helper()

	task := types.Task{
		ID:          id,
		Title:       title,
		Description: description,
		DueDate:     due,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), &task))
	return task
}

func TestTaskRepositoryCreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	description := "quarterly numbers"
	due := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	seedTask(t, repo, "t1", "Prepare budget report", &description, &due, types.TaskStatusPending, created)

	task, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)

	assert.Equal(t, "Prepare budget report", task.Title)
	require.NotNil(t, task.Description)
	assert.Equal(t, description, *task.Description)
	require.NotNil(t, task.DueDate)
	assert.True(t, due.Equal(*task.DueDate))
	assert.Equal(t, types.TaskStatusPending, task.Status)
}

func TestTaskRepositoryGetMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, tasks.ErrTaskNotFound)
}

func TestTaskRepositoryUpdate(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	task := seedTask(t, repo, "t1", "Draft proposal", nil, nil, types.TaskStatusPending, created)

	task.Title = "Draft final proposal"
	task.Status = types.TaskStatusInProgress
	task.UpdatedAt = created.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, &task))

	stored, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Draft final proposal", stored.Title)
	assert.Equal(t, types.TaskStatusInProgress, stored.Status)
	assert.Nil(t, stored.Description)
	assert.Nil(t, stored.DueDate)
}

func TestTaskRepositoryUpdateMissing(t *testing.T) {
	repo := newTestRepository(t)

	task := types.Task{ID: "missing", Title: "x", Status: types.TaskStatusPending}
	err := repo.Update(context.Background(), &task)
	require.Error(t, err)
	assert.ErrorIs(t, err, tasks.ErrTaskNotFound)
}

func TestTaskRepositoryDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	seedTask(t, repo, "t1", "Temp", nil, nil, types.TaskStatusPending, created)

	require.NoError(t, repo.Delete(ctx, "t1"))

	_, err := repo.GetByID(ctx, "t1")
	assert.ErrorIs(t, err, tasks.ErrTaskNotFound)

	err = repo.Delete(ctx, "t1")
	assert.ErrorIs(t, err, tasks.ErrTaskNotFound)
}

func TestTaskRepositoryListFilterAndSort(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	dueEarly := base.Add(24 * time.Hour)
	dueLate := base.Add(72 * time.Hour)

	seedTask(t, repo, "t1", "First", nil, &dueLate, types.TaskStatusPending, base)
	seedTask(t, repo, "t2", "Second", nil, &dueEarly, types.TaskStatusCompleted, base.Add(time.Hour))
	seedTask(t, repo, "t3", "Third", nil, nil, types.TaskStatusPending, base.Add(2*time.Hour))

	// Default sort: newest first.
	list, err := repo.List(ctx, &tasks.TaskFilters{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "t3", list[0].ID)
	assert.Equal(t, "t1", list[2].ID)

	// Status filter.
	list, err = repo.List(ctx, &tasks.TaskFilters{Status: []types.TaskStatus{types.TaskStatusPending}})
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Due date range keeps only tasks with a due date inside the window.
	from := base
	to := base.Add(48 * time.Hour)
	list, err = repo.List(ctx, &tasks.TaskFilters{DueFrom: &from, DueTo: &to})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "t2", list[0].ID)

	// Sort by due date ascending.
	list, err = repo.List(ctx, &tasks.TaskFilters{SortBy: tasks.SortByDueDate, SortOrder: tasks.SortOrderAsc})
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Pagination.
	list, err = repo.List(ctx, &tasks.TaskFilters{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "t2", list[0].ID)
}

func TestTaskRepositoryListTextColumns(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	description := "with description"

	seedTask(t, repo, "t1", "Alpha", &description, nil, types.TaskStatusPending, base)
	seedTask(t, repo, "t2", "Beta", nil, nil, types.TaskStatusPending, base.Add(time.Hour))

	titles, err := repo.ListTitles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta"}, titles)

	descriptions, err := repo.ListDescriptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"with description"}, descriptions)
}

func TestTaskRepositoryCounts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	dueSoon := base.Add(24 * time.Hour)
	dueLater := base.Add(240 * time.Hour)

	seedTask(t, repo, "t1", "One", nil, &dueSoon, types.TaskStatusPending, base)
	seedTask(t, repo, "t2", "Two", nil, &dueSoon, types.TaskStatusCompleted, base)
	seedTask(t, repo, "t3", "Three", nil, &dueLater, types.TaskStatusInProgress, base)

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	pending, err := repo.CountByStatus(ctx, types.TaskStatusPending)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	// Completed tasks are excluded from the due-soon window.
	dueSoonCount, err := repo.CountDueBetween(ctx, base, base.Add(7*24*time.Hour), types.TaskStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 1, dueSoonCount)
}
