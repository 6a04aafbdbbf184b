package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"smart-task-api/internal/tasks"
	"smart-task-api/pkg/types"
)

// taskColumns is the column list shared by all task SELECT queries.
const taskColumns = "id, title, description, due_date, status, created_at, updated_at"

// TaskRepository implements task data access using a SQL database
type TaskRepository struct {
	db     *sql.DB
	filter *tasks.FilterManager
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{
		db:     db,
		filter: tasks.NewFilterManager(),
	}
}

// scanTask scans a single task row, handling nullable columns
func scanTask(row interface{ Scan(...interface{}) error }) (*types.Task, error) {
	var task types.Task
	var description sql.NullString
	var dueDate sql.NullTime

	err := row.Scan(
		&task.ID, &task.Title, &description, &dueDate,
		&task.Status, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		task.Description = &description.String
	}
	if dueDate.Valid {
		due := dueDate.Time
		task.DueDate = &due
	}

	return &task, nil
}

// Create inserts a new task
func (tr *TaskRepository) Create(ctx context.Context, task *types.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tr.db.ExecContext(ctx, query,
		task.ID, task.Title, nullString(task.Description), nullTime(task.DueDate),
		string(task.Status), task.CreatedAt, task.UpdatedAt,
	)

	return err
}

// GetByID retrieves a task by ID
func (tr *TaskRepository) GetByID(ctx context.Context, id string) (*types.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1", taskColumns)

	task, err := scanTask(tr.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", tasks.ErrTaskNotFound, id)
		}
		return nil, err
	}

	return task, nil
}

// Update updates an existing task
func (tr *TaskRepository) Update(ctx context.Context, task *types.Task) error {
	query := `
		UPDATE tasks SET
			title = $2, description = $3, due_date = $4, status = $5, updated_at = $6
		WHERE id = $1`

	result, err := tr.db.ExecContext(ctx, query,
		task.ID, task.Title, nullString(task.Description), nullTime(task.DueDate),
		string(task.Status), task.UpdatedAt,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", tasks.ErrTaskNotFound, task.ID)
	}

	return nil
}

// Delete deletes a task by ID
func (tr *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := tr.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", tasks.ErrTaskNotFound, id)
	}

	return nil
}

// List retrieves tasks with filtering, sorting, and pagination
func (tr *TaskRepository) List(ctx context.Context, filters *tasks.TaskFilters) ([]types.Task, error) {
	whereClause, args := tr.filter.BuildWhereClause(filters)
	orderClause := tr.filter.BuildOrderClause(filters)

	query := fmt.Sprintf("SELECT %s FROM tasks %s %s", taskColumns, whereClause, orderClause)
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filters.Limit)
	}
	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filters.Offset)
	}

	rows, err := tr.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var taskList []types.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		taskList = append(taskList, *task)
	}

	return taskList, rows.Err()
}

// ListTitles returns all non-null task titles in stable insertion order.
// The ordering matches ListDescriptions so suggestion tie-breaking stays
// deterministic within one request.
func (tr *TaskRepository) ListTitles(ctx context.Context) ([]string, error) {
	return tr.listTextColumn(ctx, "title")
}

// ListDescriptions returns all non-null task descriptions in stable
// insertion order
func (tr *TaskRepository) ListDescriptions(ctx context.Context) ([]string, error) {
	return tr.listTextColumn(ctx, "description")
}

func (tr *TaskRepository) listTextColumn(ctx context.Context, column string) ([]string, error) {
	// column is one of two fixed identifiers, never user input.
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE %s IS NOT NULL ORDER BY created_at, id", column, column)

	rows, err := tr.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	return values, rows.Err()
}

// CountAll returns the total number of tasks
func (tr *TaskRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := tr.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count)
	return count, err
}

// CountByStatus returns the number of tasks in the given status
func (tr *TaskRepository) CountByStatus(ctx context.Context, status types.TaskStatus) (int, error) {
	var count int
	err := tr.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE status = $1`, string(status),
	).Scan(&count)
	return count, err
}

// CountDueBetween returns the number of tasks due within [from, to] that
// are not in the excluded status
func (tr *TaskRepository) CountDueBetween(ctx context.Context, from, to time.Time, excludeStatus types.TaskStatus) (int, error) {
	var count int
	err := tr.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE due_date >= $1 AND due_date <= $2 AND status != $3`,
		from, to, string(excludeStatus),
	).Scan(&count)
	return count, err
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
