package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"kanbot/internal/models"
)

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	db *sql.DB
}

const taskColumns = `id, board_id, user_id, title, description, status, priority, due_date, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	task := &models.Task{}
	var description sql.NullString
	var dueDate sql.NullTime
	err := row.Scan(
		&task.ID, &task.BoardID, &task.UserID, &task.Title, &description,
		&task.Status, &task.Priority, &dueDate, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.Description = nullStringToString(description)
	task.DueDate = nullTimeToPtr(dueDate)
	return task, nil
}

// Create inserts a new task on boardID created by userID and returns the
// stored row. Title and status are validated before any statement runs, and
// the board reference is checked inside the insert transaction.
func (r *TaskRepo) Create(ctx context.Context, boardID int, userID, title, description, status string, priority int, dueDate *time.Time) (*models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if status == "" {
		status = models.StatusTodo
	}
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM boards WHERE id = ?`, boardID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check board %d: %w", boardID, err)
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (board_id, user_id, title, description, status, priority, due_date)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			boardID, userID, title, description, status, priority, dueDate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert task '%s': %w", title, err)
		}

		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get task ID after insert: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Retrieve the created task to get timestamps
	task, err := scanTask(r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to read back task %d: %w", id, err)
	}
	return task, nil
}

// GetByID retrieves a task by its ID
func (r *TaskRepo) GetByID(ctx context.Context, id int) (*models.Task, error) {
	task, err := scanTask(r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return task, nil
}

// ListByBoard retrieves the tasks on a board. Sort and filter options are
// normalized to safe defaults before the query text is assembled.
func (r *TaskRepo) ListByBoard(ctx context.Context, boardID int, opts ListOptions) ([]*models.Task, error) {
	opts = NormalizeListOptions(opts)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE board_id = ?`
	args := []any{boardID}
	if opts.Status != "" {
		query += ` AND status = ?`
		args = append(args, opts.Status)
	}
	// Both identifiers come from allow-lists inside NormalizeListOptions.
	query += fmt.Sprintf(` ORDER BY %s %s`, opts.SortBy, opts.Order)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks for board %d: %w", boardID, err)
	}
	defer closeRows(rows)

	tasks := make([]*models.Task, 0, 10)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

// Update applies the set fields of upd to the task and refreshes its
// updated timestamp. An empty update or an unknown task ID is a failure.
func (r *TaskRepo) Update(ctx context.Context, id int, upd models.TaskUpdate) error {
	if upd.IsEmpty() {
		return ErrNoFields
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return ErrEmptyTitle
	}
	if upd.Status != nil && !models.IsValidStatus(*upd.Status) {
		return ErrInvalidStatus
	}

	assignments := make([]string, 0, 6)
	args := make([]any, 0, 6)
	if upd.Title != nil {
		assignments = append(assignments, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		assignments = append(assignments, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Status != nil {
		assignments = append(assignments, "status = ?")
		args = append(args, *upd.Status)
	}
	if upd.Priority != nil {
		assignments = append(assignments, "priority = ?")
		args = append(args, *upd.Priority)
	}
	if upd.DueDate != nil {
		assignments = append(assignments, "due_date = ?")
		args = append(args, *upd.DueDate)
	}
	assignments = append(assignments, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET `+strings.Join(assignments, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check task %d update: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task from the database
func (r *TaskRepo) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check task %d deletion: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountsByStatus returns the number of tasks in each status on a board.
// Statuses with no tasks are present with a zero count.
func (r *TaskRepo) CountsByStatus(ctx context.Context, boardID int) (models.StatusCounts, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM tasks WHERE board_id = ? GROUP BY status`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks for board %d: %w", boardID, err)
	}
	defer closeRows(rows)

	counts := models.NewStatusCounts()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status counts: %w", err)
	}
	return counts, nil
}
