// Package task implements the task operations of the task-tracking core.
// Tasks move freely between the three statuses; access is decided by the
// authorization policy before storage is touched.
package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kanbot/internal/database"
	"kanbot/internal/models"
	"kanbot/internal/policy"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	ListTasks(ctx context.Context, requester string, boardID int, opts database.ListOptions) ([]*models.Task, error)
	CountsByStatus(ctx context.Context, requester string, boardID int) (models.StatusCounts, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) error
	SetStatus(ctx context.Context, requester string, taskID int, status string) error
	DeleteTask(ctx context.Context, requester string, taskID int) error
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	Requester   string
	BoardID     int
	Title       string
	Description string
	Status      string // defaults to todo when empty
	Priority    int
	DueDate     *time.Time
}

// UpdateTaskRequest encapsulates all data needed to update a task.
// Nil fields in Update are left untouched.
type UpdateTaskRequest struct {
	Requester string
	TaskID    int
	Update    models.TaskUpdate
}

// service implements Service
type service struct {
	repo database.Store
}

// NewService creates a new task service
func NewService(repo database.Store) Service {
	return &service{repo: repo}
}

// CreateTask creates a task on a board the requester can read. The requester
// becomes the task's creator.
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if req.BoardID <= 0 {
		return nil, ErrInvalidBoardID
	}

	board, err := s.repo.GetBoardByID(ctx, req.BoardID)
	if errors.Is(err, database.ErrNotFound) {
		slog.Info("board not found", "requester", req.Requester, "board_id", req.BoardID, "op", "create task")
		return nil, ErrAccessDenied
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load board %d: %w", req.BoardID, err)
	}

	if !policy.CanReadBoard(req.Requester, board) {
		slog.Warn("task create denied",
			"requester", req.Requester, "board_id", req.BoardID, "owner", board.OwnerID)
		return nil, ErrAccessDenied
	}

	task, err := s.repo.CreateTask(ctx, board.ID, req.Requester,
		req.Title, req.Description, req.Status, req.Priority, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ListTasks returns the tasks on a board the requester can read. Failed
// access yields an empty collection, not an error, so callers cannot tell a
// hidden board from an empty one.
func (s *service) ListTasks(ctx context.Context, requester string, boardID int, opts database.ListOptions) ([]*models.Task, error) {
	if !s.canReadBoard(ctx, requester, boardID, "list tasks") {
		return []*models.Task{}, nil
	}

	tasks, err := s.repo.ListTasksByBoard(ctx, boardID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for board %d: %w", boardID, err)
	}
	return tasks, nil
}

// CountsByStatus returns per-status task counts for a board the requester
// can read. Failed access yields zero counts, matching an empty board.
func (s *service) CountsByStatus(ctx context.Context, requester string, boardID int) (models.StatusCounts, error) {
	if !s.canReadBoard(ctx, requester, boardID, "count tasks") {
		return models.NewStatusCounts(), nil
	}

	counts, err := s.repo.CountTasksByStatus(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks for board %d: %w", boardID, err)
	}
	return counts, nil
}

// UpdateTask loads the task and its board, checks write access, then applies
// the update. Field validation happens in storage before any statement runs.
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) error {
	task, err := s.authorizeWrite(ctx, req.Requester, req.TaskID, "update")
	if err != nil {
		return err
	}

	if err := s.repo.UpdateTask(ctx, task.ID, req.Update); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// Deleted between the check and the write
			return ErrAccessDenied
		}
		return fmt.Errorf("failed to update task %d: %w", task.ID, err)
	}
	return nil
}

// SetStatus transitions a task to the given status. Any status may move to
// any other; the transition refreshes the updated timestamp.
func (s *service) SetStatus(ctx context.Context, requester string, taskID int, status string) error {
	return s.UpdateTask(ctx, UpdateTaskRequest{
		Requester: requester,
		TaskID:    taskID,
		Update:    models.TaskUpdate{Status: &status},
	})
}

// DeleteTask removes a task the requester may write
func (s *service) DeleteTask(ctx context.Context, requester string, taskID int) error {
	task, err := s.authorizeWrite(ctx, requester, taskID, "delete")
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTask(ctx, task.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("failed to delete task %d: %w", task.ID, err)
	}
	return nil
}

// canReadBoard evaluates read policy for the listing operations. Load
// failures and denials both read as "no access"; store errors are logged.
func (s *service) canReadBoard(ctx context.Context, requester string, boardID int, op string) bool {
	if boardID <= 0 {
		return false
	}

	board, err := s.repo.GetBoardByID(ctx, boardID)
	if errors.Is(err, database.ErrNotFound) {
		slog.Info("board not found", "requester", requester, "board_id", boardID, "op", op)
		return false
	}
	if err != nil {
		slog.Error("failed to load board for read check", "board_id", boardID, "error", err)
		return false
	}

	if !policy.CanReadBoard(requester, board) {
		slog.Warn("board read denied",
			"requester", requester, "board_id", boardID, "owner", board.OwnerID, "op", op)
		return false
	}
	return true
}

// authorizeWrite loads the task and its board and evaluates write policy
// before any mutating statement executes
func (s *service) authorizeWrite(ctx context.Context, requester string, taskID int, op string) (*models.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}

	task, err := s.repo.GetTaskByID(ctx, taskID)
	if errors.Is(err, database.ErrNotFound) {
		slog.Info("task not found", "requester", requester, "task_id", taskID, "op", op)
		return nil, ErrAccessDenied
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load task %d: %w", taskID, err)
	}

	board, err := s.repo.GetBoardByID(ctx, task.BoardID)
	if errors.Is(err, database.ErrNotFound) {
		slog.Info("board not found for task", "requester", requester, "task_id", taskID, "board_id", task.BoardID)
		return nil, ErrAccessDenied
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load board %d: %w", task.BoardID, err)
	}

	isAdmin := false
	if task.UserID != requester && policy.NeedsAdminLookup(requester, board) {
		isAdmin, err = s.repo.IsAdmin(ctx, requester)
		if err != nil {
			return nil, fmt.Errorf("failed to look up admin flag: %w", err)
		}
	}

	if !policy.CanWriteTask(requester, task, board, isAdmin) {
		slog.Warn("task write denied",
			"requester", requester, "task_id", taskID, "creator", task.UserID,
			"board_owner", board.OwnerID, "op", op)
		return nil, ErrAccessDenied
	}
	return task, nil
}
