package database

import (
	"context"
	"time"

	"kanbot/internal/models"
)

// Store is the interface the service layer consumes. It is composed of
// smaller, domain-specific interfaces so callers can depend on just the
// slice they use.
type Store interface {
	BoardStore
	TaskStore
	AdminStore

	Backup(ctx context.Context, backupDir string) (string, error)
}

// BoardStore covers board persistence
type BoardStore interface {
	CreateBoard(ctx context.Context, name, description, boardType, ownerID string) (*models.Board, error)
	GetBoardByID(ctx context.Context, id int) (*models.Board, error)
	ListBoardsForUser(ctx context.Context, userID string) ([]*models.Board, error)
	ListAllBoards(ctx context.Context) ([]*models.Board, error)
	UpdateBoard(ctx context.Context, id int, upd models.BoardUpdate) error
	DeleteBoard(ctx context.Context, id int) error
}

// TaskStore covers task persistence
type TaskStore interface {
	CreateTask(ctx context.Context, boardID int, userID, title, description, status string, priority int, dueDate *time.Time) (*models.Task, error)
	GetTaskByID(ctx context.Context, id int) (*models.Task, error)
	ListTasksByBoard(ctx context.Context, boardID int, opts ListOptions) ([]*models.Task, error)
	UpdateTask(ctx context.Context, id int, upd models.TaskUpdate) error
	DeleteTask(ctx context.Context, id int) error
	CountTasksByStatus(ctx context.Context, boardID int) (models.StatusCounts, error)
}

// AdminStore covers the admin flag and reporting queries
type AdminStore interface {
	SetAdmin(ctx context.Context, userID string, isAdmin bool) error
	IsAdmin(ctx context.Context, userID string) (bool, error)
	UserStatistics(ctx context.Context) ([]*models.UserStats, error)
}

var _ Store = (*Repository)(nil)
