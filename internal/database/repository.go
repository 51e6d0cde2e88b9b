package database

import (
	"context"
	"database/sql"
	"time"

	"kanbot/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes the entity repositories using struct embedding.
type Repository struct {
	*BoardRepo
	*TaskRepo
	*AdminRepo

	db   *sql.DB
	path string
}

// NewRepository creates a new Repository wrapping the given database
// connection. path is the on-disk location of the store, used for backups.
func NewRepository(db *sql.DB, path string) *Repository {
	return &Repository{
		BoardRepo: &BoardRepo{db: db},
		TaskRepo:  &TaskRepo{db: db},
		AdminRepo: &AdminRepo{db: db},
		db:        db,
		path:      path,
	}
}

// Wrapper methods resolving the embedded repositories into one flat API

func (r *Repository) CreateBoard(ctx context.Context, name, description, boardType, ownerID string) (*models.Board, error) {
	return r.BoardRepo.Create(ctx, name, description, boardType, ownerID)
}

func (r *Repository) GetBoardByID(ctx context.Context, id int) (*models.Board, error) {
	return r.BoardRepo.GetByID(ctx, id)
}

func (r *Repository) ListBoardsForUser(ctx context.Context, userID string) ([]*models.Board, error) {
	return r.BoardRepo.ListForUser(ctx, userID)
}

func (r *Repository) ListAllBoards(ctx context.Context) ([]*models.Board, error) {
	return r.BoardRepo.ListAll(ctx)
}

func (r *Repository) UpdateBoard(ctx context.Context, id int, upd models.BoardUpdate) error {
	return r.BoardRepo.Update(ctx, id, upd)
}

func (r *Repository) DeleteBoard(ctx context.Context, id int) error {
	return r.BoardRepo.Delete(ctx, id)
}

func (r *Repository) CreateTask(ctx context.Context, boardID int, userID, title, description, status string, priority int, dueDate *time.Time) (*models.Task, error) {
	return r.TaskRepo.Create(ctx, boardID, userID, title, description, status, priority, dueDate)
}

func (r *Repository) GetTaskByID(ctx context.Context, id int) (*models.Task, error) {
	return r.TaskRepo.GetByID(ctx, id)
}

func (r *Repository) ListTasksByBoard(ctx context.Context, boardID int, opts ListOptions) ([]*models.Task, error) {
	return r.TaskRepo.ListByBoard(ctx, boardID, opts)
}

func (r *Repository) UpdateTask(ctx context.Context, id int, upd models.TaskUpdate) error {
	return r.TaskRepo.Update(ctx, id, upd)
}

func (r *Repository) DeleteTask(ctx context.Context, id int) error {
	return r.TaskRepo.Delete(ctx, id)
}

func (r *Repository) CountTasksByStatus(ctx context.Context, boardID int) (models.StatusCounts, error) {
	return r.TaskRepo.CountsByStatus(ctx, boardID)
}

// Backup copies the store to a timestamped file under backupDir
func (r *Repository) Backup(ctx context.Context, backupDir string) (string, error) {
	return Backup(ctx, r.db, r.path, backupDir)
}
