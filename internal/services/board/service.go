// Package board implements the board operations of the task-tracking core.
// Every mutating or listing call passes through the authorization policy
// before it touches storage.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"kanbot/internal/database"
	"kanbot/internal/models"
	"kanbot/internal/policy"
)

// Service defines all board-related business operations
type Service interface {
	// Read operations
	GetBoard(ctx context.Context, requester string, boardID int) (*models.Board, error)
	ListBoards(ctx context.Context, requester string) ([]*models.Board, error)

	// Write operations
	CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error)
	UpdateBoard(ctx context.Context, req UpdateBoardRequest) error
	DeleteBoard(ctx context.Context, requester string, boardID int) error
}

// CreateBoardRequest encapsulates data for creating a board
type CreateBoardRequest struct {
	Requester   string
	Name        string
	Description string
	BoardType   string // defaults to personal when empty
}

// UpdateBoardRequest encapsulates data for updating a board
type UpdateBoardRequest struct {
	Requester string
	BoardID   int
	Update    models.BoardUpdate
}

// service implements Service
type service struct {
	repo database.Store
}

// NewService creates a new board service
func NewService(repo database.Store) Service {
	return &service{repo: repo}
}

// CreateBoard validates the request and writes the board. The requester
// becomes the owner.
func (s *service) CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error) {
	boardType := req.BoardType
	if boardType == "" {
		boardType = models.BoardTypePersonal
	}

	board, err := s.repo.CreateBoard(ctx, req.Name, req.Description, boardType, req.Requester)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return board, nil
}

// GetBoard loads a board after checking read access. A missing board and a
// denied read are indistinguishable to the caller.
func (s *service) GetBoard(ctx context.Context, requester string, boardID int) (*models.Board, error) {
	if boardID <= 0 {
		return nil, ErrInvalidBoardID
	}

	board, err := s.repo.GetBoardByID(ctx, boardID)
	if errors.Is(err, database.ErrNotFound) {
		slog.Info("board not found", "requester", requester, "board_id", boardID)
		return nil, ErrAccessDenied
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load board %d: %w", boardID, err)
	}

	if !policy.CanReadBoard(requester, board) {
		slog.Warn("board read denied", "requester", requester, "board_id", boardID, "owner", board.OwnerID)
		return nil, ErrAccessDenied
	}
	return board, nil
}

// ListBoards returns the boards visible to requester: their own plus every
// public board.
func (s *service) ListBoards(ctx context.Context, requester string) ([]*models.Board, error) {
	boards, err := s.repo.ListBoardsForUser(ctx, requester)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// UpdateBoard loads the current owner and visibility, checks write access,
// then applies the update. Validation of the fields themselves happens in
// storage before any statement runs.
func (s *service) UpdateBoard(ctx context.Context, req UpdateBoardRequest) error {
	board, err := s.authorizeWrite(ctx, req.Requester, req.BoardID, "update")
	if err != nil {
		return err
	}

	if err := s.repo.UpdateBoard(ctx, board.ID, req.Update); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// Deleted between the check and the write
			return ErrAccessDenied
		}
		return fmt.Errorf("failed to update board %d: %w", board.ID, err)
	}
	return nil
}

// DeleteBoard removes a board and, by cascade, every task on it
func (s *service) DeleteBoard(ctx context.Context, requester string, boardID int) error {
	board, err := s.authorizeWrite(ctx, requester, boardID, "delete")
	if err != nil {
		return err
	}

	if err := s.repo.DeleteBoard(ctx, board.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("failed to delete board %d: %w", board.ID, err)
	}
	return nil
}

// authorizeWrite loads the board and evaluates write policy before any
// mutating statement executes
func (s *service) authorizeWrite(ctx context.Context, requester string, boardID int, op string) (*models.Board, error) {
	if boardID <= 0 {
		return nil, ErrInvalidBoardID
	}

	board, err := s.repo.GetBoardByID(ctx, boardID)
	if errors.Is(err, database.ErrNotFound) {
		slog.Info("board not found", "requester", requester, "board_id", boardID, "op", op)
		return nil, ErrAccessDenied
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load board %d: %w", boardID, err)
	}

	isAdmin := false
	if policy.NeedsAdminLookup(requester, board) {
		isAdmin, err = s.repo.IsAdmin(ctx, requester)
		if err != nil {
			return nil, fmt.Errorf("failed to look up admin flag: %w", err)
		}
	}

	if !policy.CanWriteBoard(requester, board, isAdmin) {
		slog.Warn("board write denied",
			"requester", requester, "board_id", boardID, "owner", board.OwnerID, "op", op)
		return nil, ErrAccessDenied
	}
	return board, nil
}
