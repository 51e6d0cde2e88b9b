package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"kanbot/internal/models"
)

// BoardRepo handles all board-related database operations.
type BoardRepo struct {
	db *sql.DB
}

const boardColumns = `id, name, description, board_type, owner_id, created_at, updated_at`

func scanBoard(row interface{ Scan(...any) error }) (*models.Board, error) {
	board := &models.Board{}
	var description sql.NullString
	err := row.Scan(
		&board.ID, &board.Name, &description, &board.BoardType,
		&board.OwnerID, &board.CreatedAt, &board.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	board.Description = nullStringToString(description)
	return board, nil
}

// Create inserts a new board owned by ownerID and returns the stored row.
// The name and board type are validated before any statement runs.
func (r *BoardRepo) Create(ctx context.Context, name, description, boardType, ownerID string) (*models.Board, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if !models.IsValidBoardType(boardType) {
		return nil, ErrInvalidBoardType
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO boards (name, description, board_type, owner_id)
		 VALUES (?, ?, ?, ?)`,
		name, description, boardType, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert board '%s': %w", name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get board ID after insert: %w", err)
	}

	// Retrieve the created board to get timestamps
	board, err := scanBoard(r.db.QueryRowContext(ctx,
		`SELECT `+boardColumns+` FROM boards WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to read back board %d: %w", id, err)
	}
	return board, nil
}

// GetByID retrieves a board by its ID
func (r *BoardRepo) GetByID(ctx context.Context, id int) (*models.Board, error) {
	board, err := scanBoard(r.db.QueryRowContext(ctx,
		`SELECT `+boardColumns+` FROM boards WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board %d: %w", id, err)
	}
	return board, nil
}

// ListForUser retrieves the boards visible to userID: every board they own
// plus every public board.
func (r *BoardRepo) ListForUser(ctx context.Context, userID string) ([]*models.Board, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+boardColumns+` FROM boards
		 WHERE owner_id = ? OR board_type = ?
		 ORDER BY created_at`,
		userID, models.BoardTypePublic,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards for %s: %w", userID, err)
	}
	defer closeRows(rows)

	return collectBoards(rows)
}

// ListAll retrieves every board ordered by ID. Admin reporting only.
func (r *BoardRepo) ListAll(ctx context.Context) ([]*models.Board, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+boardColumns+` FROM boards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all boards: %w", err)
	}
	defer closeRows(rows)

	return collectBoards(rows)
}

func collectBoards(rows *sql.Rows) ([]*models.Board, error) {
	boards := make([]*models.Board, 0, 10)
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan board row: %w", err)
		}
		boards = append(boards, board)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating board rows: %w", err)
	}
	return boards, nil
}

// Update applies the set fields of upd to the board and refreshes its
// updated timestamp. An empty update or an unknown board ID is a failure.
func (r *BoardRepo) Update(ctx context.Context, id int, upd models.BoardUpdate) error {
	if upd.IsEmpty() {
		return ErrNoFields
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return ErrEmptyName
	}
	if upd.BoardType != nil && !models.IsValidBoardType(*upd.BoardType) {
		return ErrInvalidBoardType
	}

	assignments := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if upd.Name != nil {
		assignments = append(assignments, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		assignments = append(assignments, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.BoardType != nil {
		assignments = append(assignments, "board_type = ?")
		args = append(args, *upd.BoardType)
	}
	assignments = append(assignments, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	result, err := r.db.ExecContext(ctx,
		`UPDATE boards SET `+strings.Join(assignments, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update board %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check board %d update: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a board and every task on it in a single transaction.
// The foreign key cascade covers the tasks; the explicit delete keeps the
// behavior correct even on a handle where foreign_keys is off.
func (r *BoardRepo) Delete(ctx context.Context, id int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE board_id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete tasks for board %d: %w", id, err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete board %d: %w", id, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check board %d deletion: %w", id, err)
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
