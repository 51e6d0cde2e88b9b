package database

import (
	"context"
	"errors"
	"testing"

	"kanbot/internal/models"
)

func TestBoardCreateAndGet(t *testing.T) {
	db, path := setupTestDB(t)
	repo := NewRepository(db, path)
	ctx := context.Background()

	board, err := repo.CreateBoard(ctx, "Sprint 12", "release work", "public", "alice")
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	if board.ID == 0 {
		t.Error("Board should have a valid ID")
	}
	if board.CreatedAt.IsZero() || board.UpdatedAt.IsZero() {
		t.Error("Board timestamps should be populated")
	}

	got, err := repo.GetBoardByID(ctx, board.ID)
	if err != nil {
		t.Fatalf("Failed to get board: %v", err)
	}
	if got.Name != "Sprint 12" || got.Description != "release work" ||
		got.BoardType != "public" || got.OwnerID != "alice" {
		t.Errorf("Board round trip mismatch: %+v", got)
	}
}

func TestBoardCreateValidation(t *testing.T) {
	db, path := setupTestDB(t)
	repo := NewRepository(db, path)
	ctx := context.Background()

	if _, err := repo.CreateBoard(ctx, "   ", "", "personal", "alice"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Whitespace name error = %v, want ErrEmptyName", err)
	}
	if _, err := repo.CreateBoard(ctx, "Board", "", "secret", "alice"); !errors.Is(err, ErrInvalidBoardType) {
		t.Errorf("Bad board type error = %v, want ErrInvalidBoardType", err)
	}

	// Neither attempt may have left a row behind
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM boards`).Scan(&count); err != nil {
		t.Fatalf("Failed to count boards: %v", err)
	}
	if count != 0 {
		t.Errorf("Board count after rejected creates = %d, want 0", count)
	}
}

func TestBoardListForUser(t *testing.T) {
	db, path := setupTestDB(t)
	repo := NewRepository(db, path)
	ctx := context.Background()

	if _, err := repo.CreateBoard(ctx, "Alice private", "", "personal", "alice"); err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	if _, err := repo.CreateBoard(ctx, "Alice public", "", "public", "alice"); err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	if _, err := repo.CreateBoard(ctx, "Bob private", "", "personal", "bob"); err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	boards, err := repo.ListBoardsForUser(ctx, "bob")
	if err != nil {
		t.Fatalf("Failed to list boards: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("Bob sees %d boards, want 2 (own + public)", len(boards))
	}
	for _, b := range boards {
		if b.OwnerID != "bob" && b.BoardType != models.BoardTypePublic {
			t.Errorf("Bob should not see %q", b.Name)
		}
	}
}

func TestBoardUpdate(t *testing.T) {
	db, path := setupTestDB(t)
	repo := NewRepository(db, path)
	ctx := context.Background()

	board, err := repo.CreateBoard(ctx, "Old name", "", "personal", "alice")
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	if err := repo.UpdateBoard(ctx, board.ID, models.BoardUpdate{}); !errors.Is(err, ErrNoFields) {
		t.Errorf("Empty update error = %v, want ErrNoFields", err)
	}

	newName := "New name"
	public := models.BoardTypePublic
	if err := repo.UpdateBoard(ctx, board.ID, models.BoardUpdate{Name: &newName, BoardType: &public}); err != nil {
		t.Fatalf("Failed to update board: %v", err)
	}

	got, err := repo.GetBoardByID(ctx, board.ID)
	if err != nil {
		t.Fatalf("Failed to get board: %v", err)
	}
	if got.Name != "New name" || got.BoardType != models.BoardTypePublic {
		t.Errorf("Update not applied: %+v", got)
	}

	if err := repo.UpdateBoard(ctx, 9999, models.BoardUpdate{Name: &newName}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Missing board update error = %v, want ErrNotFound", err)
	}
}

// TestBoardDeleteCascades verifies that deleting a board removes every task
// whose board reference is that board
func TestBoardDeleteCascades(t *testing.T) {
	db, path := setupTestDB(t)
	repo := NewRepository(db, path)
	ctx := context.Background()

	board, err := repo.CreateBoard(ctx, "Doomed", "", "personal", "alice")
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	keep, err := repo.CreateBoard(ctx, "Kept", "", "personal", "alice")
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	for _, title := range []string{"one", "two", "three"} {
		if _, err := repo.CreateTask(ctx, board.ID, "alice", title, "", "todo", 0, nil); err != nil {
			t.Fatalf("Failed to create task: %v", err)
		}
	}
	survivor, err := repo.CreateTask(ctx, keep.ID, "alice", "survivor", "", "todo", 0, nil)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	if err := repo.DeleteBoard(ctx, board.ID); err != nil {
		t.Fatalf("Failed to delete board: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE board_id = ?`, board.ID).Scan(&count); err != nil {
		t.Fatalf("Failed to count tasks: %v", err)
	}
	if count != 0 {
		t.Errorf("Tasks left on deleted board = %d, want 0", count)
	}

	if _, err := repo.GetTaskByID(ctx, survivor.ID); err != nil {
		t.Errorf("Task on surviving board should remain: %v", err)
	}

	if err := repo.DeleteBoard(ctx, board.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Second delete error = %v, want ErrNotFound", err)
	}
}
