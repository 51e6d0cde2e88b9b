package database

import (
	"context"
	"testing"
)

func TestOpenPragmasSurviveUse(t *testing.T) {
	db, path := setupTestDB(t)
	repo := NewRepository(db, path)
	ctx := context.Background()

	// Churn the connection through real work before checking
	board, err := repo.CreateBoard(ctx, "Board", "", "personal", "alice")
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	if _, err := repo.CreateTask(ctx, board.ID, "alice", "T", "", "todo", 0, nil); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	var foreignKeys int
	if err := db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
		t.Fatalf("Failed to read foreign_keys pragma: %v", err)
	}
	if foreignKeys != 1 {
		t.Error("Foreign keys are not enforced on the working connection")
	}

	var busyTimeout int
	if err := db.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busyTimeout); err != nil {
		t.Fatalf("Failed to read busy_timeout pragma: %v", err)
	}
	if busyTimeout != 5000 {
		t.Errorf("Busy timeout = %d, want 5000", busyTimeout)
	}
}
