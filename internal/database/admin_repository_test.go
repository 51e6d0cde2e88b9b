package database

import (
	"context"
	"testing"

	"kanbot/internal/models"
)

func TestAdminFlagUpsert(t *testing.T) {
	db, path := setupTestDB(t)
	repo := NewRepository(db, path)
	ctx := context.Background()

	isAdmin, err := repo.IsAdmin(ctx, "alice")
	if err != nil {
		t.Fatalf("Failed to look up admin flag: %v", err)
	}
	if isAdmin {
		t.Error("Unknown identity should not be admin")
	}

	if err := repo.SetAdmin(ctx, "alice", true); err != nil {
		t.Fatalf("Failed to grant admin: %v", err)
	}
	isAdmin, err = repo.IsAdmin(ctx, "alice")
	if err != nil {
		t.Fatalf("Failed to look up admin flag: %v", err)
	}
	if !isAdmin {
		t.Error("Granted identity should be admin")
	}

	// Second call is an update, not a conflict
	if err := repo.SetAdmin(ctx, "alice", false); err != nil {
		t.Fatalf("Failed to revoke admin: %v", err)
	}
	isAdmin, err = repo.IsAdmin(ctx, "alice")
	if err != nil {
		t.Fatalf("Failed to look up admin flag: %v", err)
	}
	if isAdmin {
		t.Error("Revoked identity should not be admin")
	}
}

func TestUserStatistics(t *testing.T) {
	db, path := setupTestDB(t)
	repo := NewRepository(db, path)
	ctx := context.Background()

	personal, err := repo.CreateBoard(ctx, "Alice personal", "", "personal", "alice")
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	public, err := repo.CreateBoard(ctx, "Shared", "", "public", "alice")
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	for _, status := range []string{"todo", "todo", "done"} {
		if _, err := repo.CreateTask(ctx, personal.ID, "alice", "T", "", status, 0, nil); err != nil {
			t.Fatalf("Failed to create task: %v", err)
		}
	}
	// bob owns no boards but has a task on the shared board
	if _, err := repo.CreateTask(ctx, public.ID, "bob", "T", "", "doing", 0, nil); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	stats, err := repo.UserStatistics(ctx)
	if err != nil {
		t.Fatalf("Failed to compute statistics: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Stats count = %d, want 2", len(stats))
	}

	alice, bob := stats[0], stats[1]
	if alice.UserID != "alice" || bob.UserID != "bob" {
		t.Fatalf("Stats not sorted by user: %s, %s", alice.UserID, bob.UserID)
	}
	if alice.PersonalBoards != 1 || alice.PublicBoards != 1 || alice.TotalTasks != 3 {
		t.Errorf("Alice stats = %+v", alice)
	}
	if alice.TasksByStatus[models.StatusTodo] != 2 || alice.TasksByStatus[models.StatusDone] != 1 {
		t.Errorf("Alice task breakdown = %v", alice.TasksByStatus)
	}
	if bob.PersonalBoards != 0 || bob.PublicBoards != 0 || bob.TotalTasks != 1 {
		t.Errorf("Bob stats = %+v", bob)
	}
	if bob.TasksByStatus[models.StatusDoing] != 1 {
		t.Errorf("Bob task breakdown = %v", bob.TasksByStatus)
	}
}
