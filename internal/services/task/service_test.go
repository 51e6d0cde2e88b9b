package task

import (
	"context"
	"errors"
	"testing"

	"kanbot/internal/database"
	"kanbot/internal/models"
	"kanbot/internal/testutil"
)

func setupService(t *testing.T) (Service, *database.Repository) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db, "")
	var store database.Store = repo
	return NewService(store), repo
}

func mustBoard(t *testing.T, repo *database.Repository, name, boardType, owner string) *models.Board {
	t.Helper()
	board, err := repo.CreateBoard(context.Background(), name, "", boardType, owner)
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	return board
}

func TestCreateTaskOnReadableBoard(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	public := mustBoard(t, repo, "Shared", "public", "alice")
	personal := mustBoard(t, repo, "Private", "personal", "alice")

	task, err := svc.CreateTask(ctx, CreateTaskRequest{
		Requester: "bob", BoardID: public.ID, Title: "T", Priority: 2,
	})
	if err != nil {
		t.Fatalf("Failed to create task on public board: %v", err)
	}
	if task.UserID != "bob" {
		t.Errorf("Task creator = %q, want bob", task.UserID)
	}
	if task.Status != models.StatusTodo {
		t.Errorf("Default status = %q, want todo", task.Status)
	}

	if _, err := svc.CreateTask(ctx, CreateTaskRequest{
		Requester: "bob", BoardID: personal.ID, Title: "T",
	}); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("Create on hidden board error = %v, want ErrAccessDenied", err)
	}
	if _, err := svc.CreateTask(ctx, CreateTaskRequest{
		Requester: "bob", BoardID: 9999, Title: "T",
	}); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("Create on missing board error = %v, want ErrAccessDenied", err)
	}
}

func TestListTasksDenialYieldsEmpty(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	personal := mustBoard(t, repo, "Private", "personal", "alice")
	if _, err := repo.CreateTask(ctx, personal.ID, "alice", "T", "", "todo", 0, nil); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	tasks, err := svc.ListTasks(ctx, "bob", personal.ID, database.ListOptions{})
	if err != nil {
		t.Fatalf("Denied list returned error: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Denied list returned %d tasks, want 0", len(tasks))
	}

	// A missing board reads the same way
	tasks, err = svc.ListTasks(ctx, "bob", 9999, database.ListOptions{})
	if err != nil {
		t.Fatalf("Missing-board list returned error: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Missing-board list returned %d tasks, want 0", len(tasks))
	}

	tasks, err = svc.ListTasks(ctx, "alice", personal.ID, database.ListOptions{})
	if err != nil {
		t.Fatalf("Owner list failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("Owner list returned %d tasks, want 1", len(tasks))
	}
}

func TestCountsByStatusDenialYieldsZero(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	personal := mustBoard(t, repo, "Private", "personal", "alice")
	if _, err := repo.CreateTask(ctx, personal.ID, "alice", "T", "", "done", 0, nil); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	counts, err := svc.CountsByStatus(ctx, "bob", personal.ID)
	if err != nil {
		t.Fatalf("Denied counts returned error: %v", err)
	}
	for _, status := range models.Statuses {
		if counts[status] != 0 {
			t.Errorf("Denied counts[%s] = %d, want 0", status, counts[status])
		}
	}

	counts, err = svc.CountsByStatus(ctx, "alice", personal.ID)
	if err != nil {
		t.Fatalf("Owner counts failed: %v", err)
	}
	if counts[models.StatusDone] != 1 {
		t.Errorf("Owner counts[done] = %d, want 1", counts[models.StatusDone])
	}
}

func TestUpdateTaskAuthorization(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	public := mustBoard(t, repo, "Shared", "public", "alice")
	personal := mustBoard(t, repo, "Private", "personal", "alice")
	if err := repo.SetAdmin(ctx, "mallory", true); err != nil {
		t.Fatalf("Failed to grant admin: %v", err)
	}

	onPublic, err := repo.CreateTask(ctx, public.ID, "uma", "U's task", "", "todo", 0, nil)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	onPersonal, err := repo.CreateTask(ctx, personal.ID, "alice", "A's task", "", "todo", 0, nil)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	title := "Changed"
	// Non-admin stranger cannot touch another creator's task
	if err := svc.UpdateTask(ctx, UpdateTaskRequest{
		Requester: "nina", TaskID: onPublic.ID, Update: models.TaskUpdate{Title: &title},
	}); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("Stranger update error = %v, want ErrAccessDenied", err)
	}

	// Admin can modify any task on a public board
	if err := svc.UpdateTask(ctx, UpdateTaskRequest{
		Requester: "mallory", TaskID: onPublic.ID, Update: models.TaskUpdate{Title: &title},
	}); err != nil {
		t.Errorf("Admin update on public board failed: %v", err)
	}

	// The admin flag does not reach into personal boards
	if err := svc.UpdateTask(ctx, UpdateTaskRequest{
		Requester: "mallory", TaskID: onPersonal.ID, Update: models.TaskUpdate{Title: &title},
	}); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("Admin update on personal board error = %v, want ErrAccessDenied", err)
	}

	// The creator can always modify their own task
	if err := svc.UpdateTask(ctx, UpdateTaskRequest{
		Requester: "uma", TaskID: onPublic.ID, Update: models.TaskUpdate{Title: &title},
	}); err != nil {
		t.Errorf("Creator update failed: %v", err)
	}
}

func TestSetStatusTransitions(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	board := mustBoard(t, repo, "Board", "personal", "alice")
	task, err := repo.CreateTask(ctx, board.ID, "alice", "T", "", "todo", 0, nil)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	// Transitions are unconstrained, including backwards
	for _, status := range []string{"doing", "done", "todo", "done"} {
		if err := svc.SetStatus(ctx, "alice", task.ID, status); err != nil {
			t.Fatalf("Failed to move task to %s: %v", status, err)
		}
		got, err := repo.GetTaskByID(ctx, task.ID)
		if err != nil {
			t.Fatalf("Failed to get task: %v", err)
		}
		if got.Status != status {
			t.Errorf("Status = %q, want %q", got.Status, status)
		}
	}

	if err := svc.SetStatus(ctx, "alice", task.ID, "archived"); !errors.Is(err, database.ErrInvalidStatus) {
		t.Errorf("Invalid status error = %v, want ErrInvalidStatus", err)
	}
}

func TestDeleteTaskAuthorization(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	public := mustBoard(t, repo, "Shared", "public", "alice")
	task, err := repo.CreateTask(ctx, public.ID, "uma", "T", "", "todo", 0, nil)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	if err := svc.DeleteTask(ctx, "nina", task.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("Stranger delete error = %v, want ErrAccessDenied", err)
	}

	// The board owner may remove tasks from their board
	if err := svc.DeleteTask(ctx, "alice", task.ID); err != nil {
		t.Fatalf("Board owner delete failed: %v", err)
	}
	if err := svc.DeleteTask(ctx, "alice", task.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("Delete of missing task error = %v, want ErrAccessDenied", err)
	}
}

func TestInvalidTaskID(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	if err := svc.SetStatus(ctx, "alice", 0, "done"); !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("Zero ID error = %v, want ErrInvalidTaskID", err)
	}
	if err := svc.DeleteTask(ctx, "alice", -1); !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("Negative ID error = %v, want ErrInvalidTaskID", err)
	}
}
