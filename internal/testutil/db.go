// Package testutil provides database helpers shared by the package tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// SetupTestDB creates an in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// One connection, or each pooled connection would see its own empty
	// in-memory database
	db.SetMaxOpenConns(1)

	// Enable foreign key constraints
	_, err = db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON")
	if err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	// Run migrations inline
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// createTestSchema creates the complete database schema for testing
func createTestSchema(db *sql.DB) error {
	schema := `
	-- Boards table
	CREATE TABLE IF NOT EXISTS boards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		board_type TEXT NOT NULL CHECK(board_type IN ('personal', 'public')),
		owner_id TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Tasks table
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		board_id INTEGER REFERENCES boards(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL CHECK(status IN ('todo', 'doing', 'done')),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		priority INTEGER DEFAULT 0,
		due_date DATETIME
	);

	-- Admin flags
	CREATE TABLE IF NOT EXISTS admin_roles (
		user_id TEXT PRIMARY KEY,
		is_admin BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Indexes
	CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_board_id ON tasks(board_id);
	CREATE INDEX IF NOT EXISTS idx_boards_owner_id ON boards(owner_id);
	CREATE INDEX IF NOT EXISTS idx_boards_board_type ON boards(board_type);
	`

	_, err := db.ExecContext(context.Background(), schema)
	return err
}

// CreateTestBoard creates a test board and returns its ID
func CreateTestBoard(t *testing.T, db *sql.DB, name, boardType, ownerID string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO boards (name, description, board_type, owner_id) VALUES (?, ?, ?, ?)",
		name, "Test description", boardType, ownerID)
	if err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}
	boardID, _ := result.LastInsertId()
	return int(boardID)
}

// CreateTestTask creates a test task and returns its ID
func CreateTestTask(t *testing.T, db *sql.DB, boardID int, userID, title, status string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO tasks (board_id, user_id, title, status) VALUES (?, ?, ?, ?)",
		boardID, userID, title, status)
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	taskID, _ := result.LastInsertId()
	return int(taskID)
}

// SetTestAdmin grants or revokes the admin flag for a user
func SetTestAdmin(t *testing.T, db *sql.DB, userID string, isAdmin bool) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO admin_roles (user_id, is_admin) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET is_admin = excluded.is_admin`,
		userID, isAdmin)
	if err != nil {
		t.Fatalf("Failed to set admin flag: %v", err)
	}
}
