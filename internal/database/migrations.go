package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// runMigrations creates the database schema and upgrades legacy installs.
// Every statement is idempotent, so running it on each start is safe.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS boards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			board_type TEXT NOT NULL CHECK(board_type IN ('personal', 'public')),
			owner_id TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create boards table: %w", err)
	}

	_, err = db.ExecContext(ctx, `
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
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS admin_roles (
			user_id TEXT PRIMARY KEY,
			is_admin BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create admin_roles table: %w", err)
	}

	if err := rebuildLegacyTaskTable(ctx, db); err != nil {
		return err
	}

	indices := []string{
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_board_id ON tasks(board_id)`,
		`CREATE INDEX IF NOT EXISTS idx_boards_owner_id ON boards(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_boards_board_type ON boards(board_type)`,
	}
	for _, stmt := range indices {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return migrateOrphanedTasks(ctx, db)
}

// rebuildLegacyTaskTable upgrades a first-generation tasks table (no board
// reference) to the current schema. The copy keeps board_id NULL so that
// migrateOrphanedTasks can assign the rows to a synthesized board.
func rebuildLegacyTaskTable(ctx context.Context, db *sql.DB) error {
	hasBoardID, err := tableHasColumn(ctx, db, "tasks", "board_id")
	if err != nil {
		return err
	}
	if hasBoardID {
		return nil
	}

	slog.Info("upgrading legacy task table")
	return withTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			CREATE TABLE tasks_new (
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
			)
		`)
		if err != nil {
			return fmt.Errorf("failed to create replacement task table: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO tasks_new (id, user_id, title, description, status, created_at, updated_at, priority, due_date)
			SELECT id, user_id, title, description, status, created_at, updated_at, priority, due_date FROM tasks
		`)
		if err != nil {
			return fmt.Errorf("failed to copy legacy tasks: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DROP TABLE tasks`); err != nil {
			return fmt.Errorf("failed to drop legacy task table: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `ALTER TABLE tasks_new RENAME TO tasks`); err != nil {
			return fmt.Errorf("failed to rename task table: %w", err)
		}
		return nil
	})
}

// migrateOrphanedTasks assigns tasks without a board reference to a default
// personal board, creating one per affected identity. It is a no-op when no
// orphans exist, so re-running it is safe.
func migrateOrphanedTasks(ctx context.Context, db *sql.DB) error {
	return withTx(ctx, db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT DISTINCT user_id FROM tasks WHERE board_id IS NULL`)
		if err != nil {
			return fmt.Errorf("failed to find orphaned tasks: %w", err)
		}
		var userIDs []string
		for rows.Next() {
			var userID string
			if err := rows.Scan(&userID); err != nil {
				closeRows(rows)
				return fmt.Errorf("failed to scan orphaned task owner: %w", err)
			}
			userIDs = append(userIDs, userID)
		}
		closeRows(rows)
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating orphaned task owners: %w", err)
		}

		for _, userID := range userIDs {
			result, err := tx.ExecContext(ctx,
				`INSERT INTO boards (name, description, board_type, owner_id)
				 VALUES (?, ?, ?, ?)`,
				"My Tasks", "Migrated from the previous schema", "personal", userID,
			)
			if err != nil {
				return fmt.Errorf("failed to create default board for %s: %w", userID, err)
			}
			boardID, err := result.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to get default board ID for %s: %w", userID, err)
			}

			_, err = tx.ExecContext(ctx,
				`UPDATE tasks SET board_id = ? WHERE user_id = ? AND board_id IS NULL`,
				boardID, userID,
			)
			if err != nil {
				return fmt.Errorf("failed to reassign tasks for %s: %w", userID, err)
			}
			slog.Info("migrated orphaned tasks", "user_id", userID, "board_id", boardID)
		}
		return nil
	})
}

// tableHasColumn reports whether the named table has the named column.
// A table that does not exist has no columns.
func tableHasColumn(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s schema: %w", table, err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var (
			cid, notnull, pk int
			name, typ        string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("failed to scan %s schema row: %w", table, err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
