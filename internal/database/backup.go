package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// backupTimestamp is the layout of the timestamp embedded in backup filenames
const backupTimestamp = "20060102_150405"

// Backup writes an online, point-in-time copy of the database to a
// timestamped file inside backupDir, creating the directory if absent.
// VACUUM INTO produces a consistent snapshot without blocking writers in WAL
// mode. Returns the path of the file it wrote.
func Backup(ctx context.Context, db *sql.DB, dbPath, backupDir string) (string, error) {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	ext := filepath.Ext(dbPath)
	if ext == "" {
		ext = ".db"
	}
	base := filepath.Base(dbPath)
	base = base[:len(base)-len(filepath.Ext(base))]
	dest := filepath.Join(backupDir,
		fmt.Sprintf("%s_%s%s", base, time.Now().Format(backupTimestamp), ext))

	if _, err := db.ExecContext(ctx, `VACUUM INTO ?`, dest); err != nil {
		return "", fmt.Errorf("failed to back up database to %s: %w", dest, err)
	}
	return dest, nil
}
