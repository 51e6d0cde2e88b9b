package database

import "errors"

// Storage-level errors. Validation failures are detected before any statement
// runs so callers can tell a bad request apart from a store failure.
var (
	ErrEmptyName        = errors.New("board name cannot be empty")
	ErrEmptyTitle       = errors.New("task title cannot be empty")
	ErrInvalidBoardType = errors.New("board type must be 'personal' or 'public'")
	ErrInvalidStatus    = errors.New("status must be one of 'todo', 'doing', 'done'")
	ErrNoFields         = errors.New("no update fields provided")

	// ErrNotFound indicates that the targeted row does not exist. It also
	// covers a task insert whose board reference does not resolve.
	ErrNotFound = errors.New("record not found")
)
