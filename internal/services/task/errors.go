package task

import "errors"

// Task-related errors
var (
	ErrInvalidTaskID  = errors.New("invalid task ID")
	ErrInvalidBoardID = errors.New("invalid board ID")

	// ErrAccessDenied covers both a missing task/board and an insufficient
	// permission. Callers see one shape so they cannot probe for existence;
	// the audit log records which case it was.
	ErrAccessDenied = errors.New("task access denied")
)
