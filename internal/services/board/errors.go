package board

import "errors"

// Board-related errors
var (
	ErrInvalidBoardID = errors.New("invalid board ID")

	// ErrAccessDenied covers both a missing board and an insufficient
	// permission. Callers see one shape so they cannot probe for existence;
	// the audit log records which case it was.
	ErrAccessDenied = errors.New("board access denied")
)
