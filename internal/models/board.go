package models

import "time"

// Board visibility kinds. A personal board is visible only to its owner,
// a public board is readable by anyone and writable by owner or admin.
const (
	BoardTypePersonal = "personal"
	BoardTypePublic   = "public"
)

// Board represents a named collection of tasks with an owner and a visibility kind
type Board struct {
	ID          int
	Name        string
	Description string
	BoardType   string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsValidBoardType reports whether t is one of the closed set of board types
func IsValidBoardType(t string) bool {
	return t == BoardTypePersonal || t == BoardTypePublic
}

// BoardUpdate enumerates the fields of a board that may be changed after
// creation. Nil fields are left untouched.
type BoardUpdate struct {
	Name        *string
	Description *string
	BoardType   *string
}

// IsEmpty reports whether the update would change nothing
func (u BoardUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.BoardType == nil
}
