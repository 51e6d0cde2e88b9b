package models

import "time"

// Task statuses. The set is closed: every task is in exactly one of these
// states and any state may transition to any other.
const (
	StatusTodo  = "todo"
	StatusDoing = "doing"
	StatusDone  = "done"
)

// Statuses lists the valid task statuses in workflow order
var Statuses = []string{StatusTodo, StatusDoing, StatusDone}

// Task represents a unit of work belonging to exactly one board
type Task struct {
	ID          int
	BoardID     int
	UserID      string
	Title       string
	Description string
	Status      string
	Priority    int
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsValidStatus reports whether s is one of the closed set of task statuses
func IsValidStatus(s string) bool {
	return s == StatusTodo || s == StatusDoing || s == StatusDone
}

// TaskUpdate enumerates the fields of a task that may be changed after
// creation. Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *int
	DueDate     *time.Time
}

// IsEmpty reports whether the update would change nothing
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil &&
		u.Priority == nil && u.DueDate == nil
}

// StatusCounts maps each status to the number of tasks currently in it.
// Every valid status is present, zero-valued when no tasks match.
type StatusCounts map[string]int

// NewStatusCounts returns a StatusCounts with every valid status zeroed
func NewStatusCounts() StatusCounts {
	counts := make(StatusCounts, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	return counts
}
