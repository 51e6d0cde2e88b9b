package models

import "time"

// AdminRole is the per-identity admin flag. It is upserted by an out-of-band
// administrative action and consulted whenever a public-board operation needs
// elevated-permission evaluation.
type AdminRole struct {
	UserID    string
	IsAdmin   bool
	CreatedAt time.Time
}

// UserStats aggregates per-identity usage for admin reporting
type UserStats struct {
	UserID         string
	PersonalBoards int
	PublicBoards   int
	TotalTasks     int
	TasksByStatus  StatusCounts
}
