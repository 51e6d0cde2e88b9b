package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"kanbot/internal/models"
)

// AdminRepo handles the per-identity admin flag and admin reporting queries.
type AdminRepo struct {
	db *sql.DB
}

// SetAdmin upserts the admin flag for userID. Access control for this call
// sits with the surrounding system, not here.
func (r *AdminRepo) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admin_roles (user_id, is_admin)
		 VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET is_admin = excluded.is_admin`,
		userID, isAdmin,
	)
	if err != nil {
		return fmt.Errorf("failed to set admin flag for %s: %w", userID, err)
	}
	return nil
}

// IsAdmin reports whether userID holds the admin flag. An identity with no
// row is not an admin.
func (r *AdminRepo) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var isAdmin bool
	err := r.db.QueryRowContext(ctx,
		`SELECT is_admin FROM admin_roles WHERE user_id = ?`, userID).Scan(&isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up admin flag for %s: %w", userID, err)
	}
	return isAdmin, nil
}

// UserStatistics aggregates per-identity usage: board counts by visibility,
// task totals, and task counts by status. Identities appear when they own a
// board or created a task.
func (r *AdminRepo) UserStatistics(ctx context.Context) ([]*models.UserStats, error) {
	stats := make(map[string]*models.UserStats)
	get := func(userID string) *models.UserStats {
		s, ok := stats[userID]
		if !ok {
			s = &models.UserStats{UserID: userID, TasksByStatus: models.NewStatusCounts()}
			stats[userID] = s
		}
		return s
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT owner_id, board_type, COUNT(*) FROM boards GROUP BY owner_id, board_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to query board statistics: %w", err)
	}
	for rows.Next() {
		var ownerID, boardType string
		var count int
		if err := rows.Scan(&ownerID, &boardType, &count); err != nil {
			closeRows(rows)
			return nil, fmt.Errorf("failed to scan board statistics: %w", err)
		}
		s := get(ownerID)
		switch boardType {
		case models.BoardTypePersonal:
			s.PersonalBoards = count
		case models.BoardTypePublic:
			s.PublicBoards = count
		}
	}
	closeRows(rows)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating board statistics: %w", err)
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT user_id, status, COUNT(*) FROM tasks GROUP BY user_id, status`)
	if err != nil {
		return nil, fmt.Errorf("failed to query task statistics: %w", err)
	}
	for rows.Next() {
		var userID, status string
		var count int
		if err := rows.Scan(&userID, &status, &count); err != nil {
			closeRows(rows)
			return nil, fmt.Errorf("failed to scan task statistics: %w", err)
		}
		s := get(userID)
		s.TasksByStatus[status] = count
		s.TotalTasks += count
	}
	closeRows(rows)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task statistics: %w", err)
	}

	result := make([]*models.UserStats, 0, len(stats))
	for _, s := range stats {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}
