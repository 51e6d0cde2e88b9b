// Package admin implements the flag-gated reporting operations and the
// out-of-band admin flag itself.
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"kanbot/internal/database"
	"kanbot/internal/models"
	"kanbot/internal/policy"
)

// Service defines the admin operations
type Service interface {
	// SetAdmin upserts the admin flag. Whoever can reach this call is
	// trusted by the surrounding system; no policy check applies.
	SetAdmin(ctx context.Context, userID string, isAdmin bool) error
	IsAdmin(ctx context.Context, userID string) (bool, error)

	// Flag-gated reporting. Non-admin requesters get empty results.
	ListAllBoards(ctx context.Context, requester string) ([]*models.Board, error)
	UserStatistics(ctx context.Context, requester string) ([]*models.UserStats, error)

	// Backup copies the store to the backup directory. Flag-gated.
	Backup(ctx context.Context, requester string) (string, error)
}

// service implements Service
type service struct {
	repo      database.Store
	backupDir string
}

// NewService creates a new admin service writing backups to backupDir
func NewService(repo database.Store, backupDir string) Service {
	return &service{repo: repo, backupDir: backupDir}
}

func (s *service) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	if err := s.repo.SetAdmin(ctx, userID, isAdmin); err != nil {
		return fmt.Errorf("failed to set admin flag: %w", err)
	}
	slog.Info("admin flag changed", "user_id", userID, "is_admin", isAdmin)
	return nil
}

func (s *service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return s.repo.IsAdmin(ctx, userID)
}

// ListAllBoards returns every board for an admin requester, an empty slice
// for anyone else.
func (s *service) ListAllBoards(ctx context.Context, requester string) ([]*models.Board, error) {
	if !s.gate(ctx, requester, "list all boards") {
		return []*models.Board{}, nil
	}

	boards, err := s.repo.ListAllBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list all boards: %w", err)
	}
	return boards, nil
}

// UserStatistics returns per-identity usage aggregates for an admin
// requester, an empty slice for anyone else.
func (s *service) UserStatistics(ctx context.Context, requester string) ([]*models.UserStats, error) {
	if !s.gate(ctx, requester, "user statistics") {
		return []*models.UserStats{}, nil
	}

	stats, err := s.repo.UserStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user statistics: %w", err)
	}
	return stats, nil
}

// Backup writes a point-in-time copy of the store and returns its path
func (s *service) Backup(ctx context.Context, requester string) (string, error) {
	if !s.gate(ctx, requester, "backup") {
		return "", ErrAccessDenied
	}

	path, err := s.repo.Backup(ctx, s.backupDir)
	if err != nil {
		slog.Error("backup failed", "requester", requester, "error", err)
		return "", fmt.Errorf("failed to back up database: %w", err)
	}
	slog.Info("backup written", "requester", requester, "path", path)
	return path, nil
}

// gate evaluates the admin-only policy, treating flag lookup failures as a
// denial
func (s *service) gate(ctx context.Context, requester, op string) bool {
	isAdmin, err := s.repo.IsAdmin(ctx, requester)
	if err != nil {
		slog.Error("failed to look up admin flag", "requester", requester, "op", op, "error", err)
		return false
	}
	if !policy.CanAdministrate(isAdmin) {
		slog.Warn("admin operation denied", "requester", requester, "op", op)
		return false
	}
	return true
}
