// Package policy centralizes the access-decision rules so they are identical
// across every entry point. The functions are pure: callers load the entity
// attributes and the admin flag, policy only decides.
package policy

import "kanbot/internal/models"

// CanReadBoard reports whether requester may read a board and its tasks.
// Owners read their own boards; public boards are readable by anyone.
func CanReadBoard(requester string, board *models.Board) bool {
	if board.OwnerID == requester {
		return true
	}
	return board.BoardType == models.BoardTypePublic
}

// CanWriteBoard reports whether requester may modify or delete a board.
// Owners always may; on public boards the admin flag grants the same right.
// The admin override is deliberately global over public boards, a superuser
// capability rather than a per-board grant.
func CanWriteBoard(requester string, board *models.Board, isAdmin bool) bool {
	if board.OwnerID == requester {
		return true
	}
	return board.BoardType == models.BoardTypePublic && isAdmin
}

// CanWriteTask reports whether requester may modify or delete a task.
// The task's creator and the owner of its board always may; on public boards
// the admin flag grants the same right.
func CanWriteTask(requester string, task *models.Task, board *models.Board, isAdmin bool) bool {
	if task.UserID == requester {
		return true
	}
	return CanWriteBoard(requester, board, isAdmin)
}

// CanAdministrate reports whether requester may run admin-only operations
// (list all boards, user statistics, backups). Only the admin flag counts,
// ownership grants nothing here.
func CanAdministrate(isAdmin bool) bool {
	return isAdmin
}

// NeedsAdminLookup reports whether deciding write access on board can depend
// on the admin flag at all, letting callers skip the flag lookup when the
// answer cannot change the decision.
func NeedsAdminLookup(requester string, board *models.Board) bool {
	return board.OwnerID != requester && board.BoardType == models.BoardTypePublic
}
