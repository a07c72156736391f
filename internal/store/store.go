// Package store provides owner-scoped persistence for tasks and users.
// Callers perform ownership checks; the store only guarantees record-level
// CRUD and query-by-owner.
package store

import (
	"context"

	"github.com/aoyama/task-dashboard/internal/models"
)

// TaskPatch describes a partial task update. Nil fields are left unchanged.
// Toggling completion is the only mutation the system exposes, so the patch
// surface is deliberately this small.
type TaskPatch struct {
	Completed *bool
}

// UserPatch describes a partial profile update. Nil fields are left unchanged.
type UserPatch struct {
	Name  *string
	Email *string
}

// TaskStore is the document-store contract for tasks.
type TaskStore interface {
	// Create stores a new task for ownerID. The title must already be
	// validated by the caller.
	Create(ctx context.Context, ownerID, title string) (*models.Task, error)

	// ListByOwner returns ownerID's tasks, newest first. The order is stable
	// across repeated reads absent mutation.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)

	// FindByID returns apperr.ErrNotFound if no such task exists.
	FindByID(ctx context.Context, taskID string) (*models.Task, error)

	// Update applies the patch and returns the updated task.
	Update(ctx context.Context, taskID string, patch TaskPatch) (*models.Task, error)

	// DeleteByID returns apperr.ErrNotFound if no such task exists.
	DeleteByID(ctx context.Context, taskID string) error
}

// UserStore is the document-store contract for user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, userID string) (*models.User, error)
	// FindUserByEmail returns apperr.ErrNotFound if no account uses the email.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, userID string, patch UserPatch) (*models.User, error)
}
