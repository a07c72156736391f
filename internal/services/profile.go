package services

import (
	"context"
	"strings"

	"github.com/aoyama/task-dashboard/internal/auth"
	"github.com/aoyama/task-dashboard/internal/models"
	"github.com/aoyama/task-dashboard/internal/store"
)

// ProfileService reads and updates the principal's own profile.
type ProfileService struct {
	users store.UserStore
}

func NewProfileService(users store.UserStore) *ProfileService {
	return &ProfileService{users: users}
}

// Get returns the caller's own profile only.
func (s *ProfileService) Get(ctx context.Context, actor auth.Context) (*models.User, error) {
	return s.users.FindUserByID(ctx, actor.UserID)
}

// Update applies the fields that are present and non-empty after trimming;
// absent or empty fields are left unchanged, never cleared. Partial input is
// not an error.
func (s *ProfileService) Update(ctx context.Context, actor auth.Context, name, email string) (*models.User, error) {
	var patch store.UserPatch
	if v := strings.TrimSpace(name); v != "" {
		patch.Name = &v
	}
	if v := strings.TrimSpace(email); v != "" {
		patch.Email = &v
	}

	return s.users.UpdateUser(ctx, actor.UserID, patch)
}
