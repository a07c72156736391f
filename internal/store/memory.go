package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aoyama/task-dashboard/internal/apperr"
	"github.com/aoyama/task-dashboard/internal/models"
)

// MemoryStore is an in-memory implementation of TaskStore and UserStore.
// It backs tests and local development when no Firestore project is
// configured. All data is lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks []*models.Task // creation order
	users map[string]*models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*models.User),
	}
}

func (ms *MemoryStore) Create(ctx context.Context, ownerID, title string) (*models.Task, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	task := &models.Task{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     title,
		Completed: false,
		CreatedAt: time.Now(),
	}
	ms.tasks = append(ms.tasks, task)

	copied := *task
	return &copied, nil
}

func (ms *MemoryStore) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	// Newest first, matching the Firestore ordering.
	var tasks []*models.Task
	for i := len(ms.tasks) - 1; i >= 0; i-- {
		if ms.tasks[i].OwnerID == ownerID {
			copied := *ms.tasks[i]
			tasks = append(tasks, &copied)
		}
	}
	return tasks, nil
}

func (ms *MemoryStore) FindByID(ctx context.Context, taskID string) (*models.Task, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	for _, t := range ms.tasks {
		if t.ID == taskID {
			copied := *t
			return &copied, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (ms *MemoryStore) Update(ctx context.Context, taskID string, patch TaskPatch) (*models.Task, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, t := range ms.tasks {
		if t.ID == taskID {
			if patch.Completed != nil {
				t.Completed = *patch.Completed
			}
			copied := *t
			return &copied, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (ms *MemoryStore) DeleteByID(ctx context.Context, taskID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for i, t := range ms.tasks {
		if t.ID == taskID {
			ms.tasks = append(ms.tasks[:i], ms.tasks[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (ms *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	copied := *user
	ms.users[user.ID] = &copied
	return nil
}

func (ms *MemoryStore) FindUserByID(ctx context.Context, userID string) (*models.User, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	user, ok := ms.users[userID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (ms *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	for _, user := range ms.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (ms *MemoryStore) UpdateUser(ctx context.Context, userID string, patch UserPatch) (*models.User, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	user, ok := ms.users[userID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	copied := *user
	return &copied, nil
}
