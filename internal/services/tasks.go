// Package services holds the business logic. TaskService is the single
// authority for task ownership: no task is ever read or mutated except
// through a principal that owns it.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aoyama/task-dashboard/internal/apperr"
	"github.com/aoyama/task-dashboard/internal/auth"
	"github.com/aoyama/task-dashboard/internal/models"
	"github.com/aoyama/task-dashboard/internal/store"
)

type Task = models.Task

// TaskService enforces ownership rules on top of the task store.
type TaskService struct {
	tasks store.TaskStore
}

func NewTaskService(tasks store.TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

// Create stores a new task owned by the principal. A title that is empty
// after trimming fails with ErrInvalidInput before any store call.
func (s *TaskService) Create(ctx context.Context, actor auth.Context, title string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrInvalidInput)
	}

	return s.tasks.Create(ctx, actor.UserID, title)
}

// List returns the principal's own tasks and nothing else.
func (s *TaskService) List(ctx context.Context, actor auth.Context) ([]*models.Task, error) {
	return s.tasks.ListByOwner(ctx, actor.UserID)
}

// Toggle flips the completion state of one of the principal's tasks and
// returns the updated task. Toggling is the only task mutation exposed.
func (s *TaskService) Toggle(ctx context.Context, actor auth.Context, taskID string) (*models.Task, error) {
	task, err := s.ownedTask(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}

	completed := !task.Completed
	return s.tasks.Update(ctx, taskID, store.TaskPatch{Completed: &completed})
}

// Delete removes one of the principal's tasks. Deleting a missing task fails
// with ErrNotFound and deleting another owner's task fails with ErrForbidden;
// neither succeeds silently.
func (s *TaskService) Delete(ctx context.Context, actor auth.Context, taskID string) error {
	if _, err := s.ownedTask(ctx, actor, taskID); err != nil {
		return err
	}

	return s.tasks.DeleteByID(ctx, taskID)
}

// ownedTask fetches a task and verifies the principal owns it. This check is
// applied uniformly to every mutation.
func (s *TaskService) ownedTask(ctx context.Context, actor auth.Context, taskID string) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != actor.UserID {
		return nil, fmt.Errorf("%w: task %s", apperr.ErrForbidden, taskID)
	}
	return task, nil
}
