package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/aoyama/task-dashboard/internal/apperr"
	"github.com/aoyama/task-dashboard/internal/models"
)

// Filter is the task status filter applied to the mirror.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// State is the client's local mirror of server-held tasks and profile. It
// only ever reflects confirmed server state: each mutation is applied to the
// mirror after the server accepts it, and never on failure.
type State struct {
	api      API
	sessions SessionStore
	session  Session

	Tasks   []models.Task
	Profile models.User

	// Transient UI inputs feeding the derived view.
	Input        string
	SearchTerm   string
	FilterStatus Filter

	loaded bool
}

// NewState creates an empty mirror for the given session. It holds no data
// until Load succeeds.
func NewState(api API, sessions SessionStore, session Session) *State {
	return &State{
		api:          api,
		sessions:     sessions,
		session:      session,
		FilterStatus: FilterAll,
	}
}

// Loaded reports whether the initial fetch has completed. Until then views
// should render an empty/loading state.
func (s *State) Loaded() bool {
	return s.loaded
}

// Session returns the session this mirror belongs to.
func (s *State) Session() Session {
	return s.session
}

// Load performs the initial fetch of profile and task list. The mirror is
// populated only once both resolve.
func (s *State) Load(ctx context.Context) error {
	profile, err := s.api.GetProfile(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch tasks: %w", err)
	}

	s.Profile = profile
	s.Tasks = tasks
	s.loaded = true
	return nil
}

// Refresh re-syncs the task list on demand. The mirror is not tied to any
// visual state; this is the only cache-invalidation policy.
func (s *State) Refresh(ctx context.Context) error {
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh tasks: %w", err)
	}
	s.Tasks = tasks
	return nil
}

// AddTask creates a task and prepends the server's task to the mirror,
// clearing the input buffer. A title that is empty after trimming is a
// silent no-op. Returns whether a task was added.
func (s *State) AddTask(ctx context.Context, title string) (bool, error) {
	if strings.TrimSpace(title) == "" {
		return false, nil
	}

	task, err := s.api.CreateTask(ctx, title)
	if err != nil {
		return false, err
	}

	s.Tasks = append([]models.Task{task}, s.Tasks...)
	s.Input = ""
	return true, nil
}

// ToggleTask flips a task's completion on the server and replaces the
// matching mirror entry with the server's task, which is authoritative for
// the new completed value.
func (s *State) ToggleTask(ctx context.Context, taskID string) error {
	task, err := s.api.ToggleTask(ctx, taskID)
	if err != nil {
		return err
	}

	for i := range s.Tasks {
		if s.Tasks[i].ID == task.ID {
			s.Tasks[i] = task
			break
		}
	}
	return nil
}

// RemoveTask deletes a task on the server and drops the matching mirror
// entry.
func (s *State) RemoveTask(ctx context.Context, taskID string) error {
	if err := s.api.DeleteTask(ctx, taskID); err != nil {
		return err
	}

	kept := s.Tasks[:0]
	for _, t := range s.Tasks {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	s.Tasks = kept
	return nil
}

// UpdateProfile validates locally, then updates the server and the durable
// session record. An empty name or email fails before any network call.
func (s *State) UpdateProfile(ctx context.Context, name, email string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return fmt.Errorf("%w: name and email cannot be empty", apperr.ErrInvalidInput)
	}

	profile, err := s.api.UpdateProfile(ctx, name, email)
	if err != nil {
		return err
	}

	s.Profile.Name = profile.Name
	s.Profile.Email = profile.Email

	s.session.Name = profile.Name
	s.session.Email = profile.Email
	if s.sessions != nil {
		if err := s.sessions.Save(s.session); err != nil {
			return fmt.Errorf("profile updated but session not persisted: %w", err)
		}
	}
	return nil
}

// Logout destroys the session and discards the mirror.
func (s *State) Logout() error {
	s.Tasks = nil
	s.Profile = models.User{}
	s.session = Session{}
	s.loaded = false

	if s.sessions != nil {
		return s.sessions.Clear()
	}
	return nil
}

// FilteredTasks derives the visible task list from the mirror and the
// current search/filter inputs.
func (s *State) FilteredTasks() []models.Task {
	return FilterTasks(s.Tasks, s.SearchTerm, s.FilterStatus)
}

// Counts returns total/completed/pending counts over the whole mirror.
func (s *State) Counts() (total, completed, pending int) {
	total = len(s.Tasks)
	for _, t := range s.Tasks {
		if t.Completed {
			completed++
		}
	}
	return total, completed, total - completed
}

// FilterTasks is the pure derived-view function: case-insensitive substring
// match on the title combined with the status filter. It never mutates its
// input.
func FilterTasks(tasks []models.Task, searchTerm string, status Filter) []models.Task {
	search := strings.ToLower(searchTerm)

	var out []models.Task
	for _, t := range tasks {
		if !strings.Contains(strings.ToLower(t.Title), search) {
			continue
		}
		switch status {
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		case FilterPending:
			if t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}
