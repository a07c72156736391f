// Package client holds the client side of the tracker: the session
// lifecycle, the HTTP API client and the local mirror of server state with
// its derived views.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// AppName is the client configuration directory name.
const AppName = "task-dashboard"

const sessionFile = "session.json"

// Session is the durable identity record created by login and destroyed by
// logout. Every client operation carries it explicitly; nothing reads
// ambient state.
type Session struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// SessionStore persists the session across invocations.
type SessionStore interface {
	// Load returns the stored session, or ok=false if none exists.
	Load() (Session, bool, error)
	Save(Session) error
	Clear() error
}

// FileSessionStore keeps the session as a JSON file in the config directory.
type FileSessionStore struct {
	dir string
}

// NewFileSessionStore creates a store rooted at dir. If dir is empty the
// default config directory is used (XDG_CONFIG_HOME or $HOME/.config).
func NewFileSessionStore(dir string) *FileSessionStore {
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &FileSessionStore{dir: dir}
}

// DefaultConfigDir returns the default client configuration directory.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (s *FileSessionStore) path() string {
	return filepath.Join(s.dir, sessionFile)
}

func (s *FileSessionStore) Load() (Session, bool, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, false, fmt.Errorf("failed to parse session: %w", err)
	}
	return sess, true, nil
}

func (s *FileSessionStore) Save(sess Session) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (s *FileSessionStore) Clear() error {
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
