package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aoyama/task-dashboard/internal/models"
)

// Profile is the response body of a profile update.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// API is the server surface the client state depends on. State never builds
// HTTP requests itself, so tests can substitute a fake.
type API interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, title string) (models.Task, error)
	ToggleTask(ctx context.Context, taskID string) (models.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
	GetProfile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, name, email string) (Profile, error)
}

// APIError is a non-2xx server response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// HTTPClient implements API over the tracker's HTTP surface.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, title string) (models.Task, error) {
	var task models.Task
	body := map[string]string{"title": title}
	if err := c.do(ctx, http.MethodPost, "/tasks", body, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (c *HTTPClient) ToggleTask(ctx context.Context, taskID string) (models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+taskID, nil, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+taskID, nil, nil)
}

func (c *HTTPClient) GetProfile(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, name, email string) (Profile, error) {
	var profile Profile
	body := map[string]string{"name": name, "email": email}
	if err := c.do(ctx, http.MethodPut, "/users/profile", body, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// sessionPayload is the /auth response body.
type sessionPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Login exchanges credentials for a new session.
func Login(ctx context.Context, baseURL, email, password string) (Session, error) {
	c := NewHTTPClient(baseURL, "")
	var payload sessionPayload
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &payload); err != nil {
		return Session{}, err
	}
	return Session{UserID: payload.ID, Token: payload.Token, Name: payload.Name, Email: payload.Email}, nil
}

// Register creates an account and returns its first session.
func Register(ctx context.Context, baseURL, name, email, password string) (Session, error) {
	c := NewHTTPClient(baseURL, "")
	var payload sessionPayload
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &payload); err != nil {
		return Session{}, err
	}
	return Session{UserID: payload.ID, Token: payload.Token, Name: payload.Name, Email: payload.Email}, nil
}
