package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aoyama/task-dashboard/internal/auth"
	"github.com/aoyama/task-dashboard/internal/handlers"
	"github.com/aoyama/task-dashboard/internal/models"
	"github.com/aoyama/task-dashboard/internal/services"
	"github.com/aoyama/task-dashboard/internal/store"
)

type testServer struct {
	echo   *echo.Echo
	store  *store.MemoryStore
	tokens *auth.Manager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ms := store.NewMemoryStore()
	tokens := auth.NewManager("test-secret", time.Hour)

	e := echo.New()
	handlers.Register(e, tokens,
		handlers.NewAuthHandler(services.NewAccountService(ms, tokens)),
		handlers.NewTaskHandler(services.NewTaskService(ms)),
		handlers.NewUserHandler(services.NewProfileService(ms)),
	)

	return &testServer{echo: e, store: ms, tokens: tokens}
}

// tokenFor seeds a user and returns a valid bearer token for them.
func (ts *testServer) tokenFor(t *testing.T, userID, name, email string) string {
	t.Helper()

	err := ts.store.CreateUser(context.Background(), &models.User{
		ID: userID, Name: name, Email: email, CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	token, err := ts.tokens.Issue(userID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

func (ts *testServer) request(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)
	return rec
}

func decodeTask(t *testing.T, rec *httptest.ResponseRecorder) models.Task {
	t.Helper()
	var task models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode task response: %v", err)
	}
	return task
}

func TestTaskRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		method, path string
	}{
		{http.MethodPost, "/tasks"},
		{http.MethodGet, "/tasks"},
		{http.MethodPut, "/tasks/some-id"},
		{http.MethodDelete, "/tasks/some-id"},
		{http.MethodGet, "/users/profile"},
		{http.MethodPut, "/users/profile"},
	}
	for _, tc := range cases {
		rec := ts.request(t, tc.method, tc.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}

	rec := ts.request(t, http.MethodGet, "/tasks", "bogus-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", rec.Code)
	}
}

func TestCreateAndListTasks(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, "user-alice", "Alice", "alice@example.com")

	rec := ts.request(t, http.MethodPost, "/tasks", token, `{"title":"Buy milk"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeTask(t, rec)
	if created.Title != "Buy milk" || created.Completed {
		t.Fatalf("unexpected created task: %+v", created)
	}
	if created.OwnerID != "user-alice" {
		t.Fatalf("expected owner user-alice, got %q", created.OwnerID)
	}

	rec = ts.request(t, http.MethodGet, "/tasks", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var tasks []models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != created.ID {
		t.Fatalf("unexpected task list: %+v", tasks)
	}
}

func TestListIsEmptyArrayNotNull(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, "user-alice", "Alice", "alice@example.com")

	rec := ts.request(t, http.MethodGet, "/tasks", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array body, got %q", rec.Body.String())
	}
}

func TestCreateTaskRejectsEmptyTitle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, "user-alice", "Alice", "alice@example.com")

	rec := ts.request(t, http.MethodPost, "/tasks", token, `{"title":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestToggleFlipsServerSide(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, "user-alice", "Alice", "alice@example.com")

	rec := ts.request(t, http.MethodPost, "/tasks", token, `{"title":"Write report"}`)
	created := decodeTask(t, rec)

	// The request body is ignored; the server flips regardless.
	rec = ts.request(t, http.MethodPut, "/tasks/"+created.ID, token, `{"completed":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if toggled := decodeTask(t, rec); !toggled.Completed {
		t.Fatalf("expected toggle to complete the task")
	}
}

func TestDeleteReturnsMessage(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, "user-alice", "Alice", "alice@example.com")

	rec := ts.request(t, http.MethodPost, "/tasks", token, `{"title":"Ephemeral"}`)
	created := decodeTask(t, rec)

	rec = ts.request(t, http.MethodDelete, "/tasks/"+created.ID, token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode delete response: %v", err)
	}
	if body["message"] == "" {
		t.Fatalf("expected a message in delete response, got %q", rec.Body.String())
	}

	rec = ts.request(t, http.MethodDelete, "/tasks/"+created.ID, token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for second delete, got %d", rec.Code)
	}
}

func TestOtherOwnersTaskRespondsNotFound(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.tokenFor(t, "user-alice", "Alice", "alice@example.com")
	bobToken := ts.tokenFor(t, "user-bob", "Bob", "bob@example.com")

	rec := ts.request(t, http.MethodPost, "/tasks", aliceToken, `{"title":"Private"}`)
	created := decodeTask(t, rec)

	// Bob must not learn the task exists: same status as a missing id.
	rec = ts.request(t, http.MethodPut, "/tasks/"+created.ID, bobToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign toggle, got %d", rec.Code)
	}
	rec = ts.request(t, http.MethodDelete, "/tasks/"+created.ID, bobToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign delete, got %d", rec.Code)
	}

	rec = ts.request(t, http.MethodGet, "/tasks", bobToken, "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected bob to see no tasks, got %s", rec.Body.String())
	}

	// Alice's task survived both attempts.
	rec = ts.request(t, http.MethodGet, "/tasks", aliceToken, "")
	var tasks []models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Completed {
		t.Fatalf("expected alice's task untouched, got %+v", tasks)
	}
}
