package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aoyama/task-dashboard/internal/services"
)

// TaskHandler serves the /tasks endpoints.
type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type createTaskRequest struct {
	Title string `json:"title"`
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c echo.Context) error {
	actx, err := actor(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}

	task, err := h.tasks.Create(c.Request().Context(), actx, req.Title)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

// List handles GET /tasks.
func (h *TaskHandler) List(c echo.Context) error {
	actx, err := actor(c)
	if err != nil {
		return err
	}

	tasks, err := h.tasks.List(c.Request().Context(), actx)
	if err != nil {
		return writeError(c, err)
	}
	if tasks == nil {
		tasks = []*services.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

// Toggle handles PUT /tasks/:id. The request body is ignored; the server
// flips the completion state.
func (h *TaskHandler) Toggle(c echo.Context) error {
	actx, err := actor(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.Toggle(c.Request().Context(), actx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /tasks/:id.
func (h *TaskHandler) Delete(c echo.Context) error {
	actx, err := actor(c)
	if err != nil {
		return err
	}

	if err := h.tasks.Delete(c.Request().Context(), actx, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Task deleted"})
}
