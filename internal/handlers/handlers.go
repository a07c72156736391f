// Package handlers is the HTTP translation layer: it decodes requests,
// invokes the matching service operation and encodes the result. It is the
// only place typed failures become transport statuses.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aoyama/task-dashboard/internal/apperr"
	"github.com/aoyama/task-dashboard/internal/auth"
)

// messageResponse is the generic `{message}` body used for errors and for
// delete confirmations.
type messageResponse struct {
	Message string `json:"message"`
}

// writeError maps a typed failure to its response status. A forbidden access
// is reported as 404 so that task ids cannot be probed for existence, but it
// is logged distinctly. Storage errors are never surfaced verbatim.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrForbidden):
		log.Printf("Forbidden access on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return c.JSON(http.StatusNotFound, messageResponse{Message: "Task not found"})
	case errors.Is(err, apperr.ErrNotFound):
		return c.JSON(http.StatusNotFound, messageResponse{Message: "Task not found"})
	case errors.Is(err, apperr.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, messageResponse{Message: "invalid credentials"})
	default:
		log.Printf("Internal error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Server error"})
	}
}

// actor returns the principal resolved by the auth middleware. Reaching a
// protected handler without one is a wiring bug, reported as 401.
func actor(c echo.Context) (auth.Context, error) {
	actx, ok := auth.FromEcho(c)
	if !ok {
		return auth.Context{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return actx, nil
}

// Register wires all routes onto the echo instance. Every route other than
// health and the auth endpoints requires a valid identity.
func Register(e *echo.Echo, tokens *auth.Manager, authH *AuthHandler, taskH *TaskHandler, userH *UserHandler) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.POST("/auth/register", authH.Register)
	e.POST("/auth/login", authH.Login)

	protected := tokens.Middleware()

	tasks := e.Group("/tasks", protected)
	tasks.POST("", taskH.Create)
	tasks.GET("", taskH.List)
	tasks.PUT("/:id", taskH.Toggle)
	tasks.DELETE("/:id", taskH.Delete)

	users := e.Group("/users", protected)
	users.GET("/profile", userH.GetProfile)
	users.PUT("/profile", userH.UpdateProfile)
}
