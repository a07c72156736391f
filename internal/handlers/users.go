package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aoyama/task-dashboard/internal/services"
)

// UserHandler serves the /users/profile endpoints.
type UserHandler struct {
	profile *services.ProfileService
}

func NewUserHandler(profile *services.ProfileService) *UserHandler {
	return &UserHandler{profile: profile}
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// profileResponse is the PUT /users/profile response body.
type profileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GetProfile handles GET /users/profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	actx, err := actor(c)
	if err != nil {
		return err
	}

	user, err := h.profile.Get(c.Request().Context(), actx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /users/profile. Absent or empty fields are left
// unchanged.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actx, err := actor(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}

	user, err := h.profile.Update(c.Request().Context(), actx, req.Name, req.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, profileResponse{Name: user.Name, Email: user.Email})
}
