package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const contextKey = "auth.context"

// Middleware rejects the request with 401 before any handler logic unless it
// carries a valid bearer token, and stores the resulting Context on the echo
// context for handlers to pick up via FromEcho.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "authentication required"})
			}

			actx, err := m.Verify(token)
			if err != nil {
				log.Printf("Rejected token: %v", err)
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid or expired token"})
			}

			c.Set(contextKey, actx)
			return next(c)
		}
	}
}

// FromEcho returns the principal resolved by Middleware.
func FromEcho(c echo.Context) (Context, bool) {
	actx, ok := c.Get(contextKey).(Context)
	return actx, ok
}
