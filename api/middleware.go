package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// userContextKey stores the resolved user on the echo context.
const userContextKey = "user"

// RequireSession resolves the session cookie to a user before letting
// the request through. An absent or invalid session redirects to the
// login page rather than serving the protected resource.
func (h *Handler) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := sessionToken(c)
		if token == "" {
			return c.Redirect(http.StatusFound, "/login")
		}

		user, err := h.svc.ResolveSession(c.Request().Context(), token)
		if err != nil {
			log.Printf("ERROR: failed to resolve session: %v", err)
			return c.Redirect(http.StatusFound, "/login")
		}
		if user == nil {
			return c.Redirect(http.StatusFound, "/login")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}
