package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/Paul4805/AI-Dashboard-Tool/domain"
	"github.com/labstack/echo/v4"
)

// Dashboard renders the dashboard page.
// GET /
func (h *Handler) Dashboard(c echo.Context) error {
	// Re-validate even after the gate: the session may have been
	// deleted between the middleware check and rendering.
	user, err := h.svc.ResolveSession(c.Request().Context(), sessionToken(c))
	if err != nil {
		log.Printf("ERROR: failed to resolve session: %v", err)
		return c.Redirect(http.StatusFound, "/login")
	}
	if user == nil {
		h.clearSessionCookie(c)
		return c.Redirect(http.StatusFound, "/login")
	}

	return renderPage(c, http.StatusOK, "dashboard", map[string]string{
		"Username": user.Username,
	})
}

// LoginPage renders the login form.
// GET /login
func (h *Handler) LoginPage(c echo.Context) error {
	return renderPage(c, http.StatusOK, "login", map[string]string{})
}

// Login authenticates the form credentials and issues a session cookie.
// POST /login
func (h *Handler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	token, err := h.svc.Login(c.Request().Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return renderPage(c, http.StatusUnauthorized, "login", map[string]string{
				"Error": "Invalid username or password",
			})
		}
		log.Printf("ERROR: login failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "login failed"})
	}

	h.setSessionCookie(c, token)
	return c.Redirect(http.StatusFound, "/")
}

// Logout deletes the session and clears the cookie.
// GET /logout
func (h *Handler) Logout(c echo.Context) error {
	if token := sessionToken(c); token != "" {
		if err := h.svc.Logout(c.Request().Context(), token); err != nil {
			log.Printf("ERROR: logout failed: %v", err)
		}
	}
	h.clearSessionCookie(c)
	return c.Redirect(http.StatusFound, "/login")
}

// SignupPage renders the signup form.
// GET /signup
func (h *Handler) SignupPage(c echo.Context) error {
	return renderPage(c, http.StatusOK, "signup", map[string]string{})
}

// Signup registers a new user.
// POST /signup
func (h *Handler) Signup(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if err := h.svc.Signup(c.Request().Context(), username, password); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return renderPage(c, http.StatusConflict, "signup", map[string]string{
				"Error": "Username already exists",
			})
		}
		log.Printf("ERROR: signup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "signup failed"})
	}

	return c.Redirect(http.StatusFound, "/login")
}
