// Package api provides HTTP handlers for the dashboard backend.
package api

import (
	"net/http"

	"github.com/Paul4805/AI-Dashboard-Tool/service"
	"github.com/labstack/echo/v4"
)

// sessionCookieName is the cookie carrying the session token.
const sessionCookieName = "session_token"

// Handler handles HTTP requests.
type Handler struct {
	svc *service.Service
}

// NewHandler creates a new handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Dashboard (session gated)
	e.GET("/", h.Dashboard, h.RequireSession)

	// Auth
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.GET("/logout", h.Logout)
	e.GET("/signup", h.SignupPage)
	e.POST("/signup", h.Signup)

	// Query API
	e.POST("/ask", h.Ask)
	e.GET("/history", h.GetHistory)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// sessionToken returns the token from the request cookie, or "".
func sessionToken(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *Handler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.svc.SessionTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
