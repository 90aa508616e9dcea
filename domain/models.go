// Package domain defines the core domain models for the dashboard backend.
package domain

import (
	"time"
)

// User represents a registered dashboard user.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Session represents an authenticated user session. A user has at most
// one live session; creating a new one replaces any existing sessions.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// QueryStatus represents the outcome of an executed question.
type QueryStatus string

const (
	QueryStatusOK        QueryStatus = "ok"
	QueryStatusSQLFailed QueryStatus = "sql_failed"
)

// QueryHistoryEntry records a single natural-language question and the
// SQL generated for it.
type QueryHistoryEntry struct {
	ID           string      `json:"id"`
	Question     string      `json:"question"`
	GeneratedSQL string      `json:"generated_sql,omitempty"`
	Format       string      `json:"format"`
	Status       QueryStatus `json:"status"`
	Error        string      `json:"error,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Question string `json:"question"`
	Format   string `json:"format"` // e.g. "bar graph", "pie chart", "line graph", "full ai report"
}

// AskResult is the rendered answer for a question, either a prose
// report or a chart description parsed from the model output.
type AskResult struct {
	Type     string         `json:"type"` // "report" or "chart"
	Analysis string         `json:"analysis,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
