package domain

import "errors"

// ErrDuplicateUsername is returned when signup hits an existing username.
var ErrDuplicateUsername = errors.New("username already exists")

// ErrInvalidCredentials is returned when login fails, for an unknown
// user or a wrong password alike.
var ErrInvalidCredentials = errors.New("invalid username or password")

// SQLError wraps any failure between SQL generation and execution:
// the model call, a malformed statement, or the store rejecting it.
type SQLError struct {
	Err error
}

func (e *SQLError) Error() string {
	return "SQL Error: " + e.Err.Error()
}

func (e *SQLError) Unwrap() error {
	return e.Err
}

// ProcessingError wraps any failure while rendering the answer:
// the analysis call, the chart call, or parsing the chart JSON.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string {
	return "Processing Error: " + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
