package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned for any 401 response. Callers redirect to login.
	ErrUnauthorized = errors.New("not authenticated")

	// ErrMalformed is returned when a well-formed JSON body lacks the expected shape.
	ErrMalformed = errors.New("malformed response")

	// ErrInvalidCredentials is returned by Login when the server rejects the credentials.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// StatusError is a non-2xx response other than 401.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// IsUnauthorized reports whether err carries a 401.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
