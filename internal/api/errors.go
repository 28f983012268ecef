package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned when no bearer token is available or the
	// backend answered 401.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNetwork covers transport-level failures, including timeouts.
	ErrNetwork = errors.New("network failure")
)

// ServerError is a non-2xx response carrying the backend's detail message.
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server rejected (http %d): %s", e.Status, e.Detail)
}

// Detail extracts the user-facing message for an error: the server's detail
// when present, otherwise the given fallback.
func Detail(err error, fallback string) string {
	var se *ServerError
	if errors.As(err, &se) && se.Detail != "" {
		return se.Detail
	}
	return fallback
}
