package api

import (
	"errors"
	"fmt"

	"duckmail/internal/common"
)

// StatusError is returned when the server answered with a non-2xx HTTP
// status. Transport-level failures (no status available) are returned as
// plain wrapped errors instead.
type StatusError struct {
	Code int
	Text string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d - %s", e.Code, e.Text)
}

// Is makes a 401 StatusError match common.ErrorUnauthorized via errors.Is.
func (e *StatusError) Is(target error) bool {
	return target == common.ErrorUnauthorized && e.Code == 401
}

// AsStatusError unwraps err into a *StatusError, or returns nil when the
// failure carries no HTTP status.
func AsStatusError(err error) *StatusError {
	var se *StatusError
	if errors.As(err, &se) {
		return se
	}
	return nil
}
