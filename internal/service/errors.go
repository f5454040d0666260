package service

import (
	"errors"
	"fmt"
)

// ErrForbidden is returned when the requester does not own the course
var ErrForbidden = errors.New("forbidden: requester does not own this course")

// AuthenticationError carries the reason credentials were rejected. The reason
// is for server logs only; clients always see a generic message.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func authFailed(format string, args ...any) error {
	return &AuthenticationError{Reason: fmt.Sprintf(format, args...)}
}
