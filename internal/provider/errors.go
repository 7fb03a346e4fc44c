package provider

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured = errors.New("wallet provider base url not configured")
	ErrEmptyWalletID = errors.New("wallet id is required")
)

// Error is a failure reported by the provider itself, as opposed to a
// transport error.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("wallet provider error (%d): %s", e.StatusCode, e.Message)
}

// Message extracts the provider's message from err when present.
func Message(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
