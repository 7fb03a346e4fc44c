// Package errors holds the domain error taxonomy shared by services and
// HTTP handlers.
package errors

import (
	"errors"
	"net/http"
)

// DomainError is a typed, client-facing failure. Detail is attached by
// wrapping: fmt.Errorf("%w: detail", ErrTransferFailed).
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// HTTPStatus returns the status for err, defaulting to 500.
func HTTPStatus(err error) int {
	var de *DomainError
	if errors.As(err, &de) && de.Status != 0 {
		return de.Status
	}
	return http.StatusInternalServerError
}

// Code returns the domain code for err, or INTERNAL_ERROR.
func Code(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return "INTERNAL_ERROR"
}
