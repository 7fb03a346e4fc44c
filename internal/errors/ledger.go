package errors

import "net/http"

var (
	ErrTransactionNotFound = &DomainError{
		Code:    "TRANSACTION_NOT_FOUND",
		Message: "transaction not found",
		Status:  http.StatusNotFound,
	}
	ErrInvalidTransition = &DomainError{
		Code:    "INVALID_TRANSITION",
		Message: "transaction status cannot change this way",
		Status:  http.StatusConflict,
	}
	ErrActionInProgress = &DomainError{
		Code:    "ACTION_IN_PROGRESS",
		Message: "another operator action is running on this transaction",
		Status:  http.StatusConflict,
	}
	ErrInvalidAction = &DomainError{
		Code:    "INVALID_ACTION",
		Message: "invalid cleanup action",
		Status:  http.StatusBadRequest,
	}
	ErrDuplicateReference = &DomainError{
		Code:    "DUPLICATE_REFERENCE",
		Message: "a transaction with this reference already exists",
		Status:  http.StatusConflict,
	}
)
