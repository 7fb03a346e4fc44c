package errors

import "net/http"

var (
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
		Status:  http.StatusNotFound,
	}
	ErrWalletInactive = &DomainError{
		Code:    "WALLET_INACTIVE",
		Message: "wallet is not active",
		Status:  http.StatusForbidden,
	}
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient wallet balance",
		Status:  http.StatusPaymentRequired,
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidRequest = &DomainError{
		Code:    "INVALID_REQUEST",
		Message: "invalid request",
		Status:  http.StatusBadRequest,
	}
	ErrMerchantWalletNotConfigured = &DomainError{
		Code:    "MERCHANT_WALLET_NOT_CONFIGURED",
		Message: "merchant wallet is not configured",
		Status:  http.StatusInternalServerError,
	}
	ErrTransferFailed = &DomainError{
		Code:    "TRANSFER_FAILED",
		Message: "wallet transfer failed",
		Status:  http.StatusBadGateway,
	}
	ErrOrderUpdateFailed = &DomainError{
		Code:    "ORDER_UPDATE_FAILED",
		Message: "payment succeeded but order could not be updated",
		Status:  http.StatusInternalServerError,
	}
	ErrLedgerWriteFailed = &DomainError{
		Code:    "LEDGER_WRITE_FAILED",
		Message: "failed to write wallet ledger",
		Status:  http.StatusInternalServerError,
	}
	ErrProviderUnavailable = &DomainError{
		Code:    "PROVIDER_UNAVAILABLE",
		Message: "wallet provider unavailable",
		Status:  http.StatusBadGateway,
	}
)
