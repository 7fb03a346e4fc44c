package cleanup

import (
	"context"
	"time"

	"chowpay/internal/provider"

	"github.com/shopspring/decimal"
)

// Service defines the reconciliation engine
type Service interface {
	ListIssues(ctx context.Context, userID *string) (*IssueReport, error)

	DeleteTransaction(ctx context.Context, transactionID, operatorID string) (*ActionResult, error)
	RefundToWallet(ctx context.Context, userID string, amount decimal.Decimal, operatorID string) (*ActionResult, error)
	RefundAndDeletePending(ctx context.Context, transactionID, operatorID string) (*ActionResult, error)
	DeleteAllUserPending(ctx context.Context, userID, operatorID string) (*ActionResult, error)
	MarkCompleted(ctx context.Context, transactionID, operatorID string) (*ActionResult, error)

	// Dispatch runs the action named by an HTTP request.
	Dispatch(ctx context.Context, action Action) (*ActionResult, error)
}

// Dependencies required by the cleanup service
type BalanceReader interface {
	FetchBalance(ctx context.Context, walletID string) (*provider.Wallet, error)
}

type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

type CacheInvalidator interface {
	InvalidateWalletProfile(ctx context.Context, userID string) error
}
