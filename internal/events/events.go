// Package events publishes ledger lifecycle events for downstream
// consumers such as receipts and accounting.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	TypePaymentCompleted         = "wallet.payment.completed"
	TypePaymentFailed            = "wallet.payment.failed"
	TypeRefundCreated            = "wallet.refund.created"
	TypeTransactionDeleted       = "wallet.transaction.deleted"
	TypeTransactionMarkCompleted = "wallet.transaction.marked_completed"
)

// Event is the JSON body written for every ledger change.
type Event struct {
	Type          string            `json:"type"`
	TransactionID string            `json:"transaction_id"`
	UserID        string            `json:"user_id,omitempty"`
	OrderID       string            `json:"order_id,omitempty"`
	Reference     string            `json:"reference,omitempty"`
	Amount        decimal.Decimal   `json:"amount"`
	Status        string            `json:"status,omitempty"`
	ActorID       string            `json:"actor_id,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	OccurredAt    time.Time         `json:"occurred_at"`
}

// Publisher delivers ledger events. Callers treat failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }
