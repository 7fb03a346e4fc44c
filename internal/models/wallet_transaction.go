package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MoneyPlaces is the precision of every ledger amount column.
const MoneyPlaces = 2

// WholeCents reports whether amount fits the ledger precision without
// rounding.
func WholeCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(MoneyPlaces))
}

// Ledger entry types
const (
	TransactionTypeDebit  = "debit"
	TransactionTypeCredit = "credit"
)

// Ledger entry statuses. Pending is the only non-terminal state.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// Metadata keys written on ledger rows
const (
	MetaOrderID           = "order_id"
	MetaMerchantWalletID  = "merchant_wallet_id"
	MetaError             = "error"
	MetaErrorType         = "error_type"
	MetaFailedAt          = "failed_at"
	MetaCompletedAt       = "completed_at"
	MetaRefundOf          = "refund_of"
	MetaRefundedBy        = "refunded_by"
	MetaBalanceUnverified = "balance_unverified"
	MetaMarkedCompletedBy = "marked_completed_by"
)

// WalletTransaction is one local ledger row: a single debit or credit
// against a customer's provider wallet.
type WalletTransaction struct {
	ID              string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          *string         `gorm:"type:uuid;index" json:"user_id"`
	Type            string          `gorm:"type:varchar(10);not null" json:"type"`
	Amount          decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Reference       string          `gorm:"uniqueIndex;not null" json:"reference"`
	Status          string          `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	BalanceBefore   decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"balance_before"`
	BalanceAfter    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"balance_after"`
	BalanceVerified bool            `gorm:"not null;default:false" json:"balance_verified"`
	Description     string          `json:"description"`
	Metadata        JSON            `gorm:"type:jsonb" json:"metadata"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (t *WalletTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Metadata == nil {
		t.Metadata = JSON{}
	}
	return nil
}

// OrderID returns the linked order id from metadata, if any.
func (t *WalletTransaction) OrderID() string {
	return t.Metadata.String(MetaOrderID)
}

// Owner returns the user id or an empty string for guest-linked rows.
func (t *WalletTransaction) Owner() string {
	if t.UserID == nil {
		return ""
	}
	return *t.UserID
}
