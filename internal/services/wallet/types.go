package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config tunes provider read retries.
type Config struct {
	ReadRetries     uint64
	InitialInterval time.Duration
	MaxElapsedTime  time.Duration
}

// SyncResult is what a sync observed at the provider.
type SyncResult struct {
	Balance  decimal.Decimal `json:"balance"`
	IsActive bool            `json:"is_active"`
	SyncedAt time.Time       `json:"synced_at"`
}

// View is the mirrored wallet state shown to a customer.
type View struct {
	UserID               string          `json:"user_id"`
	WalletID             string          `json:"wallet_id"`
	Balance              decimal.Decimal `json:"balance"`
	IsActive             bool            `json:"is_active"`
	LastSync             *time.Time      `json:"last_sync"`
	VirtualAccountNumber string          `json:"virtual_account_number,omitempty"`
	BankCode             string          `json:"bank_code,omitempty"`
	BankName             string          `json:"bank_name,omitempty"`
}
