package provider

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// VirtualAccount is the bank-facing account attached to a provider wallet.
type VirtualAccount struct {
	AccountNumber string `json:"accountNumber"`
	BankCode      string `json:"bankCode"`
	BankName      string `json:"bankName"`
}

// Wallet is the provider's view of a wallet. IsActive and Status are both
// optional; providers send one, the other, or neither.
type Wallet struct {
	ID               string          `json:"id"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	IsActive         *bool           `json:"isActive,omitempty"`
	Status           *string         `json:"status,omitempty"`
	VirtualAccount   VirtualAccount  `json:"virtualAccount"`
}

var inactiveStatuses = map[string]bool{
	"inactive":    true,
	"disabled":    true,
	"suspended":   true,
	"blocked":     true,
	"frozen":      true,
	"closed":      true,
	"locked":      true,
	"deactivated": true,
}

// Active derives the wallet's usability. An explicit isActive flag wins;
// otherwise only a known inactive status blocks, and a missing or
// unrecognised status counts as active.
func (w *Wallet) Active() bool {
	if w.IsActive != nil {
		return *w.IsActive
	}
	if w.Status == nil {
		return true
	}
	return !inactiveStatuses[strings.ToLower(strings.TrimSpace(*w.Status))]
}

// AccountID returns the identifier used for wallet-to-wallet transfers,
// falling back to the wallet id when no virtual account is attached.
func (w *Wallet) AccountID() string {
	if w.VirtualAccount.AccountNumber != "" {
		return w.VirtualAccount.AccountNumber
	}
	return w.ID
}

// TransferRequest is a wallet-to-wallet transfer between virtual accounts.
type TransferRequest struct {
	FromAccount          string
	ToAccount            string
	Amount               decimal.Decimal
	TransactionReference string
	Remarks              string
}

// API is the provider surface the ledger depends on. *Client implements it.
type API interface {
	GetWallet(ctx context.Context, walletID string) (*Wallet, error)
	Transfer(ctx context.Context, transfer TransferRequest) error
}

var _ API = (*Client)(nil)
