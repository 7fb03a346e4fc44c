package payment

import (
	"strings"

	"github.com/shopspring/decimal"
)

type PayRequest struct {
	OrderID string
	Amount  decimal.Decimal
	Remarks string
	PayerID string
}

type PayResult struct {
	Reference       string          `json:"reference"`
	TransactionID   string          `json:"transaction_id"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	Status          string          `json:"status"`
	BalanceVerified bool            `json:"balance_verified"`
}

type Config struct {
	MerchantWalletID string
}

// Error types recorded in ledger metadata on failure
const (
	errorTypeConfiguration  = "configuration"
	errorTypeMerchantLookup = "merchant_lookup"
	errorTypeTransfer       = "transfer"
)

const opPay = "payment_pay"

var placeholderMerchantIDs = map[string]bool{
	"":                        true,
	"your-merchant-wallet-id": true,
	"change_me":               true,
	"placeholder":             true,
}

// merchantConfigured reports whether id looks like a real wallet id
// rather than an unset or sample value.
func merchantConfigured(id string) bool {
	return !placeholderMerchantIDs[strings.ToLower(strings.TrimSpace(id))]
}
