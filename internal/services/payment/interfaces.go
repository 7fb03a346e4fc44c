package payment

import (
	"context"

	"chowpay/internal/provider"
	"chowpay/internal/services/loyalty"

	"github.com/shopspring/decimal"
)

// Service defines the payment processor interface
type Service interface {
	// Pay debits the payer's provider wallet for an order and moves the
	// funds to the merchant wallet, recording the attempt in the ledger.
	Pay(ctx context.Context, req PayRequest) (*PayResult, error)
}

// Dependencies required by the payment service
type WalletSynchronizer interface {
	Mirror(ctx context.Context, userID string, w *provider.Wallet) error
	FetchBalance(ctx context.Context, walletID string) (*provider.Wallet, error)
}

type LoyaltyAwarder interface {
	AwardForOrder(ctx context.Context, userID, orderID string, amount decimal.Decimal) (*loyalty.Award, error)
}
