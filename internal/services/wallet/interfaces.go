package wallet

import (
	"context"

	"chowpay/internal/models"
	"chowpay/internal/provider"
)

// Service defines the balance synchronizer
type Service interface {
	// Sync reads the provider wallet and mirrors it onto the profile.
	Sync(ctx context.Context, userID, walletID string) (*SyncResult, error)
	// SyncQuietly is Sync with errors logged and dropped.
	SyncQuietly(ctx context.Context, userID, walletID string)
	// Mirror copies an already fetched provider wallet onto the profile.
	Mirror(ctx context.Context, userID string, w *provider.Wallet) error
	// FetchBalance reads the provider wallet, retrying transient failures.
	FetchBalance(ctx context.Context, walletID string) (*provider.Wallet, error)
	// GetWallet returns the mirrored view for a customer.
	GetWallet(ctx context.Context, userID string) (*View, error)
}

// ViewCache caches the mirrored profile between syncs.
type ViewCache interface {
	GetWalletProfile(ctx context.Context, userID string) (*models.Profile, error)
	CacheWalletProfile(ctx context.Context, profile *models.Profile) error
	InvalidateWalletProfile(ctx context.Context, userID string) error
}
