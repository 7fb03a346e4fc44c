package repositories

import (
	"context"
	"errors"

	"chowpay/internal/models"

	"github.com/shopspring/decimal"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository reads customer profiles and writes the wallet mirror.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Profile, error)

	// UpdateWalletMirror copies provider wallet state onto the profile.
	UpdateWalletMirror(ctx context.Context, id string, mirror models.WalletMirror) error
	// IncrementWalletBalance raises the mirrored balance by delta.
	IncrementWalletBalance(ctx context.Context, id string, delta decimal.Decimal) error
	// AddLoyaltyPoints adds points to the profile balance.
	AddLoyaltyPoints(ctx context.Context, id string, points int) error
	// ClaimFirstOrderBonus sets the first order flag if it is still unset
	// and reports whether this call set it.
	ClaimFirstOrderBonus(ctx context.Context, id string) (bool, error)
}
