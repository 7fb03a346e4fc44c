package repositories

import (
	"context"
	"errors"
	"fmt"

	"chowpay/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}
	return profiles, nil
}

func (r *profileRepository) UpdateWalletMirror(ctx context.Context, id string, mirror models.WalletMirror) error {
	fields := map[string]interface{}{
		"wallet_balance":   mirror.Balance,
		"is_wallet_active": mirror.IsActive,
		"last_wallet_sync": mirror.SyncedAt,
	}
	if mirror.AccountNumber != "" {
		fields["virtual_account_number"] = mirror.AccountNumber
	}
	if mirror.BankCode != "" {
		fields["bank_code"] = mirror.BankCode
	}
	if mirror.BankName != "" {
		fields["bank_name"] = mirror.BankName
	}

	result := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet mirror: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) IncrementWalletBalance(ctx context.Context, id string, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Update("wallet_balance", gorm.Expr("wallet_balance + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to increment wallet balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) AddLoyaltyPoints(ctx context.Context, id string, points int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Update("loyalty_points", gorm.Expr("loyalty_points + ?", points))
	if result.Error != nil {
		return fmt.Errorf("failed to add loyalty points: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) ClaimFirstOrderBonus(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ? AND first_order_bonus_awarded = ?", id, false).
		Update("first_order_bonus_awarded", true)
	if result.Error != nil {
		return false, fmt.Errorf("failed to claim first order bonus: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
