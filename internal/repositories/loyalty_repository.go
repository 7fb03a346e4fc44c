package repositories

import (
	"context"
	"fmt"

	"chowpay/internal/models"

	"gorm.io/gorm"
)

// LoyaltyRepository stores points history.
type LoyaltyRepository interface {
	Create(ctx context.Context, entry *models.LoyaltyPointsEntry) error
	ListByUser(ctx context.Context, userID string) ([]models.LoyaltyPointsEntry, error)
}

type loyaltyRepository struct {
	db *gorm.DB
}

func NewLoyaltyRepository(db *gorm.DB) LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) Create(ctx context.Context, entry *models.LoyaltyPointsEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record loyalty points: %w", err)
	}
	return nil
}

func (r *loyaltyRepository) ListByUser(ctx context.Context, userID string) ([]models.LoyaltyPointsEntry, error) {
	var entries []models.LoyaltyPointsEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list loyalty points: %w", err)
	}
	return entries, nil
}
