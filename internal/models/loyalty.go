package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LoyaltyReasonOrder           = "order"
	LoyaltyReasonFirstOrderBonus = "first_order_bonus"
)

// LoyaltyPointsEntry records points granted for a paid order.
type LoyaltyPointsEntry struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	OrderID   string    `gorm:"type:uuid;index" json:"order_id"`
	Points    int       `gorm:"not null" json:"points"`
	Reason    string    `gorm:"not null" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func (LoyaltyPointsEntry) TableName() string {
	return "loyalty_points_history"
}

func (e *LoyaltyPointsEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
