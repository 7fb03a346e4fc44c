package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"

	PaymentMethodWallet = "wallet"
)

// Order is the storefront order. UserID is empty for guest checkouts.
type Order struct {
	ID               string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           *string         `gorm:"type:uuid;index" json:"user_id"`
	CustomerName     string          `json:"customer_name"`
	CustomerEmail    string          `json:"customer_email"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_amount"`
	Status           string          `gorm:"default:'pending'" json:"status"`
	PaymentStatus    string          `gorm:"default:'unpaid'" json:"payment_status"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentReference string          `gorm:"index" json:"payment_reference"`
	PaidAt           *time.Time      `json:"paid_at"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}
