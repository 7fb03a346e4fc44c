package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Profile is the local customer record. WalletBalance mirrors the
// provider and is never used to authorise a payment.
type Profile struct {
	ID                     string          `gorm:"type:uuid;primaryKey" json:"id"`
	FullName               string          `json:"full_name"`
	Email                  string          `gorm:"uniqueIndex" json:"email"`
	Role                   string          `gorm:"default:'customer'" json:"role"`
	WalletID               *string         `gorm:"index" json:"wallet_id"`
	WalletBalance          decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"wallet_balance"`
	IsWalletActive         bool            `gorm:"default:false" json:"is_wallet_active"`
	LastWalletSync         *time.Time      `json:"last_wallet_sync"`
	VirtualAccountNumber   string          `json:"virtual_account_number"`
	BankCode               string          `json:"bank_code"`
	BankName               string          `json:"bank_name"`
	LoyaltyPoints          int             `gorm:"not null;default:0" json:"loyalty_points"`
	FirstOrderBonusAwarded bool            `gorm:"not null;default:false" json:"first_order_bonus_awarded"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasWallet reports whether a provider wallet is linked.
func (p *Profile) HasWallet() bool {
	return p != nil && p.WalletID != nil && *p.WalletID != ""
}

// WalletMirror is the set of provider fields copied onto a profile.
type WalletMirror struct {
	Balance       decimal.Decimal
	IsActive      bool
	SyncedAt      time.Time
	AccountNumber string
	BankCode      string
	BankName      string
}
