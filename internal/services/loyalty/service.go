// Package loyalty awards points for paid orders.
package loyalty

import (
	"context"
	"errors"
	"fmt"

	"chowpay/internal/models"
	"chowpay/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrNoCustomer = errors.New("loyalty points need a customer profile")

// Config sets the earning rate: one point per PointsUnit of order value,
// plus FirstOrderBonus once per customer.
type Config struct {
	PointsUnit      decimal.Decimal
	FirstOrderBonus int
}

// Award is the outcome of one AwardForOrder call.
type Award struct {
	OrderPoints int  `json:"order_points"`
	BonusPoints int  `json:"bonus_points"`
	FirstOrder  bool `json:"first_order"`
}

func (a *Award) Total() int {
	return a.OrderPoints + a.BonusPoints
}

type Service interface {
	AwardForOrder(ctx context.Context, userID, orderID string, amount decimal.Decimal) (*Award, error)
}

type service struct {
	tx     repositories.Transactor
	config Config
	logger *zap.Logger
}

func NewService(tx repositories.Transactor, config Config, logger *zap.Logger) Service {
	if tx == nil {
		panic("loyalty service requires a transactor")
	}
	if !config.PointsUnit.IsPositive() {
		config.PointsUnit = decimal.NewFromInt(100)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{tx: tx, config: config, logger: logger}
}

// AwardForOrder credits order points and, at most once per customer, the
// first order bonus. The bonus flag is claimed by a conditional update
// inside the transaction, so concurrent orders cannot both receive it.
func (s *service) AwardForOrder(ctx context.Context, userID, orderID string, amount decimal.Decimal) (*Award, error) {
	if userID == "" {
		return nil, ErrNoCustomer
	}

	orderPoints := int(amount.Div(s.config.PointsUnit).Floor().IntPart())
	var award *Award

	err := s.tx.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		award = &Award{OrderPoints: orderPoints}
		if s.config.FirstOrderBonus > 0 {
			claimed, err := tx.Profiles.ClaimFirstOrderBonus(ctx, userID)
			if err != nil {
				return err
			}
			if claimed {
				award.BonusPoints = s.config.FirstOrderBonus
				award.FirstOrder = true
			}
		}
		if award.Total() == 0 {
			return nil
		}

		if award.OrderPoints > 0 {
			if err := tx.Loyalty.Create(ctx, &models.LoyaltyPointsEntry{
				UserID:  userID,
				OrderID: orderID,
				Points:  award.OrderPoints,
				Reason:  models.LoyaltyReasonOrder,
			}); err != nil {
				return err
			}
		}
		if award.FirstOrder {
			if err := tx.Loyalty.Create(ctx, &models.LoyaltyPointsEntry{
				UserID:  userID,
				OrderID: orderID,
				Points:  award.BonusPoints,
				Reason:  models.LoyaltyReasonFirstOrderBonus,
			}); err != nil {
				return err
			}
		}
		return tx.Profiles.AddLoyaltyPoints(ctx, userID, award.Total())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to award loyalty points: %w", err)
	}

	if award.Total() > 0 {
		s.logger.Info("loyalty points awarded",
			zap.String("user_id", userID),
			zap.String("order_id", orderID),
			zap.Int("points", award.Total()),
			zap.Bool("first_order", award.FirstOrder),
		)
	}
	return award, nil
}
