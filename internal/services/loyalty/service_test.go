package loyalty

import (
	"context"
	"errors"
	"sync"
	"testing"

	"chowpay/internal/mocks"
	"chowpay/internal/models"
	"chowpay/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(profiles *mocks.ProfileRepository, loyaltyRepo *mocks.LoyaltyRepository) (Service, *mocks.Transactor) {
	tx := &mocks.Transactor{Store: &repositories.Store{Profiles: profiles, Loyalty: loyaltyRepo}}
	return NewService(tx, Config{PointsUnit: decimal.NewFromInt(100), FirstOrderBonus: 50}, nil), tx
}

func TestAwardForOrder_FirstOrder(t *testing.T) {
	profiles := new(mocks.ProfileRepository)
	loyaltyRepo := new(mocks.LoyaltyRepository)
	svc, _ := newTestService(profiles, loyaltyRepo)

	profiles.On("ClaimFirstOrderBonus", mock.Anything, "user-1").Return(true, nil).Once()
	loyaltyRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *models.LoyaltyPointsEntry) bool {
		return e.Reason == models.LoyaltyReasonOrder && e.Points == 20 && e.OrderID == "o1"
	})).Return(nil).Once()
	loyaltyRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *models.LoyaltyPointsEntry) bool {
		return e.Reason == models.LoyaltyReasonFirstOrderBonus && e.Points == 50
	})).Return(nil).Once()
	profiles.On("AddLoyaltyPoints", mock.Anything, "user-1", 70).Return(nil).Once()

	award, err := svc.AwardForOrder(context.Background(), "user-1", "o1", decimal.NewFromInt(2050))
	require.NoError(t, err)
	assert.Equal(t, 20, award.OrderPoints)
	assert.Equal(t, 50, award.BonusPoints)
	assert.True(t, award.FirstOrder)

	profiles.AssertExpectations(t)
	loyaltyRepo.AssertExpectations(t)
}

func TestAwardForOrder_RepeatCustomer(t *testing.T) {
	profiles := new(mocks.ProfileRepository)
	loyaltyRepo := new(mocks.LoyaltyRepository)
	svc, _ := newTestService(profiles, loyaltyRepo)

	profiles.On("ClaimFirstOrderBonus", mock.Anything, "user-1").Return(false, nil).Once()
	loyaltyRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	profiles.On("AddLoyaltyPoints", mock.Anything, "user-1", 5).Return(nil).Once()

	award, err := svc.AwardForOrder(context.Background(), "user-1", "o2", decimal.RequireFromString("599.99"))
	require.NoError(t, err)
	assert.Equal(t, 5, award.Total())
	assert.False(t, award.FirstOrder)
	loyaltyRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestAwardForOrder_ConcurrentOrdersGetOneBonus(t *testing.T) {
	profiles := new(mocks.ProfileRepository)
	loyaltyRepo := new(mocks.LoyaltyRepository)
	svc, _ := newTestService(profiles, loyaltyRepo)

	// the conditional update succeeds for exactly one caller
	profiles.On("ClaimFirstOrderBonus", mock.Anything, "user-1").Return(true, nil).Once()
	profiles.On("ClaimFirstOrderBonus", mock.Anything, "user-1").Return(false, nil)
	loyaltyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	profiles.On("AddLoyaltyPoints", mock.Anything, "user-1", mock.Anything).Return(nil)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		bonuses int
	)
	for _, orderID := range []string{"o1", "o2", "o3"} {
		wg.Add(1)
		go func(orderID string) {
			defer wg.Done()
			award, err := svc.AwardForOrder(context.Background(), "user-1", orderID, decimal.NewFromInt(1000))
			assert.NoError(t, err)
			if award != nil && award.FirstOrder {
				mu.Lock()
				bonuses++
				mu.Unlock()
			}
		}(orderID)
	}
	wg.Wait()

	assert.Equal(t, 1, bonuses)
	profiles.AssertNumberOfCalls(t, "AddLoyaltyPoints", 3)
	profiles.AssertCalled(t, "AddLoyaltyPoints", mock.Anything, "user-1", 60)
	profiles.AssertCalled(t, "AddLoyaltyPoints", mock.Anything, "user-1", 10)
}

func TestAwardForOrder_NothingToAward(t *testing.T) {
	profiles := new(mocks.ProfileRepository)
	loyaltyRepo := new(mocks.LoyaltyRepository)
	svc, _ := newTestService(profiles, loyaltyRepo)

	profiles.On("ClaimFirstOrderBonus", mock.Anything, "user-1").Return(false, nil).Once()

	award, err := svc.AwardForOrder(context.Background(), "user-1", "o3", decimal.NewFromInt(99))
	require.NoError(t, err)
	assert.Zero(t, award.Total())
	loyaltyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	profiles.AssertNotCalled(t, "AddLoyaltyPoints", mock.Anything, mock.Anything, mock.Anything)
}

func TestAwardForOrder_WriteFailureRollsBack(t *testing.T) {
	profiles := new(mocks.ProfileRepository)
	loyaltyRepo := new(mocks.LoyaltyRepository)
	svc, _ := newTestService(profiles, loyaltyRepo)

	profiles.On("ClaimFirstOrderBonus", mock.Anything, "user-1").Return(true, nil).Once()
	loyaltyRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()

	_, err := svc.AwardForOrder(context.Background(), "user-1", "o1", decimal.NewFromInt(1000))
	assert.ErrorContains(t, err, "insert failed")
	profiles.AssertNotCalled(t, "AddLoyaltyPoints", mock.Anything, mock.Anything, mock.Anything)
}

func TestAwardForOrder_ClaimFailure(t *testing.T) {
	profiles := new(mocks.ProfileRepository)
	loyaltyRepo := new(mocks.LoyaltyRepository)
	svc, _ := newTestService(profiles, loyaltyRepo)

	profiles.On("ClaimFirstOrderBonus", mock.Anything, "user-1").Return(false, errors.New("deadlock")).Once()

	_, err := svc.AwardForOrder(context.Background(), "user-1", "o1", decimal.NewFromInt(1000))
	assert.ErrorContains(t, err, "deadlock")
	loyaltyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAwardForOrder_Guest(t *testing.T) {
	svc, tx := newTestService(new(mocks.ProfileRepository), new(mocks.LoyaltyRepository))

	_, err := svc.AwardForOrder(context.Background(), "", "o1", decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, ErrNoCustomer)
	assert.Zero(t, tx.Calls)
}
