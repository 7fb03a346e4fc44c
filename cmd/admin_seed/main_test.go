package main

import (
	"context"
	"testing"

	"chowpay/internal/mocks"
	"chowpay/internal/models"
	"chowpay/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing profile", func(t *testing.T) {
		profiles := new(mocks.ProfileRepository)
		profiles.On("GetByEmail", mock.Anything, "ops@example.com").Return(nil, repositories.ErrProfileNotFound)
		profiles.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
			return p.Role == models.RoleAdmin && p.Email == "ops@example.com"
		})).Return(nil)

		admin, err := ensureAdmin(ctx, profiles, "ops@example.com", "Ops")
		require.NoError(t, err)
		assert.Equal(t, "Ops", admin.FullName)
		profiles.AssertExpectations(t)
	})

	t.Run("reuses existing admin", func(t *testing.T) {
		profiles := new(mocks.ProfileRepository)
		profiles.On("GetByEmail", mock.Anything, "ops@example.com").
			Return(&models.Profile{ID: "a-1", Email: "ops@example.com", Role: models.RoleAdmin}, nil)

		admin, err := ensureAdmin(ctx, profiles, "ops@example.com", "Ops")
		require.NoError(t, err)
		assert.Equal(t, "a-1", admin.ID)
		profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("refuses to promote a customer", func(t *testing.T) {
		profiles := new(mocks.ProfileRepository)
		profiles.On("GetByEmail", mock.Anything, "cust@example.com").
			Return(&models.Profile{ID: "u-1", Email: "cust@example.com", Role: models.RoleCustomer}, nil)

		_, err := ensureAdmin(ctx, profiles, "cust@example.com", "Ops")
		assert.Error(t, err)
	})
}
