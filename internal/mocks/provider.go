package mocks

import (
	"context"

	"chowpay/internal/events"
	"chowpay/internal/provider"

	"github.com/stretchr/testify/mock"
)

type ProviderAPI struct {
	mock.Mock
}

func (m *ProviderAPI) GetWallet(ctx context.Context, walletID string) (*provider.Wallet, error) {
	args := m.Called(ctx, walletID)
	if w, ok := args.Get(0).(*provider.Wallet); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProviderAPI) Transfer(ctx context.Context, transfer provider.TransferRequest) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *Publisher) Close() error {
	return m.Called().Error(0)
}

var (
	_ provider.API     = (*ProviderAPI)(nil)
	_ events.Publisher = (*Publisher)(nil)
)
