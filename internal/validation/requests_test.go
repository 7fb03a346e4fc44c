package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     PaymentRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  PaymentRequest{OrderID: " o-1 ", Amount: decimal.NewFromInt(2000)},
		},
		{
			name:    "missing order",
			req:     PaymentRequest{Amount: decimal.NewFromInt(10)},
			wantErr: "order_id",
		},
		{
			name:    "zero amount",
			req:     PaymentRequest{OrderID: "o-1"},
			wantErr: "amount",
		},
		{
			name:    "negative amount",
			req:     PaymentRequest{OrderID: "o-1", Amount: decimal.NewFromInt(-5)},
			wantErr: "amount",
		},
		{
			name:    "fraction of a cent",
			req:     PaymentRequest{OrderID: "o-1", Amount: decimal.RequireFromString("9.995")},
			wantErr: "amount",
		},
		{
			name: "trailing zeros",
			req:  PaymentRequest{OrderID: "o-1", Amount: decimal.RequireFromString("9.990")},
		},
		{
			name:    "too large",
			req:     PaymentRequest{OrderID: "o-1", Amount: decimal.NewFromInt(10000001)},
			wantErr: "amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "o-1", tt.req.OrderID)
				return
			}
			require.Error(t, err)
			assert.Contains(t, Fields(err), tt.wantErr)
		})
	}
}

func TestCleanupRequest_Validate(t *testing.T) {
	ok := CleanupRequest{Action: "mark_completed", TransactionID: "tx-1"}
	assert.NoError(t, ok.Validate())

	unknown := CleanupRequest{Action: "drop_everything"}
	assert.Contains(t, Fields(unknown.Validate()), "action")

	noAmount := CleanupRequest{Action: "refund_to_wallet", UserID: "u-1"}
	assert.Contains(t, Fields(noAmount.Validate()), "amount")

	subCent := CleanupRequest{Action: "refund_to_wallet", UserID: "u-1", Amount: decimal.RequireFromString("9.995")}
	assert.Contains(t, Fields(subCent.Validate()), "amount")

	refund := CleanupRequest{Action: "refund_to_wallet", UserID: "u-1", Amount: decimal.NewFromInt(50)}
	assert.NoError(t, refund.Validate())
}

func TestFields_NonValidationError(t *testing.T) {
	assert.Empty(t, Fields(nil))
	assert.Equal(t, map[string]string{"request": assert.AnError.Error()}, Fields(assert.AnError))
}
