// Package validation holds request DTOs and their ozzo-validation rules.
package validation

import (
	"errors"
	"strings"

	"chowpay/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

var (
	minAmount = decimal.RequireFromString(MinPaymentAmount)
	maxAmount = decimal.RequireFromString(MaxPaymentAmount)
)

// PaymentRequest is the body of POST /api/wallet-payment.
type PaymentRequest struct {
	OrderID string          `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
	Remarks string          `json:"remarks"`
}

func (r *PaymentRequest) Validate() error {
	r.OrderID = strings.TrimSpace(r.OrderID)
	return validation.ValidateStruct(r,
		validation.Field(&r.OrderID, validation.Required, validation.Length(1, MaxIDLength)),
		validation.Field(&r.Amount, validation.By(amountInRange)),
		validation.Field(&r.Remarks, validation.Length(0, MaxRemarksLength)),
	)
}

// CleanupRequest is the body of POST /api/admin/cleanup. Which ids are
// required depends on the action and is checked by the cleanup service.
type CleanupRequest struct {
	Action        string          `json:"action"`
	TransactionID string          `json:"transaction_id"`
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// CleanupActions lists the accepted action names.
var CleanupActions = []interface{}{
	"delete_transaction",
	"refund_to_wallet",
	"refund_and_delete_pending",
	"delete_all_user_pending",
	"mark_completed",
}

func (r *CleanupRequest) Validate() error {
	r.Action = strings.TrimSpace(r.Action)
	return validation.ValidateStruct(r,
		validation.Field(&r.Action, validation.Required, validation.In(CleanupActions...)),
		validation.Field(&r.TransactionID, validation.Length(0, MaxIDLength)),
		validation.Field(&r.UserID, validation.Length(0, MaxIDLength)),
		validation.Field(&r.Amount, validation.When(r.Action == "refund_to_wallet", validation.By(amountInRange))),
	)
}

func amountInRange(value interface{}) error {
	amount, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("must be a decimal amount")
	}
	if amount.LessThan(minAmount) {
		return errors.New("must be at least " + MinPaymentAmount)
	}
	if amount.GreaterThan(maxAmount) {
		return errors.New("must not exceed " + MaxPaymentAmount)
	}
	if !models.WholeCents(amount) {
		return errors.New("must have at most 2 decimal places")
	}
	return nil
}

// Fields flattens ozzo field errors into a field → message map. Other
// errors are returned under "request".
func Fields(err error) map[string]string {
	out := map[string]string{}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, e := range verrs {
			out[field] = e.Error()
		}
		return out
	}
	if err != nil {
		out["request"] = err.Error()
	}
	return out
}
