package handlers

import (
	"errors"

	apperrors "chowpay/internal/errors"
	applogger "chowpay/internal/logger"
	"chowpay/internal/middleware"
	"chowpay/internal/services/payment"
	"chowpay/internal/utils/response"
	"chowpay/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	payments payment.Service
	logger   *zap.Logger
}

func NewPaymentHandler(payments payment.Service, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		logger:   applogger.OrNop(logger),
	}
}

// Pay debits the caller's wallet for an order.
func (h *PaymentHandler) Pay(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var input validation.PaymentRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := input.Validate(); err != nil {
		return response.ValidationError(c, validation.Fields(err))
	}

	result, err := h.payments.Pay(c.UserContext(), payment.PayRequest{
		OrderID: input.OrderID,
		Amount:  input.Amount,
		Remarks: input.Remarks,
		PayerID: claims.UserID,
	})
	if err != nil {
		// The transfer went through but the order was not marked paid.
		// The reference lets an operator reconcile it.
		if result != nil && errors.Is(err, apperrors.ErrOrderUpdateFailed) {
			h.logger.Error("payment settled but order update failed",
				zap.String("order_id", input.OrderID),
				zap.String("reference", result.Reference),
				zap.Error(err),
			)
			return c.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{
				"error":   err.Error(),
				"code":    apperrors.Code(err),
				"payment": result,
			})
		}
		return response.DomainError(c, err)
	}

	return response.Success(c, "Payment successful", result)
}
