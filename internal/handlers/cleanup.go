package handlers

import (
	"chowpay/internal/middleware"
	"chowpay/internal/services/cleanup"
	"chowpay/internal/utils/response"
	"chowpay/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CleanupHandler exposes the reconciliation engine to operators.
type CleanupHandler struct {
	cleanup cleanup.Service
}

func NewCleanupHandler(svc cleanup.Service) *CleanupHandler {
	return &CleanupHandler{cleanup: svc}
}

// ListIssues reports pending and failed rows, optionally for one user.
func (h *CleanupHandler) ListIssues(c *fiber.Ctx) error {
	var userID *string
	if id := c.Query("user_id"); id != "" {
		userID = &id
	}

	report, err := h.cleanup.ListIssues(c.UserContext(), userID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(report)
}

// Execute runs one operator action.
func (h *CleanupHandler) Execute(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var input validation.CleanupRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := input.Validate(); err != nil {
		return response.ValidationError(c, validation.Fields(err))
	}

	result, err := h.cleanup.Dispatch(c.UserContext(), cleanup.Action{
		Name:          input.Action,
		TransactionID: input.TransactionID,
		UserID:        input.UserID,
		Amount:        input.Amount,
		OperatorID:    claims.UserID,
	})
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, result.Message, result)
}
