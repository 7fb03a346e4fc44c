// Package response writes the JSON envelopes returned by every handler.
package response

import (
	apperrors "chowpay/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *fiber.Ctx) error {
	return Error(c, fiber.StatusForbidden, "Insufficient permissions")
}

func ValidationError(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "validation failed",
		"code":   "VALIDATION_FAILED",
		"fields": fields,
	})
}

// DomainError maps err to its status and code. Errors outside the domain
// taxonomy are reported as a generic 500.
func DomainError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	code := apperrors.Code(err)
	message := err.Error()
	if code == "INTERNAL_ERROR" {
		message = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}
