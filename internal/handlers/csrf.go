package handlers

import (
	"chowpay/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// CSRFToken hands the token issued by the csrf middleware to the client,
// which echoes it in X-CSRF-Token on the payment request.
func CSRFToken(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"csrf_token": middleware.CSRFToken(c),
		"header":     middleware.CSRFHeader,
	})
}
