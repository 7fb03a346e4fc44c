package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

const (
	CSRFHeader     = "X-CSRF-Token"
	CSRFCookieName = "csrf_"
	csrfContextKey = "csrf"
)

// CSRF protects state-changing customer routes. Safe methods receive a
// token in the csrf_ cookie; unsafe methods must echo it in X-CSRF-Token.
func CSRF(secure bool) fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "header:" + CSRFHeader,
		CookieName:     CSRFCookieName,
		CookieSameSite: "Lax",
		CookieSecure:   secure,
		CookieHTTPOnly: false,
		Expiration:     time.Hour,
		ContextKey:     csrfContextKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "invalid csrf token",
				"code":  "CSRF_INVALID",
			})
		},
	})
}

// CSRFToken returns the token issued for the current request.
func CSRFToken(c *fiber.Ctx) string {
	token, _ := c.Locals(csrfContextKey).(string)
	return token
}
