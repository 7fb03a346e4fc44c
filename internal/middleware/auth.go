// Package middleware provides HTTP middleware components for the application.
// It includes authentication and authorization middleware for fiber.
package middleware

import (
	"context"
	"strings"

	applogger "chowpay/internal/logger"
	"chowpay/internal/models"
	"chowpay/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	claimsKey = "claims"
	userIDKey = "userID"
)

// ProfileLookup confirms that the subject of a token still exists.
type ProfileLookup interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
}

// AuthMiddleware handles JWT token validation and user authentication.
// It extracts the JWT token from the Authorization header, validates it,
// and adds the user claims to the request context.
type AuthMiddleware struct {
	secret   string
	profiles ProfileLookup
	logger   *zap.Logger
}

func NewAuthMiddleware(secret string, profiles ProfileLookup, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		secret:   secret,
		profiles: profiles,
		logger:   applogger.OrNop(logger),
	}
}

// Handler validates JWT tokens and adds claims to the request context.
// It checks for:
// - Presence of Authorization header with Bearer token
// - Valid JWT signature and expiry
// - A profile for the token subject
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}

	claims, err := utils.ParseToken(m.secret, strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		m.logger.Debug("token validation failed", zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	if m.profiles != nil {
		if _, err := m.profiles.GetByID(c.UserContext(), claims.UserID); err != nil {
			m.logger.Info("token subject not found", zap.String("user_id", claims.UserID), zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
	}

	c.Locals(claimsKey, claims)
	c.Locals(userIDKey, claims.UserID)
	return c.Next()
}

// Claims returns the claims stored by Handler.
func Claims(c *fiber.Ctx) (*models.UserClaims, bool) {
	claims, ok := c.Locals(claimsKey).(*models.UserClaims)
	return claims, ok && claims != nil
}

// AdminAuthMiddleware verifies that the request has valid admin claims.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	claims, ok := Claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid claims"})
	}
	if claims.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := Claims(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		if claims.Role == models.RoleAdmin || claims.HasPermission(permission) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}
