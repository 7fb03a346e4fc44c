package models

import "github.com/golang-jwt/jwt/v5"

// Roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Application permissions
const (
	PermissionReadAdmin    = "admin:read"
	PermissionWriteAdmin   = "admin:write"
	PermissionWalletRead   = "wallet:read"
	PermissionWalletWrite  = "wallet:write"
	PermissionPaymentWrite = "payment:write"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionWalletRead,
			PermissionWalletWrite,
			PermissionPaymentWrite,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case RoleCustomer:
		return []string{
			PermissionWalletRead,
			PermissionWalletWrite,
			PermissionPaymentWrite,
		}
	default:
		return []string{}
	}
}
