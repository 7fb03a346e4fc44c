// Command admin_seed creates the operator profile used to reach the
// cleanup endpoints and prints a signed admin token for it.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"chowpay/internal/config"
	applogger "chowpay/internal/logger"
	"chowpay/internal/models"
	"chowpay/internal/repositories"
	"chowpay/internal/utils"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminName := config.GetEnv("ADMIN_NAME", "Operations")
	tokenTTL := time.Duration(config.GetIntEnv("ADMIN_TOKEN_TTL_HOURS", 12)) * time.Hour

	if adminEmail == "" {
		log.Fatal("ADMIN_EMAIL must be set in environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zl, err := applogger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := repositories.InitDB(cfg.Database)
	if err != nil {
		zl.Fatal("failed to initialise database", zap.Error(err))
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			zl.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	ctx := context.Background()
	profiles := repositories.NewProfileRepository(db)

	admin, err := ensureAdmin(ctx, profiles, adminEmail, adminName)
	if err != nil {
		zl.Fatal("failed to seed admin profile", zap.Error(err))
	}

	token, err := utils.GenerateToken(cfg.JWTSecret, models.UserClaims{
		UserID: admin.ID,
		Email:  admin.Email,
		Role:   models.RoleAdmin,
	}, tokenTTL)
	if err != nil {
		zl.Fatal("failed to sign admin token", zap.Error(err))
	}

	zl.Info("admin profile ready", zap.String("user_id", admin.ID), zap.String("email", admin.Email))
	fmt.Println(token)
}

// ensureAdmin returns the profile for email, creating it when missing.
// An existing customer profile is not promoted.
func ensureAdmin(ctx context.Context, profiles repositories.ProfileRepository, email, name string) (*models.Profile, error) {
	existing, err := profiles.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != models.RoleAdmin {
			return nil, fmt.Errorf("profile %s exists with role %q", email, existing.Role)
		}
		return existing, nil
	case !errors.Is(err, repositories.ErrProfileNotFound):
		return nil, err
	}

	admin := &models.Profile{
		FullName: name,
		Email:    email,
		Role:     models.RoleAdmin,
	}
	if err := profiles.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
