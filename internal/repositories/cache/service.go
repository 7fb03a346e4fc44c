package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chowpay/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewCacheService(client redis.UniversalClient, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get decodes the cached value into dest. A miss returns false, nil.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Wallet view caching
func (s *CacheService) CacheWalletProfile(ctx context.Context, profile *models.Profile) error {
	if profile == nil {
		return errors.New("cannot cache nil profile")
	}
	return s.Set(ctx, s.GenerateKey("wallet", "profile", profile.ID), profile)
}

// GetWalletProfile returns nil, nil on a miss.
func (s *CacheService) GetWalletProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	found, err := s.Get(ctx, s.GenerateKey("wallet", "profile", userID), &profile)
	if err != nil || !found {
		return nil, err
	}
	return &profile, nil
}

func (s *CacheService) InvalidateWalletProfile(ctx context.Context, userID string) error {
	return s.Delete(ctx, s.GenerateKey("wallet", "profile", userID))
}

func (s *CacheService) HealthCheck(ctx context.Context) error {
	return Ping(ctx, s.client)
}
