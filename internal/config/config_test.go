package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WALLET_PROVIDER_BASE_URL", "https://provider.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 30*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.True(t, decimal.NewFromInt(100).Equal(cfg.Loyalty.PointsUnit))
	assert.Equal(t, 50, cfg.Loyalty.FirstOrderBonus)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoad_PrefixedOverridesUnprefixed(t *testing.T) {
	t.Setenv("WALLET_PROVIDER_BASE_URL", "https://provider.test")
	t.Setenv("MERCHANT_WALLET_ID", "plain")
	t.Setenv("CHOWPAY_MERCHANT_WALLET_ID", "prefixed")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prefixed", cfg.MerchantWalletID)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_MissingProvider(t *testing.T) {
	t.Setenv("WALLET_PROVIDER_BASE_URL", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingSetting)
}

func TestValidate_ProductionNeedsSecret(t *testing.T) {
	cfg := &Config{
		Env:      "production",
		Provider: ProviderConfig{BaseURL: "https://provider.test"},
		Loyalty:  LoyaltyConfig{PointsUnit: decimal.NewFromInt(100)},
	}
	assert.ErrorIs(t, cfg.Validate(), ErrMissingSetting)

	cfg.JWTSecret = "s3cret"
	assert.NoError(t, cfg.Validate())
}

func TestOrigins(t *testing.T) {
	cfg := &Config{AllowedOrigins: "http://a.test, http://b.test,,"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", d.DSN())
}
