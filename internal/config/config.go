// Package config loads runtime configuration from the environment.
// A .env file is read first when present, then typed settings are
// populated with envconfig.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const envPrefix = "chowpay"

// DatabaseConfig holds PostgreSQL connection and pool settings.
type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            string        `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" default:"postgres"`
	Password        string        `envconfig:"DB_PASSWORD" default:"postgres"`
	Name            string        `envconfig:"DB_NAME" default:"chowpay"`
	SSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"100"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"30m"`
}

// DSN returns the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

type RedisConfig struct {
	Host     string        `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string        `envconfig:"REDIS_PORT" default:"6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"REDIS_CACHE_TTL" default:"5m"`
}

// ProviderConfig configures the third-party wallet provider client.
type ProviderConfig struct {
	BaseURL     string        `envconfig:"WALLET_PROVIDER_BASE_URL"`
	APIKey      string        `envconfig:"WALLET_PROVIDER_API_KEY"`
	Timeout     time.Duration `envconfig:"WALLET_PROVIDER_TIMEOUT" default:"30s"`
	ReadRetries uint64        `envconfig:"WALLET_PROVIDER_READ_RETRIES" default:"2"`
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_LEDGER_TOPIC" default:"wallet-ledger-events"`
}

// LoyaltyConfig controls points awarded after a paid order.
type LoyaltyConfig struct {
	PointsUnit      decimal.Decimal `envconfig:"LOYALTY_POINTS_UNIT" default:"100"`
	FirstOrderBonus int             `envconfig:"LOYALTY_FIRST_ORDER_BONUS" default:"50"`
}

type Config struct {
	Env              string        `envconfig:"ENV" default:"development"`
	Port             string        `envconfig:"PORT" default:"3000"`
	AllowedOrigins   string        `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	JWTSecret        string        `envconfig:"JWT_SECRET"`
	MerchantWalletID string        `envconfig:"MERCHANT_WALLET_ID"`
	ActionLockTTL    time.Duration `envconfig:"CLEANUP_ACTION_LOCK_TTL" default:"30s"`
	Database         DatabaseConfig
	Redis            RedisConfig
	Provider         ProviderConfig
	Kafka            KafkaConfig
	Loyalty          LoyaltyConfig
}

var ErrMissingSetting = errors.New("missing required setting")

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings the service cannot start without.
// MERCHANT_WALLET_ID is not required here; a missing merchant
// wallet fails individual payments instead of the whole process.
func (c *Config) Validate() error {
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("%w: WALLET_PROVIDER_BASE_URL", ErrMissingSetting)
	}
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("%w: JWT_SECRET", ErrMissingSetting)
		}
		c.JWTSecret = "dev-secret-change-me"
	}
	if !c.Loyalty.PointsUnit.IsPositive() {
		return errors.New("LOYALTY_POINTS_UNIT must be positive")
	}
	return nil
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Origins splits the comma separated CORS origin list.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
