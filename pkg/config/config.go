package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const EnvPrefix = "SHOP"

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Shop    ShopConfig
	Redis   RedisConfig
	Metrics MetricsConfig
}

type AppConfig struct {
	Port     string `envconfig:"SHOP_PORT" default:"8080"`
	LogLevel string `envconfig:"SHOP_LOG_LEVEL" default:"info"`
}

type DBConfig struct {
	Driver      string `envconfig:"SHOP_DB_DRIVER" default:"memory"`
	DSN         string `envconfig:"SHOP_DB_DSN" default:"products.db"`
	AutoMigrate bool   `envconfig:"SHOP_DB_AUTOMIGRATE" default:"false"`
	Seed        bool   `envconfig:"SHOP_DB_SEED" default:"false"`
}

type ShopConfig struct {
	TaxRate            decimal.Decimal `envconfig:"SHOP_TAX_RATE" default:"0.07"`
	SessionLimitPerMin int             `envconfig:"SHOP_SESSION_LIMIT_PER_MIN" default:"30"`
	SessionTTL         time.Duration   `envconfig:"SHOP_SESSION_TTL" default:"30m"`
}

// RedisConfig moves the receipt archive to Redis when URL is set.
type RedisConfig struct {
	URL string `envconfig:"SHOP_REDIS_URL"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"SHOP_METRICS_ENABLED" default:"true"`
	Token   string `envconfig:"SHOP_METRICS_TOKEN"`
}

// Load reads an optional .env file and then the SHOP_* environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	switch c.DB.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported SHOP_DB_DRIVER %q", c.DB.Driver)
	}
	if c.DB.Driver != DriverMemory && c.DB.DSN == "" {
		return errors.New("SHOP_DB_DSN is required for sql drivers")
	}
	if c.Shop.TaxRate.IsNegative() {
		return fmt.Errorf("SHOP_TAX_RATE must not be negative, got %s", c.Shop.TaxRate)
	}
	if c.Shop.SessionLimitPerMin <= 0 {
		return errors.New("SHOP_SESSION_LIMIT_PER_MIN must be positive")
	}
	if c.Shop.SessionTTL <= 0 {
		return errors.New("SHOP_SESSION_TTL must be positive")
	}
	return nil
}

// UsesSQL reports whether the catalog and receipts live in a database.
func (c DBConfig) UsesSQL() bool {
	return c.Driver != DriverMemory
}
