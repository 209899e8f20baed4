package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string
	LogLevel    zerolog.Level

	// Record store
	Store StoreConfig

	// Read path policy
	DegradeReadsOnStoreUnavailable bool

	// Insights
	HighAverageThreshold decimal.Decimal

	// Rate limiting
	RateLimit RateLimitConfig

	// Optional change-event feed
	AMQP AMQPConfig
}

// StoreConfig holds PostgreSQL pool configuration
type StoreConfig struct {
	DatabaseURL          string
	MaxConns             int32
	ConnectTimeout       time.Duration
	QueryTimeout         time.Duration
	MigrateOnStart       bool
	// MigrateRetryInterval spaces migration attempts while the store is unreachable
	MigrateRetryInterval time.Duration
}

// RateLimitConfig holds the per-client rate limit
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// AMQPConfig holds RabbitMQ configuration. An empty URL disables the feed.
type AMQPConfig struct {
	URL      string
	Exchange string
}

// Enabled reports whether change events should be published
func (a AMQPConfig) Enabled() bool {
	return a.URL != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	p := &parser{}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		Env:         getEnv("ENV", "development"),
		LogLevel:    p.level("LOG_LEVEL", zerolog.InfoLevel),
		Store: StoreConfig{
			DatabaseURL:          getEnv("DATABASE_URL", ""),
			MaxConns:             p.int32("STORE_MAX_CONNS", 10),
			ConnectTimeout:       p.duration("STORE_CONNECT_TIMEOUT", 5*time.Second),
			QueryTimeout:         p.duration("STORE_QUERY_TIMEOUT", 45*time.Second),
			MigrateOnStart:       p.bool("STORE_MIGRATE_ON_START", true),
			MigrateRetryInterval: p.duration("STORE_MIGRATE_RETRY_INTERVAL", 10*time.Second),
		},
		DegradeReadsOnStoreUnavailable: p.bool("READ_DEGRADE_ON_STORE_UNAVAILABLE", true),
		HighAverageThreshold:           p.decimal("INSIGHT_HIGH_AVERAGE_THRESHOLD", decimal.NewFromInt(100)),
		RateLimit: RateLimitConfig{
			RequestsPerMinute: p.int("RATE_LIMIT_PER_MINUTE", 300),
			Burst:             p.int("RATE_LIMIT_BURST", 30),
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "fintrack.events"),
		},
	}

	if p.err != nil {
		return nil, p.err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if c.Store.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Store.MaxConns < 1 {
		return fmt.Errorf("STORE_MAX_CONNS must be at least 1")
	}
	if c.Store.ConnectTimeout <= 0 {
		return fmt.Errorf("STORE_CONNECT_TIMEOUT must be positive")
	}
	if c.Store.QueryTimeout <= 0 {
		return fmt.Errorf("STORE_QUERY_TIMEOUT must be positive")
	}
	if c.Store.MigrateRetryInterval <= 0 {
		return fmt.Errorf("STORE_MIGRATE_RETRY_INTERVAL must be positive")
	}
	if c.HighAverageThreshold.IsNegative() {
		return fmt.Errorf("INSIGHT_HIGH_AVERAGE_THRESHOLD must not be negative")
	}
	if c.RateLimit.RequestsPerMinute < 1 || c.RateLimit.Burst < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be at least 1")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parser collects the first conversion error so Load can report it once
type parser struct {
	err error
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
}

func (p *parser) int(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		p.fail(key, value, err)
		return defaultValue
	}
	return n
}

func (p *parser) int32(key string, defaultValue int32) int32 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		p.fail(key, value, err)
		return defaultValue
	}
	return int32(n)
}

func (p *parser) bool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		p.fail(key, value, err)
		return defaultValue
	}
	return b
}

func (p *parser) duration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		p.fail(key, value, err)
		return defaultValue
	}
	return d
}

func (p *parser) decimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		p.fail(key, value, err)
		return defaultValue
	}
	return d
}

func (p *parser) level(key string, defaultValue zerolog.Level) zerolog.Level {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	lvl, err := zerolog.ParseLevel(value)
	if err != nil {
		p.fail(key, value, err)
		return defaultValue
	}
	return lvl
}
