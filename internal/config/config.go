package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Payment  PaymentConfig
	Checkout CheckoutConfig
	Geo      GeoConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// RedisConfig holds the checkout session store configuration. When disabled
// the service falls back to an in-memory store.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey string
}

// PaymentConfig holds the hosted payment provider configuration. PublicKey
// is exposed to clients; SecretKey authenticates session creation.
type PaymentConfig struct {
	BaseURL   string
	PublicKey string
	SecretKey string
	ReturnURL string
	CancelURL string
}

// CheckoutConfig holds the pricing constants: the currency value of one
// reward point, the flat shipping fee, and the checkout session lifetime.
type CheckoutConfig struct {
	PointValue        int64
	ShippingFee       int64
	SessionTTLMinutes int
}

// GeoConfig holds the address dataset location: an S3 bucket with a local
// file fallback.
type GeoConfig struct {
	S3Enabled   bool
	S3Bucket    string
	S3Region    string
	S3Prefix    string
	DatasetPath string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "shopkart"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Payment: PaymentConfig{
			BaseURL:   getEnv("PAYMENT_BASE_URL", ""),
			PublicKey: getEnv("PAYMENT_PUBLIC_KEY", ""),
			SecretKey: getEnv("PAYMENT_SECRET_KEY", ""),
			ReturnURL: getEnv("PAYMENT_RETURN_URL", ""),
			CancelURL: getEnv("PAYMENT_CANCEL_URL", ""),
		},
		Checkout: CheckoutConfig{
			PointValue:        getEnvAsInt64("CHECKOUT_POINT_VALUE", 100),
			ShippingFee:       getEnvAsInt64("CHECKOUT_SHIPPING_FEE", 30000),
			SessionTTLMinutes: getEnvAsInt("CHECKOUT_SESSION_TTL_MINUTES", 30),
		},
		Geo: GeoConfig{
			S3Enabled:   getEnvAsBool("GEO_S3_ENABLED", false),
			S3Bucket:    getEnv("GEO_S3_BUCKET", ""),
			S3Region:    getEnv("GEO_S3_REGION", "ap-southeast-1"),
			S3Prefix:    getEnv("GEO_S3_PREFIX", "geo/"),
			DatasetPath: getEnv("GEO_DATASET_PATH", "data/geo/provinces.json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required when redis is enabled")
	}

	if c.Payment.BaseURL != "" && c.Payment.SecretKey == "" {
		return fmt.Errorf("payment secret key is required when a payment provider is configured")
	}

	if c.Checkout.PointValue < 1 {
		return fmt.Errorf("checkout point value must be at least 1")
	}

	if c.Checkout.ShippingFee < 0 {
		return fmt.Errorf("checkout shipping fee cannot be negative")
	}

	if c.Checkout.SessionTTLMinutes < 1 {
		return fmt.Errorf("checkout session TTL must be at least 1 minute")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Geo.S3Enabled {
		if c.Geo.S3Bucket == "" {
			return fmt.Errorf("geo S3 bucket is required when geo S3 is enabled")
		}
		if c.Geo.S3Region == "" {
			return fmt.Errorf("geo S3 region is required when geo S3 is enabled")
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsInt64 retrieves an environment variable as an int64 or returns a default value.
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
