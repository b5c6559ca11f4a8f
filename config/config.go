package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/greentail/backend/internal/infrastructure/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Matching  MatchingConfig  `mapstructure:"matching"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig points at the product catalog. An empty path uses the
// catalog embedded in the binary.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig holds per-client rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// MatchingConfig holds scoring pipeline configuration
type MatchingConfig struct {
	DefaultLimit       int  `mapstructure:"default_limit"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/greentail/")

	// Environment variable settings
	v.SetEnvPrefix("GREENTAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file from the working directory when present.
// Variables already set in the environment win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error checking .env file: %w", err)
	}

	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values. Every key needs a default
// so AutomaticEnv can bind it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.path", "")

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.cleanup_interval", "5m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.burst", 20)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)

	// Matching defaults
	v.SetDefault("matching.default_limit", 6)
	v.SetDefault("matching.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Server.Environment {
	case "development", "test", "production":
	default:
		return fmt.Errorf("server environment must be development, test or production, got: %s", config.Server.Environment)
	}

	if config.Cache.Enabled && config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive when the cache is enabled")
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("rate limit per IP must be positive, got: %d", config.RateLimit.PerIP)
	}

	if config.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit burst must be positive, got: %d", config.RateLimit.Burst)
	}

	if !logging.ValidLevel(config.Logging.Level) {
		return fmt.Errorf("unknown log level: %s", config.Logging.Level)
	}

	if config.Matching.DefaultLimit <= 0 {
		return fmt.Errorf("matching default limit must be positive, got: %d", config.Matching.DefaultLimit)
	}

	return nil
}
