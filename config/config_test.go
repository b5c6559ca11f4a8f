package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"GREENTAIL_SERVER_PORT",
	"GREENTAIL_SERVER_ENVIRONMENT",
	"GREENTAIL_SERVER_ALLOWED_ORIGINS",
	"GREENTAIL_CATALOG_PATH",
	"GREENTAIL_CACHE_ENABLED",
	"GREENTAIL_CACHE_TTL",
	"GREENTAIL_RATELIMIT_PER_IP",
	"GREENTAIL_RATELIMIT_BURST",
	"GREENTAIL_LOGGING_LEVEL",
	"GREENTAIL_MATCHING_DEFAULT_LIMIT",
}

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		for _, key := range envKeys {
			os.Unsetenv(key)
		}
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Catalog.Path != "" {
			t.Errorf("Catalog.Path = %q, want empty (embedded catalog)", cfg.Catalog.Path)
		}
		if !cfg.Cache.Enabled {
			t.Error("Cache.Enabled = false, want true")
		}
		if cfg.Cache.TTL != 10*time.Minute {
			t.Errorf("Cache.TTL = %v, want 10m", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 120 {
			t.Errorf("RateLimit.PerIP = %d, want 120", cfg.RateLimit.PerIP)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
		}
		if cfg.Matching.DefaultLimit != 6 {
			t.Errorf("Matching.DefaultLimit = %d, want 6", cfg.Matching.DefaultLimit)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("GREENTAIL_SERVER_PORT", "9090")
		os.Setenv("GREENTAIL_SERVER_ENVIRONMENT", "production")
		os.Setenv("GREENTAIL_CATALOG_PATH", "/data/catalog.yaml")
		os.Setenv("GREENTAIL_CACHE_TTL", "1h")
		os.Setenv("GREENTAIL_RATELIMIT_PER_IP", "300")
		os.Setenv("GREENTAIL_LOGGING_LEVEL", "debug")
		os.Setenv("GREENTAIL_MATCHING_DEFAULT_LIMIT", "10")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Catalog.Path != "/data/catalog.yaml" {
			t.Errorf("Catalog.Path = %s, want /data/catalog.yaml", cfg.Catalog.Path)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 300 {
			t.Errorf("RateLimit.PerIP = %d, want 300", cfg.RateLimit.PerIP)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
		}
		if cfg.Matching.DefaultLimit != 10 {
			t.Errorf("Matching.DefaultLimit = %d, want 10", cfg.Matching.DefaultLimit)
		}
	})

	t.Run("fails validation for unknown environment", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("GREENTAIL_SERVER_ENVIRONMENT", "staging")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for unknown environment")
		}
		if !strings.HasPrefix(err.Error(), "invalid configuration:") {
			t.Errorf("Load() error = %v, want invalid configuration", err)
		}
	})

	t.Run("fails validation for unknown log level", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("GREENTAIL_LOGGING_LEVEL", "trace")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for unknown log level")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		os.Chdir(t.TempDir())

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables and skips comments", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		os.Chdir(t.TempDir())

		envContent := `
# Comment line
TEST_VAR_1=value1

TEST_VAR_2=value2
# TEST_COMMENTED=should_not_load
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		os.Unsetenv("TEST_VAR_1")
		os.Unsetenv("TEST_VAR_2")
		os.Unsetenv("TEST_COMMENTED")
		defer func() {
			os.Unsetenv("TEST_VAR_1")
			os.Unsetenv("TEST_VAR_2")
		}()

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_VAR_1") != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", os.Getenv("TEST_VAR_1"))
		}
		if os.Getenv("TEST_VAR_2") != "value2" {
			t.Errorf("TEST_VAR_2 = %s, want value2", os.Getenv("TEST_VAR_2"))
		}
		if os.Getenv("TEST_COMMENTED") != "" {
			t.Errorf("TEST_COMMENTED should not be loaded from comment")
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		os.Chdir(t.TempDir())

		os.Setenv("TEST_OVERRIDE", "existing-value")
		defer os.Unsetenv("TEST_OVERRIDE")

		if err := os.WriteFile(".env", []byte("TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_OVERRIDE"))
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Environment: "test"},
			Cache:     CacheConfig{Enabled: true, TTL: time.Minute},
			RateLimit: RateLimitConfig{PerIP: 60, Burst: 10},
			Logging:   LoggingConfig{Level: "info"},
			Matching:  MatchingConfig{DefaultLimit: 6},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("disabled cache ignores TTL", func(t *testing.T) {
		cfg := valid()
		cfg.Cache = CacheConfig{Enabled: false}
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	failures := map[string]func(*Config){
		"zero cache TTL":      func(c *Config) { c.Cache.TTL = 0 },
		"zero rate limit":     func(c *Config) { c.RateLimit.PerIP = 0 },
		"zero burst":          func(c *Config) { c.RateLimit.Burst = 0 },
		"bad log level":       func(c *Config) { c.Logging.Level = "loud" },
		"zero default limit":  func(c *Config) { c.Matching.DefaultLimit = 0 },
		"unknown environment": func(c *Config) { c.Server.Environment = "qa" },
	}
	for name, mutate := range failures {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			if err := validate(cfg); err == nil {
				t.Errorf("validate() error = nil, want error")
			}
		})
	}
}
