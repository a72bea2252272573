package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pakbuy/backend/internal/infrastructure/logging"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Cache     CacheConfig
	Cleaning  CleaningConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AIConfig holds the AI provider configuration
type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"` // only "gemini" is supported
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	SelfTest bool          `mapstructure:"self_test"`
}

// Available reports whether AI cleaning should be attempted at all.
// A missing API key turns AI off rather than failing startup.
func (c AIConfig) Available() bool {
	return c.Enabled && c.APIKey != ""
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// CleaningConfig holds the hybrid cleaner configuration
type CleaningConfig struct {
	DefaultBudget    time.Duration `mapstructure:"default_budget"`
	BatchConcurrency int           `mapstructure:"batch_concurrency"`
	MaxBatchSize     int           `mapstructure:"max_batch_size"`
}

// RateLimitConfig holds rate limiting configuration, in requests per minute
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
	AI    int `mapstructure:"ai"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// Load loads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pakbuy/")

	// Environment variable settings: server.port -> PAKBUY_SERVER_PORT
	v.SetEnvPrefix("PAKBUY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Platform-provided names take part too
	_ = v.BindEnv("server.port", "PAKBUY_SERVER_PORT", "PORT")
	_ = v.BindEnv("ai.api_key", "PAKBUY_AI_API_KEY", "GEMINI_API_KEY")

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads KEY=VALUE pairs from ./.env into the process environment.
// Existing variables win; a missing file is not an error.
func loadEnvFile() error {
	err := godotenv.Load(".env")
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// AI defaults
	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.base_url", "https://generativelanguage.googleapis.com/")
	v.SetDefault("ai.timeout", "3s")
	v.SetDefault("ai.self_test", true)

	// Cache defaults
	v.SetDefault("cache.capacity", 1000)

	// Cleaning defaults
	v.SetDefault("cleaning.default_budget", "3s")
	v.SetDefault("cleaning.batch_concurrency", 4)
	v.SetDefault("cleaning.max_batch_size", 100)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.ai", 600)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set PAKBUY_SERVER_PORT or PORT)")
	}

	if config.AI.Provider != "gemini" {
		return fmt.Errorf("AI provider must be 'gemini', got: %s", config.AI.Provider)
	}

	if config.AI.Timeout <= 0 {
		return fmt.Errorf("AI timeout must be positive, got: %s", config.AI.Timeout)
	}

	if config.Cache.Capacity <= 0 {
		return fmt.Errorf("cache capacity must be positive, got: %d", config.Cache.Capacity)
	}

	if config.Cleaning.DefaultBudget <= 0 {
		return fmt.Errorf("cleaning default budget must be positive, got: %s", config.Cleaning.DefaultBudget)
	}

	if config.Cleaning.BatchConcurrency <= 0 {
		return fmt.Errorf("batch concurrency must be positive, got: %d", config.Cleaning.BatchConcurrency)
	}

	if config.Cleaning.MaxBatchSize <= 0 {
		return fmt.Errorf("max batch size must be positive, got: %d", config.Cleaning.MaxBatchSize)
	}

	if !logging.ValidLevel(config.Log.Level) {
		return fmt.Errorf("log level must be one of trace, debug, info, warn, error, got: %s", config.Log.Level)
	}

	if config.Log.Format != "json" && config.Log.Format != "console" {
		return fmt.Errorf("log format must be 'json' or 'console', got: %s", config.Log.Format)
	}

	return nil
}
