package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string
	Environment  string
	LogLevel     string
	Collaborator CollaboratorConfig
	Upload       UploadConfig
	Cart         CartConfig
}

// CollaboratorConfig is used to call the remote pricing/upload/order
// collaborator. A single endpoint serves all three actions.
type CollaboratorConfig struct {
	EndpointURL   string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

type UploadConfig struct {
	MaxFileSize   int64  // bytes
	AcceptedTypes string // comma-separated extensions
}

// CartConfig controls the durable cart snapshot, the only on-disk
// artifact the storefront owns
type CartConfig struct {
	FilePath string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("COLLABORATOR_TIMEOUT_SECONDS", 30)
	viper.SetDefault("RETRY_ATTEMPTS", 3)
	viper.SetDefault("RETRY_DELAY_MS", 1000)
	viper.SetDefault("MAX_FILE_SIZE_MB", 100)
	viper.SetDefault("ACCEPTED_FILE_TYPES", ".pdf,.doc,.docx,.jpg,.jpeg,.png,.ppt,.pptx,.xls,.xlsx")
	viper.SetDefault("CART_FILE", "cart.json")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Collaborator: CollaboratorConfig{
			EndpointURL:   strings.TrimSpace(getEnvOrViper("COLLABORATOR_URL", "")),
			Timeout:       time.Duration(viper.GetInt("COLLABORATOR_TIMEOUT_SECONDS")) * time.Second,
			RetryAttempts: viper.GetInt("RETRY_ATTEMPTS"),
			RetryDelay:    time.Duration(viper.GetInt("RETRY_DELAY_MS")) * time.Millisecond,
		},
		Upload: UploadConfig{
			MaxFileSize:   int64(viper.GetInt("MAX_FILE_SIZE_MB")) * 1024 * 1024,
			AcceptedTypes: getEnvOrViper("ACCEPTED_FILE_TYPES", ".pdf,.doc,.docx,.jpg,.jpeg,.png,.ppt,.pptx,.xls,.xlsx"),
		},
		Cart: CartConfig{
			FilePath: getEnvOrViper("CART_FILE", "cart.json"),
		},
	}

	// Validate required fields
	if cfg.Collaborator.EndpointURL == "" {
		return nil, fmt.Errorf("COLLABORATOR_URL is required")
	}
	if cfg.Collaborator.RetryAttempts < 1 {
		return nil, fmt.Errorf("RETRY_ATTEMPTS must be at least 1")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
