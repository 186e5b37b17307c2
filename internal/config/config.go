package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Courier     CourierConfig
	Payment     PaymentConfig
	Rates       RatesConfig
	Content     ContentConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// CourierConfig holds credentials for the parcel-registration service
type CourierConfig struct {
	BaseURL string
	APIKey  string
}

// PaymentConfig holds credentials for the online payment gateway
type PaymentConfig struct {
	BaseURL       string
	StoreID       string
	StorePassword string
}

// RatesConfig points at the delivery-charge/geo service
type RatesConfig struct {
	BaseURL string
}

// ContentConfig points at the content-catalog collection endpoints used by
// the mobile-app navigation admin
type ContentConfig struct {
	BaseURL string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "marketplace"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Courier: CourierConfig{
			BaseURL: getEnvOrViper("COURIER_BASE_URL", ""),
			APIKey:  getEnvOrViper("COURIER_API_KEY", ""),
		},
		Payment: PaymentConfig{
			BaseURL:       getEnvOrViper("PAYMENT_BASE_URL", ""),
			StoreID:       getEnvOrViper("PAYMENT_STORE_ID", ""),
			StorePassword: getEnvOrViper("PAYMENT_STORE_PASSWORD", ""),
		},
		Rates: RatesConfig{
			BaseURL: getEnvOrViper("RATES_BASE_URL", ""),
		},
		Content: ContentConfig{
			BaseURL: getEnvOrViper("CONTENT_BASE_URL", ""),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Courier.BaseURL == "" {
		return nil, fmt.Errorf("COURIER_BASE_URL is required")
	}
	if cfg.Payment.BaseURL == "" {
		return nil, fmt.Errorf("PAYMENT_BASE_URL is required")
	}
	if cfg.Rates.BaseURL == "" {
		return nil, fmt.Errorf("RATES_BASE_URL is required")
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
