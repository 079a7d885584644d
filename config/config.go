package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Walmart WalmartConfig
	Mongo   MongoConfig
	Log     LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// WalmartConfig holds the affiliate API credentials and pipeline knobs.
// The private key stays in memory only and must never be logged.
type WalmartConfig struct {
	ConsumerID         string   `mapstructure:"consumer_id"`
	KeyVersion         string   `mapstructure:"key_version"`
	PrivateKey         string   `mapstructure:"private_key"`
	AffiliateID        string   `mapstructure:"affiliate_id"`
	SearchURL          string   `mapstructure:"search_url"`
	CartURL            string   `mapstructure:"cart_url"`
	CartItemsParam     string   `mapstructure:"cart_items_param"`
	TimeoutSeconds     int      `mapstructure:"timeout_seconds"`
	MaxParallel        int      `mapstructure:"max_parallel"`
	PerIngredientLimit int      `mapstructure:"per_ingredient_limit"`
	MaxCartTotal       float64  `mapstructure:"max_cart_total"`
	MockIDPrefixes     []string `mapstructure:"mock_id_prefixes"`
	MockIDDenylist     []string `mapstructure:"mock_id_denylist"`
}

// MongoConfig holds document-store configuration
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment variables and an optional
// config file. Keys map to env vars with dots replaced by underscores, so
// walmart.consumer_id binds to WALMART_CONSUMER_ID.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/dishcart/")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
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

// setDefaults sets default configuration values. Every key needs a default
// (even an empty one) so AutomaticEnv can see its env override.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Walmart affiliate defaults
	v.SetDefault("walmart.consumer_id", "")
	v.SetDefault("walmart.key_version", "1")
	v.SetDefault("walmart.private_key", "")
	v.SetDefault("walmart.affiliate_id", "")
	v.SetDefault("walmart.search_url", "")
	v.SetDefault("walmart.cart_url", "")
	v.SetDefault("walmart.cart_items_param", "items")
	v.SetDefault("walmart.timeout_seconds", 20)
	v.SetDefault("walmart.max_parallel", 6)
	v.SetDefault("walmart.per_ingredient_limit", 3)
	v.SetDefault("walmart.max_cart_total", 0)
	v.SetDefault("walmart.mock_id_prefixes", []string{})
	v.SetDefault("walmart.mock_id_denylist", []string{})

	// Mongo defaults
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "dishcart")

	// Log defaults
	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Walmart.ConsumerID == "" {
		return fmt.Errorf("Walmart consumer id is required (set WALMART_CONSUMER_ID)")
	}
	if config.Walmart.KeyVersion == "" {
		return fmt.Errorf("Walmart key version is required (set WALMART_KEY_VERSION)")
	}
	if config.Walmart.PrivateKey == "" {
		return fmt.Errorf("Walmart private key is required (set WALMART_PRIVATE_KEY)")
	}

	if config.Walmart.TimeoutSeconds < 15 || config.Walmart.TimeoutSeconds > 30 {
		return fmt.Errorf("Walmart timeout must be between 15 and 30 seconds, got: %d", config.Walmart.TimeoutSeconds)
	}
	if config.Walmart.MaxParallel < 1 {
		return fmt.Errorf("Walmart max parallel must be positive, got: %d", config.Walmart.MaxParallel)
	}
	if config.Walmart.PerIngredientLimit < 1 {
		return fmt.Errorf("Walmart per-ingredient limit must be positive, got: %d", config.Walmart.PerIngredientLimit)
	}

	if config.Mongo.URI == "" {
		return fmt.Errorf("Mongo URI is required (set MONGO_URI)")
	}
	if config.Mongo.Database == "" {
		return fmt.Errorf("Mongo database is required (set MONGO_DATABASE)")
	}

	return nil
}
