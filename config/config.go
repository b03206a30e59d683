// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"log"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port            string `mapstructure:"PORT"`
	APIBaseURL      string `mapstructure:"API_BASE_URL"`
	RedisURL        string `mapstructure:"REDIS_URL"`
	SessionSecret   string `mapstructure:"SESSION_SECRET"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() *Config {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if errors.As(err, &notFoundErr) {
			log.Println("Config file not found; using environment variables and defaults")
		} else {
			log.Fatalf("Error reading config file: %s", err)
		}
	}

	// Set default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("API_BASE_URL", "http://localhost:8000/api")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("SESSION_SECRET", "your-secret-key-change-in-production")
	viper.SetDefault("SESSION_TTL_HOURS", 72)
	viper.SetDefault("CACHE_TTL_SECONDS", 300)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode config into struct, %v", err)
	}

	return &config
}
