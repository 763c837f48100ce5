package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		URI  string `yaml:"uri" env:"MONGODB_URI"`
		Name string `yaml:"name" env:"MONGODB_DB_NAME"`
	} `yaml:"database"`

	JWT struct {
		Secret          string `yaml:"secret" env:"JWT_SECRET"`
		TokenExpiration string `yaml:"token_expiration" env:"JWT_TOKEN_EXPIRATION"`
		Issuer          string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	RateLimit struct {
		AuthPerMinute int `yaml:"auth_per_minute" env:"RATE_LIMIT_AUTH_PER_MINUTE"`
		Burst         int `yaml:"burst" env:"RATE_LIMIT_BURST"`
	} `yaml:"rate_limit"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// placeholderFragments are substrings that indicate a connection string
// or database name was copied from a template and never filled in.
// They must produce a clear startup error instead of a late, opaque
// connection failure.
var placeholderFragments = []string{
	"<password>",
	"<username>",
	"YOUR_",
	"data-abcde",
	"changeme",
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; env vars alone can carry the settings.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	// Validate config
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Name = "aau_lost_found"

	config.JWT.TokenExpiration = "12h"
	config.JWT.Issuer = "aau-found-it"

	config.RateLimit.AuthPerMinute = 30
	config.RateLimit.Burst = 10

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.URI == "" {
		return fmt.Errorf("database URI is required (set MONGODB_URI or database.uri)")
	}
	if frag := placeholderIn(config.Database.URI); frag != "" {
		return fmt.Errorf("database URI still contains the placeholder %q; fill in the real connection string", frag)
	}

	if config.Database.Name == "" {
		return fmt.Errorf("database name is required (set MONGODB_DB_NAME or database.name)")
	}
	if frag := placeholderIn(config.Database.Name); frag != "" {
		return fmt.Errorf("database name still contains the placeholder %q", frag)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.TokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT token expiration format: %w", err)
	}

	return nil
}

// placeholderIn returns the first template placeholder found in v, or
// the empty string when v looks like a real value.
func placeholderIn(v string) string {
	for _, frag := range placeholderFragments {
		if strings.Contains(v, frag) {
			return frag
		}
	}
	return ""
}

// TokenExpiration returns the parsed JWT token lifetime.
func (c *Config) TokenExpiration() time.Duration {
	d, err := time.ParseDuration(c.JWT.TokenExpiration)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
