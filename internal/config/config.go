// Package config loads settings for the client and the dev API.
//
// Values come from, in increasing priority: built-in defaults, an optional
// realspace.yaml in the working directory, and REALSPACE_* environment
// variables (REALSPACE_API_BASE_URL, REALSPACE_PORT, ...).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable.
const EnvPrefix = "REALSPACE"

// minSecretLen is the shortest JWT secret the dev API accepts.
const minSecretLen = 16

// Client holds the client-side settings.
type Client struct {
	APIBaseURL     string        `mapstructure:"API_BASE_URL"`
	KeyringService string        `mapstructure:"KEYRING_SERVICE"`
	KeyringAccount string        `mapstructure:"KEYRING_ACCOUNT"`
	HTTPTimeout    time.Duration `mapstructure:"HTTP_TIMEOUT"` // 0 leaves the platform default
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	LogFormat      string        `mapstructure:"LOG_FORMAT"`
}

// API holds the dev API settings.
type API struct {
	Port      int           `mapstructure:"PORT"`
	DBPath    string        `mapstructure:"DB_PATH"`
	JWTSecret string        `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL"`
	LogLevel  string        `mapstructure:"LOG_LEVEL"`
	LogFormat string        `mapstructure:"LOG_FORMAT"`
}

// LoadClient reads client settings.
func LoadClient() (*Client, error) {
	v := newViper()
	v.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("KEYRING_SERVICE", "com.realspace.app")
	v.SetDefault("KEYRING_ACCOUNT", "jwt_token")
	v.SetDefault("HTTP_TIMEOUT", "0s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	if err := readFile(v); err != nil {
		return nil, err
	}

	var cfg Client
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// LoadAPI reads dev API settings.
func LoadAPI() (*API, error) {
	v := newViper()
	v.SetDefault("PORT", 8080)
	v.SetDefault("DB_PATH", "data/realspace.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	if err := readFile(v); err != nil {
		return nil, err
	}

	var cfg API
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the client settings.
func (c *Client) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("API_BASE_URL %q must be an absolute http(s) URL", c.APIBaseURL)
	}
	if c.KeyringService == "" || c.KeyringAccount == "" {
		return errors.New("KEYRING_SERVICE and KEYRING_ACCOUNT are required")
	}
	if c.HTTPTimeout < 0 {
		return errors.New("HTTP_TIMEOUT must not be negative")
	}
	return nil
}

// Validate checks the dev API settings.
func (c *API) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d is out of range", c.Port)
	}
	if c.DBPath == "" {
		return errors.New("DB_PATH is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < minSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLen)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("realspace")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// readFile merges realspace.yaml when present. A missing file is not an error.
func readFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}
