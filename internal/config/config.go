package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	CORS     CORSConfig
	Submit   SubmitConfig
	Sessions SessionConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// SubmitConfig holds the acknowledgment endpoint configuration. By
// default submissions loop back to this service's own stub.
type SubmitConfig struct {
	URL     string
	Timeout time.Duration
}

// SessionConfig holds limits on the in-memory session store.
type SessionConfig struct {
	Max int
}

// Load reads configuration from environment variables.
// It uses viper to read values and provides sensible defaults for development.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults for development
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")
	v.SetDefault("SUBMIT_URL", "http://localhost:8080/api/submit")
	v.SetDefault("SUBMIT_TIMEOUT_SECONDS", 30)
	v.SetDefault("SESSION_MAX", 1000)

	// Bind environment variables
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
		Submit: SubmitConfig{
			URL:     v.GetString("SUBMIT_URL"),
			Timeout: time.Duration(v.GetInt("SUBMIT_TIMEOUT_SECONDS")) * time.Second,
		},
		Sessions: SessionConfig{
			Max: v.GetInt("SESSION_MAX"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}
	if c.Submit.URL == "" {
		return fmt.Errorf("SUBMIT_URL is required")
	}
	if c.Submit.Timeout <= 0 {
		return fmt.Errorf("SUBMIT_TIMEOUT_SECONDS must be positive")
	}
	if c.Sessions.Max < 1 {
		return fmt.Errorf("SESSION_MAX must be at least 1")
	}
	return nil
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
