package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	CORS    CORSConfig
	Tracing TracingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// BackendConfig holds connection settings for the remote backend-as-a-service
// that owns all property, inquiry, and user data.
type BackendConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// TracingConfig holds OTLP trace export configuration. An empty endpoint
// disables tracing entirely.
type TracingConfig struct {
	Endpoint string
}

// Load reads configuration from environment variables.
// It uses viper to read values and provides sensible defaults for development.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults for development
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("BACKEND_BASE_URL", "http://localhost:9000")
	v.SetDefault("BACKEND_TIMEOUT_SECONDS", 10)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	// Bind environment variables
	v.AutomaticEnv()

	// Build configuration
	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/"),
			APIKey:  v.GetString("BACKEND_API_KEY"),
			Timeout: time.Duration(v.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
		Tracing: TracingConfig{
			Endpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	// Validate backend config
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("BACKEND_BASE_URL must be an http or https URL")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT_SECONDS must be positive")
	}

	// Validate CORS config
	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
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
