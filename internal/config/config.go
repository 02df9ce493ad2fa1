package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Estimator EstimatorConfig
	Geocoder  GeocoderConfig
	Cache     CacheConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	PoolMin  int
	PoolMax  int
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// EstimatorConfig holds settings for the AI property-tax estimation service.
type EstimatorConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// GeocoderConfig holds settings for the ZIP geocoding providers.
// The primary provider requires an API key; the fallback is keyless.
type GeocoderConfig struct {
	PrimaryURL  string
	APIKey      string
	FallbackURL string
	Timeout     time.Duration
}

// CacheConfig holds settings for the property-tax record cache.
type CacheConfig struct {
	TTL           time.Duration
	MaxEntries    int
	SweepInterval time.Duration
}

// Load reads configuration from environment variables.
// It uses viper to read values and provides sensible defaults for development.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults for development
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_HOST", "host.docker.internal")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "homeward")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_POOL_MIN", 2)
	v.SetDefault("DB_POOL_MAX", 10)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")
	v.SetDefault("ESTIMATOR_URL", "http://localhost:11434")
	v.SetDefault("ESTIMATOR_MODEL", "tax-estimator-v1")
	v.SetDefault("ESTIMATOR_TIMEOUT_SECONDS", 5)
	v.SetDefault("GEOCODER_URL", "https://api.geocod.io/v1.7")
	v.SetDefault("GEOCODER_FALLBACK_URL", "https://api.zippopotam.us")
	v.SetDefault("GEOCODER_TIMEOUT_SECONDS", 5)
	v.SetDefault("CACHE_TTL_HOURS", 720)
	v.SetDefault("CACHE_MAX_ENTRIES", 1000)
	v.SetDefault("CACHE_SWEEP_INTERVAL_HOURS", 24)

	// Bind environment variables
	v.AutomaticEnv()

	// Build configuration
	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			PoolMin:  v.GetInt("DB_POOL_MIN"),
			PoolMax:  v.GetInt("DB_POOL_MAX"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
		Estimator: EstimatorConfig{
			BaseURL: v.GetString("ESTIMATOR_URL"),
			Model:   v.GetString("ESTIMATOR_MODEL"),
			Timeout: time.Duration(v.GetInt("ESTIMATOR_TIMEOUT_SECONDS")) * time.Second,
		},
		Geocoder: GeocoderConfig{
			PrimaryURL:  v.GetString("GEOCODER_URL"),
			APIKey:      v.GetString("GEOCODER_API_KEY"),
			FallbackURL: v.GetString("GEOCODER_FALLBACK_URL"),
			Timeout:     time.Duration(v.GetInt("GEOCODER_TIMEOUT_SECONDS")) * time.Second,
		},
		Cache: CacheConfig{
			TTL:           time.Duration(v.GetInt("CACHE_TTL_HOURS")) * time.Hour,
			MaxEntries:    v.GetInt("CACHE_MAX_ENTRIES"),
			SweepInterval: time.Duration(v.GetInt("CACHE_SWEEP_INTERVAL_HOURS")) * time.Hour,
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

	// Validate database config
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Port == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.PoolMin < 0 {
		return fmt.Errorf("DB_POOL_MIN must be non-negative")
	}
	if c.Database.PoolMax < 1 {
		return fmt.Errorf("DB_POOL_MAX must be at least 1")
	}
	if c.Database.PoolMin > c.Database.PoolMax {
		return fmt.Errorf("DB_POOL_MIN must be less than or equal to DB_POOL_MAX")
	}

	// Validate CORS config
	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	// Validate external service config
	if c.Estimator.BaseURL == "" {
		return fmt.Errorf("ESTIMATOR_URL is required")
	}
	if c.Estimator.Timeout <= 0 {
		return fmt.Errorf("ESTIMATOR_TIMEOUT_SECONDS must be positive")
	}
	if c.Geocoder.PrimaryURL == "" {
		return fmt.Errorf("GEOCODER_URL is required")
	}
	if c.Geocoder.FallbackURL == "" {
		return fmt.Errorf("GEOCODER_FALLBACK_URL is required")
	}
	if c.Geocoder.Timeout <= 0 {
		return fmt.Errorf("GEOCODER_TIMEOUT_SECONDS must be positive")
	}

	// Validate cache config
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL_HOURS must be positive")
	}
	if c.Cache.MaxEntries < 1 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be at least 1")
	}
	if c.Cache.SweepInterval <= 0 {
		return fmt.Errorf("CACHE_SWEEP_INTERVAL_HOURS must be positive")
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
