// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server settings.
	Port                int
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	MaxRequestBodyBytes int64

	// Storage settings. A postgres:// URL selects the pgx backend; any other
	// value is a SQLite file path.
	DatabaseURL string

	// Analysis settings.
	PredictionHorizonDays    int
	ViralThresholdMultiplier float64
	TopKeywords              int
	ReportVideoLimit         int // videos scanned per batch report

	// OTEL settings.
	OTELEndpoint string
	OTELInsecure bool
	ServiceName  string

	// Operational settings.
	LogLevel string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:                     envInt("VLENS_PORT", 8080),
		ReadTimeout:              envDuration("VLENS_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:             envDuration("VLENS_WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBodyBytes:      int64(envInt("VLENS_MAX_REQUEST_BODY_BYTES", 1*1024*1024)),
		DatabaseURL:              envStr("DATABASE_URL", "vlens.db"),
		PredictionHorizonDays:    envInt("VLENS_PREDICTION_HORIZON_DAYS", 30),
		ViralThresholdMultiplier: envFloat("VLENS_VIRAL_THRESHOLD_MULTIPLIER", 2.0),
		TopKeywords:              envInt("VLENS_TOP_KEYWORDS", 10),
		ReportVideoLimit:         envInt("VLENS_REPORT_VIDEO_LIMIT", 500),
		OTELEndpoint:             envStr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELInsecure:             envBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		ServiceName:              envStr("OTEL_SERVICE_NAME", "vlens"),
		LogLevel:                 envStr("VLENS_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present and sane.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}
	if c.PredictionHorizonDays <= 0 {
		return fmt.Errorf("config: VLENS_PREDICTION_HORIZON_DAYS must be positive")
	}
	if c.ViralThresholdMultiplier <= 0 {
		return fmt.Errorf("config: VLENS_VIRAL_THRESHOLD_MULTIPLIER must be positive")
	}
	if c.MaxRequestBodyBytes <= 0 {
		return fmt.Errorf("config: VLENS_MAX_REQUEST_BODY_BYTES must be positive")
	}
	return nil
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
