package common

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/procuredocs/extractor/constants"
)

// Config holds all application configuration
type Config struct {
	Extract  ExtractConfig
	Vision   VisionConfig
	Store    StoreConfig
	LogLevel slog.Level
}

// ExtractConfig holds text-layer extraction configuration
type ExtractConfig struct {
	// MinTextChars is the minimum trimmed text length for the text layer to
	// count as a successful extraction.
	MinTextChars int
	// LicenseKey is the unipdf metered license key, if any.
	LicenseKey string
}

// VisionConfig holds vision-fallback configuration
type VisionConfig struct {
	// Endpoint of the document-model inference service. Empty means the
	// vision fallback is not configured; that is a capability flag, not an
	// error condition.
	Endpoint  string
	Timeout   time.Duration
	MaxLength int

	// Pdftoppm is the rasterizer binary name or absolute path.
	Pdftoppm string
	// DPI for first-page rasterization; 0 uses the rasterizer's default.
	DPI int
}

// StoreConfig holds the batch job-history store configuration
type StoreConfig struct {
	// DSN is the sqlite database path; empty selects an in-memory database.
	DSN string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			MinTextChars: getEnvAsInt("EXTRACT_MIN_TEXT_CHARS", constants.MinTextChars),
			LicenseKey:   getEnv("UNIDOC_LICENSE_API_KEY", ""),
		},
		Vision: VisionConfig{
			Endpoint:  getEnv("DONUT_ENDPOINT", ""),
			Timeout:   getEnvAsDuration("DONUT_TIMEOUT", 60*time.Second),
			MaxLength: getEnvAsInt("DONUT_MAX_LENGTH", 512),
			Pdftoppm:  getEnv("PDFTOPPM", "pdftoppm"),
			DPI:       getEnvAsInt("RASTER_DPI", 0),
		},
		Store: StoreConfig{
			DSN: getEnv("JOBS_DB_PATH", ""),
		},
		LogLevel: parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Extract.MinTextChars <= 0 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_MIN_TEXT_CHARS must be positive", ErrInvalidInput)
	}
	if c.Vision.MaxLength <= 0 {
		return NewAppError("CONFIG_ERROR", "DONUT_MAX_LENGTH must be positive", ErrInvalidInput)
	}
	if c.Vision.Timeout <= 0 {
		return NewAppError("CONFIG_ERROR", "DONUT_TIMEOUT must be positive", ErrInvalidInput)
	}
	return nil
}
