// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// defaultZones mirrors the airport deployment this service was built for.
// Override with a comma-separated ZONES value.
var defaultZones = []string{
	"terminal_entry", "security", "customs",
	"boarding_gate", "transfer", "amenities",
}

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// RedisAddr is the host:port of the shared ephemeral store. Required.
	RedisAddr string

	// RedisPassword is the optional store password. Empty means no auth.
	RedisPassword string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// TokenTTL is the lifetime of an issued token. Defaults to 1h.
	TokenTTL time.Duration

	// Zones is the fixed set of scannable zones. Defaults to defaultZones.
	Zones []string

	// WindowMinutes is the trailing window scan rates are measured over.
	// Defaults to 5.
	WindowMinutes int

	// LowMax and MediumMax are the congestion score thresholds: scores
	// below LowMax classify LOW, below MediumMax MEDIUM, else HIGH.
	// Defaults 100 and 300; MediumMax must exceed LowMax.
	LowMax    float64
	MediumMax float64

	// StoreTimeout bounds every individual store call. Defaults to 2s.
	StoreTimeout time.Duration

	// AggregateInterval switches congestion queries from per-request
	// aggregation (0, the default) to a periodic background refresh.
	AggregateInterval time.Duration

	// QRBaseURL is the origin embedded in issued QR codes.
	// Defaults to "http://localhost:8080".
	QRBaseURL string

	// QRSize is the pixel width/height of issued QR PNGs. Defaults to 300.
	QRSize int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming the first variable that is missing or malformed.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		Zones:         splitCSV(getEnv("ZONES", strings.Join(defaultZones, ","))),
		QRBaseURL:     getEnv("QR_BASE_URL", "http://localhost:8080"),
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		return Config{}, fmt.Errorf("required environment variables not set: REDIS_ADDR")
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.StoreTimeout, err = getDuration("STORE_TIMEOUT", 2*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.AggregateInterval, err = getDuration("AGGREGATE_INTERVAL", 0); err != nil {
		return Config{}, err
	}
	if cfg.WindowMinutes, err = getInt("WINDOW_MINUTES", 5); err != nil {
		return Config{}, err
	}
	if cfg.QRSize, err = getInt("QR_SIZE", 300); err != nil {
		return Config{}, err
	}
	if cfg.LowMax, err = getFloat("CONGESTION_LOW_MAX", 100); err != nil {
		return Config{}, err
	}
	if cfg.MediumMax, err = getFloat("CONGESTION_MEDIUM_MAX", 300); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate enforces cross-field rules that per-variable parsing cannot.
func (c Config) validate() error {
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive, got %s", c.StoreTimeout)
	}
	if c.WindowMinutes < 1 {
		return fmt.Errorf("WINDOW_MINUTES must be at least 1, got %d", c.WindowMinutes)
	}
	if c.MediumMax <= c.LowMax {
		return fmt.Errorf("CONGESTION_MEDIUM_MAX (%g) must exceed CONGESTION_LOW_MAX (%g)", c.MediumMax, c.LowMax)
	}
	if len(c.Zones) == 0 {
		return fmt.Errorf("ZONES must name at least one zone")
	}
	if c.QRSize < 1 {
		return fmt.Errorf("QR_SIZE must be positive, got %d", c.QRSize)
	}
	return nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses the environment variable named by key as a
// time.Duration (e.g. "90s", "1h"), or returns fallback when unset.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// getInt parses the environment variable named by key as an int,
// or returns fallback when unset.
func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// getFloat parses the environment variable named by key as a float64,
// or returns fallback when unset.
func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
