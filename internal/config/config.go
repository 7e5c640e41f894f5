package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the relay service
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Providers
	ProvidersFile   string
	DefaultProvider string
	ProviderTimeout time.Duration

	// Security
	JWTSecret  string
	APIKeyHash string

	// Events
	NATSURL     string
	NATSSubject string

	// Observability
	OTLPEndpoint   string
	MetricsEnabled bool
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present; real environment
// variables take precedence over it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("GO_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ProvidersFile:   getEnv("PROVIDERS_FILE", ""),
		DefaultProvider: getEnv("DEFAULT_PROVIDER", ""),
		ProviderTimeout: getDuration("PROVIDER_TIMEOUT", 0),
		JWTSecret:       getEnv("RELAY_JWT_SECRET", ""),
		APIKeyHash:      getEnv("RELAY_API_KEY_HASH", ""),
		NATSURL:         getEnv("NATS_URL", ""),
		NATSSubject:     getEnv("NATS_SUBJECT", "imagerelay.generations"),
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		MetricsEnabled:  getBool("METRICS_ENABLED", true),
	}
}

// AuthEnabled reports whether inbound requests must carry a credential.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != "" || c.APIKeyHash != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

// getDuration accepts Go durations ("30s") or a bare number of seconds.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
