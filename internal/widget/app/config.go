package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./widget.db)
	RegistryFile        string        // Optional: YAML client registry; when set the database is not used
	MasterKeyPath       string        // Optional: master key file for sealing client secrets at rest
	PublicURL           string        // Optional: externally visible base URL for widget links (default: http://localhost:8080)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		DatabaseFile:        getEnvOrDefault("WIDGET_DATABASE_FILE", "widget.db"),
		RegistryFile:        os.Getenv("WIDGET_REGISTRY_FILE"),
		MasterKeyPath:       os.Getenv("WIDGET_MASTER_KEY_PATH"),
		PublicURL:           getEnvOrDefault("WIDGET_PUBLIC_URL", "http://localhost:8080"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
