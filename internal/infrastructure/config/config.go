// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// PostgreSQL
	DBHost           string
	DBPort           int
	DBName           string
	DBUser           string
	DBPassword       string
	DBSSLMode        string
	DBConnectTimeout time.Duration

	// Metrics
	MetricsNamespace string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnvAsInt("DB_PORT", 5432),
		DBName:           getEnv("DB_NAME", "baggage_db"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		DBConnectTimeout: time.Duration(getEnvAsInt("DB_CONNECT_TIMEOUT", 10)) * time.Second,

		MetricsNamespace: getEnv("METRICS_NAMESPACE", "baggage"),
	}

	if config.DBPort <= 0 || config.DBPort > 65535 {
		return nil, fmt.Errorf("invalid DB_PORT %d", config.DBPort)
	}

	return config, nil
}

// DSN builds the PostgreSQL connection URL
func (c *Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	if c.DBConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(int(c.DBConnectTimeout/time.Second)))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
