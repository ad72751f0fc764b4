package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string
	Env  string

	// Database configuration
	DBType               string // sqlite, sqlite3, mysql, postgres, sqlserver
	DBHost               string
	DBPort               string
	DBDatabase           string // file path for sqlite
	DBAppUser            string
	DBAppPassword        string
	DBAppConnectionLimit int

	// Document store configuration
	DocumentKey string
	LogCap      int

	// Heartbeat configuration
	HeartbeatURL      string
	HeartbeatInterval time.Duration
	HeartbeatTimeout  time.Duration

	LogLevel string
}

// Development reports whether APP_ENV selects development mode.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// IsSQLite reports whether the configured driver is a SQLite flavour.
func (c *Config) IsSQLite() bool {
	return c.DBType == "sqlite" || c.DBType == "sqlite3"
}

// Load loads configuration from the environment, reading .env first when present
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "3000"),
		Env:                  getEnv("APP_ENV", "production"),
		DBType:               strings.ToLower(getEnv("DB_TYPE", "sqlite")),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", ""),
		DBDatabase:           getEnv("DB_APP_DATABASE", ""),
		DBAppUser:            getEnv("DB_APP_USER", ""),
		DBAppPassword:        getEnv("DB_APP_PASSWORD", ""),
		DBAppConnectionLimit: getEnvAsInt("DB_APP_CONNECTION_LIMIT", 5),
		DocumentKey:          getEnv("DOCUMENT_KEY", "vortex_v3_data"),
		LogCap:               getEnvAsInt("LOG_CAP", 15),
		HeartbeatURL:         getEnv("HEARTBEAT_URL", "https://www.google.com"),
		HeartbeatInterval:    getEnvAsDuration("HEARTBEAT_INTERVAL", 30*time.Second),
		HeartbeatTimeout:     getEnvAsDuration("HEARTBEAT_TIMEOUT", 5*time.Second),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DBPort == "" {
		cfg.DBPort = defaultPort(cfg.DBType)
	}

	// Validate required fields
	switch cfg.DBType {
	case "sqlite", "sqlite3":
		if cfg.DBDatabase == "" {
			cfg.DBDatabase = "vortex.db"
		}
	case "mysql", "mariadb", "postgres", "sqlserver":
		if cfg.DBDatabase == "" {
			return nil, fmt.Errorf("DB_APP_DATABASE is required")
		}
		if cfg.DBAppUser == "" {
			return nil, fmt.Errorf("DB_APP_USER is required")
		}
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE: %s", cfg.DBType)
	}
	if cfg.DocumentKey == "" {
		return nil, fmt.Errorf("DOCUMENT_KEY is required")
	}
	if cfg.LogCap < 1 {
		return nil, fmt.Errorf("LOG_CAP must be positive")
	}
	if cfg.HeartbeatInterval <= 0 {
		return nil, fmt.Errorf("HEARTBEAT_INTERVAL must be positive")
	}

	return cfg, nil
}

func defaultPort(dbType string) string {
	switch dbType {
	case "postgres":
		return "5432"
	case "sqlserver":
		return "1433"
	}
	return "3306"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("30s") or bare seconds ("30")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
