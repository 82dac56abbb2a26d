package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Env          string
	DBDriver     string // "sqlite" for the desktop-local store, "postgres" for server mode
	PostgresURL  string
	SQLitePath   string
	MaxFileBytes int
	PollInterval time.Duration
	ReapInterval time.Duration
}

func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		DBDriver:     getEnv("DB_DRIVER", "sqlite"),
		PostgresURL:  getEnv("POSTGRES_CONN_STR", ""),
		SQLitePath:   getEnv("SQLITE_PATH", "message.db"),
		MaxFileBytes: getEnvInt("MAX_FILE_BYTES", 10<<20),
		PollInterval: getEnvDuration("POLL_INTERVAL", 2*time.Second),
		ReapInterval: getEnvDuration("REAP_INTERVAL", 10*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
