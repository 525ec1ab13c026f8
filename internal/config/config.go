package config

import (
	"os"
	"time"
)

type Config struct {
	DBDriver         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	SQLitePath       string
	JWTSecret        string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	GinMode          string
	ServerPort       string
	SeedDefaultUsers bool
}

func Load() *Config {
	return &Config{
		DBDriver:         getEnv("DB_DRIVER", "postgres"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "timelink"),
		DBPassword:       getEnv("DB_PASSWORD", "timelink"),
		DBName:           getEnv("DB_NAME", "timelink"),
		SQLitePath:       getEnv("SQLITE_PATH", "timelink.db"),
		JWTSecret:        getEnv("JWT_SECRET", "jwt-secret-key-change-in-production"),
		AccessTokenTTL:   24 * time.Hour,
		RefreshTokenTTL:  30 * 24 * time.Hour,
		GinMode:          getEnv("GIN_MODE", "debug"),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		SeedDefaultUsers: getEnv("SEED_DEFAULT_USERS", "true") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
