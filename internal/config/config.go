package config

import (
	"os"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	ListenAddr    string

	// LegacyStatusFilter keeps the historical member-removal guard that
	// matches "Not started"/"In progress" literally. Task creation has
	// always written "Not Started"/"In Progress", so with this enabled the
	// guard never fires. Off by default.
	LegacyStatusFilter bool
}

func Load() *Config {
	return &Config{
		DBDriver:           getEnv("DB_DRIVER", "mysql"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "3306"),
		DBUser:             getEnv("DB_USER", "teamflow"),
		DBPassword:         getEnv("DB_PASSWORD", "teamflow"),
		DBName:             getEnv("DB_NAME", "teamflow"),
		RedisHost:          getEnv("REDIS_HOST", "localhost"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		SessionSecret:      getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		ListenAddr:         getEnv("LISTEN_ADDR", ":8080"),
		LegacyStatusFilter: getEnv("LEGACY_STATUS_FILTER", "") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
