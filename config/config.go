package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

// Load reads .env when present and fails fast on missing database settings.
// The struct is handed to main and injected from there; nothing here is a
// package global.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, relying on environment")
	}

	cfg := &Config{
		ServerPort: envOrDefault("SERVER_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBName:     os.Getenv("DB_NAME"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBSSLMode:  envOrDefault("DB_SSL_MODE", "disable"),
	}

	for name, value := range map[string]string{
		"DB_HOST": cfg.DBHost,
		"DB_NAME": cfg.DBName,
		"DB_USER": cfg.DBUser,
	} {
		if value == "" {
			return nil, fmt.Errorf("%s is not set", name)
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
