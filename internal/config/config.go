package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port          string
	BackendURL    string
	Env           string
	LocalStoreDSN string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by user) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "3000")
	cfg.BackendURL = getEnv("BACKEND_URL", "http://localhost:8080")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.LocalStoreDSN = getEnv("LOCALSTORE_DSN", "webtier.db")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
