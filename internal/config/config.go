package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBPath     string
	Env        string
	CORSOrigin string
}

// Load reads configuration from the environment, with a .env file as
// fallback for local development. Every setting has a usable default.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:       getenv("PORT", "8080"),
		DBPath:     getenv("DB_PATH", "data/bookstand.db"),
		Env:        getenv("ENVIRONMENT", "development"),
		CORSOrigin: getenv("CORS_ORIGIN", "*"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
