package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file when one is present. Missing files
// are fine; real environments set variables directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found")
	}
}

// Get returns the value of a required environment variable, exiting when it
// is not set. Secrets and connection strings are never hardcoded.
func Get(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("environment variable %s is not set", key)
	}
	return value
}

// GetDefault returns the value of an environment variable, or def when unset.
func GetDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}
