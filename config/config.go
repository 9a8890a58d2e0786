package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	CORS_ORIGIN string
	UPLOADS_DIR string

	// Optional. When empty the Google Calendar routes answer with a
	// configuration error instead of refusing to boot.
	GOOGLE_APPLICATION_CREDENTIALS string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")
	UPLOADS_DIR = getEnv("UPLOADS_DIR", "uploads")
	GOOGLE_APPLICATION_CREDENTIALS = getEnv("GOOGLE_APPLICATION_CREDENTIALS", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
