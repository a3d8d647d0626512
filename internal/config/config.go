package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries all startup settings. Components receive what they
// need explicitly; nothing reads the environment after Load returns.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	JWTSecret   string
	CORSOrigins []string

	// Optional admin account seeded at startup.
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment (and .env if present).
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "foodbridge"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBTimezone: getEnv("DB_TIMEZONE", "UTC"),

		JWTSecret:   getEnv("JWT_SECRET", "supersecret"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
