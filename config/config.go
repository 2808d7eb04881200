package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	// Session tokens
	JWTSecret string
	JWTExpiry time.Duration
	// SMTP Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	// Base URL used in verification / reset links sent by email
	AppBaseURL string
	// Allowed cross-origin source for the frontend
	AllowedOrigin string
	// Delimiters for skill lists and preference/requirement lists
	SkillsDelimiter string
	ListDelimiter   string
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "jobboard"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTExpiry:       getEnvDuration("JWT_EXPIRY", time.Hour),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:        getEnv("SMTP_FROM", getEnv("SMTP_USERNAME", "")),
		AppBaseURL:      strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:8080"), "/"),
		AllowedOrigin:   strings.TrimRight(getEnv("ALLOWED_ORIGIN", "http://localhost:3000"), "/"),
		SkillsDelimiter: getEnv("SKILLS_DELIMITER", ";"),
		ListDelimiter:   getEnv("LIST_DELIMITER", ","),
	}

	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Startup will fail.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvDuration returns a duration environment variable or fallback if not set/invalid
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
