package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port        string
	DatabaseURL string
	DBName      string
	JWTKey      string
	SaltRound   int

	EmailSender string
	Password    string // SMTP Password

	OSSEndpoint  string
	OSSKeyID     string
	OSSKeySecret string
	OSSBucket    string
	OSSPrefix    string
}

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		DatabaseURL: getEnv("DATABASE_URL", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "jubetech"),
		JWTKey:      getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound:   getEnvInt("SALT_ROUND", 10),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),

		OSSEndpoint:  getEnv("OSS_ENDPOINT", ""),
		OSSKeyID:     getEnv("OSS_ACCESS_KEY_ID", ""),
		OSSKeySecret: getEnv("OSS_ACCESS_KEY_SECRET", ""),
		OSSBucket:    getEnv("OSS_BUCKET", ""),
		OSSPrefix:    getEnv("OSS_PREFIX", "uploads"),
	}

	// Validate critical configuration
	if cfg.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if cfg.OSSBucket == "" {
		log.Println("Warning: OSS_BUCKET is not set. File uploads will be rejected.")
	}

	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
