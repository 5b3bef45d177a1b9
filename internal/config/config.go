package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabaseURL    string
	DatabasePath   string
	MigrationsPath string

	// Monthly membership base price, in whole currency units
	MonthlyBasePrice int64

	// Bearer token signing key for API auth
	TokenSigningKey string

	// SES notifier settings; empty FromEmail disables sending
	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	// Kafka event publishing; empty broker list disables publishing
	KafkaBrokers []string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:       getEnv("PORT", "8080"),
		DatabaseType:     getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:      getEnv("DB_URL", ""),
		DatabasePath:     getEnv("DB_PATH", "./clubmanager.db"),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "./migrations"),
		MonthlyBasePrice: getEnvInt64("MONTHLY_BASE_PRICE", 1000),
		TokenSigningKey:  getEnv("TOKEN_SIGNING_KEY", ""),
		AWSRegion:        getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail:     getEnv("SES_FROM_EMAIL", ""),
		SESFromName:      getEnv("SES_FROM_NAME", "Club Office"),
		KafkaBrokers:     getEnvList("KAFKA_BROKERS"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 reads an integer environment variable or returns a default value
func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

// getEnvList reads a comma-separated environment variable
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
