package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// MinIO holds the object store connection settings for scan images.
type MinIO struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the externally reachable base used when deriving image
	// URLs, e.g. "http://localhost:9000". Defaults to the endpoint.
	PublicURL string
}

// Config holds all configuration for the application
type Config struct {
	ServerPort   string
	DatabaseURL  string
	RedisURL     string
	OpenAIAPIKey string
	MinIO        MinIO
}

// LoadConfig reads configuration from environment variables (.env file)
func LoadConfig() (*Config, error) {
	// Load .env file. In production, env variables are often set directly.
	if err := godotenv.Load(); err != nil {
		// Don't fail if .env is not present
	}

	endpoint := getEnv("MINIO_ENDPOINT", "localhost:9000")

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		RedisURL:     getEnv("REDIS_URL", ""),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		MinIO: MinIO{
			Endpoint:  endpoint,
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "scan-images"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: getEnv("MINIO_PUBLIC_URL", "http://"+endpoint),
		},
	}, nil
}

// Helper function to get env var or return default
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}
