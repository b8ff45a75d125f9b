// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB (result store)
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Redis (work queue + rate snapshot)
	RedisURL string

	// Search queue
	SearchStream   string
	SearchGroup    string
	ConsumerName   string
	PollTimeout    time.Duration
	IdleSleep      time.Duration
	ConsumeBackoff time.Duration

	// Providers
	AlphaBaseURL    string
	BettaBaseURL    string
	ProviderTimeout time.Duration

	// National bank rates
	NationalBankURL     string
	RateRefreshInterval time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "0.1.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "ticketsearch"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		SearchStream:   getEnv("SEARCH_STREAM", "action.search-tickets.in"),
		SearchGroup:    getEnv("SEARCH_GROUP", "search_group"),
		ConsumerName:   getEnv("SEARCH_CONSUMER", "search_consumer"),
		PollTimeout:    time.Duration(getEnvAsInt("POLL_TIMEOUT_MS", 1000)) * time.Millisecond,
		IdleSleep:      time.Duration(getEnvAsInt("IDLE_SLEEP_MS", 100)) * time.Millisecond,
		ConsumeBackoff: time.Duration(getEnvAsInt("CONSUME_BACKOFF_MS", 1000)) * time.Millisecond,

		AlphaBaseURL:    getEnv("PROVIDER_A_API_BASE_URL", "http://provider-alpha:8080"),
		BettaBaseURL:    getEnv("PROVIDER_B_API_BASE_URL", "http://provider-betta:8081"),
		ProviderTimeout: time.Duration(getEnvAsInt("HTTP_TIMEOUT", 100)) * time.Second,

		NationalBankURL:     getEnv("NATIONAL_BANK_API_URL", "https://nationalbank.kz/rss/get_rates.cfm"),
		RateRefreshInterval: time.Duration(getEnvAsInt("RATE_REFRESH_HOURS", 24)) * time.Hour,
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
