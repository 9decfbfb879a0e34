// internal/infrastructure/config/config.go
package config

import (
	"errors"
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

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL (bookings, travelers, airport reference data)
	PostgresURI string

	// Monitoring loop
	PollInterval     time.Duration
	InterFlightDelay time.Duration
	WindowBefore     time.Duration // how far past a departure a flight stays monitored
	WindowAfter      time.Duration // how far ahead a departure enters monitoring
	DelayThreshold   int           // minutes; differences at or below are suppressed

	// Flight status provider
	ProviderBaseURL      string
	ProviderClientID     string
	ProviderClientSecret string
	ProviderTokenURL     string

	// WhatsApp gateway
	WhatsAppServiceURL string
	WhatsAppToken      string
	WhatsAppCompanyID  string
	WhatsAppAgentID    string

	// SMS (AWS SNS)
	AWSRegion   string
	SMSSenderID string

	// Notification retry sweep
	RetrySweepInterval time.Duration
	MaxRetries         int
	PendingBatchSize   int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "flightwatch"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		PollInterval:     time.Duration(getEnvAsInt("POLL_INTERVAL_MINUTES", 15)) * time.Minute,
		InterFlightDelay: time.Duration(getEnvAsInt("INTER_FLIGHT_DELAY_MS", 500)) * time.Millisecond,
		WindowBefore:     time.Duration(getEnvAsInt("WINDOW_BEFORE_HOURS", 6)) * time.Hour,
		WindowAfter:      time.Duration(getEnvAsInt("WINDOW_AFTER_HOURS", 48)) * time.Hour,
		DelayThreshold:   getEnvAsInt("DELAY_THRESHOLD_MINUTES", 15),

		ProviderBaseURL:      getEnv("PROVIDER_BASE_URL", ""),
		ProviderClientID:     getEnv("PROVIDER_CLIENT_ID", ""),
		ProviderClientSecret: getEnv("PROVIDER_CLIENT_SECRET", ""),
		ProviderTokenURL:     getEnv("PROVIDER_TOKEN_URL", ""),

		WhatsAppServiceURL: getEnv("WHATSAPP_SERVICE_URL", ""),
		WhatsAppToken:      getEnv("WHATSAPP_TOKEN", ""),
		WhatsAppCompanyID:  getEnv("WHATSAPP_COMPANY_ID", ""),
		WhatsAppAgentID:    getEnv("WHATSAPP_AGENT_ID", ""),

		AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
		SMSSenderID: getEnv("SMS_SENDER_ID", "FLIGHTWATCH"),

		RetrySweepInterval: time.Duration(getEnvAsInt("RETRY_SWEEP_INTERVAL_MINUTES", 5)) * time.Minute,
		MaxRetries:         getEnvAsInt("MAX_NOTIFICATION_RETRIES", 3),
		PendingBatchSize:   getEnvAsInt("PENDING_BATCH_SIZE", 50),
	}

	// Provider credentials are the only unrecoverable startup requirement;
	// without them the monitoring loop cannot do anything useful.
	if config.ProviderBaseURL == "" {
		return nil, errors.New("PROVIDER_BASE_URL is required")
	}
	if config.ProviderClientID == "" || config.ProviderClientSecret == "" {
		return nil, errors.New("PROVIDER_CLIENT_ID and PROVIDER_CLIENT_SECRET are required")
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
