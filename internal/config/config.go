package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	FrontendURL string

	PostgresURL  string
	MaxOpenConns int
	MaxIdleConns int

	Provider ProviderConfig

	NotifierGracePeriod time.Duration

	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string
}

// ProviderConfig holds the payment provider credentials.
type ProviderConfig struct {
	BaseURL         string
	PublicKey       string
	PrivateKey      string
	IntegritySecret string // signs outbound transactions
	EventsSecret    string // verifies inbound webhooks
	Currency        string
	Timeout         time.Duration
}

// Load reads .env when present and falls back to the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:        getEnvWithDefault("PORT", "3000"),
		Env:         getEnvWithDefault("APP_ENV", "development"),
		FrontendURL: getEnvWithDefault("FRONTEND_URL", "http://localhost:5173"),

		PostgresURL:  os.Getenv("POSTGRES_URL"),
		MaxOpenConns: getIntWithDefault("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns: getIntWithDefault("DB_MAX_IDLE_CONNS", 5),

		Provider: ProviderConfig{
			BaseURL:         getEnvWithDefault("PROVIDER_API_URL", "https://api-sandbox.co.uat.wompi.dev/v1"),
			PublicKey:       os.Getenv("PROVIDER_PUBLIC_KEY"),
			PrivateKey:      os.Getenv("PROVIDER_PRIVATE_KEY"),
			IntegritySecret: os.Getenv("PROVIDER_INTEGRITY_SECRET"),
			EventsSecret:    os.Getenv("PROVIDER_EVENTS_SECRET"),
			Currency:        getEnvWithDefault("PROVIDER_CURRENCY", "COP"),
			Timeout:         getDurationWithDefault("PROVIDER_TIMEOUT", 15*time.Second),
		},

		NotifierGracePeriod: getDurationWithDefault("NOTIFIER_GRACE_PERIOD", 2*time.Second),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
