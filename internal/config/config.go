package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Session
	JWTSecret        string
	JWTExpirationDur time.Duration
	CookieSecure     bool

	// Support messaging
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Display
	DefaultCurrencySymbol string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		// Database
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "expensetracker"),
		DBPassword: getEnv("DB_PASSWORD", "expensetracker"),
		DBName:     getEnv("DB_NAME", "expense_tracker"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "expense_tracker.db"),

		// Session
		JWTSecret:    getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		CookieSecure: getBool("COOKIE_SECURE", false),

		// Support messaging
		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "support"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "support.messages"),

		DefaultCurrencySymbol: getEnv("DEFAULT_CURRENCY_SYMBOL", "₹"),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Set replaces the active configuration. Tests use it to avoid reading the
// environment.
func Set(c *Config) {
	appConfig = c
}

// IsProduction reports whether the app runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %t\n", key, v, defaultValue)
		return defaultValue
	}
	return b
}
