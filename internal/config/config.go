package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config holds application configuration
type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Volatile store
	DBDSN string

	// Mock data
	SeedEnabled      bool
	SeedValue        uint64
	SeedIncomeCount  int
	SeedExpenseCount int

	// Presentation
	CurrencySymbol string
	Locale         string

	// Derived values
	SummaryCache bool
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDSN: getEnv("DB_DSN", "file:mycash?mode=memory&cache=shared"),

		SeedEnabled:      getEnvBool("SEED_ENABLED", true),
		SeedValue:        getEnvUint("SEED_VALUE", 0),
		SeedIncomeCount:  getEnvInt("SEED_INCOME_COUNT", 8),
		SeedExpenseCount: getEnvInt("SEED_EXPENSE_COUNT", 22),

		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "R$"),
		Locale:         getEnv("LOCALE", "pt-BR"),

		SummaryCache: getEnvBool("SUMMARY_CACHE", true),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be a number between 1 and 65535, got %q", c.Port))
	}
	if c.SeedIncomeCount < 0 {
		problems = append(problems, "SEED_INCOME_COUNT must not be negative")
	}
	if c.SeedExpenseCount < 0 {
		problems = append(problems, "SEED_EXPENSE_COUNT must not be negative")
	}
	if _, err := language.Parse(c.Locale); err != nil {
		problems = append(problems, fmt.Sprintf("LOCALE %q is not a valid language tag", c.Locale))
	}
	if !IsMemoryDSN(c.DBDSN) {
		problems = append(problems, "DB_DSN must point at an in-memory sqlite database (mode=memory or :memory:)")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// IsMemoryDSN reports whether dsn opens a volatile sqlite database
func IsMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
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

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %t\n", key, value, defaultValue)
		return defaultValue
	}
	return b
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvUint(key string, defaultValue uint64) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}
