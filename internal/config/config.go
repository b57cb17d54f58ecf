package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. It is built once at
// startup and passed by reference into every component constructor.
type Config struct {
	Server ServerConfig
	Notion NotionConfig
	CORS   CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// NotionConfig holds the Notion credential, the database identifiers and the
// TLS toggle. Database IDs are optional: a component backed by an unset
// database reads as empty rather than failing.
type NotionConfig struct {
	APIKey                   string
	TransactionsDB           string
	AccountsDB               string
	CategoriesDB             string
	PillarsDB                string
	InvestmentTransactionsDB string
	HoldingsDB               string
	SSLVerify                bool
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and an optional .env
// file. It fails when NOTION_API_KEY is absent; nothing works without it.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	apiKey := os.Getenv("NOTION_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("NOTION_API_KEY is not set")
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5000"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Notion: NotionConfig{
			APIKey:                   apiKey,
			TransactionsDB:           os.Getenv("NOTION_TRANSACTIONS_DB_ID"),
			AccountsDB:               os.Getenv("NOTION_ACCOUNTS_DB_ID"),
			CategoriesDB:             os.Getenv("NOTION_CATEGORIES_DB_ID"),
			PillarsDB:                os.Getenv("NOTION_PILLARS_DB_ID"),
			InvestmentTransactionsDB: os.Getenv("NOTION_INVESTMENT_TRANSACTIONS_DB_ID"),
			HoldingsDB:               os.Getenv("NOTION_HOLDINGS_DB_ID"),
			SSLVerify:                strings.ToLower(getEnv("SSL_VERIFY", "true")) != "false",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}

	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
