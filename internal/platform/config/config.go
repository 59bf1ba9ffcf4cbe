package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// DefaultExcludedPaths are the /api/v1 routes reachable without a session.
var DefaultExcludedPaths = []string{
	"/api/v1/status/",
	"/api/v1/info/",
	"/api/v1/sessions/",
	"/api/v1/reset_password/",
	"/api/v1/users/new/",
}

// Config holds application configuration.
type Config struct {
	Host         string
	Port         string
	IsProduction bool

	StorageBackend  string
	StorageFilePath string
	DatabaseURL     string
	EnableDBCheck   bool
	MigrationsPath  string

	SessionCookieName   string
	SessionCookieSecure bool
	AuthExcludedPaths   []string

	CORSAllowedOrigins []string
	LoginRateLimit     string
}

// Address is the host:port the HTTP server listens on.
func (c *Config) Address() string {
	return c.Host + ":" + c.Port
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("API_HOST", "0.0.0.0")
	viper.SetDefault("API_PORT", "5000")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_BACKEND", StorageFile)
	viper.SetDefault("STORAGE_FILE_PATH", ".db_User.json")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("SESSION_COOKIE_NAME", "session_id")
	viper.SetDefault("SESSION_COOKIE_SECURE", false)
	viper.SetDefault("AUTH_EXCLUDED_PATHS", strings.Join(DefaultExcludedPaths, ","))
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")

	viper.AutomaticEnv()

	cfg := &Config{
		Host:                viper.GetString("API_HOST"),
		Port:                viper.GetString("API_PORT"),
		IsProduction:        viper.GetBool("IS_PRODUCTION"),
		StorageBackend:      strings.ToLower(viper.GetString("STORAGE_BACKEND")),
		StorageFilePath:     viper.GetString("STORAGE_FILE_PATH"),
		DatabaseURL:         viper.GetString("PGSQL_URL"),
		EnableDBCheck:       viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:      viper.GetString("MIGRATIONS_PATH"),
		SessionCookieName:   viper.GetString("SESSION_COOKIE_NAME"),
		SessionCookieSecure: viper.GetBool("SESSION_COOKIE_SECURE"),
		AuthExcludedPaths:   splitList(viper.GetString("AUTH_EXCLUDED_PATHS")),
		CORSAllowedOrigins:  splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		LoginRateLimit:      viper.GetString("LOGIN_RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "5000"
		log.Printf("Warning: API_PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = "session_id"
		log.Printf("Warning: SESSION_COOKIE_NAME not set. Defaulting to %s.\n", cfg.SessionCookieName)
	}

	switch cfg.StorageBackend {
	case StorageFile:
		if cfg.StorageFilePath == "" {
			return nil, fmt.Errorf("STORAGE_FILE_PATH must be set for the %s backend", StorageFile)
		}
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set for the %s backend", StoragePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

// splitList turns a comma separated value into a slice, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
