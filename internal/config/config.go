package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port     string `env:"PORT" env-default:"3000"`
	BaseURL  string `env:"BASE_URL"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// Database configuration
	DBType            string `env:"DB_TYPE" env-default:"sqlite"` // sqlite, mysql, mariadb, postgres, sqlserver
	DBHost            string `env:"DB_HOST" env-default:"localhost"`
	DBPort            string `env:"DB_PORT"`
	DBDatabase        string `env:"DB_DATABASE" env-default:"agsdb.db"`
	DBUser            string `env:"DB_USER"`
	DBPassword        string `env:"DB_PASSWORD"`
	DBConnectionLimit int    `env:"DB_CONNECTION_LIMIT" env-default:"5"`

	// Session configuration
	RedisURL          string `env:"REDIS_URL"`
	SessionTTLMinutes int    `env:"SESSION_TTL_MINUTES" env-default:"1440"`

	// Upload configuration
	UploadDir      string `env:"UPLOAD_DIR" env-default:"./uploads"`
	UploadMaxBytes int    `env:"UPLOAD_MAX_BYTES" env-default:"33554432"`

	Auth0 Auth0Config
}

// Auth0Config holds the identity provider settings
type Auth0Config struct {
	ClientID     string `env:"AUTH0_CLIENT_ID"`
	ClientSecret string `env:"AUTH0_CLIENT_SECRET"`
	Domain       string `env:"AUTH0_DOMAIN"`
	LogoutURL    string `env:"AUTH0_LOGOUT_URL"`
	ReturnToURL  string `env:"AUTH0_RETURN_TO_URL"`
	CallbackURL  string `env:"AUTH0_CALLBACK_URL"`
}

// Load loads configuration from the environment (and an optional .env file)
// and validates the settings required to serve requests.
func Load() (*Config, error) {
	cfg, err := LoadDatabase()
	if err != nil {
		return nil, err
	}

	required := []struct {
		name  string
		value string
	}{
		{"AUTH0_CLIENT_ID", cfg.Auth0.ClientID},
		{"AUTH0_CLIENT_SECRET", cfg.Auth0.ClientSecret},
		{"AUTH0_DOMAIN", cfg.Auth0.Domain},
		{"AUTH0_LOGOUT_URL", cfg.Auth0.LogoutURL},
		{"AUTH0_RETURN_TO_URL", cfg.Auth0.ReturnToURL},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, fmt.Errorf("%s is required", r.name)
		}
	}

	if cfg.Auth0.CallbackURL == "" {
		cfg.Auth0.CallbackURL = strings.TrimSuffix(cfg.BaseURL, "/") + "/callback"
	}

	return cfg, nil
}

// LoadDatabase loads configuration without requiring the Auth0 settings.
// Used by the command line tools that only talk to the database.
func LoadDatabase() (*Config, error) {
	if err := loadEnvFile(os.Getenv("ENV_FILE")); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}
	if cfg.DBPort == "" {
		cfg.DBPort = defaultDBPort(cfg.DBType)
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required for DB_TYPE %s", cfg.DBType)
	}
	if cfg.DBConnectionLimit < 1 {
		return nil, fmt.Errorf("DB_CONNECTION_LIMIT must be positive")
	}
	if cfg.UploadMaxBytes < 1 {
		return nil, fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}

	return cfg, nil
}

// SecureCookies reports whether cookies should carry the Secure attribute
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(c.BaseURL, "https://")
}

// loadEnvFile loads the named .env file, or ./.env if it exists
func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func defaultDBPort(dbType string) string {
	switch dbType {
	case "mysql", "mariadb":
		return "3306"
	case "postgres", "postgresql":
		return "5432"
	case "sqlserver", "mssql":
		return "1433"
	}
	return ""
}
