package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DatabaseConfig holds the postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Name     string
	SSLMode  string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.Username, d.Password, d.Name, d.SSLMode,
	)
}

// Load reads the configuration from the environment, after merging a .env
// file when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Environment: env,
		HTTP: HTTPConfig{
			Port:            getEnv("HTTP_PORT", "8080"),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Bot: BotConfig{
			Token:   getEnv("BOT_TOKEN", ""),
			Debug:   getEnvAsBool("BOT_DEBUG", env != "production"),
			Enabled: getEnvAsBool("BOT_ENABLED", true),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			Username: getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "gym-portal"),
			SSLMode:  getEnv("DB_SSLMODE", getSSLMode(env)),
		},
		Timeline: TimelineConfig{
			RefreshInterval: getEnvAsDuration("TIMELINE_REFRESH_INTERVAL", 60*time.Second),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate collects every missing or invalid setting into one error.
func (c *Config) validate() error {
	var errors []string

	if c.Bot.Enabled && c.Bot.Token == "" {
		errors = append(errors, "BOT_TOKEN is required when BOT_ENABLED")
	}

	if c.Database.Username == "" {
		errors = append(errors, "DB_USER is required")
	}

	if c.Database.Password == "" && c.IsProduction() {
		errors = append(errors, "DB_PASSWORD is required in production")
	}

	if c.Timeline.RefreshInterval < time.Second {
		errors = append(errors, "TIMELINE_REFRESH_INTERVAL must be at least 1s")
	}

	if len(errors) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errors, ", "))
	}

	return nil
}

// getSSLMode requires SSL in production only.
func getSSLMode(env string) string {
	if env == "production" {
		return "require"
	}
	return "disable"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
