package config

import "time"

// Config is the application configuration.
type Config struct {
	Environment string
	HTTP        HTTPConfig
	Bot         BotConfig
	Database    DatabaseConfig
	Timeline    TimelineConfig
}

type HTTPConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type BotConfig struct {
	Token   string
	Debug   bool
	Enabled bool
}

// TimelineConfig controls the live refresh of attendance state.
type TimelineConfig struct {
	RefreshInterval time.Duration
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
