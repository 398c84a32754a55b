package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable, e.g. DICETRAY_DISCORD_TOKEN
const Prefix = "DICETRAY"

// Config holds the bot's settings
type Config struct {
	// Discord
	DiscordToken  string `envconfig:"DISCORD_TOKEN" required:"true"`
	ApplicationID string `envconfig:"APPLICATION_ID"`
	// GuildID registers commands in one guild only, which is faster during development
	GuildID string `envconfig:"GUILD_ID"`

	// Redis
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// SessionTTL is how long an idle dice table is kept
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"2h"`

	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`

	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogDevelopment bool   `envconfig:"LOG_DEVELOPMENT" default:"false"`

	// Timezone is the IANA name used for history timestamps. Empty means local time.
	Timezone string `envconfig:"TIMEZONE"`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("%s_DISCORD_TOKEN cannot be empty", Prefix)
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session TTL must be positive, got %s", cfg.SessionTTL)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Location returns the time zone for history timestamps
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
