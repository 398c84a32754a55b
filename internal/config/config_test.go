package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DICETRAY_DISCORD_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.DiscordToken)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogDevelopment)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DICETRAY_DISCORD_TOKEN", "token")
	t.Setenv("DICETRAY_GUILD_ID", "guild")
	t.Setenv("DICETRAY_REDIS_DB", "3")
	t.Setenv("DICETRAY_SESSION_TTL", "30m")
	t.Setenv("DICETRAY_LOG_DEVELOPMENT", "true")
	t.Setenv("DICETRAY_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "guild", cfg.GuildID)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.LogDevelopment)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing token",
			env:  map[string]string{"DICETRAY_DISCORD_TOKEN": ""},
		},
		{
			name: "bad duration",
			env:  map[string]string{"DICETRAY_DISCORD_TOKEN": "token", "DICETRAY_SESSION_TTL": "soon"},
		},
		{
			name: "zero ttl",
			env:  map[string]string{"DICETRAY_DISCORD_TOKEN": "token", "DICETRAY_SESSION_TTL": "0s"},
		},
		{
			name: "unknown timezone",
			env:  map[string]string{"DICETRAY_DISCORD_TOKEN": "token", "DICETRAY_TIMEZONE": "Mars/Olympus_Mons"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
