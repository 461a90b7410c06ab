package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SYSTEM_PROMPT", "You are a helpful assistant.")
	t.Setenv("CSV_WHITELIST", "/etc/gateway/whitelist.csv")
	t.Setenv("CHATLOGS", "/var/log/gateway")
	t.Setenv("MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DISCORD_API_KEY", "discord-token")
}

func TestLoadWithDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "You are a helpful assistant.", cfg.SystemPrompt)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 90*time.Second, cfg.CompletionTimeout)
	assert.True(t, cfg.DiscordEnabled)
	assert.False(t, cfg.ShellEnabled)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("COMPLETION_TIMEOUT", "15s")
	t.Setenv("SHELL_ENABLED", "true")
	t.Setenv("DISCORD_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.Equal(t, 15*time.Second, cfg.CompletionTimeout)
	assert.True(t, cfg.ShellEnabled)
	assert.False(t, cfg.DiscordEnabled)
}

func TestLoadFailsWithoutRequiredVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPENAI_API_KEY", "placeholder")
	os.Unsetenv("OPENAI_API_KEY")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresDiscordTokenWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DISCORD_API_KEY", "placeholder")
	os.Unsetenv("DISCORD_API_KEY")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DISCORD_ENABLED", "false")
	_, err = Load()
	assert.NoError(t, err, "a missing discord token is fine while the channel is disabled")
}
