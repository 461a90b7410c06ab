package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds every environment-provided setting. It is built once in main
// and passed by reference; nothing reads the environment after startup.
type Config struct {
	SystemPrompt  string `env:"SYSTEM_PROMPT,required"`
	WhitelistPath string `env:"CSV_WHITELIST,required"`
	ChatlogsDir   string `env:"CHATLOGS,required"`
	Model         string `env:"MODEL,required"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY,required"`
	OpenAIOrg     string `env:"OPENAI_ORG"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	DiscordAPIKey  string `env:"DISCORD_API_KEY"`
	DiscordEnabled bool   `env:"DISCORD_ENABLED" envDefault:"true"`
	ShellEnabled   bool   `env:"SHELL_ENABLED" envDefault:"false"`

	HTTPPort          string        `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	CompletionTimeout time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"90s"`
}

// Load reads .env when present, then parses the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; deployments may set real environment variables.
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.DiscordEnabled && cfg.DiscordAPIKey == "" {
		return nil, errors.New("DISCORD_API_KEY is required while the discord channel is enabled")
	}

	return cfg, nil
}
