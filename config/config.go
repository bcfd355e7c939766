package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	LLMProvider       string // gemini, anthropic, openai, ollama
	GeminiKey         string
	AnthropicKey      string
	OpenAIKey         string
	LLMModel          string
	OllamaBaseURL     string
	GenerationTimeout time.Duration
	DiscordToken      string
	DiscordWebhook    string
	DatabasePath      string
	DefaultUser       string
	AgendaCron        string
}

func Load() *Config {
	_ = godotenv.Load() // ignore error if no .env

	return &Config{
		LLMProvider:       envOr("LLM_PROVIDER", "gemini"),
		GeminiKey:         os.Getenv("GEMINI_API_KEY"),
		AnthropicKey:      os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		LLMModel:          os.Getenv("LLM_MODEL"),
		OllamaBaseURL:     envOr("OLLAMA_BASE_URL", "http://localhost:11434/v1"),
		GenerationTimeout: durationOr("GENERATION_TIMEOUT", 90*time.Second),
		DiscordToken:      os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordWebhook:    os.Getenv("DISCORD_WEBHOOK_URL"),
		DatabasePath:      envOr("DATABASE_PATH", "./flexiplan.db"),
		DefaultUser:       envOr("DEFAULT_USER", "me"),
		AgendaCron:        envOr("AGENDA_CRON", "0 7 * * *"),
	}
}

// APIKey returns the key matching the configured provider.
func (c *Config) APIKey() string {
	switch c.LLMProvider {
	case "anthropic":
		return c.AnthropicKey
	case "openai":
		return c.OpenAIKey
	default:
		return c.GeminiKey
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
