package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// DocsDir is the flat directory holding the reference documents that
	// ground every answer. It is re-read on each request.
	DocsDir       string   `env:"DOCS_DIR" envDefault:"docs"`
	DocExtensions []string `env:"DOC_EXTENSIONS" envSeparator:"," envDefault:".txt,.md,.json"`

	Provider        string        `env:"LLM_PROVIDER" envDefault:"gemini"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"30s"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	// PostgresDSN enables the optional chat transcript audit log when set.
	PostgresDSN string `env:"POSTGRES_DSN"`
}

// Load reads configuration from the environment, after a best-effort load of
// a local .env file. Credentials stay in the process environment and are never
// echoed back in logs or responses.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment config: %w", err)
	}
	return cfg, nil
}
