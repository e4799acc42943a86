package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhishekkumawat-47/bajaj-chatbot/config"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrNoAnswer reports a successful provider call whose response carried no
// usable answer text (empty candidate list, missing fields, malformed body).
// Callers treat it as "the model had nothing to say", not as a failure.
var ErrNoAnswer = errors.New("provider returned no answer")

type Message struct {
	Role    string
	Content string
}

type Client interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

type Options struct {
	Provider string
	Model    string
	Timeout  time.Duration

	GeminiAPIKey  string
	GeminiBaseURL string
	OpenAIAPIKey  string
	OpenAIBaseURL string
}

func NewClient(cfg config.Config) (Client, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider selected but GEMINI_API_KEY not set")
		}
		return NewGeminiClient(Options{
			Model:         cfg.GeminiModel,
			Timeout:       cfg.ProviderTimeout,
			GeminiAPIKey:  cfg.GeminiAPIKey,
			GeminiBaseURL: cfg.GeminiBaseURL,
		}), nil
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai provider selected but OPENAI_API_KEY not set")
		}
		return NewOpenAIClient(Options{
			Model:         cfg.OpenAIModel,
			OpenAIAPIKey:  cfg.OpenAIAPIKey,
			OpenAIBaseURL: cfg.OpenAIBaseURL,
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
