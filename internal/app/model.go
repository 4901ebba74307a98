package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/nivara-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/nivara-backend/internal/adapter/provider/gemini"
	"github.com/heartmarshall/nivara-backend/internal/config"
	"github.com/heartmarshall/nivara-backend/internal/provider"
)

// Model is the generative model behind scans, chat and the library.
type Model interface {
	Diagnose(ctx context.Context, img provider.Image, prompt string) (string, error)
	Chat(ctx context.Context, system string, history []provider.Turn, message string) (string, error)
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewModel builds the client for the configured provider.
func NewModel(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (Model, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		c, err := gemini.New(ctx, gemini.Config{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel}, log)
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		return c, nil
	case config.ProviderAnthropic:
		return anthropic.New(anthropic.Config{
			APIKey:    cfg.AnthropicAPIKey,
			Model:     cfg.AnthropicModel,
			MaxTokens: cfg.MaxTokens,
		}, log), nil
	default:
		return nil, fmt.Errorf("ai: unknown provider %q", cfg.Provider)
	}
}
