// Package ai wraps the hosted text-generation model used for free-form chat.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("AI chat is not configured")

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds settings for the Gemini client.
type Config struct {
	APIKey string
	Model  string
}

// GeminiGenerator calls Google Gemini through langchaingo.
type GeminiGenerator struct {
	llm   llms.Model
	model string
}

// NewGemini returns a Gemini-backed Generator, or a Disabled one when
// cfg.APIKey is empty.
func NewGemini(ctx context.Context, cfg Config) (Generator, error) {
	if cfg.APIKey == "" {
		return Disabled{}, nil
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{llm: llm, model: cfg.Model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", g.model, err)
	}
	return text, nil
}

// Disabled always fails with ErrDisabled.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", ErrDisabled
}
