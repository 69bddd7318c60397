// Package llm abstracts recommendation backends behind a common Generator.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/AmirMakir/speechbot/internal/config"
)

// Request describes a language model prompt.
type Request struct {
	Prompt      string
	System      string
	MaxTokens   int
	Temperature float64
}

// Generator defines a pluggable LLM backend.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// NewFromConfig builds the generator selected by cfg.Mode.
func NewFromConfig(cfg config.LLMConfig) (Generator, error) {
	switch cfg.Mode {
	case "mock":
		return NewMockGenerator(), nil
	case "ollama":
		return NewOllamaGenerator(cfg), nil
	case "openrouter":
		return NewOpenRouterGenerator(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm mode %q", cfg.Mode)
	}
}

// RequestFromConfig carries the configured sampling defaults into a request.
func RequestFromConfig(cfg config.LLMConfig, prompt, system string) Request {
	return Request{
		Prompt:      prompt,
		System:      system,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}

// Timeout returns the configured per-request deadline.
func Timeout(cfg config.LLMConfig) time.Duration {
	if cfg.TimeoutSec <= 0 {
		return 60 * time.Second
	}
	return time.Duration(cfg.TimeoutSec) * time.Second
}
