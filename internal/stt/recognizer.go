// Package stt abstracts speech-to-text backends over a converted WAV file.
package stt

import (
	"context"
	"fmt"

	"github.com/AmirMakir/speechbot/internal/config"
)

// Transcript captures recognizer output. Language is the detected speech
// language code when the backend reports one, empty otherwise.
type Transcript struct {
	Text     string
	Language string
}

// Recognizer abstracts STT backends.
type Recognizer interface {
	Transcribe(ctx context.Context, wavPath string) (Transcript, error)
}

// NewFromConfig builds the recognizer selected by cfg.Mode.
func NewFromConfig(cfg config.STTConfig) (Recognizer, error) {
	switch cfg.Mode {
	case "mock":
		return NewMockRecognizer("mock transcript", cfg.Language), nil
	case "exec":
		return NewExecRecognizer(cfg)
	case "openai":
		return NewOpenAIRecognizer(cfg), nil
	default:
		return nil, fmt.Errorf("unknown stt mode %q", cfg.Mode)
	}
}
