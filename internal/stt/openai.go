package stt

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/AmirMakir/speechbot/internal/config"
)

// openaiRecognizer sends audio to the Whisper transcription API, or to any
// compatible endpoint when BaseURL is set.
type openaiRecognizer struct {
	client *openai.Client
	cfg    config.STTConfig
}

func NewOpenAIRecognizer(cfg config.STTConfig) Recognizer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &openaiRecognizer{client: openai.NewClientWithConfig(clientCfg), cfg: cfg}
}

func (r *openaiRecognizer) Transcribe(ctx context.Context, wavPath string) (Transcript, error) {
	req := openai.AudioRequest{
		Model:    r.cfg.Model,
		FilePath: wavPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if req.Model == "" {
		req.Model = openai.Whisper1
	}
	if r.cfg.Language != "" {
		req.Language = r.cfg.Language
	}

	resp, err := r.client.CreateTranscription(ctx, req)
	if err != nil {
		return Transcript{}, fmt.Errorf("whisper transcription: %w", err)
	}
	return Transcript{Text: resp.Text, Language: resp.Language}, nil
}
