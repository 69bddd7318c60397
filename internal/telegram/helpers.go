package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AmirMakir/speechbot/internal/coach"
)

func isLikelyAudio(m *tgbotapi.Message) bool {
	if m == nil {
		return false
	}
	if m.Voice != nil || m.Audio != nil {
		return true
	}
	if m.Document != nil {
		mime := strings.ToLower(m.Document.MimeType)
		if strings.HasPrefix(mime, "audio/") || strings.Contains(mime, "ogg") ||
			strings.Contains(mime, "mpeg") || strings.Contains(mime, "wav") {
			return true
		}
	}
	return false
}

// errorKey maps a pipeline failure to the catalogue key of its user message.
func errorKey(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "err_timeout"
	}
	switch coach.StageOf(err) {
	case coach.StageConvert, coach.StageInput:
		return "err_input"
	case coach.StageTranscribe:
		return "err_transcribe"
	case coach.StageAnalyze:
		return "err_analyze"
	}
	return "err_analyze"
}

// SplitMessage breaks text into chunks within limit runes, preferring
// newline boundaries.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		return []string{text}
	}
	if len([]rune(text)) <= limit {
		return []string{text}
	}

	var parts []string
	var current []rune
	// open tracks whether current already holds a line, so empty lines still
	// earn their joining newline.
	open := false
	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		for len(runes) > limit {
			if open {
				parts = append(parts, string(current))
				current, open = nil, false
			}
			parts = append(parts, string(runes[:limit]))
			runes = runes[limit:]
		}
		// +1 for the newline that joins the lines back together.
		if open && len(current)+1+len(runes) > limit {
			parts = append(parts, string(current))
			current, open = nil, false
		}
		if open {
			current = append(current, '\n')
		}
		current = append(current, runes...)
		open = true
	}
	if open {
		parts = append(parts, string(current))
	}
	return parts
}
