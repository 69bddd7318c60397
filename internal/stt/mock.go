package stt

import "context"

type mockRecognizer struct {
	text string
	lang string
	err  error
}

// NewMockRecognizer returns a recognizer with a fixed answer, for development
// and tests.
func NewMockRecognizer(text, lang string) Recognizer {
	return &mockRecognizer{text: text, lang: lang}
}

// NewFailingRecognizer returns a recognizer that always fails with err.
func NewFailingRecognizer(err error) Recognizer {
	return &mockRecognizer{err: err}
}

func (m *mockRecognizer) Transcribe(ctx context.Context, wavPath string) (Transcript, error) {
	if err := ctx.Err(); err != nil {
		return Transcript{}, err
	}
	if m.err != nil {
		return Transcript{}, m.err
	}
	return Transcript{Text: m.text, Language: m.lang}, nil
}
