package stt

import (
	"context"
	"errors"
	"testing"

	"github.com/AmirMakir/speechbot/internal/config"
)

func TestNewFromConfigModes(t *testing.T) {
	cases := []struct {
		name    string
		cfg     config.STTConfig
		wantErr bool
	}{
		{"mock", config.STTConfig{Mode: "mock"}, false},
		{"exec", config.STTConfig{Mode: "exec", Command: "whisper-cli --output json"}, false},
		{"exec empty command", config.STTConfig{Mode: "exec", Command: ""}, true},
		{"openai", config.STTConfig{Mode: "openai", APIKey: "sk-test"}, false},
		{"unknown", config.STTConfig{Mode: "banana"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := NewFromConfig(tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec == nil {
				t.Fatal("expected recognizer")
			}
		})
	}
}

func TestMockRecognizer(t *testing.T) {
	rec := NewMockRecognizer("hello world", "en")
	tr, err := rec.Transcribe(context.Background(), "/tmp/clip.wav")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if tr.Text != "hello world" || tr.Language != "en" {
		t.Fatalf("unexpected transcript: %+v", tr)
	}
}

func TestMockRecognizerHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMockRecognizer("x", "en").Transcribe(ctx, "clip.wav"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFailingRecognizer(t *testing.T) {
	boom := errors.New("boom")
	if _, err := NewFailingRecognizer(boom).Transcribe(context.Background(), "clip.wav"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestExecRecognizerArgsParsing(t *testing.T) {
	rec, err := NewExecRecognizer(config.STTConfig{
		Mode:      "exec",
		Command:   `whisper-cli --threads 4 --prompt "clean speech"`,
		ModelPath: "/models/base.bin",
		Language:  "ru",
	})
	if err != nil {
		t.Fatalf("new exec recognizer: %v", err)
	}
	er := rec.(*execRecognizer)
	want := []string{"whisper-cli", "--threads", "4", "--prompt", "clean speech"}
	if len(er.cmd) != len(want) {
		t.Fatalf("expected %d args, got %v", len(want), er.cmd)
	}
	for i, arg := range want {
		if er.cmd[i] != arg {
			t.Fatalf("arg %d: expected %q, got %q", i, arg, er.cmd[i])
		}
	}
}
