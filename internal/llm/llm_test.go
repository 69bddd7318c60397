package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AmirMakir/speechbot/internal/config"
)

func TestNewFromConfigModes(t *testing.T) {
	cases := []struct {
		mode    string
		wantErr bool
	}{
		{"mock", false},
		{"ollama", false},
		{"openrouter", false},
		{"gpt4all", true},
	}
	for _, tc := range cases {
		t.Run(tc.mode, func(t *testing.T) {
			gen, err := NewFromConfig(config.LLMConfig{Mode: tc.mode, Endpoint: "http://localhost:11434"})
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gen == nil {
				t.Fatal("expected generator")
			}
		})
	}
}

func TestMockGenerator(t *testing.T) {
	out, err := NewMockGenerator().Generate(context.Background(), Request{Prompt: "analyze my speech"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "analyze my speech") {
		t.Fatalf("mock output should echo the prompt, got %q", out)
	}
}

func TestOllamaGeneratorAccumulatesStream(t *testing.T) {
	var gotReq ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		enc := json.NewEncoder(w)
		enc.Encode(ollamaStreamResponse{Response: "Slow down "})
		enc.Encode(ollamaStreamResponse{Response: "a little."})
		enc.Encode(ollamaStreamResponse{Done: true})
	}))
	defer server.Close()

	gen := NewOllamaGenerator(config.LLMConfig{Endpoint: server.URL, Model: "llama3.2:latest"})
	out, err := gen.Generate(context.Background(), Request{Prompt: "coach me", MaxTokens: 100, Temperature: 0.7})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != "Slow down a little." {
		t.Fatalf("unexpected output %q", out)
	}
	if gotReq.Model != "llama3.2:latest" || !gotReq.Stream {
		t.Fatalf("unexpected upstream request: %+v", gotReq)
	}
	if gotReq.Options.NumPredict != 100 {
		t.Fatalf("expected num_predict 100, got %d", gotReq.Options.NumPredict)
	}
}

func TestOllamaGeneratorErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	gen := NewOllamaGenerator(config.LLMConfig{Endpoint: server.URL})
	if _, err := gen.Generate(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Fatal("expected error on non-2xx status")
	}
}

func TestOpenRouterGenerator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("expected system+user messages, got %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "Vary your pitch more."}},
			},
		})
	}))
	defer server.Close()

	gen := NewOpenRouterGenerator(config.LLMConfig{
		APIKey:   "test-key",
		Endpoint: server.URL,
		Model:    "openai/gpt-4o-mini",
	})
	out, err := gen.Generate(context.Background(), Request{
		Prompt: "metrics follow",
		System: "you are a speech coach",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != "Vary your pitch more." {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestTimeoutDefaults(t *testing.T) {
	if d := Timeout(config.LLMConfig{TimeoutSec: 0}); d.Seconds() != 60 {
		t.Fatalf("expected 60s default, got %v", d)
	}
	if d := Timeout(config.LLMConfig{TimeoutSec: 5}); d.Seconds() != 5 {
		t.Fatalf("expected 5s, got %v", d)
	}
}
