package coach

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AmirMakir/speechbot/internal/analysis"
	"github.com/AmirMakir/speechbot/internal/config"
	"github.com/AmirMakir/speechbot/internal/i18n"
	"github.com/AmirMakir/speechbot/internal/llm"
	"github.com/AmirMakir/speechbot/internal/stt"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeConverter struct {
	t     *testing.T
	err   error
	calls int
	out   string
}

func (f *fakeConverter) Convert(ctx context.Context, sourcePath string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	f.out = filepath.Join(f.t.TempDir(), "converted.wav")
	if err := os.WriteFile(f.out, []byte("wav"), 0o644); err != nil {
		f.t.Fatalf("write fake wav: %v", err)
	}
	return f.out, nil
}

type fakeGenerator struct {
	out   string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, req llm.Request) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func testSamples() ([]float64, int) {
	const rate = 16000
	samples := make([]float64, rate*5)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*220*float64(i)/rate)
	}
	return samples, rate
}

func newTestCoach(t *testing.T, conv *fakeConverter, rec stt.Recognizer, gen llm.Generator) *Coach {
	analyzer := analysis.NewAnalyzer(config.AnalysisConfig{OptimalWPMMin: 120, OptimalWPMMax: 150})
	c := New(conv, rec, gen, analyzer, config.LLMConfig{MaxTokens: 100, Temperature: 0.7, TimeoutSec: 5}, newLogger())
	c.decodeWAV = func(path string) ([]float64, int, error) {
		s, r := testSamples()
		return s, r, nil
	}
	return c
}

func TestProcessFileSuccess(t *testing.T) {
	conv := &fakeConverter{t: t}
	gen := &fakeGenerator{out: `<b>Slow down.</b><script>alert(1)</script>`}
	c := newTestCoach(t, conv, stt.NewMockRecognizer("well this is a short test speech", "en"), gen)

	var stages []string
	res, err := c.ProcessFile(context.Background(), "input.oga", func(key string) {
		stages = append(stages, key)
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	want := []string{"converting", "recognizing", "analyzing", "generating"}
	if strings.Join(stages, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected stage order: %v", stages)
	}
	if res.SpeechLang != "en" {
		t.Fatalf("expected en, got %s", res.SpeechLang)
	}
	if res.Report == nil || res.Report.WordCount != 7 {
		t.Fatalf("unexpected report: %+v", res.Report)
	}
	if res.Degraded {
		t.Fatal("result should not be degraded")
	}
	if res.Recommendation != "<b>Slow down.</b>alert(1)" {
		t.Fatalf("recommendation not sanitized: %q", res.Recommendation)
	}
	if _, err := os.Stat(conv.out); !os.IsNotExist(err) {
		t.Fatalf("converted wav should be removed, stat err=%v", err)
	}
}

func TestProcessFileDegradesOnGenerationFailure(t *testing.T) {
	conv := &fakeConverter{t: t}
	gen := &fakeGenerator{err: errors.New("model offline")}
	c := newTestCoach(t, conv, stt.NewMockRecognizer("short speech", "en"), gen)

	res, err := c.ProcessFile(context.Background(), "input.oga", nil)
	if err != nil {
		t.Fatalf("generation failure must not fail the cycle: %v", err)
	}
	if !res.Degraded || res.Recommendation != "" {
		t.Fatalf("expected degraded result, got %+v", res)
	}
	if res.Report == nil {
		t.Fatal("metrics must survive a generation failure")
	}
}

func TestProcessFileConvertFailure(t *testing.T) {
	conv := &fakeConverter{t: t, err: errors.New("ffmpeg exploded")}
	gen := &fakeGenerator{}
	c := newTestCoach(t, conv, stt.NewFailingRecognizer(errors.New("should not be called")), gen)

	_, err := c.ProcessFile(context.Background(), "input.oga", nil)
	if StageOf(err) != StageConvert {
		t.Fatalf("expected convert stage error, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatal("generator must not run after a convert failure")
	}
}

func TestProcessFileTranscribeFailure(t *testing.T) {
	conv := &fakeConverter{t: t}
	c := newTestCoach(t, conv, stt.NewFailingRecognizer(errors.New("asr down")), &fakeGenerator{})

	_, err := c.ProcessFile(context.Background(), "input.oga", nil)
	if StageOf(err) != StageTranscribe {
		t.Fatalf("expected transcribe stage error, got %v", err)
	}
	if _, statErr := os.Stat(conv.out); !os.IsNotExist(statErr) {
		t.Fatal("converted wav should be removed on failure too")
	}
}

func TestProcessFileAnalyzeFailure(t *testing.T) {
	conv := &fakeConverter{t: t}
	c := newTestCoach(t, conv, stt.NewMockRecognizer("text", "en"), &fakeGenerator{})
	c.decodeWAV = func(path string) ([]float64, int, error) {
		return nil, 0, errors.New("not a wav")
	}

	_, err := c.ProcessFile(context.Background(), "input.oga", nil)
	if StageOf(err) != StageAnalyze {
		t.Fatalf("expected analyze stage error, got %v", err)
	}
}

func TestProcessFileFallsBackToTextLanguage(t *testing.T) {
	conv := &fakeConverter{t: t}
	c := newTestCoach(t, conv, stt.NewMockRecognizer("Привет, это тестовая запись для анализа", "de"), &fakeGenerator{out: "ок"})

	res, err := c.ProcessFile(context.Background(), "input.oga", nil)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.SpeechLang != "ru" {
		t.Fatalf("expected ru from text detection, got %s", res.SpeechLang)
	}
}

func TestStageOfUnknownError(t *testing.T) {
	if s := StageOf(errors.New("plain")); s != "" {
		t.Fatalf("expected empty stage, got %s", s)
	}
	if s := StageOf(nil); s != "" {
		t.Fatalf("expected empty stage for nil, got %s", s)
	}
}

func sampleReport() *analysis.Report {
	return &analysis.Report{
		DurationSec:    42.5,
		WordCount:      90,
		WordsPerMinute: 127.1,
		TempoRating:    analysis.TempoOptimal,
		ShortPauses:    3,
		LongPauses:     1,
		FillerCount:    2,
		FillerDetails:  map[string]int{"um": 2},
		Prosody: analysis.Prosody{
			Monotony: analysis.MonotonyModerate,
			Dynamics: analysis.DynamicsMedium,
		},
		TextQuality: analysis.TextQuality{
			SentenceCount:  5,
			AvgSentenceLen: 18.0,
			LongSentences:  1,
			Repetitions:    map[string]int{"project": 4},
		},
	}
}

func TestBuildPromptEnglish(t *testing.T) {
	p := BuildPrompt("hello world", sampleReport(), "en", 120, 150)
	for _, want := range []string{
		"hello world",
		"127.1 words/min",
		"norm: 120-150",
		"- 'um': 2 times",
		"project: 4",
		"Rate the speech",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptRussian(t *testing.T) {
	p := BuildPrompt("привет мир", sampleReport(), "ru", 120, 150)
	for _, want := range []string{
		"привет мир",
		"слов/мин",
		"норма: 120-150",
		"- 'um': 2 раз",
		"Оцени речь",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptNoFillers(t *testing.T) {
	rep := sampleReport()
	rep.FillerCount = 0
	rep.FillerDetails = nil
	p := BuildPrompt("text", rep, "en", 120, 150)
	if !strings.Contains(p, "(none detected)") {
		t.Fatal("prompt should note absent fillers")
	}
}

func TestSystemPromptPerLanguage(t *testing.T) {
	if !strings.Contains(SystemPrompt("ru"), "эксперт") {
		t.Fatal("russian system prompt expected")
	}
	if !strings.Contains(SystemPrompt("en"), "expert") {
		t.Fatal("english system prompt expected")
	}
	if !strings.Contains(SystemPrompt("de"), "expert") {
		t.Fatal("unknown languages fall back to english")
	}
}

func TestFormatReport(t *testing.T) {
	out := FormatReport(i18n.EN, "the transcript", sampleReport(), "<b>advice</b>", false)
	for _, want := range []string{
		"ANALYSIS RESULTS",
		"42.5 sec",
		"90 words",
		"127.1 wpm",
		"3 short, 1 long",
		"Fillers: 2",
		"<code>the transcript</code>",
		"<b>advice</b>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestFormatReportDegraded(t *testing.T) {
	out := FormatReport(i18n.RU, "текст", sampleReport(), "", true)
	if !strings.Contains(out, i18n.T(i18n.RU, "no_recommendation")) {
		t.Fatal("degraded report should carry the fallback notice")
	}
}

func TestFormatReportTruncatesTranscript(t *testing.T) {
	long := strings.Repeat("ж", 600)
	out := FormatReport(i18n.EN, long, sampleReport(), "x", false)
	if strings.Contains(out, long) {
		t.Fatal("transcript should be truncated")
	}
	if !strings.Contains(out, strings.Repeat("ж", 500)+"...") {
		t.Fatal("expected 500-rune preview with ellipsis")
	}
}

func TestSanitizeHTML(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`<b>bold</b>`, `<b>bold</b>`},
		{`<script>alert(1)</script>`, `alert(1)`},
		{`<div class="x">text</div>`, `text`},
		{`<a href="https://example.com">link</a>`, `<a href="https://example.com">link</a>`},
		{`<B>upper</B>`, `<b>upper</b>`},
		{`<b onclick="evil()">x</b>`, `<b>x</b>`},
		{`plain text`, `plain text`},
		{`<pre><code>x</code></pre>`, `<pre><code>x</code></pre>`},
	}
	for _, tc := range cases {
		if got := SanitizeHTML(tc.in); got != tc.want {
			t.Errorf("SanitizeHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
