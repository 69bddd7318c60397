// Package coach runs the analysis pipeline for one submission: convert,
// transcribe, analyze, generate, format.
package coach

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/AmirMakir/speechbot/internal/analysis"
	"github.com/AmirMakir/speechbot/internal/audio"
	"github.com/AmirMakir/speechbot/internal/config"
	"github.com/AmirMakir/speechbot/internal/llm"
	"github.com/AmirMakir/speechbot/internal/stt"
)

// AudioConverter converts an arbitrary audio file into an analyzable WAV.
type AudioConverter interface {
	Convert(ctx context.Context, sourcePath string) (string, error)
}

// Notify is invoked before each pipeline stage with a catalogue key for the
// status message ("converting", "recognizing", "analyzing", "generating").
type Notify func(statusKey string)

// Result carries everything the transport needs to answer a submission.
type Result struct {
	Transcript     string
	SpeechLang     string
	Report         *analysis.Report
	Recommendation string
	Degraded       bool
}

// Coach orchestrates one pipeline cycle per call. Safe for concurrent use as
// long as its collaborators are.
type Coach struct {
	converter  AudioConverter
	recognizer stt.Recognizer
	generator  llm.Generator
	analyzer   *analysis.Analyzer
	llmCfg     config.LLMConfig
	log        *slog.Logger
	tracer     trace.Tracer
	analyses   metric.Int64Counter
	decodeWAV  func(path string) ([]float64, int, error)
}

func New(converter AudioConverter, recognizer stt.Recognizer, generator llm.Generator, analyzer *analysis.Analyzer, llmCfg config.LLMConfig, log *slog.Logger) *Coach {
	analyses, err := otel.Meter("speechbot/coach").Int64Counter("speechbot.analyses.total",
		metric.WithDescription("Completed analysis cycles"))
	if err != nil {
		log.Warn("metric registration failed", slog.String("error", err.Error()))
	}
	return &Coach{
		converter:  converter,
		recognizer: recognizer,
		generator:  generator,
		analyzer:   analyzer,
		llmCfg:     llmCfg,
		log:        log,
		tracer:     otel.Tracer("speechbot/coach"),
		analyses:   analyses,
		decodeWAV:  audio.DecodeWAV,
	}
}

// ProcessFile runs the pipeline over sourcePath. The converted WAV is removed
// before returning; sourcePath cleanup stays with the caller. A generation
// failure does not fail the cycle, it comes back as a degraded result.
func (c *Coach) ProcessFile(ctx context.Context, sourcePath string, notify Notify) (*Result, error) {
	ctx, span := c.tracer.Start(ctx, "coach.process")
	defer span.End()
	if notify == nil {
		notify = func(string) {}
	}

	notify("converting")
	wavPath, err := c.converter.Convert(ctx, sourcePath)
	if err != nil {
		return nil, stageErr(StageConvert, err)
	}
	defer os.Remove(wavPath)

	notify("recognizing")
	transcript, err := c.recognizer.Transcribe(ctx, wavPath)
	if err != nil {
		return nil, stageErr(StageTranscribe, err)
	}

	speechLang := transcript.Language
	if speechLang != "en" && speechLang != "ru" {
		speechLang = analysis.DetectLanguage(transcript.Text)
	}
	span.SetAttributes(attribute.String("speech.lang", speechLang))

	notify("analyzing")
	samples, sampleRate, err := c.decodeWAV(wavPath)
	if err != nil {
		return nil, stageErr(StageAnalyze, err)
	}
	report, err := c.analyzer.Analyze(samples, sampleRate, transcript.Text, speechLang)
	if err != nil {
		return nil, stageErr(StageAnalyze, err)
	}

	notify("generating")
	recommendation, degraded := c.generate(ctx, transcript.Text, report, speechLang)

	if c.analyses != nil {
		c.analyses.Add(ctx, 1, metric.WithAttributes(
			attribute.String("speech.lang", speechLang),
			attribute.Bool("degraded", degraded)))
	}

	return &Result{
		Transcript:     transcript.Text,
		SpeechLang:     speechLang,
		Report:         report,
		Recommendation: recommendation,
		Degraded:       degraded,
	}, nil
}

func (c *Coach) generate(ctx context.Context, transcript string, report *analysis.Report, speechLang string) (string, bool) {
	wpmMin, wpmMax := c.analyzer.OptimalWPM()
	prompt := BuildPrompt(transcript, report, speechLang, wpmMin, wpmMax)
	req := llm.RequestFromConfig(c.llmCfg, prompt, SystemPrompt(speechLang))

	genCtx, cancel := context.WithTimeout(ctx, llm.Timeout(c.llmCfg))
	defer cancel()

	out, err := c.generator.Generate(genCtx, req)
	if err != nil {
		c.log.Warn("recommendation generation failed",
			slog.String("speech_lang", speechLang),
			slog.String("error", err.Error()))
		return "", true
	}
	return SanitizeHTML(out), false
}
