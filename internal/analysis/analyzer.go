// Package analysis computes acoustic and textual speech metrics: tempo,
// pauses, filler words, prosody, and transcript structure.
package analysis

import (
	"errors"
	"regexp"
	"strings"

	"github.com/AmirMakir/speechbot/internal/config"
)

var (
	// ErrEmptyAudio is returned when there is nothing to analyze.
	ErrEmptyAudio = errors.New("no audio samples to analyze")

	wordRe = regexp.MustCompile(`[\p{L}\p{N}]+`)
)

// Pause classification bands, in seconds.
const (
	shortPauseMin = 0.3
	shortPauseMax = 1.0
	longPauseMin  = 1.5
)

// Analyzer computes a Report from decoded PCM and a transcript.
type Analyzer struct {
	wpmMin int
	wpmMax int
}

func NewAnalyzer(cfg config.AnalysisConfig) *Analyzer {
	return &Analyzer{wpmMin: cfg.OptimalWPMMin, wpmMax: cfg.OptimalWPMMax}
}

// OptimalWPM returns the configured optimal tempo band.
func (a *Analyzer) OptimalWPM() (int, int) {
	return a.wpmMin, a.wpmMax
}

// Analyze builds the full report. lang selects the filler lexicon and must be
// the detected speech language, not the interface language.
func (a *Analyzer) Analyze(samples []float64, sampleRate int, transcript, lang string) (*Report, error) {
	if len(samples) == 0 || sampleRate <= 0 {
		return nil, ErrEmptyAudio
	}

	duration := float64(len(samples)) / float64(sampleRate)
	words := Words(transcript)

	wpm := 0.0
	if duration > 0 {
		wpm = float64(len(words)) / (duration / 60.0)
	}

	tempo := TempoOptimal
	switch {
	case wpm < float64(a.wpmMin):
		tempo = TempoSlow
	case wpm > float64(a.wpmMax):
		tempo = TempoFast
	}

	pauses := DetectPauses(samples, sampleRate)
	short, long := 0, 0
	for _, p := range pauses {
		if p >= shortPauseMin && p <= shortPauseMax {
			short++
		}
		if p > longPauseMin {
			long++
		}
	}

	fillerCount, fillerDetails := CountFillers(transcript, lang)

	return &Report{
		DurationSec:    duration,
		WordCount:      len(words),
		WordsPerMinute: wpm,
		TempoRating:    tempo,
		ShortPauses:    short,
		LongPauses:     long,
		FillerCount:    fillerCount,
		FillerDetails:  fillerDetails,
		Prosody:        AnalyzeProsody(samples, sampleRate),
		TextQuality:    AnalyzeTextQuality(transcript),
	}, nil
}

// Words tokenizes text into word tokens (letters and digits).
func Words(text string) []string {
	return wordRe.FindAllString(text, -1)
}

func normalizeWords(text string) []string {
	words := Words(strings.ToLower(text))
	return words
}
