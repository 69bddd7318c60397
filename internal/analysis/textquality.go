package analysis

import (
	"regexp"
	"strings"
)

var sentenceRe = regexp.MustCompile(`[^.!?…]+[.!?…]*`)

// Sentences longer than this many words are flagged as hard to follow.
const longSentenceWords = 20

// Words longer than this, repeated repetitionMin times or more, count as
// noticeable repetitions.
const (
	repetitionWordLen = 4
	repetitionMin     = 3
)

// AnalyzeTextQuality computes structural transcript features.
func AnalyzeTextQuality(text string) TextQuality {
	var sentences []string
	for _, s := range sentenceRe.FindAllString(text, -1) {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}

	totalWords := 0
	long := 0
	for _, s := range sentences {
		n := len(Words(s))
		totalWords += n
		if n > longSentenceWords {
			long++
		}
	}
	avg := 0.0
	if len(sentences) > 0 {
		avg = float64(totalWords) / float64(len(sentences))
	}

	counts := make(map[string]int)
	for _, w := range normalizeWords(text) {
		if len([]rune(w)) > repetitionWordLen {
			counts[w]++
		}
	}
	repetitions := make(map[string]int)
	for w, n := range counts {
		if n >= repetitionMin {
			repetitions[w] = n
		}
	}

	return TextQuality{
		SentenceCount:  len(sentences),
		AvgSentenceLen: avg,
		LongSentences:  long,
		Repetitions:    repetitions,
	}
}
