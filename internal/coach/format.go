package coach

import (
	"fmt"
	"strings"

	"github.com/AmirMakir/speechbot/internal/analysis"
	"github.com/AmirMakir/speechbot/internal/i18n"
)

// Transcript excerpts longer than this are cut in the report.
const transcriptPreviewRunes = 500

// FormatReport renders the analysis reply in the interface language. An empty
// recommendation with degraded=true switches in the fallback notice so the
// metrics still reach the user.
func FormatReport(uiLang i18n.Language, transcript string, report *analysis.Report, recommendation string, degraded bool) string {
	var b strings.Builder

	b.WriteString(i18n.T(uiLang, "analysis_title"))
	b.WriteString("\n━━━━━━━━━━━━━━━━━━━━\n\n")

	b.WriteString(i18n.T(uiLang, "basic_metrics"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "⏱ %.1f sec | 📝 %d words\n", report.DurationSec, report.WordCount)
	fmt.Fprintf(&b, "⚡️ %.1f wpm (%s)\n", report.WordsPerMinute, i18n.T(uiLang, string(report.TempoRating)))
	fmt.Fprintf(&b, "⏸ Pauses: %d short, %d long\n", report.ShortPauses, report.LongPauses)
	fmt.Fprintf(&b, "🎯 Fillers: %d\n", report.FillerCount)

	b.WriteString(i18n.T(uiLang, "speech_quality"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "🎵 %s\n", i18n.T(uiLang, string(report.Prosody.Monotony)))
	fmt.Fprintf(&b, "🔊 %s\n", i18n.T(uiLang, string(report.Prosody.Dynamics)))

	b.WriteString(i18n.T(uiLang, "transcription"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "<code>%s</code>\n", truncateRunes(transcript, transcriptPreviewRunes))

	b.WriteString(i18n.T(uiLang, "recommendations"))
	if degraded || recommendation == "" {
		b.WriteString(i18n.T(uiLang, "no_recommendation"))
	} else {
		b.WriteString(recommendation)
	}

	return b.String()
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
