package coach

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AmirMakir/speechbot/internal/analysis"
	"github.com/AmirMakir/speechbot/internal/i18n"
)

const (
	systemPromptEN = "You are an expert in public speaking and oratory skills. You analyze speech and provide specific recommendations."
	systemPromptRU = "Ты эксперт по ораторскому мастерству и публичным выступлениям. Анализируешь речь и даешь конкретные рекомендации."
)

// SystemPrompt returns the coaching persona in the speech language.
func SystemPrompt(speechLang string) string {
	if speechLang == "ru" {
		return systemPromptRU
	}
	return systemPromptEN
}

// BuildPrompt renders the metric sheet and task list the model is asked to
// work from, in the speech language.
func BuildPrompt(transcript string, report *analysis.Report, speechLang string, wpmMin, wpmMax int) string {
	lang := i18n.Language(speechLang)
	if !i18n.Supported(speechLang) {
		lang = i18n.EN
	}

	fillerList := formatFillerList(report.FillerDetails, lang)
	repetitions := formatRepetitions(report.TextQuality.Repetitions)

	if speechLang == "ru" {
		return fmt.Sprintf(`Проанализируй речь на русском языке и дай конкретные рекомендации для улучшения.

📝 ТЕКСТ РЕЧИ:
%s

📊 МЕТРИКИ:
- Длительность: %.1f сек
- Количество слов: %d
- Темп речи: %.1f слов/мин (%s, норма: %d-%d)
- Короткие паузы: %d
- Длинные паузы (заминки): %d
- Слова-паразиты: %d раз
%s
- Монотонность: %s
- Динамика громкости: %s

🧠 АНАЛИЗ СТРУКТУРЫ ТЕКСТА:
- Количество предложений: %d
- Средняя длина предложения: %.1f слов
- Слишком длинные предложения: %d
- Частые повторы слов: %s

📋 ЗАДАЧА
1) Оцени речь по шкале 1-10
Оцени следующие параметры:
 - Правильность (произношение + грамматика)
 - Логичность (структура и связность)
 - Понятность (ясность изложения)
 - Чистота речи (отсутствие паразитов)
 - Выразительность (интонация, работа с паузами, эмоции)

2) Используй только эти HTML теги: <b>, <i>, <u>, <code>, <pre>, <a>, <blockquote>. Другие теги строго запрещены.

3) Дай 3-5 рекомендаций по улучшению речи
Рекомендации должны быть конкретными, реализуемыми и основанными на метриках и тексте.

4) Найди проблемные места в тексте
Покажи конкретные фрагменты, которые звучат слабо, и предложи 2-3 улучшенных варианта каждого.

Формат ответа (строго):
 - 5 оценок (1-10)
 - 5 рекомендаций списком
 - Переформулировки проблемных фраз
Пиши кратко, структурировано и по делу.`,
			transcript,
			report.DurationSec, report.WordCount,
			report.WordsPerMinute, i18n.T(lang, string(report.TempoRating)), wpmMin, wpmMax,
			report.ShortPauses, report.LongPauses,
			report.FillerCount, fillerList,
			i18n.T(lang, string(report.Prosody.Monotony)),
			i18n.T(lang, string(report.Prosody.Dynamics)),
			report.TextQuality.SentenceCount, report.TextQuality.AvgSentenceLen,
			report.TextQuality.LongSentences, repetitions)
	}

	return fmt.Sprintf(`Analyze the speech in English and provide specific recommendations for improvement.

📝 SPEECH TEXT:
%s

📊 METRICS:
- Duration: %.1f sec
- Word count: %d
- Speech tempo: %.1f words/min (%s, norm: %d-%d)
- Short pauses: %d
- Long pauses (hesitations): %d
- Filler words: %d times
%s
- Monotony: %s
- Volume dynamics: %s

🧠 TEXT STRUCTURE ANALYSIS:
- Sentence count: %d
- Average sentence length: %.1f words
- Too long sentences: %d
- Frequent word repetitions: %s

📋 TASK
1) Rate the speech on a scale of 1-10
Evaluate the following parameters:
 - Correctness (pronunciation + grammar)
 - Logic (structure and coherence)
 - Clarity (clear expression)
 - Speech purity (absence of fillers)
 - Expressiveness (intonation, pause work, emotions)

2) Use only these HTML tags: <b>, <i>, <u>, <code>, <pre>, <a>, <blockquote>. Other tags are strictly prohibited.

3) Give 3-5 recommendations for speech improvement
Recommendations should be specific, implementable and based on the metrics and text.

4) Find problematic places in the text
Show specific fragments that sound weak, and suggest 2-3 improved versions of each.

Response format (strictly):
 - 5 ratings (1-10)
 - 5 recommendations in list form
 - Reformulations of problematic phrases
Write concisely, structured and to the point.`,
		transcript,
		report.DurationSec, report.WordCount,
		report.WordsPerMinute, i18n.T(lang, string(report.TempoRating)), wpmMin, wpmMax,
		report.ShortPauses, report.LongPauses,
		report.FillerCount, fillerList,
		i18n.T(lang, string(report.Prosody.Monotony)),
		i18n.T(lang, string(report.Prosody.Dynamics)),
		report.TextQuality.SentenceCount, report.TextQuality.AvgSentenceLen,
		report.TextQuality.LongSentences, repetitions)
}

func formatFillerList(details map[string]int, lang i18n.Language) string {
	if len(details) == 0 {
		return i18n.T(lang, "fillers_none")
	}
	words := make([]string, 0, len(details))
	for w := range details {
		words = append(words, w)
	}
	sort.Strings(words)
	unit := i18n.T(lang, "filler_occurrences")
	lines := make([]string, 0, len(words))
	for _, w := range words {
		lines = append(lines, fmt.Sprintf("  - '%s': %d %s", w, details[w], unit))
	}
	return strings.Join(lines, "\n")
}

func formatRepetitions(reps map[string]int) string {
	if len(reps) == 0 {
		return "{}"
	}
	words := make([]string, 0, len(reps))
	for w := range reps {
		words = append(words, w)
	}
	sort.Strings(words)
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, fmt.Sprintf("%s: %d", w, reps[w]))
	}
	return strings.Join(parts, ", ")
}
