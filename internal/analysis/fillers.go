package analysis

import "strings"

// Filler lexicons. Single tokens are matched per word; multi-word phrases are
// matched as substrings of the normalized transcript.
var fillersRU = []string{
	"ну", "типа", "короче", "в общем", "как бы", "значит", "понимаешь", "вроде", "собственно", "это самое",
	"вообще", "ещё", "просто", "например", "я думаю", "знаешь", "ладно", "вот", "так сказать", "сразу",
	"кажется", "так", "эх", "короче говоря", "между прочим", "по сути", "как правило", "в итоге",
	"в принципе", "честно говоря", "на самом деле", "прямо", "ну вот", "кстати", "при этом",
	"если честно", "как ни странно", "пожалуй", "типа того", "так вот", "в общем-то", "сильно", "пожалуйста",
	"эээ", "эмм", "ммм", "ах", "ой", "угу", "ох", "ааа",
}

var fillersEN = []string{
	"um", "uh", "like", "you know", "basically", "actually", "literally", "sort of", "kind of", "i mean",
	"right", "okay", "well", "so", "anyway", "honestly", "seriously", "obviously", "definitely", "totally",
	"really", "just", "maybe", "perhaps", "probably", "essentially", "practically", "virtually", "generally",
	"apparently", "supposedly", "presumably", "allegedly", "hmm", "err", "ah", "oh", "yeah", "yep", "nah",
}

// CountFillers counts filler occurrences in text using the lexicon for lang
// ("ru" or anything else for English). Returns total and per-filler counts.
func CountFillers(text, lang string) (int, map[string]int) {
	lexicon := fillersEN
	if lang == "ru" {
		lexicon = fillersRU
	}

	singles := make(map[string]struct{})
	var phrases []string
	for _, entry := range lexicon {
		if strings.ContainsRune(entry, ' ') {
			phrases = append(phrases, entry)
		} else {
			singles[entry] = struct{}{}
		}
	}

	details := make(map[string]int)
	lowered := strings.ToLower(text)
	for _, w := range Words(lowered) {
		if _, ok := singles[w]; ok {
			details[w]++
		}
	}
	normalized := " " + strings.Join(Words(lowered), " ") + " "
	for _, phrase := range phrases {
		if n := strings.Count(normalized, " "+phrase+" "); n > 0 {
			details[phrase] = n
		}
	}

	total := 0
	for _, n := range details {
		total += n
	}
	return total, details
}
