package analysis

import "unicode"

// DetectLanguage guesses the speech language of a transcript from its script:
// a mostly-Cyrillic text is Russian, everything else is treated as English.
func DetectLanguage(text string) string {
	var cyrillic, latin, total int
	for _, r := range text {
		total++
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}
	if cyrillic > latin && cyrillic*10 > total*3 {
		return "ru"
	}
	return "en"
}
