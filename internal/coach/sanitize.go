package coach

import (
	"regexp"
	"strings"
)

// Telegram rejects messages with tags outside its small HTML subset, so
// anything else coming back from the model is stripped.
var (
	tagRe     = regexp.MustCompile(`(?i)</?([a-zA-Z0-9]+)((?:\s+[a-zA-Z-]+="[^"]*")*)\s*/?>`)
	allowTags = map[string]bool{
		"b": true, "i": true, "u": true, "code": true,
		"pre": true, "a": true, "blockquote": true,
	}
	hrefRe = regexp.MustCompile(`(?i)^\s+href="[^"]+"$`)
)

// SanitizeHTML removes every HTML tag Telegram does not accept, keeping the
// inner text. Attributes are dropped except href on anchors.
func SanitizeHTML(text string) string {
	return tagRe.ReplaceAllStringFunc(text, func(tag string) string {
		m := tagRe.FindStringSubmatch(tag)
		name := strings.ToLower(m[1])
		if !allowTags[name] {
			return ""
		}
		attrs := m[2]
		if attrs == "" {
			if strings.HasPrefix(tag, "</") {
				return "</" + name + ">"
			}
			return "<" + name + ">"
		}
		if name == "a" && hrefRe.MatchString(attrs) {
			return "<a" + attrs + ">"
		}
		return "<" + name + ">"
	})
}
