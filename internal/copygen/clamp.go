package copygen

import "strings"

const ellipsis = "…"

// Clamp truncates text to at most maxLen runes. Over-long input keeps its
// first maxLen-1 runes, right-trimmed, plus a single ellipsis.
func Clamp(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 0 {
		return ""
	}
	if maxLen == 1 {
		return ellipsis
	}
	head := strings.TrimRight(string(runes[:maxLen-1]), " \t\n")
	return head + ellipsis
}
