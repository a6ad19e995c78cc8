package copygen

import (
	"regexp"
)

// Voice variants. The transport layer rejects anything outside this set;
// the pipeline itself treats an unknown voice as identity so the library
// stays total.
const (
	VoiceDefault = "default"
	VoiceMinimal = "minimal"
	VoicePlayful = "playful"
	VoiceLuxury  = "luxury"
)

func KnownVoice(v string) bool {
	switch v {
	case VoiceDefault, VoiceMinimal, VoicePlayful, VoiceLuxury:
		return true
	}
	return false
}

var (
	// minimal and luxury keep only word characters, whitespace and a small
	// punctuation set.
	restrictCharsRe = regexp.MustCompile(`[^\w\s.,\-:;']`)

	hypeRe   = wordListRe([]string{"premium", "best-seller", "ultimate", "amazing"})
	casualRe = wordListRe([]string{"cool", "awesome", "crazy", "lit", "dope"})
	luxuryRe = wordListRe([]string{"premium"})

	celebratorySymbols = []string{"✨", "🎉", "🔥", "💫", "🚀", "⭐"}
)

const playfulMarker = "✨ "

// ApplyVoice styles text for the requested voice. Every branch sanitizes
// last, so callers always get clean output.
func ApplyVoice(text string, voice string) string {
	switch voice {
	case VoiceMinimal:
		out := restrictCharsRe.ReplaceAllString(text, "")
		out = hypeRe.ReplaceAllString(out, "")
		return Sanitize(out)
	case VoicePlayful:
		if !containsAny(text, celebratorySymbols) {
			text = playfulMarker + text
		}
		return Sanitize(text)
	case VoiceLuxury:
		out := restrictCharsRe.ReplaceAllString(text, "")
		out = casualRe.ReplaceAllString(out, "refined")
		out = luxuryRe.ReplaceAllString(out, "exquisite")
		return Sanitize(out)
	default:
		return Sanitize(text)
	}
}
