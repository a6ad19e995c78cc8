package copygen

import (
	"strings"
	"testing"
)

func TestApplyVoiceDefaultSanitizesOnly(t *testing.T) {
	got := ApplyVoice("a damn good bag!", VoiceDefault)
	if got != "a *** good bag!" {
		t.Fatalf("ApplyVoice default = %q", got)
	}
}

func TestApplyVoiceMinimal(t *testing.T) {
	got := ApplyVoice("The Ultimate premium bag! Amazing value @ $20", VoiceMinimal)
	if strings.ContainsAny(got, "!@$") {
		t.Fatalf("minimal voice left restricted punctuation: %q", got)
	}
	lower := strings.ToLower(got)
	for _, hype := range []string{"premium", "ultimate", "amazing"} {
		if strings.Contains(lower, hype) {
			t.Fatalf("minimal voice left hype word %q: %q", hype, got)
		}
	}
}

func TestApplyVoiceMinimalKeepsAllowedPunctuation(t *testing.T) {
	got := ApplyVoice("Well-made, simple: a bag; it's fine.", VoiceMinimal)
	want := "Well-made, simple: a bag; it's fine."
	if got != want {
		t.Fatalf("minimal voice = %q, want %q", got, want)
	}
}

func TestApplyVoicePlayfulPrependsMarker(t *testing.T) {
	got := ApplyVoice("check this out", VoicePlayful)
	if !strings.HasPrefix(got, "✨") {
		t.Fatalf("playful voice missing marker: %q", got)
	}
}

func TestApplyVoicePlayfulLeavesDecoratedText(t *testing.T) {
	got := ApplyVoice("already festive 🎉", VoicePlayful)
	if strings.HasPrefix(got, "✨") {
		t.Fatalf("playful voice double-decorated: %q", got)
	}
}

func TestApplyVoiceLuxury(t *testing.T) {
	got := ApplyVoice("a cool premium bag, awesome and dope!", VoiceLuxury)
	if strings.Contains(got, "!") {
		t.Fatalf("luxury voice left restricted punctuation: %q", got)
	}
	lower := strings.ToLower(got)
	for _, casual := range []string{"cool", "awesome", "dope", "premium"} {
		if strings.Contains(lower, casual) {
			t.Fatalf("luxury voice left %q: %q", casual, got)
		}
	}
	if !strings.Contains(got, "refined") || !strings.Contains(got, "exquisite") {
		t.Fatalf("luxury voice missing replacements: %q", got)
	}
}

func TestApplyVoiceUnknownIsIdentity(t *testing.T) {
	got := ApplyVoice("clean text stays put", "brutalist")
	if got != "clean text stays put" {
		t.Fatalf("unknown voice = %q, want identity", got)
	}
}
