package copygen

import (
	"regexp"
	"strings"
)

const maskToken = "***"

// Profanity is masked; banned claims and spammy phrases are removed
// outright. All matching is whole-word and case-insensitive, so terms
// embedded inside larger words are left alone.
var (
	profanity = []string{"damn", "hell", "crap", "wtf"}

	bannedClaims = []string{
		"miracle", "cure", "cures", "guaranteed", "risk-free",
		"clinically proven", "fda approved",
	}

	spammyPhrases = []string{
		"act now", "limited time only", "click here", "free money",
		"100% free", "buy now",
	}
)

var (
	profanityRe  = wordListRe(profanity)
	removalRe    = wordListRe(append(append([]string{}, bannedClaims...), spammyPhrases...))
	whitespaceRe = regexp.MustCompile(`\s{2,}`)
)

func wordListRe(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Sanitize masks profanity, strips banned claims and spam phrases, and
// normalizes whitespace. Idempotent: sanitizing already-clean text is a
// no-op.
func Sanitize(text string) string {
	out := profanityRe.ReplaceAllString(text, maskToken)
	out = removalRe.ReplaceAllString(out, "")
	out = whitespaceRe.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
