package copygen

import (
	"fmt"
	"regexp"
	"strings"
)

// Generate runs the full pipeline: infer category and features, seed
// keywords, then build all seven output fields with voice styling and
// sanitization. Never fails; an empty or pathological product name
// degrades to the generic keyword fallbacks.
func Generate(productName string, voice string) GeneratedCopy {
	name := strings.TrimSpace(productName)
	category, feats := Infer(name)
	kws := SeedKeywords(category, feats)

	kw0 := kwAt(kws, 0, "quality")
	kw1 := kwAt(kws, 1, "reliability")

	seoTitle := finish(fmt.Sprintf("%s – %s | %s",
		name, strings.Join(topN(kws, 3), ", "), titleCase(category)),
		MaxSEOTitle, voice)

	description := finish(fmt.Sprintf(
		"%s is a %s pick built around %s and %s. Designed for everyday use, it delivers %s without the fuss.",
		name, category, kw0, kw1, kw0),
		MaxDescription, voice)

	bullets := []string{
		fmt.Sprintf("Built %s: made to keep up with your day", kw0),
		fmt.Sprintf("Thoughtful %s design that just works", category),
		"Backed by support that actually answers",
	}
	for i, b := range bullets {
		bullets[i] = ApplyVoice(b, voice)
	}

	tiktok := finish(fmt.Sprintf("%s 🔥 your next %s upgrade #%s #%s",
		name, category, hashtag(category), hashtag(kw0)),
		MaxTikTok, voice)

	instagram := finish(fmt.Sprintf(
		"Meet %s — the %s people keep coming back to. %s. Tap the link to see why.",
		name, category, strings.Join(topN(kws, 4), " · ")),
		MaxInstagram, voice)

	subjects := []string{
		fmt.Sprintf("%s is here for you", name),
		fmt.Sprintf("Discover %s today", name),
		fmt.Sprintf("Why people love %s", name),
	}
	for i, s := range subjects {
		subjects[i] = finish(s, MaxEmailSubject, voice)
	}

	return GeneratedCopy{
		SEOTitle:           seoTitle,
		Description:        description,
		BenefitBullets:     bullets,
		TikTokCaption:      tiktok,
		InstagramAdCaption: instagram,
		EmailSubjects:      subjects,
		KeywordsUsed:       kws,
	}
}

// finish applies the per-field tail of the pipeline: clamp, voice (which
// sanitizes last), then a final clamp so the ceiling holds even when a
// voice adds characters.
func finish(text string, maxLen int, voice string) string {
	return Clamp(ApplyVoice(Clamp(text, maxLen), voice), maxLen)
}

func kwAt(kws []string, i int, fallback string) string {
	if i < len(kws) {
		return kws[i]
	}
	return fallback
}

func topN(kws []string, n int) []string {
	if len(kws) < n {
		n = len(kws)
	}
	return kws[:n]
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var nonTagRe = regexp.MustCompile(`[^a-z0-9]`)

func hashtag(s string) string {
	return nonTagRe.ReplaceAllString(strings.ToLower(s), "")
}
