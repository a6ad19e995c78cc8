// Package copygen is the rule-based marketing-copy pipeline: category and
// keyword inference, keyword seeding, voice styling, sanitization and the
// seven-field generator. Everything in here is pure and deterministic.
package copygen

import "fmt"

// Field length ceilings and arities of the output contract.
const (
	MaxSEOTitle     = 70
	MaxDescription  = 300
	MaxTikTok       = 150
	MaxInstagram    = 2200
	MaxEmailSubject = 80
	NumBullets      = 3
	NumSubjects     = 3
	MaxKeywords     = 10
)

// GeneratedCopy is the structured output of one generation. The JSON field
// names mirror the public API contract.
type GeneratedCopy struct {
	SEOTitle           string   `json:"SEO_title"`
	Description        string   `json:"description"`
	BenefitBullets     []string `json:"benefit_bullets"`
	TikTokCaption      string   `json:"tiktok_caption"`
	InstagramAdCaption string   `json:"instagram_ad_caption"`
	EmailSubjects      []string `json:"email_subjects"`
	KeywordsUsed       []string `json:"keywords_used"`
}

// Validate checks the output against the contract: all fields present,
// exact arities, length ceilings respected. Used to vet responses from the
// external generation service, which are never silently coerced.
func (g GeneratedCopy) Validate() error {
	if g.SEOTitle == "" {
		return fmt.Errorf("missing SEO_title")
	}
	if g.Description == "" {
		return fmt.Errorf("missing description")
	}
	if len(g.BenefitBullets) != NumBullets {
		return fmt.Errorf("benefit_bullets has %d entries, want %d", len(g.BenefitBullets), NumBullets)
	}
	if len(g.EmailSubjects) != NumSubjects {
		return fmt.Errorf("email_subjects has %d entries, want %d", len(g.EmailSubjects), NumSubjects)
	}
	if len(g.KeywordsUsed) > MaxKeywords {
		return fmt.Errorf("keywords_used has %d entries, max %d", len(g.KeywordsUsed), MaxKeywords)
	}
	if n := runeLen(g.SEOTitle); n > MaxSEOTitle {
		return fmt.Errorf("SEO_title is %d chars, max %d", n, MaxSEOTitle)
	}
	if n := runeLen(g.Description); n > MaxDescription {
		return fmt.Errorf("description is %d chars, max %d", n, MaxDescription)
	}
	if n := runeLen(g.TikTokCaption); n > MaxTikTok {
		return fmt.Errorf("tiktok_caption is %d chars, max %d", n, MaxTikTok)
	}
	if n := runeLen(g.InstagramAdCaption); n > MaxInstagram {
		return fmt.Errorf("instagram_ad_caption is %d chars, max %d", n, MaxInstagram)
	}
	for i, s := range g.EmailSubjects {
		if n := runeLen(s); n > MaxEmailSubject {
			return fmt.Errorf("email_subjects[%d] is %d chars, max %d", i, n, MaxEmailSubject)
		}
	}
	return nil
}

func runeLen(s string) int {
	return len([]rune(s))
}
