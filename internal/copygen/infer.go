package copygen

import (
	"regexp"
	"strings"
)

// Product categories the inferencer can resolve.
const (
	CategoryBags        = "bags"
	CategorySkincare    = "skincare"
	CategoryElectronics = "electronics"
	CategoryGeneral     = "general"
)

// categoryOrder fixes match priority: bags beats skincare beats
// electronics when a name hits more than one keyword set.
var categoryOrder = []string{CategoryBags, CategorySkincare, CategoryElectronics}

var categoryKeywords = map[string][]string{
	CategoryBags: {
		"backpack", "bag", "tote", "duffel", "luggage", "purse", "satchel", "pouch",
	},
	CategorySkincare: {
		"serum", "cream", "skincare", "moisturizer", "cleanser", "lotion",
		"spf", "toner", "mask", "balm",
	},
	CategoryElectronics: {
		"charger", "earbud", "headphone", "speaker", "laptop", "phone",
		"camera", "smart", "wireless", "usb", "bluetooth",
	},
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "for": true,
	"with": true, "of": true, "to": true, "in": true, "on": true,
	"your": true, "our": true, "new": true,
}

const maxFeatureTokens = 8

var tokenRe = regexp.MustCompile(`[a-z0-9]+(?:-[a-z0-9]+)*`)

// Infer derives a topic category and up to 8 feature tokens from a bare
// product name. Pure and deterministic.
func Infer(productName string) (string, []string) {
	lower := strings.ToLower(productName)

	category := CategoryGeneral
	for _, cat := range categoryOrder {
		if containsAny(lower, categoryKeywords[cat]) {
			category = cat
			break
		}
	}

	var tokens []string
	seen := map[string]bool{}
	for _, tok := range tokenRe.FindAllString(lower, -1) {
		if len(tok) <= 2 || stopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
		if len(tokens) == maxFeatureTokens {
			break
		}
	}

	return category, tokens
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
