package copygen

var baseKeywords = map[string][]string{
	CategoryBags: {
		"waterproof", "lightweight", "durable", "spacious", "travel-ready",
		"ergonomic", "organized", "rugged",
	},
	CategorySkincare: {
		"hydrating", "gentle", "nourishing", "soothing", "radiant",
		"lightweight", "fragrance-free", "daily ritual",
	},
	CategoryElectronics: {
		"fast-charging", "portable", "long battery life", "compact",
		"plug-and-play", "high-performance", "sleek", "reliable",
	},
	CategoryGeneral: {
		"quality", "reliability", "versatile", "durable", "practical",
		"modern", "easy to use", "affordable",
	},
}

// SeedKeywords merges the per-category base list with the inferred feature
// tokens, deduplicating in order and capping at 10. Unknown categories use
// the general list.
func SeedKeywords(category string, featureTokens []string) []string {
	base, ok := baseKeywords[category]
	if !ok {
		base = baseKeywords[CategoryGeneral]
	}

	kws := make([]string, 0, MaxKeywords)
	seen := map[string]bool{}
	for _, kw := range append(append([]string{}, base...), featureTokens...) {
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		kws = append(kws, kw)
		if len(kws) == MaxKeywords {
			break
		}
	}
	return kws
}
