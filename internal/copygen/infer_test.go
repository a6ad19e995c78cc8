package copygen

import (
	"reflect"
	"testing"
)

func TestInferCategory(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"AquaShield Waterproof Backpack", CategoryBags},
		{"Vitamin C Face Serum", CategorySkincare},
		{"65W USB-C Fast Charger", CategoryElectronics},
		{"Bamboo Cutting Board", CategoryGeneral},
		{"", CategoryGeneral},
	}
	for _, tc := range cases {
		if got, _ := Infer(tc.name); got != tc.want {
			t.Fatalf("Infer(%q) category = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestInferCategoryPriority(t *testing.T) {
	// Hits both bags ("tote") and electronics ("charger"); bags wins.
	if got, _ := Infer("Charger Tote"); got != CategoryBags {
		t.Fatalf("Infer priority = %q, want %q", got, CategoryBags)
	}
	// Hits skincare ("serum") and electronics ("smart"); skincare wins.
	if got, _ := Infer("Smart Serum Dispenser"); got != CategorySkincare {
		t.Fatalf("Infer priority = %q, want %q", got, CategorySkincare)
	}
}

func TestInferFeatureTokens(t *testing.T) {
	_, feats := Infer("The AquaShield Waterproof Backpack for Your Commute")
	want := []string{"aquashield", "waterproof", "backpack", "commute"}
	if !reflect.DeepEqual(feats, want) {
		t.Fatalf("Infer tokens = %v, want %v", feats, want)
	}
}

func TestInferDropsShortAndDuplicateTokens(t *testing.T) {
	_, feats := Infer("XL Bag Bag Pro-Grade Pro-Grade")
	want := []string{"bag", "pro-grade"}
	if !reflect.DeepEqual(feats, want) {
		t.Fatalf("Infer tokens = %v, want %v", feats, want)
	}
}

func TestInferCapsTokens(t *testing.T) {
	_, feats := Infer("alpha bravo charlie delta echo foxtrot golf hotel india juliet")
	if len(feats) != maxFeatureTokens {
		t.Fatalf("Infer returned %d tokens, want %d", len(feats), maxFeatureTokens)
	}
}

func TestSeedKeywordsBags(t *testing.T) {
	_, feats := Infer("AquaShield Waterproof Backpack")
	kws := SeedKeywords(CategoryBags, feats)
	if len(kws) > MaxKeywords {
		t.Fatalf("SeedKeywords returned %d keywords, max %d", len(kws), MaxKeywords)
	}
	if !contains(kws, "waterproof") || !contains(kws, "lightweight") {
		t.Fatalf("SeedKeywords missing expected bag keywords: %v", kws)
	}
}

func TestSeedKeywordsUnknownCategoryFallsBack(t *testing.T) {
	kws := SeedKeywords("furniture", nil)
	if !contains(kws, "quality") {
		t.Fatalf("SeedKeywords fallback = %v, want general list", kws)
	}
}

func TestSeedKeywordsDeduplicates(t *testing.T) {
	kws := SeedKeywords(CategoryBags, []string{"waterproof", "custom"})
	seen := map[string]bool{}
	for _, kw := range kws {
		if seen[kw] {
			t.Fatalf("SeedKeywords returned duplicate %q in %v", kw, kws)
		}
		seen[kw] = true
	}
	if !contains(kws, "custom") {
		t.Fatalf("SeedKeywords dropped feature token: %v", kws)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
