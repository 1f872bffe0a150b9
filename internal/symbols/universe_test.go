package symbols

import "testing"

func TestAllCoversEveryCategory(t *testing.T) {
	pairs := All()
	if len(pairs) == 0 {
		t.Fatal("Universe must not be empty")
	}

	byCat := make(map[string]int)
	for _, p := range pairs {
		byCat[p.Category]++
	}
	for _, cat := range []string{CategoryMajor, CategoryMinor, CategoryIndex, CategoryMetal, CategoryCrypto} {
		if byCat[cat] == 0 {
			t.Errorf("Category %s has no pairs", cat)
		}
	}
}

func TestAllReturnsACopy(t *testing.T) {
	first := All()
	first[0].Name = "MUTATED"
	if All()[0].Name == "MUTATED" {
		t.Error("All must not expose the internal slice")
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		query string
		want  string
		found bool
	}{
		{"EUR/USD", "EUR/USD", true},
		{"eurusd", "EUR/USD", true},
		{"  gbp/jpy ", "GBP/JPY", true},
		{"XAUUSD", "XAUUSD", true},
		{"xau/usd", "XAUUSD", true},
		{"GER40", "GER40", true},
		{"DOGE/USD", "", false},
	}

	for _, tt := range tests {
		p, ok := Lookup(tt.query)
		if ok != tt.found {
			t.Errorf("Lookup(%q): found=%v, expected %v", tt.query, ok, tt.found)
			continue
		}
		if ok && p.Name != tt.want {
			t.Errorf("Lookup(%q): got %s, expected %s", tt.query, p.Name, tt.want)
		}
	}
}

func TestProviderSymbols(t *testing.T) {
	gold, ok := Lookup("XAUUSD")
	if !ok {
		t.Fatal("Gold missing from universe")
	}
	if got := gold.SymbolFor("yahoo"); got != "GC=F" {
		t.Errorf("Expected yahoo symbol GC=F, got %s", got)
	}
	if got := gold.SymbolFor("twelvedata"); got != "XAU/USD" {
		t.Errorf("Expected twelvedata symbol XAU/USD, got %s", got)
	}
	if got := gold.SymbolFor("unknown"); got != "XAUUSD" {
		t.Errorf("Unknown provider should fall back to the pair name, got %s", got)
	}
}

func TestSelect(t *testing.T) {
	pairs, err := Select("eurusd, GBP/JPY , MYSTERY")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(pairs) != 3 {
		t.Fatalf("Expected 3 pairs, got %d", len(pairs))
	}
	if pairs[0].Name != "EUR/USD" || pairs[1].Name != "GBP/JPY" {
		t.Errorf("Built-in pairs not resolved: %v", pairs)
	}
	if pairs[2].Name != "MYSTERY" || pairs[2].Category != "custom" {
		t.Errorf("Unknown name should become a custom pair, got %+v", pairs[2])
	}
}

func TestSelectRejectsEmpty(t *testing.T) {
	if _, err := Select(""); err == nil {
		t.Error("Empty list must error")
	}
	if _, err := Select(" , , "); err == nil {
		t.Error("List of blanks must error")
	}
}

func TestByCategory(t *testing.T) {
	majors := ByCategory(CategoryMajor)
	if len(majors) != 7 {
		t.Errorf("Expected 7 majors, got %d", len(majors))
	}
	for _, p := range majors {
		if p.Category != CategoryMajor {
			t.Errorf("Pair %s has category %s", p.Name, p.Category)
		}
	}
	if got := ByCategory("nonexistent"); len(got) != 0 {
		t.Errorf("Expected no pairs for unknown category, got %d", len(got))
	}
}
