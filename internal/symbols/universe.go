// Package symbols holds the built-in pair universe and selection helpers.
package symbols

import (
	"fmt"
	"sort"
	"strings"

	"solarfx/pkg/model"
)

// Pair categories
const (
	CategoryMajor  = "major"
	CategoryMinor  = "minor"
	CategoryIndex  = "index"
	CategoryMetal  = "metal"
	CategoryCrypto = "crypto"
)

func pair(name, category, yahoo, twelvedata string) model.Pair {
	return model.Pair{
		Name:     name,
		Category: category,
		Symbols: map[string]string{
			"yahoo":      yahoo,
			"twelvedata": twelvedata,
		},
	}
}

// universe is the built-in market list: FX majors and minors, two indices,
// two metals and bitcoin
var universe = []model.Pair{
	// Major pairs
	pair("EUR/USD", CategoryMajor, "EURUSD=X", "EUR/USD"),
	pair("GBP/USD", CategoryMajor, "GBPUSD=X", "GBP/USD"),
	pair("USD/JPY", CategoryMajor, "USDJPY=X", "USD/JPY"),
	pair("USD/CHF", CategoryMajor, "USDCHF=X", "USD/CHF"),
	pair("AUD/USD", CategoryMajor, "AUDUSD=X", "AUD/USD"),
	pair("USD/CAD", CategoryMajor, "USDCAD=X", "USD/CAD"),
	pair("NZD/USD", CategoryMajor, "NZDUSD=X", "NZD/USD"),
	// Minor pairs
	pair("EUR/GBP", CategoryMinor, "EURGBP=X", "EUR/GBP"),
	pair("EUR/JPY", CategoryMinor, "EURJPY=X", "EUR/JPY"),
	pair("GBP/JPY", CategoryMinor, "GBPJPY=X", "GBP/JPY"),
	pair("EUR/AUD", CategoryMinor, "EURAUD=X", "EUR/AUD"),
	pair("EUR/CAD", CategoryMinor, "EURCAD=X", "EUR/CAD"),
	pair("AUD/JPY", CategoryMinor, "AUDJPY=X", "AUD/JPY"),
	pair("GBP/AUD", CategoryMinor, "GBPAUD=X", "GBP/AUD"),
	// Indices
	pair("GER40", CategoryIndex, "^GDAXI", "DAX"), // DAX / Germany 40
	pair("US100", CategoryIndex, "NQ=F", "NDX"),   // Nasdaq 100
	// Metals
	pair("XAUUSD", CategoryMetal, "GC=F", "XAU/USD"), // Gold
	pair("XAGUSD", CategoryMetal, "SI=F", "XAG/USD"), // Silver
	// Crypto
	pair("BTCUSD", CategoryCrypto, "BTC-USD", "BTC/USD"),
}

// All returns the full built-in universe
func All() []model.Pair {
	out := make([]model.Pair, len(universe))
	copy(out, universe)
	return out
}

// Categories returns the category names present in the universe
func Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range universe {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

// ByCategory returns the built-in pairs in the given category
func ByCategory(category string) []model.Pair {
	var out []model.Pair
	for _, p := range universe {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Lookup finds a built-in pair by name (case-insensitive, "/" optional)
func Lookup(name string) (model.Pair, bool) {
	normalized := normalize(name)
	for _, p := range universe {
		if normalize(p.Name) == normalized {
			return p, true
		}
	}
	return model.Pair{}, false
}

// Select resolves a comma-separated list of pair names. Unknown names become
// custom pairs whose name doubles as the ticker for every provider.
func Select(list string) ([]model.Pair, error) {
	if strings.TrimSpace(list) == "" {
		return nil, fmt.Errorf("empty pair list")
	}

	var out []model.Pair
	for _, raw := range strings.Split(list, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if p, ok := Lookup(name); ok {
			out = append(out, p)
			continue
		}
		out = append(out, model.Pair{Name: name, Category: "custom"})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no pairs selected")
	}
	return out, nil
}

func normalize(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "/", ""))
}
