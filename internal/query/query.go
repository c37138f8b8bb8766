package query

import (
	"regexp"
	"strings"
)

// TickerMap maps common tickers to company names for query expansion.
var TickerMap = map[string]string{
	"AAPL":  "Apple",
	"MSFT":  "Microsoft",
	"GOOGL": "Google",
	"GOOG":  "Google",
	"AMZN":  "Amazon",
	"NVDA":  "Nvidia",
	"META":  "Meta",
	"TSLA":  "Tesla",
	"ORCL":  "Oracle",
	"IBM":   "IBM",
	"NFLX":  "Netflix",
}

// Presets are ready-made queries for quick scanning.
var Presets = map[string]string{
	"Big Tech":         "AAPL, MSFT, AMZN, GOOGL, META",
	"Semiconductors":   "NVDA, AMD, AVGO, TSM, INTC",
	"Macro (Fed, CPI)": "Federal Reserve, CPI, inflation, interest rates",
	"AI":               "AI chips, generative AI, foundation models",
	"Energy":           "crude oil, natural gas, OPEC, refinery",
}

// PresetNames returns preset names in display order.
func PresetNames() []string {
	return []string{"Big Tech", "Semiconductors", "Macro (Fed, CPI)", "AI", "Energy"}
}

var (
	termSplitRe = regexp.MustCompile(`(?i),|\s+OR\s+`)
	nonUpperRe  = regexp.MustCompile(`[^A-Z]`)
)

// ExpandTickers rewrites each comma/OR-separated term that matches a known
// ticker into "(TICKER OR Company)". Unknown terms pass through unchanged;
// duplicate expansions are dropped case-insensitively, preserving first
// occurrence. The server performs the same expansion in the request path, so
// this exists for parity and offline testing only.
func ExpandTickers(q string) string {
	if q == "" {
		return q
	}
	var out []string
	seen := make(map[string]bool)
	for _, term := range termSplitRe.Split(q, -1) {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		up := nonUpperRe.ReplaceAllString(strings.ToUpper(term), "")
		exp := term
		if name, ok := TickerMap[up]; ok {
			exp = "(" + up + " OR " + name + ")"
		}
		key := strings.ToLower(exp)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, exp)
	}
	if len(out) == 0 {
		return q
	}
	return strings.Join(out, " OR ")
}

// broadenGroups are sector/macro synonym clusters appended in broad mode.
// Order matters: it is part of the effective query string.
var broadenGroups = []string{
	"(earnings OR guidance OR upgrade OR downgrade OR outlook)",
	"(stock OR shares OR equities)",
	"(market OR index OR rally OR selloff)",
	"(Federal Reserve OR interest rates OR CPI OR inflation)",
}

// Broaden appends the fixed synonym groups, trading precision for recall.
// Not idempotent: callers must apply it once, to the unmodified base query.
func Broaden(q string) string {
	if q == "" {
		return q
	}
	return q + " OR " + strings.Join(broadenGroups, " OR ")
}

// Build computes the effective query string for a request. Broadening only
// applies to the newsapi provider; rss queries go through verbatim.
func Build(base, provider string, broad bool) string {
	if provider == "newsapi" && broad {
		return Broaden(base)
	}
	return base
}
