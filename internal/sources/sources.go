// Package sources holds the curated quality-source catalog for the newsapi
// provider. Each entry pairs a NewsAPI source ID with a fallback domain; the
// first entry is the "None" sentinel meaning no source filter.
package sources

// Config is one quality-source preset.
type Config struct {
	Label    string
	SourceID string
	Domain   string
}

// None is the sentinel label for "no source filter".
const None = "None"

var catalog = []Config{
	{Label: None, SourceID: "", Domain: ""},
	{Label: "Reuters", SourceID: "reuters", Domain: "reuters.com"},
	{Label: "Bloomberg", SourceID: "bloomberg", Domain: "bloomberg.com"},
	{Label: "Financial Times", SourceID: "financial-times", Domain: "ft.com"},
	{Label: "WSJ", SourceID: "the-wall-street-journal", Domain: "wsj.com"},
	{Label: "CNBC", SourceID: "cnbc", Domain: "cnbc.com"},
	{Label: "MarketWatch", SourceID: "marketwatch", Domain: "marketwatch.com"},
	{Label: "Yahoo Finance", SourceID: "yahoo-finance", Domain: "finance.yahoo.com"},
	{Label: "Business Insider", SourceID: "business-insider", Domain: "businessinsider.com"},
	{Label: "The Verge", SourceID: "the-verge", Domain: "theverge.com"},
	{Label: "TechCrunch", SourceID: "techcrunch", Domain: "techcrunch.com"},
}

var (
	byLabel    = make(map[string]Config, len(catalog))
	bySourceID = make(map[string]Config, len(catalog))
)

func init() {
	for _, c := range catalog {
		byLabel[c.Label] = c
		if c.SourceID != "" {
			bySourceID[c.SourceID] = c
		}
	}
}

// All returns the catalog in display order, sentinel first.
func All() []Config {
	out := make([]Config, len(catalog))
	copy(out, catalog)
	return out
}

// Labels returns the catalog labels in display order.
func Labels() []string {
	out := make([]string, len(catalog))
	for i, c := range catalog {
		out[i] = c.Label
	}
	return out
}

// ByLabel resolves a preset label, defaulting to the sentinel.
func ByLabel(label string) Config {
	if c, ok := byLabel[label]; ok {
		return c
	}
	return byLabel[None]
}

// LabelBySourceID reverse-resolves a raw sources field from a saved search.
// Empty or unknown IDs map to the sentinel label.
func LabelBySourceID(id string) string {
	if c, ok := bySourceID[id]; ok {
		return c.Label
	}
	return None
}

// BySourceID resolves a raw source ID to its full config, defaulting to the
// sentinel.
func BySourceID(id string) Config {
	if c, ok := bySourceID[id]; ok {
		return c
	}
	return byLabel[None]
}
