package search

// Provider identifiers understood by the backend.
const (
	ProviderRSS     = "rss"
	ProviderNewsAPI = "newsapi"
)

// Params is the canonical request shape for /api/search. Optional fields are
// meaningful only for the newsapi provider and must stay empty for rss.
type Params struct {
	Query     string `json:"query"`
	Provider  string `json:"provider"`
	Limit     int    `json:"limit"`
	Sentences int    `json:"summarize_sentences"`
	DateFrom  string `json:"date_from,omitempty"`
	DateTo    string `json:"date_to,omitempty"`
	Sources   string `json:"sources,omitempty"`
	Domains   string `json:"domains,omitempty"`
}

// Article is a single normalized result. Server-produced and read-only: the
// client derives filtered/sorted views but never mutates these.
type Article struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Source      string   `json:"source"`
	PublishedAt string   `json:"published_at,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Sentiment   *float64 `json:"sentiment,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// SentimentOr returns the article sentiment, or def when the server sent none.
func (a Article) SentimentOr(def float64) float64 {
	if a.Sentiment == nil {
		return def
	}
	return *a.Sentiment
}

// Response is the /api/search envelope.
type Response struct {
	Query    string    `json:"query"`
	Provider string    `json:"provider"`
	Count    int       `json:"count"`
	Articles []Article `json:"articles"`
}
