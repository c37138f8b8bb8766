package search

import (
	"strings"

	"github.com/TomWang22/fin-news-summarizer/internal/query"
	"github.com/TomWang22/fin-news-summarizer/internal/sources"
)

// Sort modes for the derived result view.
const (
	SortRelevance     = "relevance"
	SortSentimentDesc = "sentiment-desc"
	SortTimeDesc      = "time-desc"
)

// State is the full set of user-controlled search inputs. It is the single
// source from which request params, saved params, and shareable URLs derive.
type State struct {
	Query       string
	Provider    string
	Limit       int
	Sentences   int
	SortBy      string
	HideNeutral bool
	Broad       bool
	DateFrom    string
	DateTo      string
	Domains     string
	Quality     sources.Config
}

// DefaultState mirrors the dashboard's initial configuration.
func DefaultState() State {
	return State{
		Query:     "AAPL, MSFT",
		Provider:  ProviderRSS,
		Limit:     10,
		Sentences: 3,
		SortBy:    SortRelevance,
		Broad:     true,
		Quality:   sources.ByLabel(sources.None),
	}
}

// CanSearch reports whether the state has a submittable query.
func (s State) CanSearch() bool {
	return strings.TrimSpace(s.Query) != ""
}

// Params assembles the request for the current state. The effective query is
// computed via the query builder; newsapi-only fields are added conditionally,
// with a quality source taking precedence over custom domains. For any other
// provider those fields are never emitted, whatever stale values the state
// still holds.
func (s State) Params() Params {
	p := Params{
		Query:     query.Build(s.Query, s.Provider, s.Broad),
		Provider:  s.Provider,
		Limit:     s.Limit,
		Sentences: s.Sentences,
	}
	if s.Provider != ProviderNewsAPI {
		return p
	}
	if s.DateFrom != "" {
		p.DateFrom = s.DateFrom
	}
	if s.DateTo != "" {
		p.DateTo = s.DateTo
	}
	if s.Quality.SourceID != "" {
		p.Sources = s.Quality.SourceID
	} else if s.Domains != "" {
		p.Domains = s.Domains
	}
	return p
}

// ParamsForSave is the shape persisted by saved searches. It is identical to
// Params so that a save can never capture filter state left over from a
// previously selected provider.
func (s State) ParamsForSave() Params {
	return s.Params()
}

// ApplyParams repopulates the state from a loaded saved search. Quality
// selection is reverse-resolved from the raw sources field; switching away
// from newsapi clears every newsapi-only field so a later save cannot leak
// stale filters.
func (s *State) ApplyParams(p Params) {
	s.Provider = p.Provider
	if s.Provider == "" {
		s.Provider = ProviderRSS
	}
	if p.Limit > 0 {
		s.Limit = p.Limit
	} else {
		s.Limit = 10
	}
	if p.Sentences > 0 {
		s.Sentences = p.Sentences
	} else {
		s.Sentences = 3
	}
	s.Query = p.Query

	if s.Provider != ProviderNewsAPI {
		s.DateFrom = ""
		s.DateTo = ""
		s.Domains = ""
		s.Quality = sources.ByLabel(sources.None)
		return
	}

	s.DateFrom = p.DateFrom
	s.DateTo = p.DateTo
	if p.Sources != "" {
		s.Quality = sources.BySourceID(p.Sources)
		s.Domains = ""
	} else {
		s.Quality = sources.ByLabel(sources.None)
		s.Domains = p.Domains
	}
}

// ClearFilters resets the newsapi-only inputs (dates, domains, quality).
func (s *State) ClearFilters() {
	s.DateFrom = ""
	s.DateTo = ""
	s.Domains = ""
	s.Quality = sources.ByLabel(sources.None)
}

// DefaultSaveName builds the default name offered when saving this state.
func (s State) DefaultSaveName() string {
	name := strings.ToUpper(s.Provider) + " • " + s.Query
	runes := []rune(name)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	return string(runes)
}
