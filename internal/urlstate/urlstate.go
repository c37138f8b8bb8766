// Package urlstate maps the full search state to and from a flat query
// string, so a single URL reproduces a search configuration without a save.
package urlstate

import (
	"net/url"
	"strconv"

	"github.com/TomWang22/fin-news-summarizer/internal/search"
	"github.com/TomWang22/fin-news-summarizer/internal/sources"
)

// Query-string keys. Shared links depend on these staying stable.
const (
	keyQuery       = "q"
	keyProvider    = "prov"
	keyLimit       = "lim"
	keySentences   = "sents"
	keySort        = "sort"
	keyHideNeutral = "hn"
	keyBroad       = "b"
	keyDateFrom    = "dfrom"
	keyDateTo      = "dto"
	keyDomains     = "dom"
	keyQuality     = "qlbl"
)

// Encode flattens the state into query values. Always-meaningful fields are
// written unconditionally; optional ones only when set.
func Encode(st search.State) url.Values {
	v := url.Values{}
	v.Set(keyQuery, st.Query)
	v.Set(keyProvider, st.Provider)
	v.Set(keyLimit, strconv.Itoa(st.Limit))
	v.Set(keySentences, strconv.Itoa(st.Sentences))
	v.Set(keySort, st.SortBy)
	if st.Broad {
		v.Set(keyBroad, "1")
	} else {
		v.Set(keyBroad, "0")
	}
	if st.HideNeutral {
		v.Set(keyHideNeutral, "1")
	}
	if st.DateFrom != "" {
		v.Set(keyDateFrom, st.DateFrom)
	}
	if st.DateTo != "" {
		v.Set(keyDateTo, st.DateTo)
	}
	if st.Domains != "" {
		v.Set(keyDomains, st.Domains)
	}
	if st.Quality.Label != "" {
		v.Set(keyQuality, st.Quality.Label)
	}
	return v
}

// EncodeURL renders a complete shareable URL rooted at base.
func EncodeURL(base string, st search.State) string {
	return base + "?" + Encode(st).Encode()
}

// Decode rebuilds a state from query values, applying the dashboard defaults
// for anything absent or malformed. Unknown quality labels fall back to the
// sentinel via the catalog.
func Decode(v url.Values) search.State {
	st := search.DefaultState()

	if q := v.Get(keyQuery); q != "" {
		st.Query = q
	}
	if p := v.Get(keyProvider); p != "" {
		st.Provider = p
	}
	if n, err := strconv.Atoi(v.Get(keyLimit)); err == nil && n > 0 {
		st.Limit = n
	}
	if n, err := strconv.Atoi(v.Get(keySentences)); err == nil && n > 0 {
		st.Sentences = n
	}
	if s := v.Get(keySort); s != "" {
		st.SortBy = s
	}
	st.HideNeutral = v.Get(keyHideNeutral) == "1"
	st.Broad = v.Get(keyBroad) != "0"
	st.DateFrom = v.Get(keyDateFrom)
	st.DateTo = v.Get(keyDateTo)
	st.Domains = v.Get(keyDomains)
	st.Quality = sources.ByLabel(v.Get(keyQuality))
	return st
}

// DecodeURL parses a full shared URL (or a bare query string).
func DecodeURL(raw string) (search.State, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return search.DefaultState(), err
	}
	return Decode(u.Query()), nil
}
