package search

import (
	"sort"
	"time"
)

// neutralBand is the sentiment magnitude treated as neutral by the
// hide-neutral filter.
const neutralBand = 0.1

// View projects the raw result set through the current display toggles.
// It always returns a fresh slice; the input is never reordered or mutated.
// Relevance (the default) preserves server order.
func View(articles []Article, sortBy string, hideNeutral bool) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if hideNeutral {
			s := a.SentimentOr(0)
			if s <= neutralBand && s >= -neutralBand {
				continue
			}
		}
		out = append(out, a)
	}

	switch sortBy {
	case SortSentimentDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SentimentOr(0) > out[j].SentimentOr(0)
		})
	case SortTimeDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return publishedTime(out[i]).After(publishedTime(out[j]))
		})
	}
	return out
}

// publishedTime parses the article timestamp, treating missing or unparseable
// values as the zero time so they sort last under time-desc.
func publishedTime(a Article) time.Time {
	if a.PublishedAt == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, a.PublishedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}
