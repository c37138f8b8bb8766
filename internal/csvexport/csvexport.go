// Package csvexport writes a result set as CSV for spreadsheet analysis.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/TomWang22/fin-news-summarizer/internal/search"
)

// DefaultFilename is used when the caller does not choose one.
const DefaultFilename = "articles.csv"

var header = []string{"title", "source", "url", "published_at", "sentiment", "summary"}

// Write renders the articles as CSV. Embedded commas, quotes, and newlines
// are escaped by the writer; a missing sentiment becomes an empty cell.
func Write(w io.Writer, articles []search.Article) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, a := range articles {
		sentiment := ""
		if a.Sentiment != nil {
			sentiment = strconv.FormatFloat(*a.Sentiment, 'g', -1, 64)
		}
		record := []string{a.Title, a.Source, a.URL, a.PublishedAt, sentiment, a.Summary}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
