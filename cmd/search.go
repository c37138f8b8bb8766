package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/TomWang22/fin-news-summarizer/internal/csvexport"
	"github.com/TomWang22/fin-news-summarizer/internal/query"
	"github.com/TomWang22/fin-news-summarizer/internal/search"
	"github.com/TomWang22/fin-news-summarizer/internal/sources"
	"github.com/TomWang22/fin-news-summarizer/internal/urlstate"
)

var (
	flagProvider    string
	flagLimit       int
	flagSentences   int
	flagBroad       bool
	flagDateFrom    string
	flagDateTo      string
	flagDomains     string
	flagSource      string
	flagSort        string
	flagHideNeutral bool
	flagPreset      string
	flagCSV         bool
	flagJSON        bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a search and print the results",
	Args:  cobra.ArbitraryArgs,
	RunE:  runSearch,
}

func init() {
	addStateFlags(searchCmd.Flags())
	f := searchCmd.Flags()
	f.StringVar(&flagSort, "sort", "", "relevance, sentiment-desc or time-desc")
	f.BoolVar(&flagHideNeutral, "hide-neutral", false, "drop articles with near-zero sentiment")
	f.BoolVar(&flagCSV, "csv", false, "print results as CSV")
	f.BoolVar(&flagJSON, "json", false, "print results as JSON")
	f.StringVar(&flagFromURL, "from-url", "", "start from a shared search link, then apply flags")
}

// addStateFlags registers the flags that map onto the search state. They are
// shared by search, saved add and link so the three always agree.
func addStateFlags(f *pflag.FlagSet) {
	f.StringVar(&flagProvider, "provider", "", "rss or newsapi")
	f.IntVar(&flagLimit, "limit", 0, "max articles (1-50)")
	f.IntVar(&flagSentences, "sentences", 0, "summary length in sentences (1-6)")
	f.BoolVar(&flagBroad, "broad", true, "expand tickers and add finance synonyms (newsapi)")
	f.StringVar(&flagDateFrom, "from", "", "newsapi start date (YYYY-MM-DD)")
	f.StringVar(&flagDateTo, "to", "", "newsapi end date (YYYY-MM-DD)")
	f.StringVar(&flagDomains, "domains", "", "newsapi domain filter, comma separated")
	f.StringVar(&flagSource, "source", "", "newsapi quality source label (e.g. Reuters)")
	f.StringVar(&flagPreset, "preset", "", "use a query preset ("+strings.Join(query.PresetNames(), ", ")+")")
}

// searchState builds the effective state from config defaults plus flags.
func searchState(cmd *cobra.Command, args []string, st search.State) (search.State, error) {
	if len(args) > 0 {
		st.Query = strings.Join(args, " ")
	}
	if flagPreset != "" {
		q, ok := query.Presets[flagPreset]
		if !ok {
			return st, fmt.Errorf("unknown preset %q (have: %s)", flagPreset, strings.Join(query.PresetNames(), ", "))
		}
		st.Query = q
	}
	if flagProvider != "" {
		st.Provider = flagProvider
	}
	if flagLimit > 0 {
		st.Limit = flagLimit
	}
	if flagSentences > 0 {
		st.Sentences = flagSentences
	}
	if cmd.Flags().Changed("broad") {
		st.Broad = flagBroad
	}
	if flagSort != "" {
		st.SortBy = flagSort
	}
	if cmd.Flags().Changed("hide-neutral") {
		st.HideNeutral = flagHideNeutral
	}
	if cmd.Flags().Changed("from") {
		st.DateFrom = flagDateFrom
	}
	if cmd.Flags().Changed("to") {
		st.DateTo = flagDateTo
	}
	if cmd.Flags().Changed("domains") {
		st.Domains = flagDomains
	}
	if flagSource != "" {
		st.Quality = sources.ByLabel(flagSource)
		if st.Quality.Label == sources.None && flagSource != sources.None {
			return st, fmt.Errorf("unknown source label %q (have: %s)", flagSource, strings.Join(sources.Labels(), ", "))
		}
	}
	return st, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	base := initialState(e.cfg)
	if flagFromURL != "" {
		base, err = urlstate.DecodeURL(flagFromURL)
		if err != nil {
			return fmt.Errorf("invalid --from-url value: %w", err)
		}
	}
	st, err := searchState(cmd, args, base)
	if err != nil {
		return err
	}

	orch := search.NewOrchestrator(e.client)
	out, err := orch.Execute(context.Background(), st)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if out.Fallback {
		fmt.Fprintln(os.Stderr, "note: selected source returned nothing, retried with its domain")
	}

	view := search.View(out.Response.Articles, st.SortBy, st.HideNeutral)

	switch {
	case flagCSV:
		return csvexport.Write(os.Stdout, view)
	case flagJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	default:
		printArticles(out.Response, view)
		return nil
	}
}

func printArticles(resp *search.Response, view []search.Article) {
	fmt.Printf("%d article(s) · %s · query %q\n\n", len(view), resp.Provider, resp.Query)
	for _, a := range view {
		fmt.Printf("%s  %s\n", sentimentGlyph(a), a.Title)
		fmt.Printf("   %s", a.Source)
		if a.PublishedAt != "" {
			fmt.Printf(" · %s", a.PublishedAt)
		}
		fmt.Println()
		if a.Summary != "" {
			fmt.Printf("   %s\n", a.Summary)
		}
		fmt.Printf("   %s\n\n", a.URL)
	}
}

func sentimentGlyph(a search.Article) string {
	s := a.SentimentOr(0)
	switch {
	case s > 0.1:
		return fmt.Sprintf("▲ %+.2f", s)
	case s < -0.1:
		return fmt.Sprintf("▼ %+.2f", s)
	default:
		return fmt.Sprintf("• %+.2f", s)
	}
}
