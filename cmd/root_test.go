package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/TomWang22/fin-news-summarizer/internal/config"
	"github.com/TomWang22/fin-news-summarizer/internal/search"
)

func TestInitialStateAppliesConfigDefaults(t *testing.T) {
	cfg := &config.Config{
		Defaults: config.Defaults{
			Query:     "TSLA",
			Provider:  "newsapi",
			Limit:     25,
			Sentences: 5,
			Broad:     false,
			Sort:      search.SortTimeDesc,
		},
	}

	st := initialState(cfg)
	if st.Query != "TSLA" || st.Provider != "newsapi" || st.Limit != 25 || st.Sentences != 5 {
		t.Errorf("defaults not applied: %+v", st)
	}
	if st.Broad {
		t.Error("broad should follow config")
	}
	if st.SortBy != search.SortTimeDesc {
		t.Errorf("sort not applied: %q", st.SortBy)
	}
}

func TestInitialStateFallsBackToBuiltins(t *testing.T) {
	st := initialState(&config.Config{})
	want := search.DefaultState()
	if st.Query != want.Query || st.Provider != want.Provider || st.Limit != want.Limit {
		t.Errorf("builtin defaults not used: %+v", st)
	}
}

func newStateCmd() *cobra.Command {
	c := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	addStateFlags(c.Flags())
	return c
}

func TestSearchStateFlagOverrides(t *testing.T) {
	c := newStateCmd()
	if err := c.Flags().Parse([]string{
		"--provider", "newsapi", "--limit", "5", "--from", "2025-01-01", "--source", "Reuters",
	}); err != nil {
		t.Fatal(err)
	}
	defer resetStateFlags()

	st, err := searchState(c, []string{"NVDA", "earnings"}, search.DefaultState())
	if err != nil {
		t.Fatal(err)
	}
	if st.Query != "NVDA earnings" {
		t.Errorf("args not joined into query: %q", st.Query)
	}
	if st.Provider != "newsapi" || st.Limit != 5 || st.DateFrom != "2025-01-01" {
		t.Errorf("flags not applied: %+v", st)
	}
	if st.Quality.SourceID != "reuters" {
		t.Errorf("quality source not resolved: %+v", st.Quality)
	}
}

func TestSearchStateRejectsUnknownPresetAndSource(t *testing.T) {
	c := newStateCmd()
	if err := c.Flags().Parse([]string{"--preset", "nope"}); err != nil {
		t.Fatal(err)
	}
	defer resetStateFlags()

	if _, err := searchState(c, nil, search.DefaultState()); err == nil {
		t.Error("expected error for unknown preset")
	}

	flagPreset = ""
	flagSource = "Nope News"
	if _, err := searchState(c, nil, search.DefaultState()); err == nil {
		t.Error("expected error for unknown source label")
	}
}

// resetStateFlags clears the shared flag variables between tests.
func resetStateFlags() {
	flagProvider = ""
	flagLimit = 0
	flagSentences = 0
	flagBroad = true
	flagDateFrom = ""
	flagDateTo = ""
	flagDomains = ""
	flagSource = ""
	flagSort = ""
	flagHideNeutral = false
	flagPreset = ""
}
