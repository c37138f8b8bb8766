package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TomWang22/fin-news-summarizer/internal/api"
	"github.com/TomWang22/fin-news-summarizer/internal/config"
	"github.com/TomWang22/fin-news-summarizer/internal/notify"
	"github.com/TomWang22/fin-news-summarizer/internal/saved"
	"github.com/TomWang22/fin-news-summarizer/internal/search"
	"github.com/TomWang22/fin-news-summarizer/internal/sources"
	"github.com/TomWang22/fin-news-summarizer/internal/tui"
	"github.com/TomWang22/fin-news-summarizer/internal/urlstate"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagBaseURL string
	flagFromURL string
)

var rootCmd = &cobra.Command{
	Use:   "finnews",
	Short: "Financial news search dashboard",
	Long:  "finnews searches financial news with summaries and sentiment, from the terminal.",
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "backend base URL (overrides config)")
	rootCmd.Flags().StringVar(&flagFromURL, "from-url", "", "restore a shared search link and run it")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(linkCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("finnews %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// env bundles everything a command needs to talk to the backend and the
// local store.
type env struct {
	cfg    *config.Config
	client *api.Client
	local  *saved.Local
	mgr    *saved.Manager
}

func newEnv() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	base := cfg.ResolvedAPIBase()
	if flagBaseURL != "" {
		base = flagBaseURL
	}
	client := api.NewClient(base)

	local, err := saved.OpenLocal(config.DataPath())
	if err != nil {
		return nil, fmt.Errorf("opening saved-search store: %w", err)
	}

	return &env{
		cfg:    cfg,
		client: client,
		local:  local,
		mgr:    saved.NewManager(local, saved.NewRemote(client)),
	}, nil
}

func (e *env) close() {
	e.local.Close()
}

// initialState applies the configured defaults on top of the built-in ones.
func initialState(cfg *config.Config) search.State {
	st := search.DefaultState()
	d := cfg.Defaults
	if d.Query != "" {
		st.Query = d.Query
	}
	if d.Provider != "" {
		st.Provider = d.Provider
	}
	if d.Limit > 0 {
		st.Limit = d.Limit
	}
	if d.Sentences > 0 {
		st.Sentences = d.Sentences
	}
	if d.Sort != "" {
		st.SortBy = d.Sort
	}
	st.Broad = d.Broad
	st.Quality = sources.ByLabel(sources.None)
	return st
}

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	st := initialState(e.cfg)
	autoSearch := false
	if flagFromURL != "" {
		st, err = urlstate.DecodeURL(flagFromURL)
		if err != nil {
			return fmt.Errorf("invalid --from-url value: %w", err)
		}
		autoSearch = true
	}

	return tui.Run(tui.Options{
		Cfg:        e.cfg,
		Client:     e.client,
		Manager:    e.mgr,
		Notices:    notify.NewQueue(notify.DefaultTTL),
		Initial:    st,
		AutoSearch: autoSearch,
		Version:    version,
	})
}
