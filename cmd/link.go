package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TomWang22/fin-news-summarizer/internal/urlstate"
)

var flagLinkBase string

var linkCmd = &cobra.Command{
	Use:   "link [query]",
	Short: "Print a shareable link for the search described by the flags",
	Args:  cobra.ArbitraryArgs,
	RunE:  runLink,
}

func init() {
	addStateFlags(linkCmd.Flags())
	f := linkCmd.Flags()
	f.StringVar(&flagSort, "sort", "", "relevance, sentiment-desc or time-desc")
	f.BoolVar(&flagHideNeutral, "hide-neutral", false, "encode the hide-neutral filter")
	f.StringVar(&flagLinkBase, "base", "", "base URL to prepend (default: bare query string)")
}

func runLink(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	st, err := searchState(cmd, args, initialState(e.cfg))
	if err != nil {
		return err
	}

	if flagLinkBase != "" {
		fmt.Println(urlstate.EncodeURL(flagLinkBase, st))
		return nil
	}
	fmt.Println("?" + urlstate.Encode(st).Encode())
	return nil
}
