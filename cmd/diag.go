package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TomWang22/fin-news-summarizer/internal/api"
)

var (
	flagDiagItems string
	flagDiagFrom  string
	flagDiagTo    string
	flagDiagLimit int
)

var diagCmd = &cobra.Command{
	Use:   "diag",
	Short: "Probe which NewsAPI sources return articles",
	RunE:  runDiag,
}

func init() {
	f := diagCmd.Flags()
	f.StringVar(&flagDiagItems, "items", "", "comma-separated source IDs or domains")
	f.StringVar(&flagDiagFrom, "from", "", "start date (YYYY-MM-DD)")
	f.StringVar(&flagDiagTo, "to", "", "end date (YYYY-MM-DD)")
	f.IntVar(&flagDiagLimit, "limit", 1, "articles to request per item")
	diagCmd.MarkFlagRequired("items")
}

func runDiag(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	result, err := e.client.ProbeSources(context.Background(), api.ProbeOpts{
		Items:    flagDiagItems,
		DateFrom: flagDiagFrom,
		DateTo:   flagDiagTo,
		Limit:    flagDiagLimit,
	})
	if err != nil {
		return fmt.Errorf("probing sources: %w", err)
	}

	fmt.Printf("%-30s %s\n", "item", "hits")
	for _, item := range result.Tested {
		fmt.Printf("%-30s %d\n", item, result.Results[item])
	}
	return nil
}
