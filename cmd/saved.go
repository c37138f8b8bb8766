package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TomWang22/fin-news-summarizer/internal/saved"
)

var (
	flagSavedServer bool
	flagSavedLocal  bool
	flagSavedFilter string
	flagSavedLimit  int
	flagSavedOrder  string
	flagSavedDir    string
	flagSavedAll    bool
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved searches",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved searches",
	RunE:  runSavedList,
}

var savedAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Save the search described by the flags",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSavedAdd,
}

var savedRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a saved search by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedRm,
}

var savedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved search on this device",
	RunE:  runSavedClear,
}

func init() {
	pf := savedCmd.PersistentFlags()
	pf.BoolVar(&flagSavedServer, "server", false, "use the server store")
	pf.BoolVar(&flagSavedLocal, "local", false, "use the on-device store")

	f := savedListCmd.Flags()
	f.StringVar(&flagSavedFilter, "filter", "", "filter by name substring")
	f.IntVar(&flagSavedLimit, "limit", 20, "page size")
	f.StringVar(&flagSavedOrder, "order", "", "order by id or created_at")
	f.StringVar(&flagSavedDir, "dir", "", "asc or desc")
	f.BoolVar(&flagSavedAll, "all", false, "follow pagination to the end")

	addStateFlags(savedAddCmd.Flags())

	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedAddCmd)
	savedCmd.AddCommand(savedRmCmd)
	savedCmd.AddCommand(savedClearCmd)
}

// savedManager initializes the manager and applies an explicit realm choice.
func savedManager(ctx context.Context, e *env) (*saved.Manager, error) {
	if flagSavedServer && flagSavedLocal {
		return nil, fmt.Errorf("--server and --local are mutually exclusive")
	}
	if err := e.mgr.Init(ctx); err != nil {
		return nil, fmt.Errorf("loading saved searches: %w", err)
	}
	if flagSavedServer && !e.mgr.SyncServer() {
		if err := e.mgr.SetSync(ctx, true); err != nil {
			return nil, err
		}
	}
	if flagSavedLocal && e.mgr.SyncServer() {
		if err := e.mgr.SetSync(ctx, false); err != nil {
			return nil, err
		}
	}
	return e.mgr, nil
}

func runSavedList(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	ctx := context.Background()
	mgr, err := savedManager(ctx, e)
	if err != nil {
		return err
	}

	opts := saved.ListOptions{
		NameFilter: flagSavedFilter,
		Limit:      flagSavedLimit,
		OrderBy:    flagSavedOrder,
		Direction:  flagSavedDir,
	}
	if err := mgr.Refresh(ctx, opts); err != nil {
		return fmt.Errorf("listing saved searches: %w", err)
	}
	if flagSavedAll {
		for mgr.HasMore() {
			if _, err := mgr.LoadMore(ctx); err != nil {
				return fmt.Errorf("loading more: %w", err)
			}
		}
	}

	items := mgr.Items()
	realm := "local"
	if mgr.SyncServer() {
		realm = "server"
	}
	fmt.Printf("%d saved search(es) · %s\n\n", len(items), realm)
	for _, it := range items {
		fmt.Printf("%-14s %-40q %s limit=%d", it.ID, it.Name, it.Params.Provider, it.Params.Limit)
		if it.CreatedAt != "" {
			fmt.Printf("  %s", it.CreatedAt)
		}
		fmt.Println()
	}
	if mgr.HasMore() {
		fmt.Println("\n(more available, rerun with --all)")
	}
	return nil
}

func runSavedAdd(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	st, err := searchState(cmd, nil, initialState(e.cfg))
	if err != nil {
		return err
	}

	ctx := context.Background()
	mgr, err := savedManager(ctx, e)
	if err != nil {
		return err
	}

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	entry, err := mgr.Create(ctx, name, st.ParamsForSave())
	if err != nil {
		return fmt.Errorf("saving search: %w", err)
	}
	fmt.Printf("saved %q as %s\n", entry.Name, entry.ID)
	return nil
}

func runSavedRm(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	ctx := context.Background()
	mgr, err := savedManager(ctx, e)
	if err != nil {
		return err
	}

	id := strings.TrimSpace(args[0])
	if err := mgr.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting %s: %w", id, err)
	}
	fmt.Printf("deleted %s\n", id)
	return nil
}

func runSavedClear(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.mgr.ClearLocal(context.Background()); err != nil {
		return fmt.Errorf("clearing saved searches: %w", err)
	}
	fmt.Println("cleared on-device saved searches")
	return nil
}
