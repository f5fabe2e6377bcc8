package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/cashiering/internal/config"
	"github.com/Veraticus/cashiering/internal/consignment"
	"github.com/Veraticus/cashiering/internal/dashboard"
	"github.com/Veraticus/cashiering/internal/service"
	"github.com/Veraticus/cashiering/internal/storage"
	"github.com/spf13/cobra"
)

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// addViewFlags registers the view parameter flags shared by items and export.
func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().String("pivot", "", "item category to show (empty for the configured default, \"all\" for every item)")
	cmd.Flags().String("search", "", "case-insensitive match on name and lot")
	cmd.Flags().String("filter", "", "item type filter (all, vehicle, automobilia)")
	cmd.Flags().String("sort", "", "sort order (nameAsc, nameDesc, priceAsc, priceDesc)")
	cmd.Flags().StringSlice("select", nil, "item keys to select; totals cover the selection")
}

// viewParams overlays the view flags that were set onto defaults.
func viewParams(cmd *cobra.Command, defaults consignment.ViewParams) consignment.ViewParams {
	params := defaults
	if cmd.Flags().Changed("pivot") {
		v, _ := cmd.Flags().GetString("pivot")
		params.Pivot = consignment.Pivot(v)
	}
	if cmd.Flags().Changed("search") {
		params.Search, _ = cmd.Flags().GetString("search")
	}
	if cmd.Flags().Changed("filter") {
		v, _ := cmd.Flags().GetString("filter")
		params.Filter = consignment.FilterOption(v)
	}
	if cmd.Flags().Changed("sort") {
		v, _ := cmd.Flags().GetString("sort")
		params.Sort = consignment.SortOption(v)
	}
	return params
}

// loadSession loads the account's items into a session with the flag view
// applied and the --select keys toggled on.
func loadSession(cmd *cobra.Command, repo service.ItemRepository, accountID string) (*dashboard.Session, error) {
	dash, err := config.LoadDashboardConfig()
	if err != nil {
		return nil, err
	}

	sess := dashboard.NewSession(accountID, repo,
		dashboard.WithViewParams(viewParams(cmd, dash.Params)))
	sess.Load(cmd.Context())
	if err := sess.LoadError(); err != nil {
		return nil, fmt.Errorf("failed to load items for %s: %w", accountID, err)
	}

	keys, _ := cmd.Flags().GetStringSlice("select")
	for _, key := range keys {
		if _, err := sess.Toggle(key); err != nil {
			return nil, fmt.Errorf("cannot select %q: %w", key, err)
		}
	}
	return sess, nil
}
