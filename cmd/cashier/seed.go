package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/cashiering/internal/cli"
	"github.com/Veraticus/cashiering/internal/seed"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixture.yaml>",
		Short: "Load accounts, vehicles and carts from a YAML fixture",
		Long: `Write the accounts, titling addresses, vehicles, carts and cart items of a
YAML fixture file into the database in one transaction. Records that already
exist are updated in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := seed.Load(args[0])
			if err != nil {
				return err
			}

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bar := cli.NewProgress(cmd.ErrOrStderr(), fixture.Size(), "Seeding records...")
			if err := fixture.Apply(cmd.Context(), store, func() { cli.Step(bar) }); err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}

			slog.Debug("Seeded fixture", "path", args[0], "records", fixture.Size())
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Seeded %d account(s), %d vehicle(s) and %d cart(s)",
				len(fixture.Accounts), len(fixture.Vehicles), len(fixture.Carts))))
			return nil
		},
	}
}
