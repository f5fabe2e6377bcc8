package main

import (
	"fmt"

	"github.com/Veraticus/cashiering/internal/cli"
	"github.com/spf13/cobra"
)

func itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items <account-id>",
		Short: "List an account's items and totals",
		Long: `Print the account's open cart as a table, narrowed by category, search, type
filter and sort, followed by the totals of the selection or of the listed items.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sess, err := loadSession(cmd, store, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			title := "Account " + args[0]
			if cart := sess.Cart(); cart != nil && cart.EventName != "" {
				title += " - " + cart.EventName
			}
			fmt.Fprintln(out, cli.FormatTitle(title))
			fmt.Fprintln(out, cli.SubtleStyle.Render(sess.Params().Pivot.Label()))

			if err := cli.WriteItems(out, sess.View(), sess.IsSelected); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return cli.WriteTotals(out, sess.Totals())
		},
	}
	addViewFlags(cmd)
	return cmd
}
