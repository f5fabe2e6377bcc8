package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/cashiering/internal/cli"
	"github.com/Veraticus/cashiering/internal/export"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <account-id>",
		Short: "Export an account's view as an xlsx workbook or a pdf report",
		Long: `Write the items of the chosen view and their totals to a document. The view
flags match those of the items command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sess, err := loadSession(cmd, store, args[0])
			if err != nil {
				return err
			}

			report := sess.Report(time.Now())
			data, err := export.Render(report, format)
			if err != nil {
				return err
			}

			if output == "" {
				output = report.FileName(format)
			} else if info, statErr := os.Stat(output); statErr == nil && info.IsDir() {
				output = filepath.Join(output, report.FileName(format))
			}
			if err := os.WriteFile(output, data, 0o600); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d item(s) to %s", len(report.Items), output)))
			return nil
		},
	}
	addViewFlags(cmd)
	cmd.Flags().String("format", export.FormatXLSX, "document format (xlsx, pdf)")
	cmd.Flags().StringP("output", "o", "", "output file or directory (default: <account>-<timestamp>.<format>)")
	return cmd
}
