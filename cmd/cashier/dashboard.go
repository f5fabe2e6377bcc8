package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/cashiering/internal/common"
	"github.com/Veraticus/cashiering/internal/config"
	"github.com/Veraticus/cashiering/internal/delivery"
	"github.com/Veraticus/cashiering/internal/export"
	"github.com/Veraticus/cashiering/internal/model"
	"github.com/Veraticus/cashiering/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard <account-id>",
		Short: "Open the interactive cashiering dashboard",
		Long: `Browse the account's items by category, search, filter and sort them, select
items to total, export the view and request delivery of the selection.

The terminal belongs to the dashboard while it runs, so logs go to --log-file
and are discarded otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: runDashboard,
	}

	cmd.Flags().String("log-file", "", "append logs to this file")
	cmd.Flags().String("export-dir", ".", "directory for xlsx and pdf exports")
	cmd.Flags().String("manifest-dir", "", "write a pdf manifest here for every delivery request")
	cmd.Flags().String("record", "", "record every frame to this directory for debugging")

	_ = viper.BindPFlag("dashboard.export_dir", cmd.Flags().Lookup("export-dir"))
	_ = viper.BindPFlag("dashboard.manifest_dir", cmd.Flags().Lookup("manifest-dir"))

	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	logFile, _ := cmd.Flags().GetString("log-file")
	record, _ := cmd.Flags().GetString("record")

	logger, closeLog, err := dashboardLogger(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	dash, err := config.LoadDashboardConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sinks := []delivery.Sink{delivery.NewLogSink(logger)}
	if dir := viper.GetString("dashboard.manifest_dir"); dir != "" {
		sinks = append(sinks, manifestSink(config.ExpandPath(dir), logger))
	}

	return tui.Run(cmd.Context(),
		tui.WithRepository(store),
		tui.WithAccount(args[0]),
		tui.WithDashboard(*dash),
		tui.WithSink(delivery.NewMultiSink(sinks...)),
		tui.WithLogger(logger),
		tui.WithExportDir(config.ExpandPath(viper.GetString("dashboard.export_dir"))),
		tui.WithFrameRecording(record),
	)
}

// dashboardLogger returns a logger writing to path, or a discarding one when
// path is empty.
func dashboardLogger(path string) (*slog.Logger, func(), error) {
	level := common.ParseLevel(viper.GetString("logging.level"))
	format := viper.GetString("logging.format")

	if path == "" {
		return common.NewLogger(io.Discard, level, format), func() {}, nil
	}

	f, err := os.OpenFile(config.ExpandPath(path), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // log path comes from the operator
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return common.NewLogger(f, level, format), func() { _ = f.Close() }, nil
}

// manifestSink writes each confirmed delivery request as delivery-<id>.pdf in dir.
func manifestSink(dir string, logger *slog.Logger) delivery.Sink {
	return delivery.SinkFunc(func(_ context.Context, req model.DeliveryRequest) {
		data, err := export.BuildDeliveryManifestPDF(req)
		if err != nil {
			logger.Error("Failed to build delivery manifest", "request_id", req.ID, "error", err)
			return
		}
		path := filepath.Join(dir, "delivery-"+req.ID+".pdf")
		if err := os.WriteFile(path, data, 0o600); err != nil {
			logger.Error("Failed to write delivery manifest", "path", path, "error", err)
			return
		}
		logger.Info("Wrote delivery manifest", "request_id", req.ID, "path", path)
	})
}
