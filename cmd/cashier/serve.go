package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/cashiering/internal/api"
	"github.com/Veraticus/cashiering/internal/certs"
	"github.com/Veraticus/cashiering/internal/common"
	"github.com/Veraticus/cashiering/internal/config"
	"github.com/Veraticus/cashiering/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve account dashboards over HTTP",
		Long: `Run the HTTP surface: one dashboard session per account, JSON snapshots of
the view and totals, selection and delivery endpoints, xlsx and pdf exports,
and Prometheus metrics on /metrics.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default :8080, or :$PORT)")
	cmd.Flags().Bool("tls", false, "serve HTTPS with a self-signed certificate")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.tls", cmd.Flags().Lookup("tls"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	dash, err := config.LoadDashboardConfig()
	if err != nil {
		return err
	}
	srvCfg := config.LoadServerConfig()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := api.NewMetrics(registry)

	retry := common.DefaultRetryOptions()
	retry.MaxAttempts = srvCfg.RetryAttempts
	repo := repository.NewRetrying(store, logger, metrics.RepositoryRetries, retry)

	server := api.NewServer(api.Config{
		Repo:      repo,
		Logger:    logger,
		Registry:  registry,
		Metrics:   metrics,
		Dashboard: *dash,
	})

	srv := &http.Server{
		Addr:              srvCfg.Addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if srvCfg.TLS {
		tlsConfig, err := certs.NewFileManager(srvCfg.CertDir, srvCfg.TLSHosts...).TLSConfig()
		if err != nil {
			return fmt.Errorf("tls: %w", err)
		}
		srv.TLSConfig = tlsConfig
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("cashier listening", "addr", srv.Addr, "tls", srvCfg.TLS, "database", store.Path())
		var err error
		if srvCfg.TLS {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down cashier", "timeout", srvCfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
