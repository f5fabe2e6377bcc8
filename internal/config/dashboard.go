package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/cashiering/internal/common"
	"github.com/Veraticus/cashiering/internal/consignment"
	"github.com/Veraticus/cashiering/internal/model"
	"github.com/spf13/viper"
)

// DashboardConfig holds the presentation defaults and delivery option sets.
type DashboardConfig struct {
	Theme     string
	Carriers  []model.Option
	Addresses []model.Option
	Params    consignment.ViewParams
}

// DefaultDashboardConfig returns the built-in dashboard defaults.
func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		Theme:  "default",
		Params: consignment.DefaultViewParams(),
	}
}

// LoadDashboardConfig loads dashboard configuration from Viper.
// It follows this precedence:
// 1. Viper configuration (from config file or CASHIER_ env vars)
// 2. Default values
func LoadDashboardConfig() (*DashboardConfig, error) {
	config := DefaultDashboardConfig()

	if v := viper.GetString("dashboard.theme"); v != "" {
		config.Theme = v
	}
	if v := viper.GetString("dashboard.pivot"); v != "" {
		config.Params.Pivot = consignment.Pivot(v)
	}
	if v := viper.GetString("dashboard.filter"); v != "" {
		config.Params.Filter = consignment.FilterOption(v)
	}
	if viper.IsSet("dashboard.sort") {
		config.Params.Sort = consignment.SortOption(viper.GetString("dashboard.sort"))
	}

	if err := viper.UnmarshalKey("delivery.carriers", &config.Carriers); err != nil {
		return nil, fmt.Errorf("%w: delivery.carriers: %w", common.ErrInvalidConfig, err)
	}
	if err := viper.UnmarshalKey("delivery.addresses", &config.Addresses); err != nil {
		return nil, fmt.Errorf("%w: delivery.addresses: %w", common.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks that every option key names a known pivot, filter or sort.
func (c DashboardConfig) Validate() error {
	if !c.Params.Pivot.IsKnown() && c.Params.Pivot != consignment.PivotAll {
		return fmt.Errorf("%w: unknown pivot %q", common.ErrInvalidConfig, c.Params.Pivot)
	}
	if !knownFilter(c.Params.Filter) {
		return fmt.Errorf("%w: unknown filter %q", common.ErrInvalidConfig, c.Params.Filter)
	}
	if !knownSort(c.Params.Sort) {
		return fmt.Errorf("%w: unknown sort %q", common.ErrInvalidConfig, c.Params.Sort)
	}
	for _, opts := range [][]model.Option{c.Carriers, c.Addresses} {
		seen := make(map[string]bool, len(opts))
		for _, opt := range opts {
			if strings.TrimSpace(opt.Key) == "" || strings.TrimSpace(opt.Label) == "" {
				return fmt.Errorf("%w: delivery option needs a key and a label", common.ErrInvalidConfig)
			}
			if seen[opt.Key] {
				return fmt.Errorf("%w: duplicate delivery option %q", common.ErrInvalidConfig, opt.Key)
			}
			seen[opt.Key] = true
		}
	}
	return nil
}

func knownFilter(f consignment.FilterOption) bool {
	for _, known := range consignment.FilterOptions {
		if f == known {
			return true
		}
	}
	return false
}

func knownSort(s consignment.SortOption) bool {
	if s == consignment.SortNone {
		return true
	}
	for _, known := range consignment.SortOptions {
		if s == known {
			return true
		}
	}
	return false
}

// ServerConfig holds the HTTP surface settings.
type ServerConfig struct {
	Addr            string
	CertDir         string
	TLSHosts        []string
	ShutdownTimeout time.Duration
	RetryAttempts   int
	TLS             bool
}

// LoadServerConfig loads server configuration from Viper, falling back to
// the PORT environment variable for the listen address.
func LoadServerConfig() ServerConfig {
	config := ServerConfig{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		RetryAttempts:   common.DefaultRetryOptions().MaxAttempts,
		CertDir:         filepath.Join(ConfigDir(), "certs"),
		TLS:             viper.GetBool("server.tls"),
		TLSHosts:        viper.GetStringSlice("server.tls_hosts"),
	}

	if v := viper.GetString("server.addr"); v != "" {
		config.Addr = v
	} else if port := os.Getenv("PORT"); port != "" {
		config.Addr = ":" + port
	}
	if v := viper.GetDuration("server.shutdown_timeout"); v > 0 {
		config.ShutdownTimeout = v
	}
	if v := viper.GetString("server.cert_dir"); v != "" {
		config.CertDir = ExpandPath(v)
	}
	if v := viper.GetInt("repository.retry_attempts"); v > 0 {
		config.RetryAttempts = v
	}
	return config
}

// DatabasePath returns the configured database path with ~ and variables
// expanded, or cashier.db in DataDir.
func DatabasePath() string {
	path := viper.GetString("database.path")
	if path == "" {
		return filepath.Join(DataDir(), AppName+".db")
	}
	return ExpandPath(path)
}
