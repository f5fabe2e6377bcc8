package tui

import (
	"log/slog"
	"time"

	"github.com/Veraticus/cashiering/internal/config"
	"github.com/Veraticus/cashiering/internal/delivery"
	"github.com/Veraticus/cashiering/internal/service"
	"github.com/Veraticus/cashiering/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme        themes.Theme
	Repo         service.ItemRepository
	Sink         delivery.Sink
	Logger       *slog.Logger
	Now          func() time.Time
	AccountID    string
	ExportDir    string
	RecordDir    string
	Dashboard    config.DashboardConfig
	FetchTimeout time.Duration
	Width        int
	Height       int
	ShowHelp     bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Dashboard:    config.DefaultDashboardConfig(),
		Now:          time.Now,
		ExportDir:    ".",
		FetchTimeout: 30 * time.Second,
		Width:        120,
		Height:       32,
		ShowHelp:     true,
	}
}

// WithRepository sets the item repository.
func WithRepository(repo service.ItemRepository) Option {
	return func(c *Config) {
		c.Repo = repo
	}
}

// WithAccount sets the account whose cart is shown.
func WithAccount(accountID string) Option {
	return func(c *Config) {
		c.AccountID = accountID
	}
}

// WithDashboard applies dashboard settings: theme, initial view and delivery options.
func WithDashboard(dash config.DashboardConfig) Option {
	return func(c *Config) {
		c.Dashboard = dash
		if theme, ok := themes.ByName(dash.Theme); ok {
			c.Theme = theme
		}
	}
}

// WithSink sets where confirmed delivery requests go.
func WithSink(sink delivery.Sink) Option {
	return func(c *Config) {
		c.Sink = sink
	}
}

// WithLogger sets the logger. The terminal belongs to the TUI, so it should
// not write to stdout or stderr.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithExportDir sets where exported documents are written.
func WithExportDir(dir string) Option {
	return func(c *Config) {
		c.ExportDir = dir
	}
}

// WithFrameRecording writes every rendered frame to dir for debugging.
func WithFrameRecording(dir string) Option {
	return func(c *Config) {
		c.RecordDir = dir
	}
}

// WithClock sets the time source for exports and delivery requests.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}
