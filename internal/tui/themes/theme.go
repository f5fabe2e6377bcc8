// Package themes holds the dashboard color themes.
package themes

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Faint         lipgloss.Style
	Selected      lipgloss.Style
	Highlighted   lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	Money         lipgloss.Style
	BorderedBox   lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Name          string
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Background    lipgloss.Color
	Info          lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
}

type palette struct {
	primary, secondary, success, warning, danger, info lipgloss.Color
	background, foreground, subtle, border, muted      lipgloss.Color
	surface                                            lipgloss.Color
}

func build(name string, p palette) Theme {
	return Theme{
		Name:       name,
		Primary:    p.primary,
		Secondary:  p.secondary,
		Success:    p.success,
		Warning:    p.warning,
		Error:      p.danger,
		Info:       p.info,
		Background: p.background,
		Foreground: p.foreground,
		Border:     p.border,
		Muted:      p.muted,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.foreground),
		Subtitle: lipgloss.NewStyle().Foreground(p.subtle),
		Normal:   lipgloss.NewStyle().Foreground(p.foreground),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(p.foreground),
		Faint:    lipgloss.NewStyle().Foreground(p.muted),
		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.background).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(p.surface).
			Foreground(p.foreground),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.background).
			Background(p.primary).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.subtle).
			Padding(0, 1),
		Money: lipgloss.NewStyle().Foreground(p.success),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),

		StatusSuccess: lipgloss.NewStyle().Foreground(p.success).Bold(true),
		StatusWarning: lipgloss.NewStyle().Foreground(p.warning).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(p.danger).Bold(true),
		StatusInfo:    lipgloss.NewStyle().Foreground(p.info).Bold(true),
	}
}

// Default is the default dark theme.
var Default = build("default", palette{
	primary:    "#c2410c",
	secondary:  "#fb923c",
	success:    "#10b981",
	warning:    "#f59e0b",
	danger:     "#ef4444",
	info:       "#3b82f6",
	background: "#1a1a1a",
	foreground: "#fafafa",
	subtle:     "#a3a3a3",
	border:     "#404040",
	muted:      "#737373",
	surface:    "#2a2a2a",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build("mocha", palette{
	primary:    "#cba6f7",
	secondary:  "#f5c2e7",
	success:    "#a6e3a1",
	warning:    "#f9e2af",
	danger:     "#f38ba8",
	info:       "#89dceb",
	background: "#1e1e2e",
	foreground: "#cdd6f4",
	subtle:     "#a6adc8",
	border:     "#45475a",
	muted:      "#6c7086",
	surface:    "#313244",
})

// Light suits light terminal backgrounds.
var Light = build("light", palette{
	primary:    "#9a3412",
	secondary:  "#c2410c",
	success:    "#047857",
	warning:    "#b45309",
	danger:     "#b91c1c",
	info:       "#1d4ed8",
	background: "#ffffff",
	foreground: "#171717",
	subtle:     "#525252",
	border:     "#d4d4d4",
	muted:      "#737373",
	surface:    "#f5f5f5",
})

var registry = map[string]Theme{
	Default.Name:         Default,
	CatppuccinMocha.Name: CatppuccinMocha,
	Light.Name:           Light,
}

// ByName returns the named theme.
func ByName(name string) (Theme, bool) {
	t, ok := registry[name]
	return t, ok
}

// Names lists the available theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
