package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/cashiering/internal/tui/themes"
	"github.com/Veraticus/cashiering/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DetailPanel shows one item with its vehicle, seller and fee breakdown in a
// scrollable viewport.
type DetailPanel struct {
	theme    themes.Theme
	detail   viewmodel.DetailView
	viewport viewport.Model
}

// NewDetailPanel creates an empty detail panel.
func NewDetailPanel(theme themes.Theme) DetailPanel {
	return DetailPanel{theme: theme, viewport: viewport.New(60, 20)}
}

// SetDetail replaces the shown item and scrolls to the top.
func (p *DetailPanel) SetDetail(d viewmodel.DetailView) {
	p.detail = d
	p.viewport.SetContent(RenderDetail(d, p.theme))
	p.viewport.GotoTop()
}

// Detail returns the shown item.
func (p DetailPanel) Detail() viewmodel.DetailView { return p.detail }

// Resize updates the viewport size.
func (p *DetailPanel) Resize(width, height int) {
	p.viewport.Width = width
	p.viewport.Height = max(3, height)
}

// Update scrolls the viewport.
func (p DetailPanel) Update(msg tea.Msg) (DetailPanel, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the panel.
func (p DetailPanel) View() string {
	return p.theme.RoundedBox.Render(p.viewport.View()) + "\n" +
		p.theme.Faint.Render("↑/↓ scroll • Esc back")
}

// RenderDetail formats a detail view as plain sections.
func RenderDetail(d viewmodel.DetailView, theme themes.Theme) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(viewmodel.SanitizeForDisplay(d.Item.Name)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Lot %s • %s • %s %s",
		d.Item.Lot, d.Item.Stage, d.Item.TransactionType, d.Item.ConsignType)))
	b.WriteString("\n")

	flags := make([]string, 0, 3)
	for _, name := range []string{"invoiced", "ship", "drive"} {
		flags = append(flags, fmt.Sprintf("%s %s", viewmodel.Checkbox(d.Flags[name]), name))
	}
	b.WriteString(strings.Join(flags, "  "))
	b.WriteString("\n")

	writeSection(&b, theme, "Vehicle", d.Vehicle)
	writeSection(&b, theme, "Seller", d.Seller)
	writeSection(&b, theme, "Breakdown", d.Breakdown)
	b.WriteString(fmt.Sprintf("  %-18s %s\n", "Total", theme.Money.Bold(true).Render(d.Total)))

	return b.String()
}

func writeSection(b *strings.Builder, theme themes.Theme, title string, fields []viewmodel.DetailField) {
	if len(fields) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(theme.Bold.Render(title))
	b.WriteString("\n")
	for _, f := range fields {
		b.WriteString(fmt.Sprintf("  %-18s %s\n", f.Label, f.Value))
	}
}
