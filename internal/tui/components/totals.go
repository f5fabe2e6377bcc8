package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/cashiering/internal/tui/themes"
	"github.com/Veraticus/cashiering/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// TotalsPanel renders the running totals.
type TotalsPanel struct {
	theme themes.Theme
	bar   progress.Model
	width int
}

// NewTotalsPanel creates a totals panel.
func NewTotalsPanel(theme themes.Theme) TotalsPanel {
	bar := progress.New(progress.WithSolidFill(string(theme.Primary)))
	bar.ShowPercentage = false
	return TotalsPanel{theme: theme, bar: bar, width: 32}
}

// Resize updates the panel width.
func (p *TotalsPanel) Resize(width int) {
	p.width = width
	p.bar.Width = max(10, min(width-4, 30))
}

// View renders totals for the selection or the visible list.
func (p TotalsPanel) View(t viewmodel.TotalsView, selected, total int) string {
	scope := fmt.Sprintf("Visible items (%d)", t.ItemCount)
	if t.FromSelection {
		scope = fmt.Sprintf("Selected items (%d)", t.ItemCount)
	}

	lines := []string{
		p.theme.Title.Render("Totals"),
		p.theme.Subtitle.Render(scope),
		"",
		p.line("Total Owed", t.TotalOwed, true),
		p.line("Hammer Price", t.TotalHammerPrice, false),
		p.line("Fees", t.TotalFees, false),
		p.line("Bidder Deposit", t.BidderDeposit, false),
		p.line("Escrow", t.EscrowAmount, false),
		p.line("Credits", t.Credits, false),
		"",
	}

	ratio := 0.0
	if total > 0 {
		ratio = float64(selected) / float64(total)
	}
	lines = append(lines,
		p.theme.Faint.Render(fmt.Sprintf("%d of %d selected", selected, total)),
		p.bar.ViewAs(ratio))

	return p.theme.RoundedBox.Width(p.width).Render(strings.Join(lines, "\n"))
}

func (p TotalsPanel) line(label, value string, strong bool) string {
	valueStyle := p.theme.Normal
	if strong {
		valueStyle = p.theme.Money.Bold(true)
	}
	inner := max(20, p.width-4)
	gap := max(1, inner-lipgloss.Width(label)-lipgloss.Width(value))
	return p.theme.Subtitle.Render(label) + strings.Repeat(" ", gap) + valueStyle.Render(value)
}
