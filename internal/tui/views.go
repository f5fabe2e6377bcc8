package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/cashiering/internal/consignment"
	"github.com/Veraticus/cashiering/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
)

const (
	// title, tabs, view parameters, blank line, status and help
	chromeHeight        = 6
	sidePanelWidth      = 36
	compactTotalsHeight = 2
	wideLayoutWidth     = 110
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == ModeHelp {
		return m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		components.RenderTabs(m.snapshot.Tabs, m.snapshot.TotalCount, m.theme),
		m.renderParams(),
		"",
		m.renderBody(),
		m.renderStatusBar(),
		m.renderShortHelp(),
	)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("Cashiering")
	parts := []string{title, m.theme.Bold.Render(m.snapshot.AccountID)}
	if m.snapshot.EventName != "" {
		parts = append(parts, m.theme.Subtitle.Render(m.snapshot.EventName))
	}
	if m.snapshot.SelectedCount > 0 {
		parts = append(parts, m.theme.StatusInfo.Render(fmt.Sprintf("%d selected", m.snapshot.SelectedCount)))
	}
	return strings.Join(parts, m.theme.Faint.Render(" · "))
}

func (m Model) renderParams() string {
	search := m.snapshot.Search
	if m.mode == ModeSearch {
		search = m.search.View()
	} else if search == "" {
		search = m.theme.Faint.Render("(none)")
	}

	filter := consignment.FilterOption(m.snapshot.Filter).Label()
	sortLabel := consignment.SortOption(m.snapshot.Sort).Label()

	return fmt.Sprintf("%s %s   %s %s   %s %s",
		m.theme.Subtitle.Render("Search:"), search,
		m.theme.Subtitle.Render("Filter:"), filter,
		m.theme.Subtitle.Render("Sort:"), sortLabel)
}

func (m Model) renderBody() string {
	if m.session.Loading() {
		return fmt.Sprintf("%s Loading items...", m.spinner.View())
	}

	var main string
	switch m.mode {
	case ModeDelivery:
		main = m.delivery.View(m.snapshot.Delivery)
	case ModeDetail:
		main = m.detail.View()
	default:
		if m.snapshot.LoadError != "" {
			main = m.theme.StatusError.Render(m.snapshot.LoadError) + "\n" +
				m.theme.Faint.Render("Press r to retry.")
		} else {
			main = m.list.View()
		}
	}

	t := m.snapshot.Totals
	if m.wide() {
		side := m.totals.View(t, m.snapshot.SelectedCount, m.snapshot.TotalCount)
		return lipgloss.JoinHorizontal(lipgloss.Top, main, "   ", side)
	}

	scope := "visible"
	if t.FromSelection {
		scope = "selected"
	}
	compact := fmt.Sprintf("%s %s  %s",
		m.theme.Subtitle.Render("Total Owed"),
		m.theme.Money.Bold(true).Render(t.TotalOwed),
		m.theme.Faint.Render(fmt.Sprintf("(%d %s)", t.ItemCount, scope)))
	return lipgloss.JoinVertical(lipgloss.Left, main, "", compact)
}

func (m Model) renderStatusBar() string {
	left := m.theme.StatusInfo.Render(m.mode.String())

	var style lipgloss.Style
	switch m.statusKind {
	case statusSuccess:
		style = m.theme.StatusSuccess
	case statusWarning:
		style = m.theme.StatusWarning
	case statusError:
		style = m.theme.StatusError
	default:
		style = m.theme.Normal
	}

	right := m.theme.Faint.Render(fmt.Sprintf("%d/%d items", len(m.snapshot.Items), m.snapshot.TotalCount))
	center := style.Render(m.status)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right) - 2
	if gap < 2 {
		return left + "  " + center
	}
	pad := gap / 2
	return left + strings.Repeat(" ", pad+1) + center + strings.Repeat(" ", gap-pad+1) + right
}

func (m Model) renderShortHelp() string {
	if !m.config.ShowHelp {
		return ""
	}
	return m.help.ShortHelpView(m.keymap.ShortHelp())
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Cashiering - Help"),
		"",
		m.help.FullHelpView(m.keymap.FullHelp()),
		"",
		m.theme.Faint.Render("Press ? or Esc to close help"),
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.RoundedBox.Render(body),
	)
}
