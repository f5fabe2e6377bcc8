package components

import (
	"fmt"

	"github.com/Veraticus/cashiering/internal/tui/themes"
	"github.com/Veraticus/cashiering/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// AllItemsLabel is the tab shown when the list is not narrowed to a category.
const AllItemsLabel = "All Items"

// RenderTabs draws the category tabs with their counts. When no category tab is
// active an "All Items" tab is shown as active.
func RenderTabs(tabs []viewmodel.TabView, total int, theme themes.Theme) string {
	cells := make([]string, 0, len(tabs)+1)
	anyActive := false
	for _, tab := range tabs {
		style := theme.TabInactive
		if tab.Active {
			style = theme.TabActive
			anyActive = true
		}
		cells = append(cells, style.Render(fmt.Sprintf("%s (%d)", tab.Label, tab.Count)))
	}

	all := theme.TabInactive
	if !anyActive {
		all = theme.TabActive
	}
	cells = append(cells, all.Render(fmt.Sprintf("%s (%d)", AllItemsLabel, total)))

	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
