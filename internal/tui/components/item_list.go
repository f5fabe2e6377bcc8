package components

import (
	"github.com/Veraticus/cashiering/internal/tui/themes"
	"github.com/Veraticus/cashiering/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ItemList shows the visible items as a table with a cursor.
type ItemList struct {
	theme  themes.Theme
	items  []viewmodel.ItemView
	table  table.Model
	width  int
	height int
}

// listKeys leaves space, f and d free for dashboard actions.
func listKeys() table.KeyMap {
	return table.KeyMap{
		LineUp:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		LineDown:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "page up")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "page down")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("Ctrl+U", "½ page up")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("Ctrl+D", "½ page down")),
		GotoTop:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g/Home", "go to start")),
		GotoBottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G/End", "go to end")),
	}
}

// NewItemList creates an empty item list.
func NewItemList(theme themes.Theme) ItemList {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithKeyMap(listKeys()),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Selected
	t.SetStyles(s)

	l := ItemList{theme: theme, table: t, width: 80, height: 12}
	l.updateColumns()
	return l
}

// SetItems replaces the rows. The cursor stays on the same item when it is
// still visible.
func (l *ItemList) SetItems(items []viewmodel.ItemView) {
	current, hadCurrent := l.Current()
	l.items = items
	l.table.SetRows(l.rows())

	cursor := 0
	if hadCurrent {
		for i, it := range items {
			if it.Key == current.Key {
				cursor = i
				break
			}
		}
	}
	l.table.SetCursor(cursor)
}

// Current returns the item under the cursor.
func (l ItemList) Current() (viewmodel.ItemView, bool) {
	c := l.table.Cursor()
	if c < 0 || c >= len(l.items) {
		return viewmodel.ItemView{}, false
	}
	return l.items[c], true
}

// Len returns the number of rows.
func (l ItemList) Len() int { return len(l.items) }

// Update moves the cursor.
func (l ItemList) Update(msg tea.Msg) (ItemList, tea.Cmd) {
	var cmd tea.Cmd
	l.table, cmd = l.table.Update(msg)
	return l, cmd
}

// Resize updates the component size.
func (l *ItemList) Resize(width, height int) {
	l.width = width
	l.height = height
	// header row and its border
	l.table.SetHeight(max(1, height-2))
	l.updateColumns()
	l.table.SetRows(l.rows())
}

// View renders the list.
func (l ItemList) View() string {
	if len(l.items) == 0 {
		return l.theme.Faint.Render("No items match the current view.")
	}
	return l.table.View()
}

func (l ItemList) rows() []table.Row {
	nameWidth := l.nameWidth()
	rows := make([]table.Row, 0, len(l.items))
	for _, it := range l.items {
		invoiced := ""
		if it.Invoiced {
			invoiced = "✓"
		}
		rows = append(rows, table.Row{
			viewmodel.Checkbox(it.IsSelected),
			viewmodel.TruncateString(it.Lot, 8),
			viewmodel.TruncateString(viewmodel.SanitizeForDisplay(it.Name), nameWidth),
			viewmodel.TruncateString(it.Stage, 14),
			it.HammerPrice,
			it.Fees,
			it.Total,
			invoiced,
		})
	}
	return rows
}

func (l ItemList) nameWidth() int {
	// fixed columns plus cell padding
	return max(16, l.width-3-8-14-14-12-14-4-16)
}

func (l *ItemList) updateColumns() {
	l.table.SetColumns([]table.Column{
		{Title: "", Width: 3},
		{Title: "Lot", Width: 8},
		{Title: "Item", Width: l.nameWidth()},
		{Title: "Stage", Width: 14},
		{Title: "Hammer", Width: 14},
		{Title: "Fees", Width: 12},
		{Title: "Total", Width: 14},
		{Title: "Inv", Width: 4},
	})
}
