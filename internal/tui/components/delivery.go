package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/cashiering/internal/tui/themes"
	"github.com/Veraticus/cashiering/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DeliveryField is the focused field of the delivery panel.
type DeliveryField int

// Delivery panel fields in tab order.
const (
	FieldAddress DeliveryField = iota
	FieldCarrier
	FieldComments
	fieldCount
)

// DeliveryActionKind says what the user asked the delivery panel to do.
type DeliveryActionKind int

// Delivery actions.
const (
	ActionNone DeliveryActionKind = iota
	ActionAddress
	ActionCarrier
	ActionComments
	ActionConfirm
	ActionCancel
)

// DeliveryAction is the outcome of a key press in the delivery panel. The
// dashboard applies it to the session.
type DeliveryAction struct {
	Value string
	Kind  DeliveryActionKind
}

// DeliveryPanel is the delivery review form.
type DeliveryPanel struct {
	theme    themes.Theme
	comments textinput.Model
	focus    DeliveryField
	width    int
}

// NewDeliveryPanel creates a delivery panel.
func NewDeliveryPanel(theme themes.Theme) DeliveryPanel {
	input := textinput.New()
	input.Placeholder = "Delivery instructions..."
	input.CharLimit = 500
	input.Prompt = "> "
	return DeliveryPanel{theme: theme, comments: input, width: 60}
}

// Reset focuses the address field and clears the comments.
func (p *DeliveryPanel) Reset() {
	p.focus = FieldAddress
	p.comments.SetValue("")
	p.comments.Blur()
}

// Focus returns the focused field.
func (p DeliveryPanel) Focus() DeliveryField { return p.focus }

// Resize updates the panel width.
func (p *DeliveryPanel) Resize(width int) {
	p.width = width
	p.comments.Width = max(10, width-8)
}

// Update handles a key press against the current delivery state.
func (p DeliveryPanel) Update(msg tea.KeyMsg, view viewmodel.DeliveryView) (DeliveryPanel, DeliveryAction, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return p, DeliveryAction{Kind: ActionCancel}, nil
	case "enter", "ctrl+s":
		return p, DeliveryAction{Kind: ActionConfirm}, nil
	case "tab":
		cmd := p.moveFocus(1)
		return p, DeliveryAction{}, cmd
	case "shift+tab":
		cmd := p.moveFocus(-1)
		return p, DeliveryAction{}, cmd
	}

	switch p.focus {
	case FieldAddress, FieldCarrier:
		step := 0
		switch msg.String() {
		case "right", "l", "down", "j":
			step = 1
		case "left", "h", "up", "k":
			step = -1
		}
		if step == 0 {
			return p, DeliveryAction{}, nil
		}
		if p.focus == FieldAddress {
			return p, DeliveryAction{Kind: ActionAddress, Value: cycle(view.Addresses, step)}, nil
		}
		return p, DeliveryAction{Kind: ActionCarrier, Value: cycle(view.Carriers, step)}, nil

	case FieldComments:
		before := p.comments.Value()
		var cmd tea.Cmd
		p.comments, cmd = p.comments.Update(msg)
		if p.comments.Value() != before {
			return p, DeliveryAction{Kind: ActionComments, Value: p.comments.Value()}, cmd
		}
		return p, DeliveryAction{}, cmd
	}
	return p, DeliveryAction{}, nil
}

func (p *DeliveryPanel) moveFocus(delta int) tea.Cmd {
	p.focus = DeliveryField((int(p.focus) + delta + int(fieldCount)) % int(fieldCount))
	if p.focus == FieldComments {
		return p.comments.Focus()
	}
	p.comments.Blur()
	return nil
}

// cycle returns the key of the option step places away from the selected
// one. With nothing selected it starts at the first or last option.
func cycle(options []viewmodel.OptionView, step int) string {
	if len(options) == 0 {
		return ""
	}
	current := -1
	for i, opt := range options {
		if opt.Selected {
			current = i
			break
		}
	}
	var next int
	switch {
	case current < 0 && step > 0:
		next = 0
	case current < 0:
		next = len(options) - 1
	default:
		next = (current + step + len(options)) % len(options)
	}
	return options[next].Key
}

// View renders the review form.
func (p DeliveryPanel) View(view viewmodel.DeliveryView) string {
	var b strings.Builder

	b.WriteString(p.theme.Title.Render("Delivery Review"))
	b.WriteString("\n")
	b.WriteString(p.theme.Subtitle.Render(fmt.Sprintf("%d item(s)", len(view.Items))))
	b.WriteString("\n\n")

	for _, it := range view.Items {
		name := viewmodel.TruncateString(viewmodel.SanitizeForDisplay(it.Name), max(10, p.width-24))
		b.WriteString(fmt.Sprintf("  %-*s %14s\n", max(10, p.width-24), name, it.Total))
	}
	b.WriteString("\n")
	b.WriteString(p.row("Hammer Price", view.Breakdown.TotalHammerPrice))
	b.WriteString(p.row("Fees", view.Breakdown.TotalFees))
	b.WriteString(p.row("Total", p.theme.Money.Bold(true).Render(view.Breakdown.TotalOwed)))
	b.WriteString("\n")

	b.WriteString(p.picker("Address", view.Addresses, p.focus == FieldAddress))
	b.WriteString(p.picker("Carrier", view.Carriers, p.focus == FieldCarrier))

	label := p.theme.Subtitle.Render("Comments")
	if p.focus == FieldComments {
		label = p.theme.StatusInfo.Render("Comments")
	}
	b.WriteString(label + "\n  " + p.comments.View() + "\n\n")

	if view.CanConfirm {
		b.WriteString(p.theme.StatusSuccess.Render("Ready to send"))
	} else {
		b.WriteString(p.theme.StatusWarning.Render("Choose an address and a carrier"))
	}
	b.WriteString("\n")
	b.WriteString(p.theme.Faint.Render("Tab next field • ←/→ change • Enter confirm • Esc cancel"))

	return p.theme.RoundedBox.Width(p.width).Render(b.String())
}

func (p DeliveryPanel) row(label, value string) string {
	return fmt.Sprintf("  %-14s %s\n", label, value)
}

func (p DeliveryPanel) picker(label string, options []viewmodel.OptionView, focused bool) string {
	value := p.theme.Faint.Render("(none)")
	if opt, ok := viewmodel.Selected(options); ok {
		value = p.theme.Bold.Render(opt.Label)
	}

	title := p.theme.Subtitle.Render(label)
	if focused {
		title = p.theme.StatusInfo.Render(label)
		value = "‹ " + value + " ›"
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, "  "+value) + "\n"
}
