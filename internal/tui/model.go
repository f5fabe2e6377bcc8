// Package tui provides the interactive terminal dashboard for one account's cart.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Veraticus/cashiering/internal/consignment"
	"github.com/Veraticus/cashiering/internal/dashboard"
	"github.com/Veraticus/cashiering/internal/delivery"
	"github.com/Veraticus/cashiering/internal/export"
	"github.com/Veraticus/cashiering/internal/tui/components"
	"github.com/Veraticus/cashiering/internal/tui/themes"
	"github.com/Veraticus/cashiering/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is what the keyboard currently drives.
type Mode int

// Modes.
const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeDelivery
	ModeDetail
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "Browse"
	case ModeSearch:
		return "Search"
	case ModeDelivery:
		return "Delivery"
	case ModeDetail:
		return "Detail"
	case ModeHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

// Model holds the TUI state. Dashboard state lives in the session; the model
// keeps its latest snapshot for rendering.
type Model struct {
	ctx        context.Context
	session    *dashboard.Session
	recorder   *FrameRecorder
	theme      themes.Theme
	config     Config
	keymap     KeyMap
	help       help.Model
	spinner    spinner.Model
	search     textinput.Model
	list       components.ItemList
	totals     components.TotalsPanel
	delivery   components.DeliveryPanel
	detail     components.DetailPanel
	snapshot   viewmodel.DashboardView
	status     string
	statusKind statusKind
	width      int
	height     int
	mode       Mode
	quitting   bool
}

// newModel creates a model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dash := cfg.Dashboard

	controller := delivery.NewController(cfg.Sink,
		delivery.WithLogger(logger),
		delivery.WithClock(cfg.Now),
		delivery.WithCarriers(dash.Carriers),
		delivery.WithAddresses(dash.Addresses))
	session := dashboard.NewSession(cfg.AccountID, cfg.Repo,
		dashboard.WithLogger(logger.With("account_id", cfg.AccountID)),
		dashboard.WithViewParams(dash.Params),
		dashboard.WithDelivery(controller))

	search := textinput.New()
	search.Placeholder = "Search name or lot..."
	search.CharLimit = 80
	search.Prompt = "/ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Theme.StatusInfo

	m := Model{
		ctx:      ctx,
		session:  session,
		recorder: NewFrameRecorder(cfg.RecordDir),
		theme:    cfg.Theme,
		config:   cfg,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		search:   search,
		list:     components.NewItemList(cfg.Theme),
		totals:   components.NewTotalsPanel(cfg.Theme),
		delivery: components.NewDeliveryPanel(cfg.Theme),
		detail:   components.NewDetailPanel(cfg.Theme),
		width:    cfg.Width,
		height:   cfg.Height,
	}
	m.handleResize()
	m.refresh()
	return m
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	m.session.BeginLoad()
	return tea.Batch(m.fetchItems(), m.spinner.Tick)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if _, tick := msg.(spinner.TickMsg); !tick {
		next.recorder.Record(next, msg)
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		if !m.session.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case itemsLoadedMsg:
		m.session.Apply(msg.result)
		if m.mode == ModeDelivery || m.mode == ModeDetail {
			m.mode = ModeBrowse
		}
		m.refresh()
		if msg.result.Err != nil {
			m.setStatus(statusError, "Unable to load items")
		} else {
			m.setStatus(statusInfo, fmt.Sprintf("Loaded %d items", len(msg.result.Items)))
		}
		return m, nil

	case detailLoadedMsg:
		m.detail.SetDetail(dashboard.DetailView(msg.item, m.session.IsSelected(msg.key)))
		m.mode = ModeDetail
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.setStatus(statusError, fmt.Sprintf("Export failed: %v", msg.err))
		} else {
			m.setStatus(statusSuccess, fmt.Sprintf("Exported %s to %s", msg.format, msg.path))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.keymap.ClearScreen) {
		return m, tea.ClearScreen
	}

	switch m.mode {
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeDelivery:
		return m.handleDeliveryKey(msg)
	case ModeDetail:
		if key.Matches(msg, m.keymap.Back, m.keymap.Detail, m.keymap.Quit) {
			m.mode = ModeBrowse
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	case ModeHelp:
		if key.Matches(msg, m.keymap.Back, m.keymap.Help, m.keymap.Quit) {
			m.mode = ModeBrowse
		}
		return m, nil
	}

	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	params := m.session.Params()

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.mode = ModeHelp

	case key.Matches(msg, m.keymap.NextTab):
		m.session.SetPivot(cyclePivot(params.Pivot, 1))

	case key.Matches(msg, m.keymap.PrevTab):
		m.session.SetPivot(cyclePivot(params.Pivot, -1))

	case key.Matches(msg, m.keymap.AllItems):
		if params.Pivot == consignment.PivotAll {
			m.session.SetPivot(m.config.Dashboard.Params.Pivot)
		} else {
			m.session.SetPivot(consignment.PivotAll)
		}

	case key.Matches(msg, m.keymap.Filter):
		m.session.SetFilter(cycle(consignment.FilterOptions, params.Filter))

	case key.Matches(msg, m.keymap.Sort):
		m.session.SetSort(cycle(sortCycle, params.Sort))

	case key.Matches(msg, m.keymap.Search):
		m.mode = ModeSearch
		m.search.SetValue(params.Search)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keymap.Toggle):
		item, ok := m.list.Current()
		if !ok {
			return m, nil
		}
		if _, err := m.session.Toggle(item.Key); err != nil {
			m.setStatus(statusError, err.Error())
		}

	case key.Matches(msg, m.keymap.ClearSelection):
		m.session.ClearSelection()

	case key.Matches(msg, m.keymap.Detail):
		current, ok := m.list.Current()
		if !ok {
			return m, nil
		}
		item, ok := m.session.Item(current.Key)
		if !ok {
			return m, nil
		}
		return m, m.fetchDetail(current.Key, item)

	case key.Matches(msg, m.keymap.Deliver):
		if !m.session.OpenDelivery() {
			m.setStatus(statusWarning, "Select at least one item to request delivery")
			return m, nil
		}
		m.delivery.Reset()
		m.mode = ModeDelivery

	case key.Matches(msg, m.keymap.Refresh):
		m.session.BeginLoad()
		m.setStatus(statusInfo, "Refreshing...")
		return m, tea.Batch(m.fetchItems(), m.spinner.Tick)

	case key.Matches(msg, m.keymap.ExportXLSX):
		return m, m.exportView(export.FormatXLSX)

	case key.Matches(msg, m.keymap.ExportPDF):
		return m, m.exportView(export.FormatPDF)

	default:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = ModeBrowse
		m.search.Blur()
		return m, nil
	case tea.KeyEscape:
		m.mode = ModeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.session.SetSearch("")
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.session.Params().Search {
		m.session.SetSearch(m.search.Value())
		m.refresh()
	}
	return m, cmd
}

func (m Model) handleDeliveryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var (
		action components.DeliveryAction
		cmd    tea.Cmd
		err    error
	)
	m.delivery, action, cmd = m.delivery.Update(msg, m.snapshot.Delivery)

	switch action.Kind {
	case components.ActionAddress:
		err = m.session.SetDeliveryAddress(action.Value)
	case components.ActionCarrier:
		err = m.session.SetDeliveryCarrier(action.Value)
	case components.ActionComments:
		err = m.session.SetDeliveryComments(action.Value)
	case components.ActionCancel:
		m.session.CancelDelivery()
		m.mode = ModeBrowse
		m.setStatus(statusInfo, "Delivery request cancelled")
	case components.ActionConfirm:
		req, ok := m.session.ConfirmDelivery(m.ctx)
		if !ok {
			m.setStatus(statusWarning, "Choose an address and a carrier first")
			break
		}
		m.mode = ModeBrowse
		m.setStatus(statusSuccess, fmt.Sprintf("Delivery requested for %d item(s) via %s",
			len(req.Items), req.Carrier.Label))
	}
	if err != nil {
		m.setStatus(statusError, err.Error())
	}

	m.refresh()
	return m, cmd
}

// refresh re-derives the snapshot after a state change.
func (m *Model) refresh() {
	m.snapshot = m.session.Snapshot()
	m.list.SetItems(m.snapshot.Items)
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	bodyHeight := max(5, m.height-chromeHeight)
	if m.wide() {
		listWidth := m.width - sidePanelWidth - 3
		m.list.Resize(listWidth, bodyHeight)
		m.totals.Resize(sidePanelWidth)
		m.delivery.Resize(listWidth)
		m.detail.Resize(listWidth-4, bodyHeight-3)
	} else {
		m.list.Resize(m.width-2, bodyHeight-compactTotalsHeight)
		m.totals.Resize(m.width - 2)
		m.delivery.Resize(m.width - 2)
		m.detail.Resize(m.width-6, bodyHeight-3)
	}
	m.help.Width = m.width
}

func (m Model) wide() bool { return m.width >= wideLayoutWidth }

// sortCycle puts the unsorted order last.
var sortCycle = append(slices.Clone(consignment.SortOptions), consignment.SortNone)

func cycle[T comparable](options []T, current T) T {
	idx := slices.Index(options, current)
	return options[(idx+1)%len(options)]
}

func cyclePivot(current consignment.Pivot, step int) consignment.Pivot {
	pivots := consignment.Pivots
	n := len(pivots)
	idx := slices.Index(pivots, current)
	if idx < 0 {
		if step > 0 {
			return pivots[0]
		}
		return pivots[n-1]
	}
	return pivots[(idx+step+n)%n]
}
