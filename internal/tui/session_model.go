package tui

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/eventcarbon/internal/engine"
	"github.com/rshade/eventcarbon/internal/estimate"
	"github.com/rshade/eventcarbon/internal/logging"
)

// SortField selects the table ordering.
type SortField int

const (
	// SortByAdded keeps insertion order.
	SortByAdded SortField = iota
	// SortByCO2 puts the largest emitters first.
	SortByCO2
	// SortByKind groups items by kind.
	SortByKind

	numSortFields = 3
)

// String returns the status-bar label.
func (s SortField) String() string {
	switch s {
	case SortByCO2:
		return "CO2e"
	case SortByKind:
		return "Kind"
	default:
		return "Added"
	}
}

const (
	sessionDefaultWidth  = 100
	sessionDefaultHeight = 24
)

// SessionModel browses the confirmed items of one event session. Items
// removed here are removed from the underlying session.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type SessionModel struct {
	ctx       context.Context
	session   *engine.Session
	precision int

	rows     []estimate.Item
	table    table.Model
	totals   engine.Result
	state    ViewState
	sortBy   SortField
	selected estimate.Item
	removed  []string

	width  int
	height int
}

// NewSessionModel creates a browser for session. precision controls the
// number of decimals shown for CO2e values.
func NewSessionModel(ctx context.Context, session *engine.Session, precision int) SessionModel {
	m := SessionModel{
		ctx:       ctx,
		session:   session,
		precision: precision,
		state:     ViewStateList,
		width:     sessionDefaultWidth,
		height:    sessionDefaultHeight,
	}
	m.table = newItemTable()
	m.resize()
	m.refresh()
	return m
}

// Session returns the session, including any removals made in the browser.
func (m SessionModel) Session() *engine.Session { return m.session }

// Removed returns the IDs deleted during this browser run.
func (m SessionModel) Removed() []string { return m.removed }

// Changed reports whether any item was removed.
func (m SessionModel) Changed() bool { return len(m.removed) > 0 }

// Totals returns the current aggregate.
func (m SessionModel) Totals() engine.Result { return m.totals }

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if m.state == ViewStateDetail {
			return m.handleDetailKeypress(msg)
		}
		return m.handleListKeypress(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m SessionModel) handleListKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEnter:
		if item, ok := m.focused(); ok {
			m.selected = item
			m.state = ViewStateDetail
		}
		return m, nil
	case keyDelete:
		m.removeFocused()
		return m, nil
	case keyS:
		m.sortBy = (m.sortBy + 1) % numSortFields
		m.refresh()
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
}

func (m SessionModel) handleDetailKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEsc, keyEnter:
		m.state = ViewStateList
		return m, nil
	}
	return m, nil
}

func (m SessionModel) focused() (estimate.Item, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.rows) {
		return estimate.Item{}, false
	}
	return m.rows[cursor], true
}

func (m *SessionModel) removeFocused() {
	item, ok := m.focused()
	if !ok {
		return
	}
	if _, err := m.session.Remove(item.ID); err != nil {
		logging.FromContext(m.ctx).Warn().Ctx(m.ctx).
			Str("component", "tui").
			Str("item_id", item.ID).
			Err(err).
			Msg("remove failed")
		return
	}
	m.removed = append(m.removed, item.ID)
	m.refresh()
}

// refresh recomputes totals and re-sorts rows from the session.
func (m *SessionModel) refresh() {
	m.totals = m.session.Totals()

	m.rows = append([]estimate.Item(nil), m.session.Items...)
	switch m.sortBy {
	case SortByCO2:
		sort.SliceStable(m.rows, func(i, j int) bool {
			return estimate.ComputeItemCO2(m.rows[i]) > estimate.ComputeItemCO2(m.rows[j])
		})
	case SortByKind:
		sort.SliceStable(m.rows, func(i, j int) bool {
			return m.rows[i].Kind < m.rows[j].Kind
		})
	case SortByAdded:
	}
	m.rebuildTable()
}

func newItemTable() table.Model {
	columns := []table.Column{
		{Title: "Kind", Width: 14},    //nolint:mnd // Column width.
		{Title: "Label", Width: 22},   //nolint:mnd // Column width.
		{Title: "Details", Width: 34}, //nolint:mnd // Column width.
		{Title: "CO2e kg", Width: 12}, //nolint:mnd // Column width.
		{Title: "Share", Width: 7},    //nolint:mnd // Column width.
	}
	t := table.New(table.WithColumns(columns), table.WithFocused(true))
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

// resize fits the table between the title and the totals panel.
func (m *SessionModel) resize() {
	m.table.SetHeight(max(m.height-summaryHeight-1, minHeight))
}

// rebuildTable replaces the table rows in place so the cursor survives
// re-sorts and resizes. The cursor is clamped when rows shrink.
func (m *SessionModel) rebuildTable() {
	rows := make([]table.Row, len(m.rows))
	for i, it := range m.rows {
		co2 := estimate.ComputeItemCO2(it)
		share := "-"
		if m.totals.TotalCO2Kg > 0 {
			share = fmt.Sprintf("%.0f%%", co2/m.totals.TotalCO2Kg*100) //nolint:mnd // Percent.
		}
		rows[i] = table.Row{
			string(it.Kind),
			it.DisplayLabel(),
			it.Details(),
			fmt.Sprintf("%.*f", m.precision, co2),
			share,
		}
	}

	m.table.SetRows(rows)
	switch cursor := m.table.Cursor(); {
	case len(rows) == 0:
	case cursor >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	case cursor < 0:
		m.table.SetCursor(0)
	}
}
