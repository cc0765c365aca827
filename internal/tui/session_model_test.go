package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/eventcarbon/internal/engine"
	"github.com/rshade/eventcarbon/internal/estimate"
)

func testSession() *engine.Session {
	s := engine.NewSession(engine.EventData{ID: "evt", Name: "Winter Retreat"})
	s.Add(estimate.NewAccommodation(estimate.Accommodation{Subtype: "hotel", Nights: 2, Guests: 4}))
	s.Add(estimate.NewTrip(estimate.Trip{Subtype: "flight", DistanceKm: 800, Travellers: 4}))
	s.Add(estimate.NewMeal(estimate.FoodDrink{Category: "lunch", Units: 40}))
	return s
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	sm, ok := updated.(SessionModel)
	require.True(t, ok)
	return sm, cmd
}

func TestNewSessionModel(t *testing.T) {
	session := testSession()
	m := NewSessionModel(context.Background(), session, 2)

	assert.Equal(t, ViewStateList, m.state)
	assert.Len(t, m.rows, 3)
	assert.InDelta(t, session.Totals().TotalCO2Kg, m.Totals().TotalCO2Kg, 1e-9)
	assert.False(t, m.Changed())
	assert.Nil(t, m.Init())

	view := m.View()
	assert.Contains(t, view, "Winter Retreat")
	assert.Contains(t, view, "Trees:")
}

func TestSessionModel_DeleteRecomputesTotals(t *testing.T) {
	session := testSession()
	m := NewSessionModel(context.Background(), session, 2)
	before := m.Totals().TotalCO2Kg
	first := session.Items[0]

	m, _ = press(t, m, keyRune('d'))

	require.Len(t, session.Items, 2)
	_, found := session.Find(first.ID)
	assert.False(t, found)
	assert.Equal(t, []string{first.ID}, m.Removed())
	assert.True(t, m.Changed())
	assert.InDelta(t, before-estimate.ComputeItemCO2(first), m.Totals().TotalCO2Kg, 1e-9)
	assert.Same(t, session, m.Session())
}

func TestSessionModel_DeleteLastRowMovesCursorUp(t *testing.T) {
	session := testSession()
	m := NewSessionModel(context.Background(), session, 1)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 2, m.table.Cursor())

	m, _ = press(t, m, keyRune('d'))
	assert.Len(t, session.Items, 2)
	assert.Equal(t, 1, m.table.Cursor())
}

func TestSessionModel_DeleteOnEmptySession(t *testing.T) {
	session := engine.NewSession(engine.EventData{ID: "e", Name: "Empty"})
	m := NewSessionModel(context.Background(), session, 1)

	m, _ = press(t, m, keyRune('d'))
	assert.False(t, m.Changed())
	assert.Contains(t, m.View(), "No confirmed items.")
}

func TestSessionModel_SortByCO2(t *testing.T) {
	m := NewSessionModel(context.Background(), testSession(), 2)

	m, _ = press(t, m, keyRune('s'))
	assert.Equal(t, SortByCO2, m.sortBy)
	for i := 1; i < len(m.rows); i++ {
		assert.GreaterOrEqual(t,
			estimate.ComputeItemCO2(m.rows[i-1]), estimate.ComputeItemCO2(m.rows[i]))
	}
	assert.Equal(t, estimate.KindTrip, m.rows[0].Kind)

	m, _ = press(t, m, keyRune('s'))
	assert.Equal(t, SortByKind, m.sortBy)
	assert.Equal(t, estimate.KindAccommodation, m.rows[0].Kind)

	m, _ = press(t, m, keyRune('s'))
	assert.Equal(t, SortByAdded, m.sortBy)
}

func TestSessionModel_DetailAndQuit(t *testing.T) {
	m := NewSessionModel(context.Background(), testSession(), 2)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewStateDetail, m.state)
	assert.Contains(t, m.View(), "ITEM DETAIL")
	assert.Contains(t, m.View(), "hotel")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewStateList, m.state)

	m, cmd := press(t, m, keyRune('q'))
	assert.Equal(t, ViewStateQuitting, m.state)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestSessionModel_WindowResize(t *testing.T) {
	m := NewSessionModel(context.Background(), testSession(), 2)
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	assert.Equal(t, 140, m.width)
	tall := m.table.Height()
	assert.Less(t, tall, 40-summaryHeight, "header rows come out of the table budget")

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 140, Height: 30})
	assert.Equal(t, tall-10, m.table.Height())
}

func TestSessionModel_ResizeKeepsCursor(t *testing.T) {
	m := NewSessionModel(context.Background(), testSession(), 2)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.table.Cursor())

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})
	assert.Equal(t, 1, m.table.Cursor())

	m, _ = press(t, m, keyRune('s'))
	assert.Equal(t, 1, m.table.Cursor())
}

func TestSortField_String(t *testing.T) {
	assert.Equal(t, "Added", SortByAdded.String())
	assert.Equal(t, "CO2e", SortByCO2.String())
	assert.Equal(t, "Kind", SortByKind.String())
}
