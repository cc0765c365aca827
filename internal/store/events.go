package store

import (
	"github.com/rshade/eventcarbon/internal/engine"
	"github.com/rshade/eventcarbon/internal/estimate"
)

// Event is the listing view of a stored session: the event header plus
// the selected categories and headline totals.
type Event struct {
	engine.EventData

	Categories []estimate.Kind `json:"categories,omitempty"`
	ItemCount  int             `json:"item_count"`
	TotalCO2Kg float64         `json:"total_co2_kg"`
}

// EventID is the key function for event repositories.
func EventID(e Event) string { return e.ID }

// EventFromSession summarises a session as an Event record.
func EventFromSession(s *engine.Session) Event {
	totals := s.Totals()
	return Event{
		EventData:  s.Event,
		Categories: s.SelectedCategories,
		ItemCount:  totals.ItemCount,
		TotalCO2Kg: totals.TotalCO2Kg,
	}
}

// NewEventRepository builds an event repository from loaded sessions,
// keeping their order.
func NewEventRepository(sessions []*engine.Session) *Repository[Event] {
	events := make([]Event, 0, len(sessions))
	for _, s := range sessions {
		events = append(events, EventFromSession(s))
	}
	return NewRepository(EventID, events...)
}
