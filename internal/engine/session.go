package engine

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rshade/eventcarbon/internal/estimate"
)

// Session errors.
var (
	ErrItemNotFound = errors.New("item not found")
	ErrNoDraft      = errors.New("no draft item to confirm")
)

// EventData is the event header collected on the first wizard step.
type EventData struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	StartDate time.Time `json:"start_date,omitzero"`
	EndDate   time.Time `json:"end_date,omitzero"`
	Attendees int       `json:"attendees,omitempty"`
}

// Session is the workflow context threaded through the estimation steps:
// the event, the categories the organiser selected, the confirmed items
// and the item currently being edited.
//
// A Session is owned by one caller at a time and is not safe for
// concurrent mutation.
type Session struct {
	Event              EventData       `json:"event"`
	SelectedCategories []estimate.Kind `json:"selected_categories,omitempty"`
	Items              []estimate.Item `json:"items"`
	Draft              *estimate.Item  `json:"draft,omitempty"`

	ids   IDGenerator
	clock func() time.Time
}

// SessionOption customises a new Session.
type SessionOption func(*Session)

// WithIDGenerator replaces the default ULID generator.
func WithIDGenerator(g IDGenerator) SessionOption {
	return func(s *Session) { s.ids = g }
}

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(clock func() time.Time) SessionOption {
	return func(s *Session) { s.clock = clock }
}

// NewSession creates an empty session for an event.
func NewSession(event EventData, opts ...SessionOption) *Session {
	s := &Session{Event: event, Items: []estimate.Item{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach sets the ID generator and clock on a session that was decoded
// from storage, where unexported fields are lost.
func (s *Session) Attach(opts ...SessionOption) *Session {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) now() time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return time.Now()
}

func (s *Session) nextID() string {
	if s.ids == nil {
		s.ids = NewULIDGenerator()
	}
	return s.ids.NewID(s.now())
}

// SelectCategories records which activity categories apply to the event.
// Duplicates are dropped and order is preserved.
func (s *Session) SelectCategories(kinds ...estimate.Kind) {
	out := make([]estimate.Kind, 0, len(kinds))
	for _, k := range kinds {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	s.SelectedCategories = out
}

// IsSelected reports whether kind is one of the selected categories.
// An empty selection means every category is in play.
func (s *Session) IsSelected(kind estimate.Kind) bool {
	if len(s.SelectedCategories) == 0 {
		return true
	}
	return slices.Contains(s.SelectedCategories, kind)
}

// SetDraft replaces the item being edited.
func (s *Session) SetDraft(item estimate.Item) {
	s.Draft = &item
}

// ClearDraft resets the draft to empty.
func (s *Session) ClearDraft() {
	s.Draft = nil
}

// Add appends item with a fresh ID and returns the stored copy.
func (s *Session) Add(item estimate.Item) estimate.Item {
	item.ID = s.nextID()
	item.CreatedAt = s.now()
	s.Items = append(s.Items, item)
	return item
}

// Confirm moves the draft into the confirmed list and resets the draft.
func (s *Session) Confirm() (estimate.Item, error) {
	if s.Draft == nil {
		return estimate.Item{}, ErrNoDraft
	}
	if err := s.Draft.Validate(); err != nil {
		return estimate.Item{}, fmt.Errorf("confirming draft: %w", err)
	}
	item := s.Add(*s.Draft)
	s.ClearDraft()
	return item, nil
}

// Remove deletes the item with the given ID and returns it.
func (s *Session) Remove(id string) (estimate.Item, error) {
	idx := slices.IndexFunc(s.Items, func(it estimate.Item) bool { return it.ID == id })
	if idx < 0 {
		return estimate.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	removed := s.Items[idx]
	s.Items = slices.Delete(s.Items, idx, idx+1)
	return removed, nil
}

// Find returns the item with the given ID.
func (s *Session) Find(id string) (estimate.Item, bool) {
	idx := slices.IndexFunc(s.Items, func(it estimate.Item) bool { return it.ID == id })
	if idx < 0 {
		return estimate.Item{}, false
	}
	return s.Items[idx], true
}

// ItemsOfKind returns the confirmed items of one kind, in insertion order.
func (s *Session) ItemsOfKind(kind estimate.Kind) []estimate.Item {
	var out []estimate.Item
	for _, it := range s.Items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// Totals recomputes the aggregate over the confirmed items and the draft.
func (s *Session) Totals() Result {
	return Aggregate(s.Items, s.Draft)
}
