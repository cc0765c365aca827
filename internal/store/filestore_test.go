package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/eventcarbon/internal/engine"
	"github.com/rshade/eventcarbon/internal/estimate"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "sessions"))
	require.NoError(t, err)
	return s
}

func sampleSession(id, name string) *engine.Session {
	s := engine.NewSession(engine.EventData{ID: id, Name: name, Attendees: 120})
	s.Add(estimate.NewTrip(estimate.Trip{Subtype: "flight", DistanceKm: 1000, Travellers: 3, FlightClass: "business"}))
	s.Add(estimate.NewAccommodation(estimate.Accommodation{Subtype: "hotel", Nights: 3, Guests: 2}))
	return s
}

func TestNewFileStore_EmptyDirectory(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestFileStore_SaveLoad(t *testing.T) {
	s := newTestStore(t)
	original := sampleSession("evt-1", "Summit")

	require.NoError(t, s.Save(original))
	assert.True(t, s.Exists("evt-1"))

	loaded, err := s.Load("evt-1")
	require.NoError(t, err)
	assert.Equal(t, original.Event, loaded.Event)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, original.Items[0].ID, loaded.Items[0].ID)
	assert.InDelta(t, original.Totals().TotalCO2Kg, loaded.Totals().TotalCO2Kg, 1e-9)
}

func TestFileStore_LoadMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = s.Load("")
	assert.ErrorIs(t, err, ErrInvalidEventID)
}

func TestFileStore_SaveRequiresID(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.Save(engine.NewSession(engine.EventData{Name: "x"})), ErrInvalidEventID)
	assert.ErrorIs(t, s.Save(nil), ErrInvalidEventID)
}

func TestFileStore_SchemaVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{"same", SessionSchemaVersion, false},
		{"older minor", "1.0.0", false},
		{"newer minor", "1.9.3", false},
		{"next major", "2.0.0", true},
		{"missing", "", true},
		{"garbage", "one", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			body := `{"schema_version":"` + tt.version + `","session":{"event":{"id":"e","name":"E"}}}`
			require.NoError(t, os.WriteFile(filepath.Join(s.Directory(), "e.json"), []byte(body), 0600))

			loaded, err := s.Load("e")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIncompatibleSchema)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, loaded.Items)
		})
	}
}

func TestFileStore_ListAndDelete(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleSession("b", "Beta")))
	require.NoError(t, s.Save(sampleSession("a", "Alpha")))
	require.NoError(t, os.WriteFile(filepath.Join(s.Directory(), "notes.txt"), []byte("x"), 0600))

	ids, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, s.Delete("a"))
	require.NoError(t, s.Delete("a"))
	assert.False(t, s.Exists("a"))
}

func TestFileStore_RejectsUnsafeIDs(t *testing.T) {
	s := newTestStore(t)
	for _, id := range []string{"../escape", "a/b", `a\b`, "c:d", ".", ".."} {
		t.Run(id, func(t *testing.T) {
			require.ErrorIs(t, s.Save(sampleSession(id, "Unsafe")), ErrInvalidEventID)
			_, err := s.Load(id)
			require.ErrorIs(t, err, ErrInvalidEventID)
			require.ErrorIs(t, s.Delete(id), ErrInvalidEventID)
			assert.False(t, s.Exists(id))
		})
	}

	require.NoError(t, s.Save(sampleSession("a_b", "Underscore")))
	ids, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a_b"}, ids)
}

func TestFileStore_SavedAtUsesClock(t *testing.T) {
	s := newTestStore(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.clock = func() time.Time { return fixed }
	require.NoError(t, s.Save(sampleSession("evt", "Evt")))

	data, err := os.ReadFile(filepath.Join(s.Directory(), "evt.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"saved_at": "2026-03-01T12:00:00Z"`)
}

func TestFileStore_LoadAll(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleSession("2", "Zeta")))
	require.NoError(t, s.Save(sampleSession("1", "Alpha")))
	require.NoError(t, os.WriteFile(filepath.Join(s.Directory(), "bad.json"), []byte("{"), 0600))

	ids, err := s.List()
	require.NoError(t, err)
	require.Len(t, ids, 3)

	sessions, err := s.LoadAll(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "Alpha", sessions[0].Event.Name)
	assert.Equal(t, "Zeta", sessions[1].Event.Name)
}

func TestFileStore_LoadAllCancelled(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleSession("1", "Alpha")))
	require.NoError(t, s.Save(sampleSession("2", "Beta")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sessions, err := s.LoadAll(ctx, []string{"1", "2"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, sessions)
}
