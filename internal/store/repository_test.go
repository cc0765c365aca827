package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/eventcarbon/internal/engine"
	"github.com/rshade/eventcarbon/internal/estimate"
)

type record struct {
	ID    string
	Value int
}

func recordID(r record) string { return r.ID }

func TestRepository(t *testing.T) {
	repo := NewRepository(recordID, record{"a", 1}, record{"b", 2}, record{"a", 3})

	t.Run("FixturesReplaceByID", func(t *testing.T) {
		assert.Equal(t, 2, repo.Len())
		got, err := repo.Get("a")
		require.NoError(t, err)
		assert.Equal(t, 3, got.Value)
	})

	t.Run("InsertionOrder", func(t *testing.T) {
		repo.Put(record{"c", 4})
		ids := []string{}
		for _, r := range repo.List() {
			ids = append(ids, r.ID)
		}
		assert.Equal(t, []string{"a", "b", "c"}, ids)
	})

	t.Run("Filter", func(t *testing.T) {
		got := repo.Filter(func(r record) bool { return r.Value > 2 })
		assert.Len(t, got, 2)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete("b"))
		assert.ErrorIs(t, repo.Delete("b"), ErrNotFound)
		_, err := repo.Get("b")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 2, repo.Len())
	})
}

func TestEventRepository(t *testing.T) {
	a := engine.NewSession(engine.EventData{ID: "evt-a", Name: "Summit"})
	a.SelectCategories(estimate.KindAccommodation)
	a.Add(estimate.NewAccommodation(estimate.Accommodation{Subtype: "hotel", Nights: 1, Guests: 10}))
	b := engine.NewSession(engine.EventData{ID: "evt-b", Name: "Retreat"})

	repo := NewEventRepository([]*engine.Session{a, b})
	require.Equal(t, 2, repo.Len())

	got, err := repo.Get("evt-a")
	require.NoError(t, err)
	assert.Equal(t, "Summit", got.Name)
	assert.Equal(t, 1, got.ItemCount)
	assert.InDelta(t, 144.0, got.TotalCO2Kg, 1e-9)
	assert.Equal(t, []estimate.Kind{estimate.KindAccommodation}, got.Categories)

	empty, err := repo.Get("evt-b")
	require.NoError(t, err)
	assert.Zero(t, empty.ItemCount)
}
