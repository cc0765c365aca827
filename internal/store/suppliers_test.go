package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/eventcarbon/internal/estimate"
)

func TestSuppliers_RoundTripThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suppliers.json")

	repo, err := LoadSuppliers(path)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.Len())

	coaches := Supplier{ID: "s1", Name: "Alpine Coaches", Categories: []estimate.Kind{estimate.KindTrip}}
	assert.True(t, coaches.Assign("evt-1"))
	assert.False(t, coaches.Assign("evt-1"))
	repo.Put(coaches)
	repo.Put(Supplier{ID: "s2", Name: "Lakeside Hotel"})

	require.NoError(t, SaveSuppliers(path, repo))

	loaded, err := LoadSuppliers(path)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())

	got, err := loaded.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"evt-1"}, got.EventIDs)
	assert.True(t, got.Covers(estimate.KindTrip))
	assert.False(t, got.Covers(estimate.KindVenue))

	hotel, err := loaded.Get("s2")
	require.NoError(t, err)
	assert.True(t, hotel.Covers(estimate.KindVenue))
}

func TestLoadSuppliers_RejectsIncompatibleSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suppliers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schema_version":"2.0.0","suppliers":[]}`), 0600))

	_, err := LoadSuppliers(path)
	assert.ErrorIs(t, err, ErrIncompatibleSchema)
}
