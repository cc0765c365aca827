package export

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rshade/eventcarbon/internal/engine"
	"github.com/rshade/eventcarbon/internal/estimate"
)

func sampleSession() *engine.Session {
	s := engine.NewSession(engine.EventData{ID: "evt", Name: "Harbour Summit", Location: "Hobart", Attendees: 80})
	s.Add(estimate.NewTrip(estimate.Trip{Subtype: "bus", DistanceKm: 200, Travellers: 10}))
	s.Add(estimate.NewAccommodation(estimate.Accommodation{Subtype: "hotel", Nights: 2, Guests: 5}))
	s.Add(estimate.NewMeal(estimate.FoodDrink{Category: "dinner", Units: 80}))
	return s
}

func cellFloat(t *testing.T, f *excelize.File, sheet, cell string) float64 {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	n, err := strconv.ParseFloat(v, 64)
	require.NoError(t, err, "cell %s!%s = %q", sheet, cell, v)
	return n
}

func TestWriteWorkbook(t *testing.T) {
	session := sampleSession()
	result := session.Totals()

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, session, result))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, []string{ItemsSheet, SummarySheet}, f.GetSheetList())

	t.Run("Items", func(t *testing.T) {
		rows, err := f.GetRows(ItemsSheet)
		require.NoError(t, err)
		require.Len(t, rows, 1+len(session.Items))
		assert.Equal(t, "ID", rows[0][0])
		assert.Equal(t, "CO2e (kg)", rows[0][4])

		for i, it := range session.Items {
			row := rows[i+1]
			assert.Equal(t, it.ID, row[0])
			assert.Equal(t, string(it.Kind), row[1])
			assert.InDelta(t, estimate.ComputeItemCO2(it), cellFloat(t, f, ItemsSheet, "E"+strconv.Itoa(i+2)), 1e-9)
		}
	})

	t.Run("Summary", func(t *testing.T) {
		rows, err := f.GetRows(SummarySheet)
		require.NoError(t, err)

		values := map[string]string{}
		for _, row := range rows {
			if len(row) >= 2 {
				values[row[0]] = row[1]
			}
		}
		assert.Equal(t, "Harbour Summit", values["Event"])
		assert.Equal(t, strconv.Itoa(result.TreesNeeded), values["Trees needed"])
		assert.Equal(t, "80", values["Food and drink units"])

		total, err := strconv.ParseFloat(values["Total"], 64)
		require.NoError(t, err)
		assert.InDelta(t, result.TotalCO2Kg, total, 1e-9)
		assert.Contains(t, values, "trip")
		assert.Contains(t, values, "accommodation")
	})
}

func TestWriteWorkbook_EmptySession(t *testing.T) {
	session := engine.NewSession(engine.EventData{ID: "empty", Name: "Empty"})

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, session, session.Totals()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ItemsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
