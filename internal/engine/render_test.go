package engine

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/eventcarbon/internal/estimate"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"table", OutputTable, false},
		{"JSON", OutputJSON, false},
		{" ndjson ", OutputNDJSON, false},
		{"yaml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownOutputFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewItemRows(t *testing.T) {
	items := []estimate.Item{
		estimate.NewAccommodation(estimate.Accommodation{Subtype: "hotel", Nights: 2, Guests: 3}),
		estimate.NewPromotional(estimate.PromotionalItem{Label: "Tote", Quantity: 10, UnitPrice: 2.5, CO2PerUnitKg: 0.4}),
		estimate.NewTrip(estimate.Trip{Subtype: "hovercraft", DistanceKm: 10, Travellers: 1}),
	}

	rows := NewItemRows(items)
	require.Len(t, rows, 3)

	assert.InDelta(t, 86.4, rows[0].CO2Kg, 1e-9)
	assert.Equal(t, "hotel", rows[0].Label)

	assert.InDelta(t, 4.0, rows[1].CO2Kg, 1e-9)
	assert.InDelta(t, 25.0, rows[1].Cost, 1e-9)
	assert.Equal(t, "Tote", rows[1].Label)

	assert.True(t, rows[2].UnknownSubtype)
	assert.Zero(t, rows[2].CO2Kg)
}

func TestRenderItemsAsTable(t *testing.T) {
	rows := NewItemRows([]estimate.Item{
		estimate.NewAccommodation(estimate.Accommodation{Subtype: "hotel", Nights: 2, Guests: 3}),
		estimate.NewTrip(estimate.Trip{Subtype: "hovercraft", DistanceKm: 10, Travellers: 1}),
	})

	var buf bytes.Buffer
	require.NoError(t, RenderItemsAsTable(&buf, rows, 1))

	out := buf.String()
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "86.4 kg")
	assert.Contains(t, out, "(unknown subtype)")
	assert.Contains(t, out, "2 items")
}

func TestRenderItemsAsTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderItemsAsTable(&buf, nil, 2))
	assert.Contains(t, buf.String(), "0 items")
	assert.Contains(t, buf.String(), "0.00 kg")
}

func TestRenderItemsAsJSON(t *testing.T) {
	items := []estimate.Item{
		estimate.NewAccommodation(estimate.Accommodation{Subtype: "hotel", Nights: 1, Guests: 1}),
	}

	var buf bytes.Buffer
	require.NoError(t, RenderItemsAsJSON(&buf, ItemsMetadata{EventID: "evt-1", TotalItems: 1},
		NewItemRows(items), Aggregate(items, nil)))

	var out ItemsJSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "evt-1", out.Metadata.EventID)
	assert.False(t, out.Metadata.GeneratedAt.IsZero())
	require.Len(t, out.Items, 1)
	assert.InDelta(t, 14.4, out.Summary.TotalCO2Kg, 1e-9)
	assert.Equal(t, 1, out.Summary.TreesNeeded)
}

func TestRenderItemsAsJSONEmptyItemsIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderItemsAsJSON(&buf, ItemsMetadata{}, nil, Aggregate(nil, nil)))
	assert.Contains(t, buf.String(), `"items": []`)
}

func TestRenderItemsAsNDJSON(t *testing.T) {
	rows := NewItemRows(sampleItems())

	var buf bytes.Buffer
	require.NoError(t, RenderItemsAsNDJSON(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(rows))
	for _, line := range lines {
		var row ItemRow
		require.NoError(t, json.Unmarshal([]byte(line), &row))
		assert.NotEmpty(t, row.Kind)
	}
}

func TestNewEventSummary(t *testing.T) {
	s := newTestSession()
	s.Add(estimate.NewAccommodation(estimate.Accommodation{Subtype: "hotel", Nights: 10, Guests: 10}))

	summary := NewEventSummary(s)
	assert.Equal(t, "evt-1", summary.Event.ID)
	assert.InDelta(t, 1440.0, summary.Result.TotalCO2Kg, 1e-9)
	assert.Equal(t, 10, summary.Result.TreesNeeded)
	assert.Contains(t, summary.Equivalency, "Plant ~10 trees")
}

func TestNewEventSummaryEmptySession(t *testing.T) {
	summary := NewEventSummary(newTestSession())
	assert.Zero(t, summary.Result.TotalCO2Kg)
	assert.Empty(t, summary.Equivalency)
}

func TestRenderSummaryAsTable(t *testing.T) {
	a := newTestSession()
	a.Add(estimate.NewAccommodation(estimate.Accommodation{Subtype: "hotel", Nights: 2, Guests: 3}))
	a.Add(estimate.NewPromotional(estimate.PromotionalItem{Label: "Cap", Quantity: 4, UnitPrice: 5, CO2PerUnitKg: 1}))
	a.Add(estimate.NewMeal(estimate.FoodDrink{Category: "lunch", Units: 40}))

	b := NewSession(EventData{ID: "evt-2", Name: "Autumn Retreat"})
	b.Add(estimate.NewVenue(estimate.VenueSpace{Attendees: 100, UseIndustryAverage: true}))

	var buf bytes.Buffer
	require.NoError(t, RenderSummaryAsTable(&buf, []EventSummary{NewEventSummary(a), NewEventSummary(b)}, 1))

	out := buf.String()
	assert.Contains(t, out, "Spring Summit")
	assert.Contains(t, out, "Autumn Retreat")
	assert.Contains(t, out, "accommodation")
	assert.Contains(t, out, "PROMO SPEND")
	assert.Contains(t, out, "20.00")
	assert.Contains(t, out, "40 units")
	assert.Contains(t, out, "ALL EVENTS")
	assert.Contains(t, out, "340.4 kg")
}

func TestRenderSummaryAsTableSingleEventHasNoGrandTotal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummaryAsTable(&buf, []EventSummary{NewEventSummary(newTestSession())}, 2))
	assert.NotContains(t, buf.String(), "ALL EVENTS")
}

func TestRenderSummaryAsJSON(t *testing.T) {
	s := newTestSession()
	s.Add(estimate.NewAccommodation(estimate.Accommodation{Subtype: "hotel", Nights: 1, Guests: 20}))

	var buf bytes.Buffer
	require.NoError(t, RenderSummaryAsJSON(&buf, []EventSummary{NewEventSummary(s)}))

	var out SummaryJSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Events, 1)
	assert.InDelta(t, 288.0, out.TotalCO2Kg, 1e-9)
	assert.Equal(t, 2, out.TreesNeeded)
}

func TestRenderSummaryAsNDJSON(t *testing.T) {
	summaries := []EventSummary{NewEventSummary(newTestSession()), NewEventSummary(newTestSession())}

	var buf bytes.Buffer
	require.NoError(t, RenderSummaryAsNDJSON(&buf, summaries))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}
