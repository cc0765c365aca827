package greenops

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		input      CarbonInput
		wantEmpty  bool
		wantTrees  float64
		wantMiles  string
		wantPhones string
		wantErr    error
	}{
		{
			name:       "event total in kg",
			input:      CarbonInput{Value: 637.4, Unit: "kg"},
			wantTrees:  5,
			wantMiles:  "3,320",
			wantPhones: "77,543",
		},
		{
			name:       "exactly one tree",
			input:      CarbonInput{Value: 150, Unit: "kg"},
			wantTrees:  1,
			wantMiles:  "781",
			wantPhones: "18,248",
		},
		{
			name:       "grams",
			input:      CarbonInput{Value: 300000, Unit: "g"},
			wantTrees:  2,
			wantMiles:  "1,563",
			wantPhones: "36,496",
		},
		{
			name:      "below threshold",
			input:     CarbonInput{Value: 0.5, Unit: "kg"},
			wantEmpty: true,
		},
		{
			name:      "invalid unit",
			input:     CarbonInput{Value: 10, Unit: "oz"},
			wantEmpty: true,
			wantErr:   ErrInvalidUnit,
		},
		{
			name:      "negative",
			input:     CarbonInput{Value: -10, Unit: "kg"},
			wantEmpty: true,
			wantErr:   ErrNegativeValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Calculate(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantEmpty, out.IsEmpty)
			if tt.wantEmpty {
				assert.Empty(t, out.Results)
				return
			}

			require.Len(t, out.Results, 3)
			trees, ok := out.Find(EquivalencyTreesToPlant)
			require.True(t, ok)
			assert.InDelta(t, tt.wantTrees, trees.Value, 0)

			miles, _ := out.Find(EquivalencyMilesDriven)
			assert.Equal(t, tt.wantMiles, miles.FormattedValue)
			phones, _ := out.Find(EquivalencySmartphonesCharged)
			assert.Equal(t, tt.wantPhones, phones.FormattedValue)

			assert.Contains(t, out.DisplayText, "~"+tt.wantMiles+" miles")
			assert.Contains(t, out.CompactText, tt.wantPhones+" phones")
		})
	}
}

func TestCalculateKg_SingularTree(t *testing.T) {
	out, err := CalculateKg(90)
	require.NoError(t, err)
	assert.Contains(t, out.DisplayText, "~1 tree to offset")
}

func TestCalculateKg_NaN(t *testing.T) {
	_, err := CalculateKg(math.NaN())
	assert.ErrorIs(t, err, ErrCalculationOverflow)
}

func TestCalculate_LargeValuesAbbreviate(t *testing.T) {
	out, err := CalculateKg(50_000)
	require.NoError(t, err)
	phones, _ := out.Find(EquivalencySmartphonesCharged)
	assert.Equal(t, "~6.1 million", phones.FormattedValue)
}

func TestEquivalencyType_String(t *testing.T) {
	assert.Equal(t, "TreesToPlant", EquivalencyTreesToPlant.String())
	assert.Equal(t, "MilesDriven", EquivalencyMilesDriven.String())
	assert.Equal(t, "SmartphonesCharged", EquivalencySmartphonesCharged.String())
	assert.Equal(t, "EquivalencyType(9)", EquivalencyType(9).String())

	data, err := json.Marshal(EquivalencyResult{Type: EquivalencyMilesDriven})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"MilesDriven"`)
}
