package estimate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{0.05, 1, 0.1},
		{0.04, 1, 0.0},
		{510.00000000000006, 1, 510.0},
		{86.39999999999999, 1, 86.4},
		{0.125, 2, 0.13},
		{78.3, 2, 78.3},
		{12.345, 0, 12},
		{math.NaN(), 1, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round(tt.v, tt.places), 1e-9, "Round(%v, %d)", tt.v, tt.places)
	}
}

func TestClamp(t *testing.T) {
	assert.Zero(t, ClampNonNegative(-3.5))
	assert.Zero(t, ClampNonNegative(math.Inf(1)))
	assert.InDelta(t, 2.5, ClampNonNegative(2.5), 1e-12)
	assert.Zero(t, ClampInt(-1))
	assert.Equal(t, 4, ClampInt(4))
}
