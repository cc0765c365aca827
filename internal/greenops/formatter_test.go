package greenops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{123, "123"},
		{1234, "1,234"},
		{77543, "77,543"},
		{-1234, "-1,234"},
		{1234567890, "1,234,567,890"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.n))
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		f         float64
		precision int
		want      string
	}{
		{"integer", 18248.56, 0, "18,249"},
		{"one place", 637.44, 1, "637.4"},
		{"two places", 1234.5678, 2, "1,234.57"},
		{"zero", 0, 2, "0.00"},
		{"negative", -1234.56, 2, "-1,234.56"},
		{"carry", 999.999, 2, "1,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.f, tt.precision))
		})
	}
}

func TestFormatLarge(t *testing.T) {
	tests := []struct {
		n    float64
		want string
	}{
		{999999, "999,999"},
		{1_000_000, "~1.0 million"},
		{5_200_000, "~5.2 million"},
		{1_500_000_000, "~1.5 billion"},
		{0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLarge(tt.n))
		})
	}
}

func TestFormatKg(t *testing.T) {
	tests := []struct {
		kg        float64
		precision int
		want      string
	}{
		{637.4, 1, "637.4 kg"},
		{86.4, 2, "86.40 kg"},
		{999.9, 1, "999.9 kg"},
		{1000, 1, "1.0 t"},
		{12500, 1, "12.5 t"},
		{0, 0, "0 kg"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatKg(tt.kg, tt.precision))
		})
	}
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$180.00", FormatCost(180, "$"))
	assert.Equal(t, "1,234.50", FormatCost(1234.5, ""))
	assert.Equal(t, "-€2.25", FormatCost(-2.25, "€"))
}

func BenchmarkFormatFloat(b *testing.B) {
	for b.Loop() {
		FormatFloat(1234.5678, 2)
	}
}
