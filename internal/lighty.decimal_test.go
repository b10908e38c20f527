package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
		ok       bool
	}{
		{"string", "12.45", "12.45", true},
		{"leading zeros", "007.5", "7.5", true},
		{"only fraction", ".5", "0.5", true},
		{"negative", "-3.25", "-3.25", true},
		{"plus sign", "+4", "4", true},
		{"exponent", "1.5e2", "150", true},
		{"float", 0.1, "0.1", true},
		{"int", 42, "42", true},
		{"garbage", "12a", "", false},
		{"empty", "", "", false},
		{"dot only", ".", "", false},
		{"not a number", []int{1}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := parseDecimal(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, d.String())
			}
		})
	}
}

func TestDecimal_Truncate(t *testing.T) {
	d, ok := parseDecimal("12.45")
	require.True(t, ok)

	assert.Equal(t, "12", d.truncate(0).String())
	assert.Equal(t, "12.4", d.truncate(1).String())
	assert.Equal(t, "12.4500", d.truncate(4).String())
}

func TestDecimal_RoundHalfUp(t *testing.T) {
	tests := []struct {
		input    string
		digits   int
		expected string
	}{
		{"12.45", 0, "12"},
		{"12.45", 1, "12.5"},
		{"12.5", 0, "13"},
		{"9.99", 1, "10.0"},
		{"99.5", 0, "100"},
		{"-2.5", 0, "-3"},
		{"1.2", 3, "1.200"},
		{"0.04", 1, "0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, ok := parseDecimal(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.expected, d.roundHalfUp(tt.digits).String())
		})
	}
}

func TestDecimal_IsZero(t *testing.T) {
	d, _ := parseDecimal("-0.00")
	assert.True(t, d.isZero())

	d, _ = parseDecimal("0.01")
	assert.False(t, d.isZero())
}
