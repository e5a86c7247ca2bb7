package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in     string
		places int32
		want   string
	}{
		{"2.345", 2, "2.35"},
		{"2.344", 2, "2.34"},
		{"-2.345", 2, "-2.35"},
		{"2.5", 0, "3"},
		{"0", 2, "0"},
	}

	for _, tt := range tests {
		got := RoundHalfAwayFromZero(decimal.RequireFromString(tt.in), tt.places)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "%s -> %s, got %s", tt.in, tt.want, got)
	}
}

func TestMean(t *testing.T) {
	assert.True(t, Mean(5, 2, 2).Equal(decimal.RequireFromString("2.5")))
	assert.True(t, Mean(10, 3, 2).Equal(decimal.RequireFromString("3.33")))
	assert.True(t, Mean(5, 3, 2).Equal(decimal.RequireFromString("1.67")))
	assert.True(t, Mean(0, 0, 2).IsZero())
}

func TestParseMonthKey(t *testing.T) {
	key, err := ParseMonthKey("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-01", key)

	key, err = ParseMonthKey("2024-12")
	require.NoError(t, err)
	assert.Equal(t, "2024-12", key)

	for _, bad := range []string{"", "2024", "2024-13-01", "abcd-ef-gh", "05/01/2024"} {
		_, err := ParseMonthKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, 10)
}
