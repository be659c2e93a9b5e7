package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{8, "8"},
		{-3, "-3"},
		{2.5, "2.5"},
		{0.1 + 0.2, "0.30000000000000004"},
		{math.Copysign(0, -1), "0"},
		{123456789012, "123456789012"},
		{1e21, "1e+21"},
		{-2.5e22, "-2.5e+22"},
		{1.5e-7, "1.5e-7"},
		{0.000001, "0.000001"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestValueString(t *testing.T) {
	require.Equal(t, "10", Number(10).String())
	require.Equal(t, "abc", Text("abc").String())
	require.Equal(t, "", Value{}.String())
	require.True(t, Number(1).IsNumber())
	require.False(t, Text("1").IsNumber())
}
