package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFunctionNamesOrder(t *testing.T) {
	require.Equal(t, []string{
		"SUM", "AVERAGE", "MAX", "MIN", "COUNT", "PRODUCT", "SQRT",
		"POWER", "ROUND", "MEDIAN", "STDEV", "VARIANCE", "IF",
	}, FunctionNames())
}

func TestFunctionNamesIsACopy(t *testing.T) {
	names := FunctionNames()
	names[0] = "CHANGED"
	require.Equal(t, "SUM", FunctionNames()[0])
}

func TestLookupFunction(t *testing.T) {
	f, ok := LookupFunction("median")
	require.True(t, ok)
	require.Equal(t, FuncMedian, f.Kind)
	require.Equal(t, "MEDIAN", f.Name)

	_, ok = LookupFunction("CONCAT")
	require.False(t, ok)
}

func TestLibraryIndexedByKind(t *testing.T) {
	for i, f := range library {
		require.Equal(t, FuncKind(i), f.Kind, f.Name)
		require.NotNil(t, f.Fn, f.Name)
	}
}

func TestIdentities(t *testing.T) {
	require.Equal(t, Number(0), sum(nil))
	require.Equal(t, Number(1), product(nil))
	require.Equal(t, Number(0), count(nil))
}

func TestParseNumber(t *testing.T) {
	require.Equal(t, 4.0, parseNumber(" 4 "))
	require.Equal(t, -0.5, parseNumber("-.5"))
	require.True(t, math.IsNaN(parseNumber("")))
	require.True(t, math.IsNaN(parseNumber("4abc")))
}

func TestRoundHalfTowardPositiveInfinity(t *testing.T) {
	cases := map[string]float64{
		"0.49999999999999994": 0,
		"0.5":                 1,
		"1.5":                 2,
		"-1.5":                -1,
		"-1.6":                -2,
		"7":                   7,
	}
	for in, want := range cases {
		require.Equal(t, want, round([]string{in}).Num, in)
	}
}
