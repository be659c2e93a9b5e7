package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"10/4", 2.5},
		{"10-4-3", 3},
		{"2*3/4", 1.5},
		{"-3", -3},
		{"+3", 3},
		{"--3", 3},
		{"-(2+3)*2", -10},
		{" 1 +\t2 ", 3},
		{".5+.5", 1},
		{"1e3+1", 1001},
		{"2.5E-1", 0.25},
		{"((((7))))", 7},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := evalArithmetic(tt.expr)
			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestEvalArithmeticNonFinite(t *testing.T) {
	got, err := evalArithmetic("1/0")
	require.NoError(t, err)
	require.True(t, math.IsInf(got, 1))

	got, err = evalArithmetic("0/0")
	require.NoError(t, err)
	require.True(t, math.IsNaN(got))

	got, err = evalArithmetic("1e400")
	require.NoError(t, err)
	require.True(t, math.IsInf(got, 1))
}

func TestEvalArithmeticNonFiniteWords(t *testing.T) {
	got, err := evalArithmetic("Infinity+1")
	require.NoError(t, err)
	require.True(t, math.IsInf(got, 1))

	got, err = evalArithmetic("-Infinity*2")
	require.NoError(t, err)
	require.True(t, math.IsInf(got, -1))

	got, err = evalArithmetic("(NaN)*2")
	require.NoError(t, err)
	require.True(t, math.IsNaN(got))

	got, err = evalArithmetic("1/Infinity")
	require.NoError(t, err)
	require.Zero(t, got)

	for _, expr := range []string{"Infinityx", "Infinity2", "NaNa", "x"} {
		_, err := evalArithmetic(expr)
		require.ErrorIs(t, err, errMalformed, expr)
	}
}

func TestEvalArithmeticMalformed(t *testing.T) {
	for _, expr := range []string{"", "1+", "*2", "(1", "1)", "2 3", "abc", "1..2", ".", "1e", "#ERROR!"} {
		t.Run(expr, func(t *testing.T) {
			_, err := evalArithmetic(expr)
			require.Error(t, err)
			require.True(t, errors.Is(err, errMalformed))
		})
	}
}
