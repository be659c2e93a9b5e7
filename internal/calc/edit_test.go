package calc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTemplate(t *testing.T) {
	require.Equal(t, "=SUM()", Template("sum"))
	require.Equal(t, "=MEDIAN()", Template("MEDIAN"))
}

func TestInsertRange(t *testing.T) {
	tests := []struct {
		formula, rng, want string
	}{
		{"=SUM()", "A1:B2", "=SUM(A1:B2)"},
		{"=SUM(C1)", "A1", "=SUM(A1)"},
		{"=MAX(A1) + MIN(B1)", "C1:C3", "=MAX(C1:C3) + MIN(B1)"},
		{"=", "A1:B2", "=A1:B2"},
		{"=A1+", "B1", "=A1+B1"},
		{"=)(", "A1", "=)(A1"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, InsertRange(tt.formula, tt.rng), tt.formula)
	}
}

func TestInsertRangeThenEvaluate(t *testing.T) {
	formula := InsertRange(Template("sum"), "A1:B2")
	v, err := Evaluate(formula, block(t))
	require.NoError(t, err)
	require.Equal(t, Number(10), v)
}
