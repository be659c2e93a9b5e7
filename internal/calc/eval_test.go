package calc

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"gridcalc/internal/grid"
)

// cells builds an accessor from names such as "A1".
func cells(t *testing.T, m map[string]string) CellValueFunc {
	t.Helper()
	byCoord := make(map[grid.Coord]string, len(m))
	for name, v := range m {
		row, col, ok := grid.ParseCellRef(name)
		require.True(t, ok, "bad cell name %q", name)
		byCoord[grid.Coord{Row: row, Col: col}] = v
	}
	return func(row, col int) string { return byCoord[grid.Coord{Row: row, Col: col}] }
}

func block(t *testing.T) CellValueFunc {
	return cells(t, map[string]string{"A1": "1", "B1": "2", "A2": "3", "B2": "4"})
}

func evalString(t *testing.T, text string, get CellValueFunc) string {
	t.Helper()
	v, err := Evaluate(text, get)
	require.NoError(t, err)
	return v.String()
}

func TestEvaluatePassThrough(t *testing.T) {
	for _, text := range []string{"", "hello", "12", " =A1", "SUM(A1)", "#ERROR!"} {
		v, err := Evaluate(text, nil)
		require.NoError(t, err)
		require.Equal(t, Text(text), v)
	}
}

func TestEvaluateEmptyReferenceIsZero(t *testing.T) {
	get := cells(t, map[string]string{"B1": "other"})

	v, err := Evaluate("=IF(1,A1,B1)", get)
	require.NoError(t, err)
	require.Equal(t, Text("0"), v)

	v, err = Evaluate("=A1", get)
	require.NoError(t, err)
	require.Equal(t, Number(0), v)

	require.Equal(t, "5", evalString(t, "=C9+5", get))
}

func TestEvaluateFunctionCalls(t *testing.T) {
	get := cells(t, map[string]string{
		"A1": "1", "B1": "2", "A2": "3", "B2": "4",
		"C1": "2", "C3": "4",
		"D1": "2", "D2": "4", "D3": "4", "D4": "4", "D5": "5", "D6": "5", "D7": "7", "D8": "9",
		"E1": "text",
	})
	tests := []struct {
		formula string
		want    string
	}{
		{"=SUM(A1:B2)", "10"},
		{"=sum(a1:b2)", "10"},
		{"=SUM(B2:A1)", "10"},
		{"=SUM(A1, B1, 10)", "13"},
		{"=SUM()", "0"},
		{"=SUM(1,abc)", "NaN"},
		{"=PRODUCT()", "1"},
		{"=PRODUCT(A1:B2)", "24"},
		{"=AVERAGE(C1:C3)", "3"},
		{"=AVERAGE()", "NaN"},
		{"=MAX(A1:B2)", "4"},
		{"=MIN(A1:B2, -3)", "-3"},
		{"=MAX()", "-Infinity"},
		{"=MIN()", "Infinity"},
		{"=MAX(1,E1)", "NaN"},
		{"=COUNT(1,abc,,2)", "2"},
		{"=COUNT(A1:E1)", "4"},
		{"=SQRT(16)", "4"},
		{"=SQRT(-1)", "NaN"},
		{"=SQRT()", "NaN"},
		{"=POWER(2,10)", "1024"},
		{"=POWER(B1, A2)", "8"},
		{"=POWER(2)", "NaN"},
		{"=ROUND(2.5)", "3"},
		{"=ROUND(-2.5)", "-2"},
		{"=ROUND(2.4)", "2"},
		{"=ROUND(E1)", "NaN"},
		{"=MEDIAN(1,2,3,4)", "2.5"},
		{"=MEDIAN(1,2,3)", "2"},
		{"=MEDIAN(10,9,2)", "9"},
		{"=MEDIAN()", "NaN"},
		{"=VARIANCE(D1:D8)", FormatNumber(32.0 / 7)},
		{"=STDEV(D1:D8)", FormatNumber(math.Sqrt(32.0 / 7))},
		{"=STDEV(5)", "NaN"},
		{"=VARIANCE(5)", "NaN"},
		{"=IF(1,A1,B1)", "1"},
		{"=IF(0,yes,no)", "yes"},
		{"=IF(,yes,no)", "no"},
		{"=IF(A1,  left , right)", "left"},
		{"=IF(1)", ""},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			require.Equal(t, tt.want, evalString(t, tt.formula, get))
		})
	}
}

func TestEvaluateRangeExpansion(t *testing.T) {
	v, err := Evaluate("=SUM(A1:B2)", block(t))
	require.NoError(t, err)
	require.True(t, v.IsNumber())
	require.Equal(t, 10.0, v.Num)
}

func TestEvaluateIfReturnsRawArgument(t *testing.T) {
	get := cells(t, map[string]string{"A1": "chosen", "B1": "=not evaluated"})
	v, err := Evaluate("=IF(1,A1,B1)", get)
	require.NoError(t, err)
	require.Equal(t, Text("chosen"), v)

	v, err = Evaluate("=IF(,A1,B1)", get)
	require.NoError(t, err)
	require.Equal(t, Text("=not evaluated"), v)
}

func TestEvaluateUnknownFunction(t *testing.T) {
	v, err := Evaluate("=NOTAFUNC(A1)", block(t))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownFunction))
	require.NotEqual(t, ErrorMarker, v.String())

	var uf *UnknownFunctionError
	require.True(t, errors.As(err, &uf))
	require.Equal(t, "NOTAFUNC", uf.Name)
	require.Empty(t, uf.Suggestion)
	require.Equal(t, "Unknown function: NOTAFUNC", err.Error())
}

func TestUnknownFunctionSuggestion(t *testing.T) {
	tests := map[string]string{
		"=SUMM(1)":    "SUM",
		"=averge(1)":  "AVERAGE",
		"=MEDIANN(1)": "MEDIAN",
		"=STDEVP(1)":  "STDEV",
	}
	for formula, want := range tests {
		_, err := Evaluate(formula, nil)
		var uf *UnknownFunctionError
		require.True(t, errors.As(err, &uf), formula)
		require.Equal(t, want, uf.Suggestion, formula)
		require.Contains(t, err.Error(), "did you mean "+want+"?")
	}
}

func TestEvaluateArithmetic(t *testing.T) {
	get := cells(t, map[string]string{"A1": "2", "B1": "3", "C1": "1.5e2", "D1": "-4", "E1": "abc", "F1": "2+3"})
	tests := []struct {
		formula string
		want    string
	}{
		{"=A1+B1*2", "8"},
		{"=(A1+B1)*2", "10"},
		{"= 2 * ( 3 + 4 ) ", "14"},
		{"=$A$1*B$1", "6"},
		{"=a1-b1", "-1"},
		{"=C1*2", "300"},
		{"=-D1+10", "14"},
		{"=A1-D1", "6"},
		{"=F1*2", "8"},
		{"=1/0", "Infinity"},
		{"=-1/0", "-Infinity"},
		{"=0/0", "NaN"},
		{"=0.1+0.2", "0.30000000000000004"},
		{"=Z99*3", "0"},
		{"=A1+", ErrorMarker},
		{"=", ErrorMarker},
		{"=2 3", ErrorMarker},
		{"=hello", ErrorMarker},
		{"=E1+1", ErrorMarker},
		{"=(1+2", ErrorMarker},
		{"=SUM(A1:B1)+1", ErrorMarker},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			require.Equal(t, tt.want, evalString(t, tt.formula, get))
		})
	}
}

func TestEvaluateNonFiniteCellsInArithmetic(t *testing.T) {
	get := cells(t, map[string]string{"A1": "Infinity", "A2": "NaN", "A3": "-Infinity"})
	tests := []struct {
		formula string
		want    string
	}{
		{"=A1+1", "Infinity"},
		{"=A2*2", "NaN"},
		{"=A3-A1", "-Infinity"},
		{"=A1+A3", "NaN"},
		{"=1/A1", "0"},
		{"=SUM(A1,1)", "Infinity"},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			require.Equal(t, tt.want, evalString(t, tt.formula, get))
		})
	}
}

func TestEvaluateMalformedIsMarkerNotError(t *testing.T) {
	v, err := Evaluate("=A1+", cells(t, map[string]string{"A1": "2"}))
	require.NoError(t, err)
	require.Equal(t, Text(ErrorMarker), v)
}

func TestEvaluateConcurrent(t *testing.T) {
	get := block(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v, err := Evaluate("=SUM(A1:B2)", get)
				if err != nil || v.Num != 10 {
					t.Errorf("got %v, %v", v, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
