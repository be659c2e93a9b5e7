package calc

import (
	"math"
	"strconv"
	"strings"
)

// Kind tells which half of a Value is meaningful.
type Kind uint8

const (
	KindText Kind = iota
	KindNumber
)

// Value is the result of an evaluation: either a number or raw text.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }
func Text(s string) Value    { return Value{Kind: KindText, Str: s} }

func (v Value) IsNumber() bool { return v.Kind == KindNumber }

// String renders the value the way a cell displays it.
func (v Value) String() string {
	if v.Kind == KindNumber {
		return FormatNumber(v.Num)
	}
	return v.Str
}

// FormatNumber prints f in shortest round-trip form. Integers have no
// fraction, very large or very small magnitudes switch to exponent form
// (1e+21, 1.5e-7) and non-finite values print as NaN, Infinity, -Infinity.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		if exp == "" {
			exp = "0"
		}
		return mant + "e" + sign + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
