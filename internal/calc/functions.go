package calc

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
)

// FuncKind enumerates the built-in functions.
type FuncKind uint8

const (
	FuncSum FuncKind = iota
	FuncAverage
	FuncMax
	FuncMin
	FuncCount
	FuncProduct
	FuncSqrt
	FuncPower
	FuncRound
	FuncMedian
	FuncStdev
	FuncVariance
	FuncIf
)

// Function is one entry of the function library. Fn receives the call's
// arguments already resolved and flattened.
type Function struct {
	Kind FuncKind
	Name string
	Fn   func(args []string) Value
}

// library is indexed by FuncKind; its order is the listing order.
var library = [...]Function{
	FuncSum:      {FuncSum, "SUM", sum},
	FuncAverage:  {FuncAverage, "AVERAGE", average},
	FuncMax:      {FuncMax, "MAX", maxOf},
	FuncMin:      {FuncMin, "MIN", minOf},
	FuncCount:    {FuncCount, "COUNT", count},
	FuncProduct:  {FuncProduct, "PRODUCT", product},
	FuncSqrt:     {FuncSqrt, "SQRT", sqrt},
	FuncPower:    {FuncPower, "POWER", power},
	FuncRound:    {FuncRound, "ROUND", round},
	FuncMedian:   {FuncMedian, "MEDIAN", median},
	FuncStdev:    {FuncStdev, "STDEV", stdev},
	FuncVariance: {FuncVariance, "VARIANCE", variance},
	FuncIf:       {FuncIf, "IF", ifFunc},
}

var libraryIndex = func() map[string]FuncKind {
	idx := make(map[string]FuncKind, len(library))
	for _, f := range library {
		idx[f.Name] = f.Kind
	}
	return idx
}()

// FunctionNames lists the library in its fixed order.
func FunctionNames() []string {
	names := make([]string, 0, len(library))
	for _, f := range library {
		names = append(names, f.Name)
	}
	return names
}

// LookupFunction finds a library function by name, ignoring case.
func LookupFunction(name string) (Function, bool) {
	kind, ok := libraryIndex[strings.ToUpper(name)]
	if !ok {
		return Function{}, false
	}
	return library[kind], true
}

// parseNumber reads a scalar as a float. Text that is not a number is NaN.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !isRangeErr(err) {
		return math.NaN()
	}
	return v
}

func isRangeErr(err error) bool {
	return errors.Is(err, strconv.ErrRange)
}

// arg returns the i-th argument as a number, NaN when it is missing.
func arg(args []string, i int) float64 {
	if i >= len(args) {
		return math.NaN()
	}
	return parseNumber(args[i])
}

func sum(args []string) Value {
	total := 0.0
	for _, a := range args {
		total += parseNumber(a)
	}
	return Number(total)
}

// average divides by every argument, numeric or not.
func average(args []string) Value {
	return Number(sum(args).Num / float64(len(args)))
}

func maxOf(args []string) Value {
	best := math.Inf(-1)
	for _, a := range args {
		v := parseNumber(a)
		if math.IsNaN(v) {
			return Number(v)
		}
		best = math.Max(best, v)
	}
	return Number(best)
}

func minOf(args []string) Value {
	best := math.Inf(1)
	for _, a := range args {
		v := parseNumber(a)
		if math.IsNaN(v) {
			return Number(v)
		}
		best = math.Min(best, v)
	}
	return Number(best)
}

func count(args []string) Value {
	n := 0
	for _, a := range args {
		if a != "" && !math.IsNaN(parseNumber(a)) {
			n++
		}
	}
	return Number(float64(n))
}

func product(args []string) Value {
	total := 1.0
	for _, a := range args {
		total *= parseNumber(a)
	}
	return Number(total)
}

func sqrt(args []string) Value {
	return Number(math.Sqrt(arg(args, 0)))
}

func power(args []string) Value {
	return Number(math.Pow(arg(args, 0), arg(args, 1)))
}

// round sends halves toward +Inf: 2.5 -> 3, -2.5 -> -2.
func round(args []string) Value {
	x := arg(args, 0)
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return Number(r)
}

func median(args []string) Value {
	if len(args) == 0 {
		return Number(math.NaN())
	}
	nums := make([]float64, len(args))
	for i, a := range args {
		nums[i] = parseNumber(a)
	}
	slices.SortFunc(nums, cmp.Compare[float64])
	mid := len(nums) / 2
	if len(nums)%2 == 0 {
		return Number((nums[mid-1] + nums[mid]) / 2)
	}
	return Number(nums[mid])
}

// sampleVariance divides by n-1; fewer than two samples give NaN.
func sampleVariance(args []string) float64 {
	n := float64(len(args))
	mean := sum(args).Num / n
	ss := 0.0
	for _, a := range args {
		d := parseNumber(a) - mean
		ss += d * d
	}
	return ss / (n - 1)
}

func stdev(args []string) Value {
	return Number(math.Sqrt(sampleVariance(args)))
}

func variance(args []string) Value {
	return Number(sampleVariance(args))
}

// ifFunc picks the second or third argument untouched; any non-empty first
// argument counts as true.
func ifFunc(args []string) Value {
	pick := 2
	if len(args) > 0 && args[0] != "" {
		pick = 1
	}
	if pick >= len(args) {
		return Text("")
	}
	return Text(args[pick])
}
