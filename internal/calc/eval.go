// Package calc evaluates spreadsheet formulas against a read-only view of
// other cells.
//
// A formula is any text starting with '='. The body is either a single
// function call such as SUM(A1:B2, 4) or an arithmetic expression such as
// A1+B1*2. Text without the leading '=' is returned unchanged.
package calc

import (
	"regexp"
	"strings"
)

var callPattern = regexp.MustCompile(`^([A-Za-z]+)\((.*)\)$`)

// Evaluate computes the value of text. get supplies the text of other cells;
// a nil get behaves like an empty sheet.
//
// The only error is an *UnknownFunctionError, for a call to a name outside
// the library. Arithmetic that fails to parse yields Text(ErrorMarker) and a
// nil error. Non-finite numbers are ordinary results.
func Evaluate(text string, get CellValueFunc) (Value, error) {
	if !strings.HasPrefix(text, "=") {
		return Text(text), nil
	}
	if get == nil {
		get = emptySheet
	}
	body := strings.TrimSpace(text[1:])

	if m := callPattern.FindStringSubmatch(body); m != nil {
		return evalCall(m[1], m[2], get)
	}
	return evalInline(body, get), nil
}

func evalCall(name, rawArgs string, get CellValueFunc) (Value, error) {
	fn, ok := LookupFunction(name)
	if !ok {
		err := newUnknownFunctionError(name)
		Logger().Debug("calc: unknown function", "name", name, "suggestion", err.Suggestion)
		return Value{}, err
	}
	args := resolveArgs(rawArgs, get)
	Logger().Debug("calc: call", "func", fn.Name, "args", len(args))
	return fn.Fn(args), nil
}

// resolveArgs splits on every comma, resolves references and ranges, and
// flattens the result in argument order. A blank argument list has no
// arguments at all.
func resolveArgs(raw string, get CellValueFunc) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var flat []string
	for _, a := range strings.Split(raw, ",") {
		a = strings.TrimSpace(a)
		if v, ok := ResolveRef(a, get); ok {
			flat = append(flat, v)
			continue
		}
		if vs, ok := ResolveRange(a, get); ok {
			flat = append(flat, vs...)
			continue
		}
		flat = append(flat, a)
	}
	return flat
}

func evalInline(body string, get CellValueFunc) Value {
	expr := substituteRefs(body, get)
	v, err := evalArithmetic(expr)
	if err != nil {
		Logger().Debug("calc: malformed expression", "formula", body, "expr", expr, "err", err)
		return Text(ErrorMarker)
	}
	return Number(v)
}
