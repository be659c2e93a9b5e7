package calc

import (
	"errors"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrorMarker is shown in place of a value that could not be computed.
const ErrorMarker = "#ERROR!"

// ErrUnknownFunction is matched by every *UnknownFunctionError.
var ErrUnknownFunction = errors.New("unknown function")

// errMalformed marks arithmetic that does not parse. It never leaves the
// package: Evaluate turns it into ErrorMarker.
var errMalformed = errors.New("malformed expression")

// UnknownFunctionError is returned when a function call names something
// outside the library.
type UnknownFunctionError struct {
	Name       string
	Suggestion string // closest library name, if any is near enough
}

func (e *UnknownFunctionError) Error() string {
	msg := "Unknown function: " + e.Name
	if e.Suggestion != "" {
		msg += " (did you mean " + e.Suggestion + "?)"
	}
	return msg
}

func (e *UnknownFunctionError) Is(target error) bool {
	return target == ErrUnknownFunction
}

// maxSuggestDistance bounds how far a typo may be from a library name.
const maxSuggestDistance = 2

func newUnknownFunctionError(name string) *UnknownFunctionError {
	upper := strings.ToUpper(name)
	best, bestDist := "", maxSuggestDistance+1
	for _, f := range library {
		if d := levenshtein.ComputeDistance(upper, f.Name); d < bestDist {
			best, bestDist = f.Name, d
		}
	}
	return &UnknownFunctionError{Name: name, Suggestion: best}
}
