package calc

import "strings"

// Template returns an empty call to the named function, ready for editing.
func Template(name string) string {
	return "=" + strings.ToUpper(name) + "()"
}

// InsertRange puts rng between the first '(' and the first ')', replacing
// whatever was there. When there is no '(' followed by a ')' rng is appended.
func InsertRange(formula, rng string) string {
	open := strings.Index(formula, "(")
	closing := strings.Index(formula, ")")
	if open == -1 || closing < open {
		return formula + rng
	}
	return formula[:open+1] + rng + formula[closing:]
}
