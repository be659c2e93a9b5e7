package calc

import (
	"fmt"
	"strconv"
)

// evalArithmetic computes an infix expression over float literals with the
// usual precedence: unary +/- binds tightest, then * and /, then + and -.
// Division by zero is not an error; it yields Inf or NaN.
func evalArithmetic(expr string) (float64, error) {
	p := parser{input: expr}

	val, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, p.fail("unexpected %q", p.input[p.pos])
	}
	return val, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) fail(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", errMalformed, fmt.Sprintf(format, args...), p.pos)
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseExpr() (float64, error) {
	return p.parseAddSub()
}

func (p *parser) parseAddSub() (float64, error) {
	val, err := p.parseMulDiv()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		if p.pos >= len(p.input) {
			break
		}
		op := p.input[p.pos]
		if op != '+' && op != '-' {
			break
		}
		p.pos++
		right, err := p.parseMulDiv()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			val += right
		} else {
			val -= right
		}
	}
	return val, nil
}

func (p *parser) parseMulDiv() (float64, error) {
	val, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		if p.pos >= len(p.input) {
			break
		}
		op := p.input[p.pos]
		if op != '*' && op != '/' {
			break
		}
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			val *= right
		} else {
			val /= right
		}
	}
	return val, nil
}

func (p *parser) parseFactor() (float64, error) {
	p.skipSpaces()
	if p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '+':
			p.pos++
			return p.parseFactor()
		case '-':
			p.pos++
			v, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			return -v, nil
		}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, p.fail("unexpected end of expression")
	}
	ch := p.input[p.pos]
	if ch == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return 0, p.fail("missing )")
		}
		p.pos++
		return v, nil
	}
	if isDigit(ch) || ch == '.' {
		return p.parseNumber()
	}
	if isAlpha(ch) {
		return p.parseNonFinite()
	}
	return 0, p.fail("unexpected %q", ch)
}

// parseNonFinite reads the words a non-finite result is displayed as
// (Infinity, NaN) so such a cell can be referenced again.
func (p *parser) parseNonFinite() (float64, error) {
	j := p.pos
	for j < len(p.input) && isAlpha(p.input[j]) {
		j++
	}
	word := p.input[p.pos:j]
	v, err := strconv.ParseFloat(word, 64)
	if err != nil {
		return 0, p.fail("unknown word %q", word)
	}
	p.pos = j
	return v, nil
}

// parseNumber reads digits with an optional fraction and exponent.
func (p *parser) parseNumber() (float64, error) {
	start := p.pos
	j := p.pos
	seenDot := false
	seenE := false
	for j < len(p.input) {
		c := p.input[j]
		if isDigit(c) {
			j++
			continue
		}
		if c == '.' {
			if seenDot || seenE {
				break
			}
			seenDot = true
			j++
			continue
		}
		if c == 'e' || c == 'E' {
			if seenE {
				break
			}
			seenE = true
			j++
			if j < len(p.input) && (p.input[j] == '+' || p.input[j] == '-') {
				j++
			}
			continue
		}
		break
	}
	numStr := p.input[start:j]
	v, err := strconv.ParseFloat(numStr, 64)
	if err != nil && !isRangeErr(err) {
		return 0, p.fail("bad number %q", numStr)
	}
	p.pos = j
	return v, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
