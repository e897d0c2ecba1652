// ----------------------------------------------------------------------------
// FILE: numlex/numlex.go
// ----------------------------------------------------------------------------
// PACKAGE: numlex
// PURPOSE: Parses a numeric token body into a number.Number (spec.md §4.2),
//          and — per SPEC_FULL.md §5.1 — a ratio body `<int>/<int>`.
// ----------------------------------------------------------------------------

package numlex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vyion-lang/vyion/number"
)

// Parse converts a numeric token body (as classified by the lexer) into a
// number.Number, or reports the first lexical error found in the body.
func Parse(body string) (number.Number, error) {
	if r, ok := splitRatio(body); ok {
		return parseRatio(r)
	}
	return parseDecimal(body)
}

// splitRatio reports whether body is of the form "<int>/<int>" with
// exactly one '/', so that it is handled as a ratio literal rather than
// falling into the decimal grammar.
func splitRatio(body string) ([2]string, bool) {
	idx := strings.IndexByte(body, '/')
	if idx < 0 || idx == 0 || idx == len(body)-1 {
		return [2]string{}, false
	}
	if strings.IndexByte(body[idx+1:], '/') >= 0 {
		return [2]string{}, false
	}
	return [2]string{body[:idx], body[idx+1:]}, true
}

func parseRatio(parts [2]string) (number.Number, error) {
	num, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return number.Number{}, fmt.Errorf("invalid ratio numerator %q", parts[0])
	}
	den, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return number.Number{}, fmt.Errorf("invalid ratio denominator %q", parts[1])
	}
	if den == 0 {
		return number.Number{}, fmt.Errorf("ratio denominator may not be zero")
	}
	return number.Reduce(number.MakeRatio(num, den)), nil
}

// parseDecimal extracts sign, integer digits, fractional digits, exponent
// and an imaginary flag from body, per spec.md §4.2.
func parseDecimal(body string) (number.Number, error) {
	i := 0
	n := len(body)

	sign := int64(1)
	if i < n && (body[i] == '+' || body[i] == '-') {
		if body[i] == '-' {
			sign = -1
		}
		i++
	}

	start := i
	for i < n && isDigit(body[i]) {
		i++
	}
	intDigits := body[start:i]

	var fracDigits string
	sawPoint := false
	if i < n && body[i] == '.' {
		sawPoint = true
		i++
		start = i
		for i < n && isDigit(body[i]) {
			i++
		}
		fracDigits = body[start:i]
	}

	var expDigits string
	expSign := int64(1)
	sawExp := false
	if i < n && (body[i] == 'e' || body[i] == 'E') {
		sawExp = true
		i++
		if i < n && (body[i] == '+' || body[i] == '-') {
			if body[i] == '-' {
				expSign = -1
			}
			i++
		}
		start = i
		for i < n && isDigit(body[i]) {
			i++
		}
		expDigits = body[start:i]
		if expDigits == "" {
			return number.Number{}, fmt.Errorf("'e' without exponent digits in %q", body)
		}
	}

	imaginary := false
	if i < n && (body[i] == 'i' || body[i] == 'I') {
		imaginary = true
		i++
	}

	if i != n {
		return number.Number{}, fmt.Errorf("unexpected character %q in numeric literal %q", body[i], body)
	}
	if intDigits == "" && fracDigits == "" {
		return number.Number{}, fmt.Errorf("no digits in numeric literal %q", body)
	}

	var result number.Number
	if !sawPoint && !sawExp {
		// No radix point, no exponent: parse exactly as an integer so
		// large magnitudes don't lose precision going through float64.
		iv, err := strconv.ParseInt(intDigits, 10, 64)
		if err != nil {
			return number.Number{}, fmt.Errorf("malformed integer literal %q", body)
		}
		result = number.Int(sign * iv)
	} else {
		magnitude, err := toFloat(sign, intDigits, fracDigits, expSign, expDigits)
		if err != nil {
			return number.Number{}, err
		}
		// Reduce collapses an integer-valued real back to an integer,
		// which is exactly "the exponent absorbs the fractional digits"
		// (spec.md §4.2) without needing to re-derive that case by hand.
		result = number.Reduce(number.Real(magnitude))
	}

	if imaginary {
		return number.Reduce(number.MakeComplex(number.Int(0), result)), nil
	}
	return number.Reduce(result), nil
}

func toFloat(sign int64, intDigits, fracDigits string, expSign int64, expDigits string) (float64, error) {
	var lit string
	if sign < 0 {
		lit = "-"
	}
	if intDigits == "" {
		lit += "0"
	} else {
		lit += intDigits
	}
	if fracDigits != "" {
		lit += "." + fracDigits
	}
	if expDigits != "" {
		lit += "e"
		if expSign < 0 {
			lit += "-"
		}
		lit += expDigits
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed numeric literal: %v", err)
	}
	return f, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
