// ----------------------------------------------------------------------------
// FILE: number/number.go
// ----------------------------------------------------------------------------
// PACKAGE: number
// PURPOSE: The numeric tower (spec.md §3.4, §4.9): integer, ratio, real and
//          complex numbers with a promotion lattice and post-operation
//          reduction. Arithmetic here returns a plain Go error on undefined
//          operations (complex ordering, complex exponent); callers turn
//          that into a heap error value at the evaluator boundary. Kept as
//          its own leaf package (no dependency on value or parsetree) so
//          both can hold a Number without an import cycle.
// ----------------------------------------------------------------------------

package number

import (
	"errors"
	"fmt"
	"math"
)

// NumberKind identifies which of the four numeric variants a Number holds.
type NumberKind int

const (
	NumInteger NumberKind = iota
	NumRatio
	NumReal
	NumComplex
)

// Number is a tagged union over the four numeric variants. Only the fields
// relevant to Kind are meaningful; Reduce is responsible for keeping a
// Number in its canonical variant after every operation.
type Number struct {
	Kind NumberKind

	Int int64 // NumInteger

	Num int64 // NumRatio numerator (sign carried here)
	Den int64 // NumRatio denominator, always > 0

	Real float64 // NumReal

	Re, Im *Number // NumComplex; never themselves NumComplex
}

// Errors signaled by the tower for operations the spec declares undefined.
var (
	ErrComplexOrder    = errors.New("ordering is undefined on complex numbers")
	ErrComplexExponent = errors.New("complex exponent is unsupported")
	ErrDivideByZero    = errors.New("division by zero")
)

func Int(n int64) Number { return Number{Kind: NumInteger, Int: n} }

func Real(f float64) Number { return Number{Kind: NumReal, Real: f} }

// MakeRatio builds a ratio in lowest terms with a positive denominator.
func MakeRatio(num, den int64) Number {
	if den == 0 {
		return Real(math.NaN())
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd(abs64(num), den); g > 1 {
		num, den = num/g, den/g
	}
	return Number{Kind: NumRatio, Num: num, Den: den}
}

// MakeComplex builds a complex value from two already-reduced non-complex
// numbers.
func MakeComplex(re, im Number) Number {
	r, i := re, im
	return Number{Kind: NumComplex, Re: &r, Im: &i}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func level(n Number) int { return int(n.Kind) }

// toFloat views a non-complex number as a float64.
func toFloat(n Number) float64 {
	switch n.Kind {
	case NumInteger:
		return float64(n.Int)
	case NumRatio:
		return float64(n.Num) / float64(n.Den)
	case NumReal:
		return n.Real
	default:
		return math.NaN()
	}
}

// parts returns the (real, imaginary) float view of any number, treating
// non-complex numbers as having a zero imaginary part.
func parts(n Number) (re, im float64) {
	if n.Kind == NumComplex {
		return toFloat(*n.Re), toFloat(*n.Im)
	}
	return toFloat(n), 0
}

// Reduce enforces the collapse invariants of spec.md §3.4/SPEC_FULL.md
// §5.1: a complex with zero imaginary part becomes its real part; a ratio
// whose denominator is 1 becomes an integer; a real whose value equals
// its integer truncation becomes an integer.
func Reduce(n Number) Number {
	if n.Kind == NumComplex {
		im := Reduce(*n.Im)
		if im.Kind == NumInteger && im.Int == 0 {
			return Reduce(*n.Re)
		}
		re := Reduce(*n.Re)
		return Number{Kind: NumComplex, Re: &re, Im: &im}
	}
	if n.Kind == NumRatio && n.Den == 1 {
		return Int(n.Num)
	}
	if n.Kind == NumReal {
		if !math.IsInf(n.Real, 0) && !math.IsNaN(n.Real) && n.Real == math.Trunc(n.Real) {
			return Int(int64(n.Real))
		}
	}
	return n
}

// promote lifts both operands to the least upper bound of their levels in
// the integer -> ratio -> real -> complex lattice.
func promote(a, b Number) (Number, Number) {
	lvl := level(a)
	if level(b) > lvl {
		lvl = level(b)
	}
	return liftTo(a, NumberKind(lvl)), liftTo(b, NumberKind(lvl))
}

func liftTo(n Number, target NumberKind) Number {
	for n.Kind < target {
		switch n.Kind {
		case NumInteger:
			n = MakeRatio(n.Int, 1)
		case NumRatio:
			n = Real(toFloat(n))
		case NumReal:
			re := n
			n = MakeComplex(re, Int(0))
		}
	}
	return n
}

func Neg(n Number) Number {
	switch n.Kind {
	case NumInteger:
		return Int(-n.Int)
	case NumRatio:
		return Number{Kind: NumRatio, Num: -n.Num, Den: n.Den}
	case NumReal:
		return Real(-n.Real)
	case NumComplex:
		re, im := Neg(*n.Re), Neg(*n.Im)
		return Number{Kind: NumComplex, Re: &re, Im: &im}
	}
	return n
}

func Add(a, b Number) Number {
	a, b = promote(a, b)
	switch a.Kind {
	case NumInteger:
		return Reduce(Int(a.Int + b.Int))
	case NumRatio:
		return Reduce(MakeRatio(a.Num*b.Den+b.Num*a.Den, a.Den*b.Den))
	case NumReal:
		return Reduce(Real(a.Real + b.Real))
	default:
		ar, ai := parts(a)
		br, bi := parts(b)
		return Reduce(MakeComplex(Real(ar+br), Real(ai+bi)))
	}
}

func Sub(a, b Number) Number { return Add(a, Neg(b)) }

func Mul(a, b Number) Number {
	a, b = promote(a, b)
	switch a.Kind {
	case NumInteger:
		return Reduce(Int(a.Int * b.Int))
	case NumRatio:
		return Reduce(MakeRatio(a.Num*b.Num, a.Den*b.Den))
	case NumReal:
		return Reduce(Real(a.Real * b.Real))
	default:
		ar, ai := parts(a)
		br, bi := parts(b)
		return Reduce(MakeComplex(Real(ar*br-ai*bi), Real(ar*bi+ai*br)))
	}
}

// Div implements spec.md §4.9: integer/integer promotes via ratio to real
// (the tower keeps the ratio, per the spec's permitted alternative, and
// Reduce already inspects ratios). Division by a complex multiplies by the
// conjugate, reducing the denominator to real by construction.
func Div(a, b Number) (Number, error) {
	if b.Kind != NumComplex {
		a2, b2 := promote(a, b)
		switch a2.Kind {
		case NumInteger:
			if b2.Int == 0 {
				return Number{}, ErrDivideByZero
			}
			return Reduce(MakeRatio(a2.Int, b2.Int)), nil
		case NumRatio:
			if b2.Num == 0 {
				return Number{}, ErrDivideByZero
			}
			return Reduce(MakeRatio(a2.Num*b2.Den, a2.Den*b2.Num)), nil
		case NumReal:
			if b2.Real == 0 {
				return Number{}, ErrDivideByZero
			}
			return Reduce(Real(a2.Real / b2.Real)), nil
		}
	}
	ar, ai := parts(a)
	br, bi := parts(b)
	denom := br*br + bi*bi
	if denom == 0 {
		return Number{}, ErrDivideByZero
	}
	re := (ar*br + ai*bi) / denom
	im := (ai*br - ar*bi) / denom
	return Reduce(MakeComplex(Real(re), Real(im))), nil
}

// Pow implements spec.md §4.9: integer^integer stays integer via a
// float64 pow with an integer cast; a real base or exponent promotes to
// real; a complex exponent is an error.
func Pow(a, b Number) (Number, error) {
	if b.Kind == NumComplex {
		return Number{}, ErrComplexExponent
	}
	if a.Kind == NumInteger && b.Kind == NumInteger {
		return Reduce(Int(int64(math.Pow(float64(a.Int), float64(b.Int))))), nil
	}
	ar, ai := parts(a)
	if a.Kind != NumComplex {
		return Reduce(Real(math.Pow(ar, toFloat(b)))), nil
	}
	// Complex base, non-complex exponent: repeated multiplication via
	// polar form.
	mod := math.Hypot(ar, ai)
	arg := math.Atan2(ai, ar)
	exp := toFloat(b)
	newMod := math.Pow(mod, exp)
	newArg := arg * exp
	return Reduce(MakeComplex(Real(newMod*math.Cos(newArg)), Real(newMod*math.Sin(newArg)))), nil
}

// Compare returns -1, 0 or 1 comparing a to b. Ordering is undefined on
// complex numbers.
func Compare(a, b Number) (int, error) {
	if a.Kind == NumComplex || b.Kind == NumComplex {
		return 0, ErrComplexOrder
	}
	a2, b2 := promote(a, b)
	switch a2.Kind {
	case NumInteger:
		switch {
		case a2.Int < b2.Int:
			return -1, nil
		case a2.Int > b2.Int:
			return 1, nil
		default:
			return 0, nil
		}
	case NumRatio:
		lhs := a2.Num * b2.Den
		rhs := b2.Num * a2.Den
		switch {
		case lhs < rhs:
			return -1, nil
		case lhs > rhs:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		switch {
		case a2.Real < b2.Real:
			return -1, nil
		case a2.Real > b2.Real:
			return 1, nil
		default:
			return 0, nil
		}
	}
}

// Equal compares two numbers after reduction; equality across distinct
// variants is false unless reduction collapses them to the same variant.
func Equal(a, b Number) bool {
	ra, rb := Reduce(a), Reduce(b)
	if ra.Kind != rb.Kind {
		return false
	}
	switch ra.Kind {
	case NumInteger:
		return ra.Int == rb.Int
	case NumRatio:
		return ra.Num == rb.Num && ra.Den == rb.Den
	case NumReal:
		return ra.Real == rb.Real
	default:
		return Equal(*ra.Re, *rb.Re) && Equal(*ra.Im, *rb.Im)
	}
}

// Inspect renders a number the way the printer and REPL show it.
func Inspect(n Number) string {
	switch n.Kind {
	case NumInteger:
		return fmt.Sprintf("%d", n.Int)
	case NumRatio:
		return fmt.Sprintf("%d/%d", n.Num, n.Den)
	case NumReal:
		return fmt.Sprintf("%g", n.Real)
	case NumComplex:
		return fmt.Sprintf("(%s + %si)", Inspect(*n.Re), Inspect(*n.Im))
	}
	return "?"
}
