package golisp

import "fmt"

// This file implements the semantic function behind the entries in
// def.go's primitives table other than and/or (eval.go) and void/exit
// (expr.go): the numeric tower, predicates, pair/list operations, and
// display. Each is plugged into a binaryExpr,
// unaryExpr or variadicExpr shell by parser.go and makePrimitiveClosure.

// --- numeric tower ---

// asRational extracts a (numerator, denominator) pair from any numeric
// Value, treating an integer n as the rational n/1.
func asRational(v *Value) (int, int, error) {
	switch v.Kind {
	case IntKind:
		return v.Int, 1, nil
	case RationalKind:
		return v.Num, v.Den, nil
	}
	return 0, 0, newError("Numeric operand required")
}

// asComparable is asRational with the error message numeric comparisons use.
func asComparable(v *Value) (int, int, error) {
	n, d, err := asRational(v)
	if err != nil {
		return 0, 0, newError("Wrong typename in numeric comparison")
	}
	return n, d, nil
}

// makeNumber builds the result of an arithmetic primitive. A denominator of
// 1 collapses to an Integer-tagged value; anything else stays Rational. This
// is what keeps (+ 1 2) == 3 rather than 3/1, while a literal "3/1" in
// source (built directly via RationalV, bypassing makeNumber) stays
// Rational-tagged and prints as 3/1, though = and eq? still find it equal
// to plain 3.
func makeNumber(num, den int) (*Value, error) {
	if den == 0 {
		return nil, newError("Division by zero")
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	if g != 0 {
		num, den = num/g, den/g
	}
	if den == 1 {
		return IntegerV(num), nil
	}
	return RationalV(num, den), nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// compareNumericValues cross-multiplies two rationals so their order can be
// compared without floating point, returning -1, 0 or 1.
func compareNumericValues(a, b *Value) (int, error) {
	an, ad, err := asRational(a)
	if err != nil {
		return 0, err
	}
	bn, bd, err := asRational(b)
	if err != nil {
		return 0, err
	}
	lhs, rhs := an*bd, bn*ad
	switch {
	case lhs < rhs:
		return -1, nil
	case lhs > rhs:
		return 1, nil
	default:
		return 0, nil
	}
}

func sumAll(args []*Value) (num, den int, err error) {
	den = 1
	for _, a := range args {
		n, d, e := asRational(a)
		if e != nil {
			return 0, 0, e
		}
		num, den = num*d+n*den, den*d
	}
	return num, den, nil
}

func plusVariadic(args []*Value) (*Value, error) {
	if len(args) == 0 {
		return IntegerV(0), nil
	}
	num, den, err := sumAll(args)
	if err != nil {
		return nil, err
	}
	return makeNumber(num, den)
}

func minusVariadic(args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, newError("Wrong number of arguments")
	}
	first, firstDen, err := asRational(args[0])
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return makeNumber(-first, firstDen)
	}
	restNum, restDen, err := sumAll(args[1:])
	if err != nil {
		return nil, err
	}
	firstN, firstD, _ := asRational(args[0])
	return makeNumber(firstN*restDen-restNum*firstD, firstD*restDen)
}

func multVariadic(args []*Value) (*Value, error) {
	num, den := 1, 1
	for _, a := range args {
		n, d, err := asRational(a)
		if err != nil {
			return nil, err
		}
		num, den = num*n, den*d
	}
	return makeNumber(num, den)
}

func divVariadic(args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, newError("Wrong number of arguments")
	}
	num, den, err := asRational(args[0])
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return makeNumber(den, num)
	}
	for _, a := range args[1:] {
		n, d, err := asRational(a)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, newError("Division by zero")
		}
		num, den = num*d, den*n
	}
	return makeNumber(num, den)
}

// asInt accepts an integer, or a rational with denominator 1, as modulo's
// operand type.
func asInt(v *Value) (int, bool) {
	if v.Kind == IntKind {
		return v.Int, true
	}
	if v.Kind == RationalKind && v.Den == 1 {
		return v.Num, true
	}
	return 0, false
}

func moduloOp(a, b *Value) (*Value, error) {
	av, ok1 := asInt(a)
	bv, ok2 := asInt(b)
	if !ok1 || !ok2 {
		return nil, newError("modulo is only defined for integers")
	}
	if bv == 0 {
		return nil, newError("Division by zero")
	}
	return IntegerV(av % bv), nil
}

func exptOp(a, b *Value) (*Value, error) {
	base, ok1 := asInt(a)
	exp, ok2 := asInt(b)
	if !ok1 || !ok2 {
		return nil, newError("Wrong typename in expt")
	}
	if exp < 0 {
		return nil, newError("Negative exponent not supported for integers")
	}
	if base == 0 && exp == 0 {
		return nil, newError("0^0 is undefined")
	}
	result := 1
	for i := 0; i < exp; i++ {
		next := result * base
		if base != 0 && next/base != result {
			return nil, newError("Integer overflow in expt")
		}
		result = next
	}
	return IntegerV(result), nil
}

func cmpVariadic(args []*Value, ok func(c int) bool) (*Value, error) {
	for i := 0; i+1 < len(args); i++ {
		an, ad, err := asComparable(args[i])
		if err != nil {
			return nil, err
		}
		bn, bd, err := asComparable(args[i+1])
		if err != nil {
			return nil, err
		}
		lhs, rhs := an*bd, bn*ad
		c := 0
		switch {
		case lhs < rhs:
			c = -1
		case lhs > rhs:
			c = 1
		}
		if !ok(c) {
			return BooleanV(false), nil
		}
	}
	return BooleanV(true), nil
}

func eqVariadic(args []*Value) (*Value, error) { return cmpVariadic(args, func(c int) bool { return c == 0 }) }
func ltVariadic(args []*Value) (*Value, error) { return cmpVariadic(args, func(c int) bool { return c < 0 }) }
func leVariadic(args []*Value) (*Value, error) { return cmpVariadic(args, func(c int) bool { return c <= 0 }) }
func geVariadic(args []*Value) (*Value, error) { return cmpVariadic(args, func(c int) bool { return c >= 0 }) }
func gtVariadic(args []*Value) (*Value, error) { return cmpVariadic(args, func(c int) bool { return c > 0 }) }

// --- pairs and lists ---

func consOp(a, b *Value) (*Value, error) { return PairV(a, b), nil }

func carOp(p *Value) (*Value, error) {
	if p.Kind != PairKind {
		return nil, newError("car on non-pair")
	}
	return p.Car, nil
}

func cdrOp(p *Value) (*Value, error) {
	if p.Kind != PairKind {
		return nil, newError("cdr on non-pair")
	}
	return p.Cdr, nil
}

func setCarOp(p, v *Value) (*Value, error) {
	if p.Kind != PairKind {
		return nil, newError("set-car! on non-pair")
	}
	p.Car = v
	return VoidV(), nil
}

func setCdrOp(p, v *Value) (*Value, error) {
	if p.Kind != PairKind {
		return nil, newError("set-cdr! on non-pair")
	}
	p.Cdr = v
	return VoidV(), nil
}

func listVariadic(args []*Value) (*Value, error) {
	tail := NullV()
	for i := len(args) - 1; i >= 0; i-- {
		tail = PairV(args[i], tail)
	}
	return tail, nil
}

// --- equality ---

// eqOp implements eq?: numbers compare by value regardless of their
// Integer/Rational tag, booleans and symbols by value, null and void
// are always self-equal within their kind, and everything else (pairs,
// procedures, strings) by identity — which, since every such Value is
// always handled by pointer, is ordinary pointer comparison.
func eqOp(a, b *Value) (*Value, error) {
	if (a.Kind == IntKind || a.Kind == RationalKind) && (b.Kind == IntKind || b.Kind == RationalKind) {
		c, err := compareNumericValues(a, b)
		if err != nil {
			return nil, err
		}
		return BooleanV(c == 0), nil
	}
	if a.Kind != b.Kind {
		return BooleanV(false), nil
	}
	switch a.Kind {
	case BoolKind:
		return BooleanV(a.Bool == b.Bool), nil
	case SymbolKind:
		return BooleanV(a.Str == b.Str), nil
	case NullKind, VoidKind:
		return BooleanV(true), nil
	default:
		return BooleanV(a == b), nil
	}
}

// --- predicates ---

func isBooleanOp(v *Value) (*Value, error)   { return BooleanV(v.Kind == BoolKind), nil }
func isNumberOp(v *Value) (*Value, error)    { return BooleanV(v.Kind == IntKind || v.Kind == RationalKind), nil }
func isNullOp(v *Value) (*Value, error)      { return BooleanV(v.Kind == NullKind), nil }
func isPairOp(v *Value) (*Value, error)      { return BooleanV(v.Kind == PairKind), nil }
func isProcedureOp(v *Value) (*Value, error) { return BooleanV(v.Kind == ProcKind), nil }
func isSymbolOp(v *Value) (*Value, error)    { return BooleanV(v.Kind == SymbolKind), nil }
func isStringOp(v *Value) (*Value, error)    { return BooleanV(v.Kind == StringKind), nil }

func isListOp(v *Value) (*Value, error) {
	for {
		switch v.Kind {
		case NullKind:
			return BooleanV(true), nil
		case PairKind:
			v = v.Cdr
		default:
			return BooleanV(false), nil
		}
	}
}

func notOp(v *Value) (*Value, error) { return BooleanV(isFalse(v)), nil }

func displayOp(v *Value) (*Value, error) {
	fmt.Print(displayString(v))
	return VoidV(), nil
}
