package golisp

// Expr is the typed expression tree the parser produces and the evaluator
// walks. Each variant implements its own evaluation rule.
type Expr interface {
	Eval(env *Env) (*Value, error)
}

// Literals

type fixnumExpr struct{ n int }
type rationalExpr struct{ num, den int }
type stringExpr struct{ s string }
type boolExpr struct{ b bool }
type voidExpr struct{}
type exitExpr struct{}

func (e *fixnumExpr) Eval(env *Env) (*Value, error)   { return IntegerV(e.n), nil }
func (e *rationalExpr) Eval(env *Env) (*Value, error) { return RationalV(e.num, e.den), nil }
func (e *stringExpr) Eval(env *Env) (*Value, error)   { return StringV(e.s), nil }
func (e *boolExpr) Eval(env *Env) (*Value, error)     { return BooleanV(e.b), nil }
func (e *voidExpr) Eval(env *Env) (*Value, error)     { return VoidV(), nil }
func (e *exitExpr) Eval(env *Env) (*Value, error)     { return TerminateV(), nil }

// binaryFn/unaryFn/variadicFn are the primitive semantics plugged into the
// generic operator shells below, standing in for the source's per-primitive
// subclasses (Plus, Minus, Car, PlusVar, ...): one struct each, parameterised
// by the function that does the actual work.

type binaryFn func(a, b *Value) (*Value, error)
type unaryFn func(v *Value) (*Value, error)
type variadicFn func(args []*Value) (*Value, error)

type binaryExpr struct {
	op   binaryFn
	a, b Expr
}

func (e *binaryExpr) Eval(env *Env) (*Value, error) {
	a, err := e.a.Eval(env)
	if err != nil {
		return nil, err
	}
	b, err := e.b.Eval(env)
	if err != nil {
		return nil, err
	}
	return e.op(a, b)
}

type unaryExpr struct {
	op unaryFn
	a  Expr
}

func (e *unaryExpr) Eval(env *Env) (*Value, error) {
	a, err := e.a.Eval(env)
	if err != nil {
		return nil, err
	}
	return e.op(a)
}

// variadicExpr is the shape used by +, -, *, /, the comparisons, and list.
// It implements applyArgs, which marks it eligible for the "apply the
// operator directly to the argument vector, skip arity checking" shortcut
// in applyExpr.Eval — the same shortcut that lets these primitives be
// passed around and called as ordinary first-class procedures with any
// number of arguments. andOrExpr deliberately does not implement this
// marker: the source's AndVar/OrVar are not Variadic subclasses, so passing
// `and`/`or` as values only round-trips through a zero-argument call.
type variadicExpr struct {
	op   variadicFn
	args []Expr
}

func (e *variadicExpr) Eval(env *Env) (*Value, error) {
	vals, err := evalAll(env, e.args)
	if err != nil {
		return nil, err
	}
	return e.op(vals)
}

func (e *variadicExpr) applyArgs(args []*Value) (*Value, error) { return e.op(args) }

type variadicApplier interface {
	applyArgs(args []*Value) (*Value, error)
}

func evalAll(env *Env, exprs []Expr) ([]*Value, error) {
	vals := make([]*Value, len(exprs))
	for i, ex := range exprs {
		v, err := ex.Eval(env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// andOrExpr implements and/or's short-circuit evaluation directly; it
// cannot be expressed as a variadicExpr because its operands must not all be
// evaluated eagerly.
type andOrExpr struct {
	isOr bool
	args []Expr
}

// Control flow, binding forms, quotation

type varExpr struct{ name string }

type applyExpr struct {
	op   Expr
	args []Expr
}

type lambdaExpr struct {
	params []string
	body   Expr
}

type defineExpr struct {
	name string
	rhs  Expr
}

type setExpr struct {
	name string
	rhs  Expr
}

type binding struct {
	name string
	init Expr
}

type letExpr struct {
	binds []binding
	body  Expr
}

type letrecExpr struct {
	binds []binding
	body  Expr
}

type ifExpr struct {
	cond, then, alt Expr
}

type condClause struct {
	forms []Expr
}

type condExpr struct {
	clauses []condClause
}

type beginExpr struct {
	forms []Expr
}

type quoteExpr struct {
	stx Syntax
}
