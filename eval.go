package golisp

// This file holds the evaluation rules that don't reduce to a plain
// operator shell: variable lookup and the primitive-as-closure step,
// application, the binding forms, conditionals, and/or, and begin/quote.
// The arithmetic primitives and their numeric helpers live in
// primitives.go.

// Var (variable reference)

func (e *varExpr) Eval(env *Env) (*Value, error) {
	if v := Find(e.name, env); v != nil {
		return v, nil
	}
	if isPrimitive(e.name) {
		return makePrimitiveClosure(e.name, env)
	}
	return nil, errorf("Invalid variable: %s", e.name)
}

// makePrimitiveClosure builds the procedure value returned when a bare
// primitive name is evaluated as a variable (so primitives can be passed
// around as first-class values, e.g. (define plus +)). Variadic-capable
// primitives close over an empty parameter list and a variadicExpr body
// with no pre-supplied arguments: applyExpr.Eval recognises that shape and
// routes the caller's actual argument vector straight into it, bypassing
// arity checking. Fixed-arity primitives close over named parameters that
// the ordinary application path binds like any user lambda.
func makePrimitiveClosure(name string, env *Env) (*Value, error) {
	v := func(n string) Expr { return &varExpr{name: n} }

	switch name {
	case "void":
		return ProcedureV(nil, &voidExpr{}, env), nil
	case "exit":
		return ProcedureV(nil, &exitExpr{}, env), nil

	case "boolean?":
		return ProcedureV([]string{"x"}, &unaryExpr{op: isBooleanOp, a: v("x")}, env), nil
	case "number?":
		return ProcedureV([]string{"x"}, &unaryExpr{op: isNumberOp, a: v("x")}, env), nil
	case "null?":
		return ProcedureV([]string{"x"}, &unaryExpr{op: isNullOp, a: v("x")}, env), nil
	case "pair?":
		return ProcedureV([]string{"x"}, &unaryExpr{op: isPairOp, a: v("x")}, env), nil
	case "procedure?":
		return ProcedureV([]string{"x"}, &unaryExpr{op: isProcedureOp, a: v("x")}, env), nil
	case "symbol?":
		return ProcedureV([]string{"x"}, &unaryExpr{op: isSymbolOp, a: v("x")}, env), nil
	case "string?":
		return ProcedureV([]string{"x"}, &unaryExpr{op: isStringOp, a: v("x")}, env), nil
	case "list?":
		return ProcedureV([]string{"x"}, &unaryExpr{op: isListOp, a: v("x")}, env), nil
	case "not":
		return ProcedureV([]string{"x"}, &unaryExpr{op: notOp, a: v("x")}, env), nil
	case "display":
		return ProcedureV([]string{"x"}, &unaryExpr{op: displayOp, a: v("x")}, env), nil

	case "modulo":
		return ProcedureV([]string{"a", "b"}, &binaryExpr{op: moduloOp, a: v("a"), b: v("b")}, env), nil
	case "expt":
		return ProcedureV([]string{"a", "b"}, &binaryExpr{op: exptOp, a: v("a"), b: v("b")}, env), nil
	case "cons":
		return ProcedureV([]string{"a", "b"}, &binaryExpr{op: consOp, a: v("a"), b: v("b")}, env), nil
	case "car":
		return ProcedureV([]string{"p"}, &unaryExpr{op: carOp, a: v("p")}, env), nil
	case "cdr":
		return ProcedureV([]string{"p"}, &unaryExpr{op: cdrOp, a: v("p")}, env), nil
	case "set-car!":
		return ProcedureV([]string{"p", "v"}, &binaryExpr{op: setCarOp, a: v("p"), b: v("v")}, env), nil
	case "set-cdr!":
		return ProcedureV([]string{"p", "v"}, &binaryExpr{op: setCdrOp, a: v("p"), b: v("v")}, env), nil
	case "eq?":
		return ProcedureV([]string{"a", "b"}, &binaryExpr{op: eqOp, a: v("a"), b: v("b")}, env), nil

	case "+":
		return ProcedureV(nil, &variadicExpr{op: plusVariadic}, env), nil
	case "-":
		return ProcedureV(nil, &variadicExpr{op: minusVariadic}, env), nil
	case "*":
		return ProcedureV(nil, &variadicExpr{op: multVariadic}, env), nil
	case "/":
		return ProcedureV(nil, &variadicExpr{op: divVariadic}, env), nil
	case "=":
		return ProcedureV(nil, &variadicExpr{op: eqVariadic}, env), nil
	case "<":
		return ProcedureV(nil, &variadicExpr{op: ltVariadic}, env), nil
	case "<=":
		return ProcedureV(nil, &variadicExpr{op: leVariadic}, env), nil
	case ">=":
		return ProcedureV(nil, &variadicExpr{op: geVariadic}, env), nil
	case ">":
		return ProcedureV(nil, &variadicExpr{op: gtVariadic}, env), nil
	case "list":
		return ProcedureV(nil, &variadicExpr{op: listVariadic}, env), nil
	case "and":
		return ProcedureV(nil, &andOrExpr{isOr: false}, env), nil
	case "or":
		return ProcedureV(nil, &andOrExpr{isOr: true}, env), nil
	}
	return nil, newError("Unsupported primitive closure")
}

// Application

func (e *applyExpr) Eval(env *Env) (*Value, error) {
	fn, err := e.op.Eval(env)
	if err != nil {
		return nil, err
	}
	if fn.Kind != ProcKind {
		return nil, newError("Attempt to apply a non-procedure")
	}
	proc := fn.Proc

	argv, err := evalAll(env, e.args)
	if err != nil {
		return nil, err
	}

	if va, ok := proc.Body.(variadicApplier); ok {
		return va.applyArgs(argv)
	}

	if len(argv) != len(proc.Params) {
		return nil, newError("Wrong number of arguments")
	}

	callEnv := proc.Env
	for i, p := range proc.Params {
		callEnv = Extend(p, argv[i], callEnv)
	}
	return proc.Body.Eval(callEnv)
}

// Lambda

func (e *lambdaExpr) Eval(env *Env) (*Value, error) {
	return ProcedureV(e.params, e.body, env), nil
}

// Define: placeholder-then-patch so a recursive lambda sees its own name.

func (e *defineExpr) Eval(env *Env) (*Value, error) {
	env2 := ensureBound(e.name, env)
	rhs, err := e.rhs.Eval(env2)
	if err != nil {
		return nil, err
	}
	Modify(e.name, rhs, env2)
	return VoidV(), nil
}

// Set!: the name must already be bound somewhere up the chain.

func (e *setExpr) Eval(env *Env) (*Value, error) {
	if Find(e.name, env) == nil {
		return nil, errorf("Undefined variable : %s", e.name)
	}
	rhs, err := e.rhs.Eval(env)
	if err != nil {
		return nil, err
	}
	Modify(e.name, rhs, env)
	return VoidV(), nil
}

// Let: right-hand sides see the outer environment; the body sees all
// bindings extended at once.

func (e *letExpr) Eval(env *Env) (*Value, error) {
	vals := make([]*Value, len(e.binds))
	for i, b := range e.binds {
		v, err := b.init.Eval(env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	inner := env
	for i, b := range e.binds {
		inner = Extend(b.name, vals[i], inner)
	}
	return e.body.Eval(inner)
}

// Letrec: every name is bound to a void placeholder before any right-hand
// side is evaluated, so forward and mutually-recursive references resolve.

func (e *letrecExpr) Eval(env *Env) (*Value, error) {
	inner := env
	for _, b := range e.binds {
		inner = Extend(b.name, VoidV(), inner)
	}
	for _, b := range e.binds {
		v, err := b.init.Eval(inner)
		if err != nil {
			return nil, err
		}
		Modify(b.name, v, inner)
	}
	return e.body.Eval(inner)
}

// If / cond

func (e *ifExpr) Eval(env *Env) (*Value, error) {
	c, err := e.cond.Eval(env)
	if err != nil {
		return nil, err
	}
	if isFalse(c) {
		return e.alt.Eval(env)
	}
	return e.then.Eval(env)
}

func (e *condExpr) Eval(env *Env) (*Value, error) {
	for _, cl := range e.clauses {
		if len(cl.forms) == 0 {
			continue
		}
		if vr, ok := cl.forms[0].(*varExpr); ok && vr.name == "else" && Find("else", env) == nil {
			if len(cl.forms) == 1 {
				return VoidV(), nil
			}
			return evalBody(env, cl.forms[1:])
		}
		pred, err := cl.forms[0].Eval(env)
		if err != nil {
			return nil, err
		}
		if !isFalse(pred) {
			if len(cl.forms) == 1 {
				return pred, nil
			}
			return evalBody(env, cl.forms[1:])
		}
	}
	return VoidV(), nil
}

func evalBody(env *Env, forms []Expr) (*Value, error) {
	var last *Value = VoidV()
	var err error
	for _, f := range forms {
		last, err = f.Eval(env)
		if err != nil {
			return nil, err
		}
	}
	return last, nil
}

// And / or

func (e *andOrExpr) Eval(env *Env) (*Value, error) {
	if e.isOr {
		for _, a := range e.args {
			v, err := a.Eval(env)
			if err != nil {
				return nil, err
			}
			if !isFalse(v) {
				return v, nil
			}
		}
		return BooleanV(false), nil
	}
	last := BooleanV(true)
	for _, a := range e.args {
		v, err := a.Eval(env)
		if err != nil {
			return nil, err
		}
		if isFalse(v) {
			return BooleanV(false), nil
		}
		last = v
	}
	return last, nil
}

// Begin. Runs of adjacent top-level defines are batched so mutually
// recursive definitions at the head of a begin resolve, mirroring the
// REPL's own pending-define batching.

func (e *beginExpr) Eval(env *Env) (*Value, error) {
	if len(e.forms) == 0 {
		return VoidV(), nil
	}

	var pending []*defineExpr
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		for _, d := range pending {
			env = ensureBound(d.name, env)
		}
		for _, d := range pending {
			v, err := d.rhs.Eval(env)
			if err != nil {
				return err
			}
			Modify(d.name, v, env)
		}
		pending = nil
		return nil
	}

	last := VoidV()
	for _, f := range e.forms {
		if d, ok := f.(*defineExpr); ok {
			pending = append(pending, d)
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		v, err := f.Eval(env)
		if err != nil {
			return nil, err
		}
		last = v
		if last.Kind == TerminateKind {
			return last, nil
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return last, nil
}

// Quote

func (e *quoteExpr) Eval(env *Env) (*Value, error) {
	return quoteToValue(e.stx)
}

func quoteToValue(stx Syntax) (*Value, error) {
	switch s := stx.(type) {
	case intSyntax:
		return IntegerV(s.n), nil
	case rationalSyntax:
		return RationalV(s.num, s.den), nil
	case boolSyntax:
		return BooleanV(s.b), nil
	case stringSyntax:
		return StringV(s.s), nil
	case symbolSyntax:
		return SymbolV(s.s), nil
	case listSyntax:
		return spliceDotted(s.items)
	}
	return nil, newError("Bad quoted form")
}

func spliceDotted(items []Syntax) (*Value, error) {
	dot := len(items)
	for i, it := range items {
		if sym, ok := it.(symbolSyntax); ok && sym.s == "." {
			dot = i
			break
		}
	}
	if dot == len(items) {
		return listFrom(items)
	}
	if dot != len(items)-2 {
		return nil, newError("Malformed dotted list")
	}
	left, err := listFromRange(items, 0, dot)
	if err != nil {
		return nil, err
	}
	right, err := quoteToValue(items[dot+1])
	if err != nil {
		return nil, err
	}
	if left.Kind == NullKind {
		return right, nil
	}
	cur := left
	for cur.Cdr.Kind == PairKind {
		cur = cur.Cdr
	}
	cur.Cdr = right
	return left, nil
}

func listFrom(items []Syntax) (*Value, error) { return listFromRange(items, 0, len(items)) }

func listFromRange(items []Syntax, lo, hi int) (*Value, error) {
	tail := NullV()
	for i := hi; i > lo; i-- {
		v, err := quoteToValue(items[i-1])
		if err != nil {
			return nil, err
		}
		tail = PairV(v, tail)
	}
	return tail, nil
}
