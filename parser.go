package golisp

// Parse rewrites one syntax tree into an expression tree. env is a
// compile-time environment: an ordinary *Env whose values are never
// consulted, only the presence of a name. It is what makes shadowing work —
// once a name is bound here, it parses as a variable reference everywhere,
// defeating primitive and reserved-word keyword status even if the name
// coincides with one.
func Parse(stx Syntax, env *Env) (Expr, error) {
	switch s := stx.(type) {
	case intSyntax:
		return &fixnumExpr{n: s.n}, nil
	case rationalSyntax:
		return &rationalExpr{num: s.num, den: s.den}, nil
	case boolSyntax:
		return &boolExpr{b: s.b}, nil
	case stringSyntax:
		return &stringExpr{s: s.s}, nil
	case symbolSyntax:
		return &varExpr{name: s.s}, nil
	case listSyntax:
		return parseList(s, env)
	}
	return nil, newError("Unknown syntax node")
}

func parseAll(items []Syntax, env *Env) ([]Expr, error) {
	out := make([]Expr, len(items))
	for i, it := range items {
		e, err := Parse(it, env)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func asSymbolName(stx Syntax) (string, bool) {
	sym, ok := stx.(symbolSyntax)
	return sym.s, ok
}

func parseList(s listSyntax, env *Env) (Expr, error) {
	if len(s.items) == 0 {
		return &quoteExpr{stx: s}, nil
	}
	head := s.items[0]
	rest := s.items[1:]

	name, isSym := asSymbolName(head)
	if !isSym {
		return parseApply(head, rest, env)
	}

	if Find(name, env) != nil {
		return parseApply(head, rest, env)
	}
	if isPrimitive(name) {
		return parsePrimitive(name, rest, env)
	}
	if isReservedWord(name) {
		return parseSpecialForm(name, rest, env)
	}
	return parseApply(head, rest, env)
}

func parseApply(head Syntax, rest []Syntax, env *Env) (Expr, error) {
	op, err := Parse(head, env)
	if err != nil {
		return nil, err
	}
	args, err := parseAll(rest, env)
	if err != nil {
		return nil, err
	}
	return &applyExpr{op: op, args: args}, nil
}

// --- primitives ---

func parsePrimitive(name string, argStx []Syntax, env *Env) (Expr, error) {
	args, err := parseAll(argStx, env)
	if err != nil {
		return nil, err
	}
	n := len(args)

	unary := func(op unaryFn) (Expr, error) {
		if n != 1 {
			return nil, errorf("Wrong number of arguments for %s", name)
		}
		return &unaryExpr{op: op, a: args[0]}, nil
	}
	binary := func(op binaryFn) (Expr, error) {
		if n != 2 {
			return nil, errorf("Wrong number of arguments for %s", name)
		}
		return &binaryExpr{op: op, a: args[0], b: args[1]}, nil
	}
	nullary := func(e Expr) (Expr, error) {
		if n != 0 {
			return nil, errorf("Wrong number of arguments for %s", name)
		}
		return e, nil
	}
	// arith is the + - * / < <= = >= > family: a dedicated binary shape for
	// exactly two operands, falling back to the variadic shape otherwise.
	// A bare reference to the primitive name always gets the variadic-bodied
	// closure regardless (makePrimitiveClosure), since that is the shape
	// the "primitive as closure" shortcut expects.
	arith := func(minArity int, binOp binaryFn, varOp variadicFn) (Expr, error) {
		if n < minArity {
			return nil, errorf("Wrong number of arguments for %s", name)
		}
		if n == 2 {
			return &binaryExpr{op: binOp, a: args[0], b: args[1]}, nil
		}
		return &variadicExpr{op: varOp, args: args}, nil
	}

	switch name {
	case "modulo":
		return binary(moduloOp)
	case "expt":
		return binary(exptOp)
	case "cons":
		return binary(consOp)
	case "set-car!":
		return binary(setCarOp)
	case "set-cdr!":
		return binary(setCdrOp)
	case "eq?":
		return binary(eqOp)

	case "car":
		return unary(carOp)
	case "cdr":
		return unary(cdrOp)
	case "not":
		return unary(notOp)
	case "boolean?":
		return unary(isBooleanOp)
	case "number?":
		return unary(isNumberOp)
	case "null?":
		return unary(isNullOp)
	case "pair?":
		return unary(isPairOp)
	case "procedure?":
		return unary(isProcedureOp)
	case "symbol?":
		return unary(isSymbolOp)
	case "string?":
		return unary(isStringOp)
	case "list?":
		return unary(isListOp)
	case "display":
		return unary(displayOp)

	case "void":
		return nullary(&voidExpr{})
	case "exit":
		return nullary(&exitExpr{})

	case "+":
		return arith(0, plusBinary, plusVariadic)
	case "*":
		return arith(0, multBinary, multVariadic)
	case "-":
		return arith(1, minusBinary, minusVariadic)
	case "/":
		return arith(1, divBinary, divVariadic)
	case "<":
		return arith(2, ltBinary, ltVariadic)
	case "<=":
		return arith(2, leBinary, leVariadic)
	case "=":
		return arith(2, eqNumBinary, eqVariadic)
	case ">=":
		return arith(2, geBinary, geVariadic)
	case ">":
		return arith(2, gtBinary, gtVariadic)

	case "list":
		return &variadicExpr{op: listVariadic, args: args}, nil
	case "and":
		return &andOrExpr{isOr: false, args: args}, nil
	case "or":
		return &andOrExpr{isOr: true, args: args}, nil
	}
	return nil, errorf("Unknown primitive: %s", name)
}

func plusBinary(a, b *Value) (*Value, error)  { return plusVariadic([]*Value{a, b}) }
func multBinary(a, b *Value) (*Value, error)  { return multVariadic([]*Value{a, b}) }
func minusBinary(a, b *Value) (*Value, error) { return minusVariadic([]*Value{a, b}) }
func divBinary(a, b *Value) (*Value, error)   { return divVariadic([]*Value{a, b}) }
func ltBinary(a, b *Value) (*Value, error)    { return ltVariadic([]*Value{a, b}) }
func leBinary(a, b *Value) (*Value, error)    { return leVariadic([]*Value{a, b}) }
func eqNumBinary(a, b *Value) (*Value, error) { return eqVariadic([]*Value{a, b}) }
func geBinary(a, b *Value) (*Value, error)    { return geVariadic([]*Value{a, b}) }
func gtBinary(a, b *Value) (*Value, error)    { return gtVariadic([]*Value{a, b}) }

// --- special forms ---

func parseSpecialForm(name string, argStx []Syntax, env *Env) (Expr, error) {
	switch name {
	case "begin":
		return parseBegin(argStx, env)
	case "quote":
		return parseQuote(argStx)
	case "if":
		return parseIf(argStx, env)
	case "cond":
		return parseCond(argStx, env)
	case "lambda":
		return parseLambda(argStx, env)
	case "define":
		return parseDefine(argStx, env)
	case "let":
		return parseLet(argStx, env)
	case "letrec":
		return parseLetrec(argStx, env)
	case "set!":
		return parseSet(argStx, env)
	}
	return nil, errorf("Unknown reserved word: %s", name)
}

func parseBegin(argStx []Syntax, env *Env) (Expr, error) {
	forms, err := parseAll(argStx, env)
	if err != nil {
		return nil, err
	}
	return &beginExpr{forms: forms}, nil
}

func parseQuote(argStx []Syntax) (Expr, error) {
	if len(argStx) != 1 {
		return nil, newError("Wrong number of arguments for quote")
	}
	return &quoteExpr{stx: argStx[0]}, nil
}

func parseIf(argStx []Syntax, env *Env) (Expr, error) {
	if len(argStx) != 3 {
		return nil, newError("Wrong number of arguments for if")
	}
	c, err := Parse(argStx[0], env)
	if err != nil {
		return nil, err
	}
	t, err := Parse(argStx[1], env)
	if err != nil {
		return nil, err
	}
	a, err := Parse(argStx[2], env)
	if err != nil {
		return nil, err
	}
	return &ifExpr{cond: c, then: t, alt: a}, nil
}

func parseCond(argStx []Syntax, env *Env) (Expr, error) {
	if len(argStx) == 0 {
		return nil, newError("No clauses for cond")
	}
	clauses := make([]condClause, len(argStx))
	for i, c := range argStx {
		lst, ok := c.(listSyntax)
		if !ok || len(lst.items) == 0 {
			return nil, newError("Wrong clause in cond")
		}
		forms, err := parseAll(lst.items, env)
		if err != nil {
			return nil, err
		}
		clauses[i] = condClause{forms: forms}
	}
	return &condExpr{clauses: clauses}, nil
}

func parseLambda(argStx []Syntax, env *Env) (Expr, error) {
	if len(argStx) < 2 {
		return nil, newError("Wrong number of arguments for lambda")
	}
	paramStx, ok := argStx[0].(listSyntax)
	if !ok {
		return nil, newError("Invalid parameter list in lambda")
	}
	params := make([]string, len(paramStx.items))
	inner := env
	for i, p := range paramStx.items {
		name, ok := asSymbolName(p)
		if !ok {
			return nil, newError("Invalid parameter")
		}
		params[i] = name
		inner = Extend(name, voidValue, inner)
	}
	body, err := parseBody(argStx[1:], inner)
	if err != nil {
		return nil, err
	}
	return &lambdaExpr{params: params, body: body}, nil
}

// parseBody parses a sequence of n ≥ 1 body forms, wrapping in begin when
// n > 1, for lambda bodies (and reused for let/letrec bodies).
func parseBody(argStx []Syntax, env *Env) (Expr, error) {
	forms, err := parseAll(argStx, env)
	if err != nil {
		return nil, err
	}
	if len(forms) == 1 {
		return forms[0], nil
	}
	return &beginExpr{forms: forms}, nil
}

func parseDefine(argStx []Syntax, env *Env) (Expr, error) {
	if len(argStx) < 2 {
		return nil, newError("Wrong number of arguments for define")
	}
	if sig, ok := argStx[0].(listSyntax); ok {
		// (define (fname p1 … pk) body…) sugar for
		// (define fname (lambda (p1 … pk) body…)).
		if len(sig.items) == 0 {
			return nil, newError("Invalid function signature in define")
		}
		fname, ok := asSymbolName(sig.items[0])
		if !ok {
			return nil, newError("Invalid function signature in define")
		}
		lambdaArgs := append([]Syntax{listSyntax{items: sig.items[1:]}}, argStx[1:]...)
		inner := Extend(fname, voidValue, env)
		lam, err := parseLambda(lambdaArgs, inner)
		if err != nil {
			return nil, err
		}
		return &defineExpr{name: fname, rhs: lam}, nil
	}

	name, ok := asSymbolName(argStx[0])
	if !ok {
		return nil, newError("Invalid variable name in define")
	}
	if len(argStx) != 2 {
		return nil, newError("Wrong number of arguments for define")
	}
	inner := Extend(name, voidValue, env)
	rhs, err := Parse(argStx[1], inner)
	if err != nil {
		return nil, err
	}
	return &defineExpr{name: name, rhs: rhs}, nil
}

func parseLet(argStx []Syntax, env *Env) (Expr, error) {
	if len(argStx) < 2 {
		return nil, newError("Wrong number of arguments for let")
	}
	bindStx, ok := argStx[0].(listSyntax)
	if !ok {
		return nil, newError("Wrong binding in let")
	}
	binds := make([]binding, len(bindStx.items))
	inner := env
	for i, b := range bindStx.items {
		pair, ok := b.(listSyntax)
		if !ok || len(pair.items) != 2 {
			return nil, newError("Wrong binding in let")
		}
		name, ok := asSymbolName(pair.items[0])
		if !ok {
			return nil, newError("Wrong binding in let")
		}
		init, err := Parse(pair.items[1], env)
		if err != nil {
			return nil, err
		}
		binds[i] = binding{name: name, init: init}
		inner = Extend(name, voidValue, inner)
	}
	body, err := parseBody(argStx[1:], inner)
	if err != nil {
		return nil, err
	}
	return &letExpr{binds: binds, body: body}, nil
}

func parseLetrec(argStx []Syntax, env *Env) (Expr, error) {
	if len(argStx) < 2 {
		return nil, newError("Wrong number of arguments for letrec")
	}
	bindStx, ok := argStx[0].(listSyntax)
	if !ok {
		return nil, newError("Wrong binding in letrec")
	}
	inner := env
	names := make([]string, len(bindStx.items))
	inits := make([]Syntax, len(bindStx.items))
	for i, b := range bindStx.items {
		pair, ok := b.(listSyntax)
		if !ok || len(pair.items) != 2 {
			return nil, newError("Wrong binding in letrec")
		}
		name, ok := asSymbolName(pair.items[0])
		if !ok {
			return nil, newError("Wrong binding in letrec")
		}
		names[i] = name
		inits[i] = pair.items[1]
		inner = Extend(name, voidValue, inner)
	}
	binds := make([]binding, len(names))
	for i, name := range names {
		init, err := Parse(inits[i], inner)
		if err != nil {
			return nil, err
		}
		binds[i] = binding{name: name, init: init}
	}
	body, err := parseBody(argStx[1:], inner)
	if err != nil {
		return nil, err
	}
	return &letrecExpr{binds: binds, body: body}, nil
}

func parseSet(argStx []Syntax, env *Env) (Expr, error) {
	if len(argStx) != 2 {
		return nil, newError("Wrong number of arguments for set!")
	}
	name, ok := asSymbolName(argStx[0])
	if !ok {
		return nil, newError("Invalid variable name in set!")
	}
	rhs, err := Parse(argStx[1], env)
	if err != nil {
		return nil, err
	}
	return &setExpr{name: name, rhs: rhs}, nil
}
