package golisp

// primitives is the set of built-in function names recognised in a list's
// head position once the parser has confirmed the name is not shadowed by a
// user binding. reservedWords is the analogous set for special forms.
//
// A name present in neither table, and not bound in the compile-time
// environment, is parsed as a free variable and only fails at evaluation
// time ("Invalid variable").
var primitives = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"modulo": true, "expt": true,
	"<": true, "<=": true, "=": true, ">=": true, ">": true,
	"cons": true, "car": true, "cdr": true, "list": true,
	"set-car!": true, "set-cdr!": true,
	"not": true, "and": true, "or": true,
	"eq?": true, "boolean?": true, "number?": true, "null?": true,
	"pair?": true, "procedure?": true, "symbol?": true, "list?": true,
	"string?": true,
	"display":  true,
	"void":     true,
	"exit":     true,
}

var reservedWords = map[string]bool{
	"begin": true, "quote": true,
	"if": true, "cond": true,
	"lambda": true,
	"define": true,
	"let":    true, "letrec": true,
	"set!": true,
}

func isPrimitive(name string) bool    { return primitives[name] }
func isReservedWord(name string) bool { return reservedWords[name] }
