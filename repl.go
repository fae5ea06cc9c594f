package golisp

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// REPL drives the read-parse-eval-print cycle. It reads one top-level
// form at a time against a growing compile-time environment, batches
// consecutive top-level defines so mutually recursive definitions resolve,
// and suppresses void output except when the form statically culminates in
// an explicit void construction.
type REPL struct {
	reader   *Reader
	out      io.Writer
	log      *logrus.Logger
	prompt   string
	parseEnv *Env
	evalEnv  *Env

	pendingNames []string
	pendingRHS   []Expr
}

// NewREPL wires a fresh REPL over the given environments. Passing non-nil
// envs lets a caller preload the prelude (lib.go) before the first read.
func NewREPL(in io.Reader, out io.Writer, parseEnv, evalEnv *Env, log *logrus.Logger) *REPL {
	return &REPL{
		reader:   NewReader(in),
		out:      out,
		log:      log,
		parseEnv: parseEnv,
		evalEnv:  evalEnv,
	}
}

func (r *REPL) SetPrompt(p string) { r.prompt = p }

// Run executes the cycle until EOF or a call to (exit). writePrompt governs
// whether the prompt string precedes each read — set for an interactive
// terminal, cleared for piped or file input.
func (r *REPL) Run(writePrompt bool) error {
	for {
		if writePrompt {
			fmt.Fprint(r.out, r.prompt)
		}

		stx, err := r.reader.ReadSyntax()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		expr, perr := Parse(stx, r.parseEnv)
		if perr != nil {
			r.reportError(perr, stx)
			continue
		}

		if d, ok := expr.(*defineExpr); ok {
			r.parseEnv = Extend(d.name, voidValue, r.parseEnv)
			r.pendingNames = append(r.pendingNames, d.name)
			r.pendingRHS = append(r.pendingRHS, d.rhs)
			continue
		}

		if err := r.flushPending(); err != nil {
			r.reportError(err, stx)
			continue
		}

		v, err := expr.Eval(r.evalEnv)
		if err != nil {
			r.reportError(err, stx)
			continue
		}
		if v.Kind == TerminateKind {
			return nil
		}
		r.printResult(v, expr)
	}
}

// flushPending places every deferred define's name in r.evalEnv as a void
// placeholder, then evaluates each right-hand side in that shared
// environment and patches it in — in queueing order, so later defines in
// the same batch see earlier ones and vice versa.
func (r *REPL) flushPending() error {
	if len(r.pendingNames) == 0 {
		return nil
	}
	names, rhs := r.pendingNames, r.pendingRHS

	for _, name := range names {
		r.evalEnv = ensureBound(name, r.evalEnv)
	}
	for i, name := range names {
		v, err := rhs[i].Eval(r.evalEnv)
		if err != nil {
			return err
		}
		Modify(name, v, r.evalEnv)
	}
	r.pendingNames, r.pendingRHS = nil, nil
	return nil
}

func (r *REPL) reportError(err error, stx Syntax) {
	fmt.Fprintln(r.out, "RuntimeError")
	if r.log != nil {
		r.log.WithField("form", stx.String()).Debug(err.Error())
	}
}

func (r *REPL) printResult(v *Value, expr Expr) {
	if v.Kind == VoidKind && !isExplicitVoidForm(expr) {
		fmt.Fprintln(r.out)
		return
	}
	fmt.Fprintln(r.out, writeString(v))
}

// isExplicitVoidForm decides, purely syntactically on the parsed expression
// (never by inspecting which branch actually ran), whether a top-level form
// culminates in an explicit void construction: a direct (void) call, or the
// tail of a begin, both branches of an if, or any clause's tail in a cond
// that so culminates.
func isExplicitVoidForm(e Expr) bool {
	switch v := e.(type) {
	case *voidExpr:
		return true
	case *beginExpr:
		if len(v.forms) == 0 {
			return false
		}
		return isExplicitVoidForm(v.forms[len(v.forms)-1])
	case *ifExpr:
		return isExplicitVoidForm(v.then) && isExplicitVoidForm(v.alt)
	case *condExpr:
		for _, cl := range v.clauses {
			if len(cl.forms) == 0 {
				continue
			}
			if isExplicitVoidForm(cl.forms[len(cl.forms)-1]) {
				return true
			}
		}
		return false
	}
	return false
}
