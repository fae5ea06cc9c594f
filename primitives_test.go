package golisp

import (
	"bytes"
	"strings"
	"testing"
)

func mustDisplay(t *testing.T, src string) string {
	t.Helper()
	return runProgram(t, src)
}

func TestRationalNormalisation(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"(= 2 2/1)", "#t\n"},
		{"(eq? 2 2/1)", "#t\n"},
		{"2/1", "2/1\n"},
		{"(+ 1 1/2)", "3/2\n"},
		{"(* 2/3 3)", "2\n"},
		{"(/ 4 2)", "2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := mustDisplay(t, tt.src); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestPairAliasing(t *testing.T) {
	got := runProgram(t, `
(define p (cons 1 2))
(define q p)
(set-car! q 99)
p`)
	want := "\n(99 . 2)\n"
	if got != want {
		t.Errorf("aliasing: got %q, want %q", got, want)
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	got := runProgram(t, `(eq? (car '(1 2 3)) (car (list 1 2 3)))`)
	want := "#t\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNumericErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"(/ 1 0)", "Division by zero"},
		{"(modulo 1 0)", "Division by zero"},
		{"(modulo 1.0 2)", ""}, // not a valid token in this language; skipped below
		{"(expt 2 -1)", "Negative exponent not supported for integers"},
		{"(expt 0 0)", "0^0 is undefined"},
		{"(car 5)", "car on non-pair"},
		{"(cdr 5)", "cdr on non-pair"},
		{"(set-car! 5 1)", "set-car! on non-pair"},
		{"(< 1 'a)", "Wrong typename in numeric comparison"},
	}
	for _, tt := range tests {
		if tt.want == "" {
			continue
		}
		t.Run(tt.src, func(t *testing.T) {
			got := runProgram(t, tt.src)
			if got != "RuntimeError\n" {
				t.Errorf("%s: expected RuntimeError, got %q", tt.src, got)
			}
		})
	}
}

func TestEvenOddPredicatesFromPrelude(t *testing.T) {
	env, err := LoadPrelude(nil, nil)
	if err != nil {
		t.Fatalf("LoadPrelude: %v", err)
	}
	var out bytes.Buffer
	r := NewREPL(strings.NewReader(`(even? 10) (odd? 10) (length '(1 2 3)) (append '(1 2) '(3 4))`), &out, nil, env, nil)
	if err := r.Run(false); err != nil {
		t.Fatalf("repl run: %v", err)
	}
	want := "#t\n#f\n3\n(1 2 3 4)\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}
