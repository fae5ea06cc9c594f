package golisp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// runProgram feeds src through a fresh REPL (no prelude, no prompt) and
// returns everything written to stdout, mirroring the end-to-end scenarios.
func runProgram(t *testing.T, src string) string {
	t.Helper()
	var out bytes.Buffer
	r := NewREPL(strings.NewReader(src), &out, nil, nil, nil)
	if err := r.Run(false); err != nil {
		t.Fatalf("repl run: %v", err)
	}
	return out.String()
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"S1 arithmetic", `(+ 1 2 3) (/ 1 2) (- 5) (expt 2 10)`, "6\n1/2\n-5\n1024\n"},
		{"S2 list basics", `(car '(1 2 3)) (cdr '(1 2 3)) (cons 1 '(2)) (cons 1 2)`, "1\n(2 3)\n(1 2)\n(1 . 2)\n"},
		{"S3 mutation", `(define p (cons 1 2)) (set-car! p 9) p`, "\n(9 . 2)\n"},
		{"S4 recursion", `(define (fact n) (if (= n 0) 1 (* n (fact (- n 1))))) (fact 5)`, "120\n"},
		{"S5 mutual recursion", `(define (ev? n) (if (= n 0) #t (od? (- n 1)))) (define (od? n) (if (= n 0) #f (ev? (- n 1)))) (ev? 10)`, "#t\n"},
		{"S6 shadowing", `(define + -) (+ 10 3)`, "7\n"},
		{"S7 closures and state", `(define (mk) (let ((c 0)) (lambda () (set! c (+ c 1)) c))) (define g (mk)) (g) (g)`, "1\n2\n"},
		{"S8 quote with dotted pair", `'(1 . (2 . 3))`, "(1 2 . 3)\n"},
		{"S9 errors", `(car 5)`, "RuntimeError\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runProgram(t, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("%s: output mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestErrorIsolation(t *testing.T) {
	got := runProgram(t, `(define x 1) (car 5) x`)
	want := "RuntimeError\n1\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestMutualRecursionAfterBothDefined(t *testing.T) {
	got := runProgram(t, `
(define (even2? n) (if (= n 0) #t (odd2? (- n 1))))
(define (odd2? n) (if (= n 0) #f (even2? (- n 1))))
(even2? 6)
(odd2? 7)`)
	want := "#t\n#t\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestClosureSeesLaterTopLevelDefine(t *testing.T) {
	got := runProgram(t, `(define (f) y) (define y 42) (f)`)
	want := "42\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestTruthiness(t *testing.T) {
	got := runProgram(t, `(if 0 'a 'b) (if '() 'a 'b) (if #f 'a 'b)`)
	want := "a\na\nb\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestVoidPrinting(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"implicit void from set!", `(define p (cons 1 2)) (set-car! p 9)`, "\n"},
		{"explicit void call prints the void token", `(void)`, "#<void>\n"},
		{"if both branches explicit void", `(if #t (void) (void))`, "#<void>\n"},
		{"if only one branch void prints blank", `(if #t (void) 5)`, "\n"},
		{"begin tail void explicit", `(begin 1 (void))`, "#<void>\n"},
		{"cond clause tail void explicit", `(cond (#t (void)))`, "#<void>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runProgram(t, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("%s: output mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}
