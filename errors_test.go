package golisp

import (
	"strings"
	"testing"
)

// evalSrc parses and evaluates a single top-level form directly (bypassing
// the REPL's RuntimeError flattening) so the exact diagnostic string can be
// asserted, since diagnostic messages must be preserved verbatim.
func evalSrc(t *testing.T, src string) (*Value, error) {
	t.Helper()
	rd := NewReader(strings.NewReader(src))
	stx, err := rd.ReadSyntax()
	if err != nil {
		t.Fatalf("ReadSyntax: %v", err)
	}
	expr, err := Parse(stx, nil)
	if err != nil {
		return nil, err
	}
	return expr.Eval(nil)
}

func TestEvaluationErrorMessages(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"nosuchvar", "Invalid variable: nosuchvar"},
		{"(1 2)", "Attempt to apply a non-procedure"},
		{"((lambda (x) x) 1 2)", "Wrong number of arguments"},
		{"(set! nosuchvar 1)", "Undefined variable : nosuchvar"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := evalSrc(t, tt.src)
			if err == nil || err.Error() != tt.want {
				t.Errorf("%s: got %v, want %q", tt.src, err, tt.want)
			}
		})
	}
}
