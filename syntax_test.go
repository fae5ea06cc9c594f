package golisp

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func readAll(t *testing.T, src string) []string {
	t.Helper()
	rd := NewReader(strings.NewReader(src))
	var got []string
	for {
		stx, err := rd.ReadSyntax()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSyntax: %v", err)
		}
		got = append(got, stx.String())
	}
	return got
}

func TestReaderAtoms(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"1", []string{"1"}},
		{"-5", []string{"-5"}},
		{"3/4", []string{"3/4"}},
		{"#t #f", []string{"#t", "#f"}},
		{"eq? set-car! +", []string{"eq?", "set-car!", "+"}},
		{"(1 2 3)", []string{"(1 2 3)"}},
		{"[1 2]", []string{"(1 2)"}},
		{"'x", []string{"(quote x)"}},
		{"; a comment\n5", []string{"5"}},
		{`"hi\n"`, []string{"\"hi\n\""}},
		{"(1 . 2)", []string{"(1 . 2)"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := readAll(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("%q: mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestReaderRationalRequiresPositiveDenominator(t *testing.T) {
	rd := NewReader(strings.NewReader("3/-4"))
	stx, err := rd.ReadSyntax()
	if err != nil {
		t.Fatalf("ReadSyntax: %v", err)
	}
	if _, ok := stx.(symbolSyntax); !ok {
		t.Errorf("expected 3/-4 to fall back to a symbol, got %#v", stx)
	}
}

func TestReaderUnterminatedString(t *testing.T) {
	rd := NewReader(strings.NewReader(`"abc`))
	_, err := rd.ReadSyntax()
	if err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
}
