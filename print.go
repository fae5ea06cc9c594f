package golisp

import (
	"fmt"
	"strconv"
	"strings"
)

// displayString renders a Value the way display prints it (the REPL's echo
// uses writeString instead): strings and symbols unquoted, pairs space-separated with a dotted tail
// when the list isn't proper, procedures and void as opaque tokens.
func displayString(v *Value) string {
	switch v.Kind {
	case VoidKind:
		return "#<void>"
	case TerminateKind:
		return "#<void>"
	case IntKind:
		return strconv.Itoa(v.Int)
	case RationalKind:
		return strconv.Itoa(v.Num) + "/" + strconv.Itoa(v.Den)
	case BoolKind:
		if v.Bool {
			return "#t"
		}
		return "#f"
	case SymbolKind:
		return v.Str
	case StringKind:
		return v.Str
	case NullKind:
		return "()"
	case PairKind:
		return displayPair(v)
	case ProcKind:
		return "#<procedure>"
	}
	return "#<unknown>"
}

func displayPair(v *Value) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(displayString(v.Car))
	cur := v.Cdr
	for cur.Kind == PairKind {
		sb.WriteByte(' ')
		sb.WriteString(displayString(cur.Car))
		cur = cur.Cdr
	}
	if cur.Kind != NullKind {
		sb.WriteString(" . ")
		sb.WriteString(displayString(cur))
	}
	sb.WriteByte(')')
	return sb.String()
}

// writeString renders a Value the way the REPL echoes a result back, which
// differs from display only in that strings print quoted.
func writeString(v *Value) string {
	if v.Kind == StringKind {
		return fmt.Sprintf("%q", v.Str)
	}
	if v.Kind == PairKind {
		return writePair(v)
	}
	return displayString(v)
}

func writePair(v *Value) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(writeString(v.Car))
	cur := v.Cdr
	for cur.Kind == PairKind {
		sb.WriteByte(' ')
		sb.WriteString(writeString(cur.Car))
		cur = cur.Cdr
	}
	if cur.Kind != NullKind {
		sb.WriteString(" . ")
		sb.WriteString(writeString(cur))
	}
	sb.WriteByte(')')
	return sb.String()
}
