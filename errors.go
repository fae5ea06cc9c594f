package golisp

import "fmt"

// RuntimeError is the single error kind produced by the reader, parser and
// evaluator. Every diagnostic message is a plain string; callers that need
// to distinguish error sites match on the message text.
type RuntimeError struct {
	msg string
}

func (e *RuntimeError) Error() string { return e.msg }

func newError(msg string) error { return &RuntimeError{msg: msg} }

func errorf(format string, args ...interface{}) error {
	return &RuntimeError{msg: fmt.Sprintf(format, args...)}
}
