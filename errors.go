package procalc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies runtime and syntax failures. ErrorKind implements the
// error interface, which lets clients check for a category with errors.Is:
//
//	if errors.Is(err, procalc.DivisionByZero) { … }
type ErrorKind int

// Error kinds raised by the evaluator and the parser.
const (
	NoError ErrorKind = iota
	UndefinedVariable
	UndefinedFunction
	ConstantReassignment
	ArityMismatch
	DivisionByZero
	InvalidOperator
	UnknownCommand
	StackDepthExceeded
	SyntaxError
)

var kindNames = [...]string{
	"no error",
	"undefined variable",
	"undefined function",
	"constant reassignment",
	"arity mismatch",
	"division by zero",
	"invalid operator",
	"unknown command",
	"stack depth exceeded",
	"syntax error",
}

func (k ErrorKind) Error() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("error kind %d", int(k))
	}
	return kindNames[k]
}

// Error is the structured failure handed to hosts. It carries the source line
// of the failing statement, its rendered text and a trace of the enclosing
// statements, outermost first.
type Error struct {
	Kind    ErrorKind
	Msg     string
	Line    int      // 1-based, 0 if unknown
	Source  string   // first line of the rendered failing statement
	Trace   []string // "line N: <statement>", outermost first
	Cause   error    // underlying error, if any
	located bool
}

// Errorf creates a new error of kind k.
func Errorf(k ErrorKind, format string, args ...interface{}) *Error {
	return &Error{
		Kind: k,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// Wrap wraps an arbitrary error into an *Error of kind k. If err already
// is an *Error, it is returned unchanged.
func Wrap(err error, k ErrorKind) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: k, Msg: err.Error(), Cause: err}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is match an *Error against its kind.
func (e *Error) Is(target error) bool {
	if k, ok := target.(ErrorKind); ok {
		return e.Kind == k
	}
	return false
}

// Locate attributes the error to the statement at a source line, together
// with a trace of enclosing statements. Only the first call has an effect,
// which lets the innermost location win while the error travels outwards.
// Returns false if the error had already been located.
func (e *Error) Locate(line int, source string, trace []string) bool {
	if e.located {
		return false
	}
	e.Line, e.Source, e.Trace = line, source, trace
	e.located = true
	return true
}

// TraceString returns at most max trace entries, innermost first, one per
// line. max ≤ 0 returns the complete trace.
func (e *Error) TraceString(max int) string {
	lines := make([]string, 0, len(e.Trace))
	for i := len(e.Trace) - 1; i >= 0; i-- {
		if max > 0 && len(lines) == max {
			break
		}
		lines = append(lines, e.Trace[i])
	}
	return strings.Join(lines, "\n")
}
