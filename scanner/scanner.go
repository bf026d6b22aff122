package scanner

import (
	"fmt"

	"github.com/npillmayer/procalc"
)

// Token categories shared by all scanners.
const (
	EOF     = -1
	Unknown = 0
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() procalc.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by the LexMachine
// scanner.
type DefaultToken struct {
	kind   procalc.TokType
	lexeme string
	Val    interface{}
	span   procalc.Span
	line   int
}

var _ procalc.Token = DefaultToken{}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ procalc.TokType, lexeme string, span procalc.Span, line int) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
		line:   line,
	}
}

func (t DefaultToken) TokType() procalc.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() procalc.Span {
	return t.span
}

func (t DefaultToken) Line() int {
	return t.line
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("<%d %q @%d>", t.kind, t.lexeme, t.line)
}
