package procalc

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Scanners define the constants for
// their languages.
type TokType int

// Tokens represent input tokens. They are produced by a scanner and
// reflect terminals of the calculator language.
//
// An example would be a token for a floating point number:
//
//	TokType = Num        // identifier for this kind of tokens
//	Lexeme  = "3.1416"   // lexeme how it appeared in the input stream
//	Value   = nil        // parser converts the lexeme
//	Span    = 67…73      // occured from position 67 in the input stream
//	Line    = 4          // source line, starting at 1
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
	Line() int
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. A span
// denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is a predicate for an empty span.
func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
