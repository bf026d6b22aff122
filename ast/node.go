package ast

import (
	"fmt"
	"strings"
)

// Label is the variant tag of a node. It is immutable per concrete type.
type Label int

// Node variants.
const (
	NoopLabel Label = iota
	NumberLabel
	BooleanLabel
	VariableLabel
	AssignLabel
	ArgAssignLabel
	PlusLabel
	MinusLabel
	MultiplyLabel
	DivLabel
	ModLabel
	PowerLabel
	FactorialLabel
	RelationLabel
	MagnitudeRelationLabel
	IfLabel
	WhileLabel
	FunctionLabel
	FunctionDeclarationLabel
	FunctionCallLabel
	ReturnLabel
	CommandLabel
)

var labelNames = [...]string{
	"noop",
	"number",
	"boolean",
	"variable",
	"assign",
	"argument-assign",
	"plus",
	"minus",
	"multiply",
	"div",
	"mod",
	"power",
	"factorial",
	"relation",
	"magnitude-relation",
	"if",
	"while",
	"function",
	"function-declaration",
	"function-call",
	"function-return",
	"command",
}

func (l Label) String() string {
	if l < 0 || int(l) >= len(labelNames) {
		return fmt.Sprintf("label(%d)", int(l))
	}
	return labelNames[l]
}

// Context is the evaluation context nodes evaluate against. It is implemented
// by the machine in package runtime.
type Context interface {
	GetVariable(name string) (Value, error)
	SetVariable(name string, v Value, isArgument bool) error
	RegisterFunction(fn *Function) error
	Call(name string, args []Value) (Value, error)
	SetScoping(enabled bool)
	MaxDepth() int
}

// Node is a unit of program structure.
//
// Evaluate produces a value (or nil for "no value") or performs a side effect.
// String renders the canonical source text of the node, continued by the
// text of the rest of its statement chain.
type Node interface {
	Label() Label
	Line() int
	Next() Node
	SetNext(Node)
	Children() []Node
	Evaluate(Context) (Value, error)
	String() string
	core() *base
}

// base holds the attributes common to all variants. Left and right are views
// over children[0] and children[1].
type base struct {
	label    Label
	line     int
	children []Node
	next     Node
	stmt     bool // node is a statement of a chain
}

func (b *base) core() *base {
	return b
}

// Label returns the variant tag.
func (b *base) Label() Label {
	return b.label
}

// Line returns the 1-based source line, or 0 if unknown.
func (b *base) Line() int {
	return b.line
}

// Next returns the following statement, if any.
func (b *base) Next() Node {
	return b.next
}

// SetNext links a following statement.
func (b *base) SetNext(n Node) {
	b.next = n
}

// Children returns the ordered child nodes.
func (b *base) Children() []Node {
	return b.children
}

// Left returns children[0] or nil.
func (b *base) Left() Node {
	if len(b.children) > 0 {
		return b.children[0]
	}
	return nil
}

// Right returns children[1] or nil.
func (b *base) Right() Node {
	if len(b.children) > 1 {
		return b.children[1]
	}
	return nil
}

// continued appends the rendering of the rest of the chain to s.
// Expression statements are terminated by a semicolon.
func (b *base) continued(s string, terminate bool) string {
	if b.stmt && terminate {
		s += ";"
	}
	if b.next == nil {
		return s
	}
	rest := b.next.String()
	if rest == "" {
		return s
	}
	if s == "" {
		return rest
	}
	return s + "\n" + rest
}

// --- Chains ----------------------------------------------------------------

// Chain links nodes into a statement chain, in order, and returns its head.
// Nil nodes are skipped. Chain returns nil for an empty list.
func Chain(nodes ...Node) Node {
	var head, tail Node
	for _, n := range nodes {
		if n == nil {
			continue
		}
		n.core().stmt = true
		if head == nil {
			head = n
		} else {
			tail.SetNext(n)
		}
		tail = n
	}
	return head
}

// Tail returns the last node of a chain.
func Tail(head Node) Node {
	if head == nil {
		return nil
	}
	c := head
	for c.Next() != nil {
		c = c.Next()
	}
	return c
}

// Statements returns the nodes of a chain as a slice.
func Statements(head Node) []Node {
	var stmts []Node
	for c := head; c != nil; c = c.Next() {
		stmts = append(stmts, c)
	}
	return stmts
}

// FirstLine renders a single node as one line of text, as used for
// diagnostics.
func FirstLine(n Node) string {
	if n == nil {
		return ""
	}
	s := n.String()
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}

// --- Rendering helpers -----------------------------------------------------

// bare renders an expression without its outer parentheses.
func bare(n Node) string {
	if n == nil {
		return ""
	}
	s := n.String()
	switch n.(type) {
	case *Arith, *Relation, *MagnitudeRelation, *Factorial:
		if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// block renders a chain as an indented, braced block.
func block(head Node) string {
	if head == nil {
		return "{\n}"
	}
	body := head.String()
	if body == "" {
		return "{\n}"
	}
	return "{\n" + indent(body) + "\n}"
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "    " + l
		}
	}
	return strings.Join(lines, "\n")
}
