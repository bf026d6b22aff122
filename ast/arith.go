package ast

import (
	"math"

	"github.com/npillmayer/procalc"
)

// Arith is a binary arithmetic operation. Its label selects the operation:
// plus, minus, multiply, div, mod or power.
type Arith struct {
	base
}

var arithSymbols = map[Label]string{
	PlusLabel:     "+",
	MinusLabel:    "-",
	MultiplyLabel: "*",
	DivLabel:      "/",
	ModLabel:      "%",
	PowerLabel:    "^",
}

// NewArith creates a binary arithmetic node. It panics if op is not an
// arithmetic label.
func NewArith(op Label, left, right Node, line int) *Arith {
	if _, ok := arithSymbols[op]; !ok {
		panic("not an arithmetic operation: " + op.String())
	}
	return &Arith{base{label: op, line: line, children: []Node{left, right}}}
}

// NewPlus creates left + right.
func NewPlus(left, right Node, line int) *Arith {
	return NewArith(PlusLabel, left, right, line)
}

// NewMinus creates left - right.
func NewMinus(left, right Node, line int) *Arith {
	return NewArith(MinusLabel, left, right, line)
}

// NewMultiply creates left * right.
func NewMultiply(left, right Node, line int) *Arith {
	return NewArith(MultiplyLabel, left, right, line)
}

// NewDiv creates left / right.
func NewDiv(left, right Node, line int) *Arith {
	return NewArith(DivLabel, left, right, line)
}

// NewMod creates left % right.
func NewMod(left, right Node, line int) *Arith {
	return NewArith(ModLabel, left, right, line)
}

// NewPower creates left ^ right.
func NewPower(left, right Node, line int) *Arith {
	return NewArith(PowerLabel, left, right, line)
}

// Symbol returns the operator symbol.
func (a *Arith) Symbol() string {
	return arithSymbols[a.label]
}

// Evaluate evaluates both operands, left first, and combines them.
// Division by an operand of exactly 0 fails.
func (a *Arith) Evaluate(ctx Context) (Value, error) {
	lv, err := a.Left().Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	rv, err := a.Right().Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	l, r := ToNumber(lv), ToNumber(rv)
	switch a.label {
	case PlusLabel:
		return Number(l + r), nil
	case MinusLabel:
		return Number(l - r), nil
	case MultiplyLabel:
		return Number(l * r), nil
	case DivLabel:
		if n, ok := rv.(Number); ok && n == 0 {
			return nil, procalc.Errorf(procalc.DivisionByZero, "division by zero")
		}
		return Number(l / r), nil
	case ModLabel:
		return Number(math.Mod(l, r)), nil
	}
	return Number(math.Pow(l, r)), nil
}

func (a *Arith) String() string {
	left := a.Left().String()
	if a.label == PowerLabel {
		left = parenNegative(a.Left())
	}
	s := "(" + left + " " + a.Symbol() + " " + a.Right().String() + ")"
	return a.continued(s, true)
}

// parenNegative renders an operand, enclosing negative number literals in
// parentheses. -2 ^ x and -3! read as negations of 2 ^ x and 3!.
func parenNegative(n Node) string {
	if lit, ok := n.(*NumberLit); ok && math.Signbit(float64(lit.Value)) {
		return "(" + lit.Value.String() + ")"
	}
	return n.String()
}

// --- Factorial -------------------------------------------------------------

// Factorial computes n! of its operand.
type Factorial struct {
	base
	Operand Node
}

// NewFactorial creates operand!.
func NewFactorial(operand Node, line int) *Factorial {
	return &Factorial{base: base{label: FactorialLabel, line: line}, Operand: operand}
}

// Evaluate returns 1 for operands ≤ 0. Otherwise it computes the product
// n·(n-1)·…·1 recursively. Recursion deeper than the context's depth limit
// fails with StackDepthExceeded.
func (f *Factorial) Evaluate(ctx Context) (Value, error) {
	v, err := f.Operand.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	n := ToNumber(v)
	if n <= 0 {
		return Number(1), nil
	}
	r, err := factorial(n, 0, ctx.MaxDepth())
	if err != nil {
		return nil, err
	}
	return Number(r), nil
}

func factorial(n float64, depth, limit int) (float64, error) {
	if limit > 0 && depth >= limit {
		return 0, procalc.Errorf(procalc.StackDepthExceeded,
			"factorial recursion exceeds depth limit of %d", limit)
	}
	if n <= 1 {
		return 1, nil
	}
	r, err := factorial(n-1, depth+1, limit)
	return n * r, err
}

func (f *Factorial) String() string {
	return f.continued("("+parenNegative(f.Operand)+"!)", true)
}
