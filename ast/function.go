package ast

import (
	"strings"

	"github.com/npillmayer/procalc"
)

// Function is a user-defined function: a name, an ordered list of parameter
// names and a body chain. Function nodes are not statements; they are
// registered by a FunctionDeclaration.
type Function struct {
	base
	Name   string
	params []*Variable
	body   Node
}

// NewFunction creates a function node.
func NewFunction(name string, params []*Variable, body Node, line int) *Function {
	if body == nil {
		body = NewNoop(line)
	}
	return &Function{
		base:   base{label: FunctionLabel, line: line},
		Name:   name,
		params: params,
		body:   body,
	}
}

// Parameters returns the parameter name nodes, in order.
func (f *Function) Parameters() []*Variable {
	return f.params
}

// ParameterNames returns the parameter names, in order.
func (f *Function) ParameterNames() []string {
	names := make([]string, len(f.params))
	for i, p := range f.params {
		names[i] = p.Name
	}
	return names
}

// Body returns the declared body chain.
func (f *Function) Body() Node {
	return f.body
}

// Bind creates the activation prologue for a call with the given arguments:
// a fresh chain of argument assignments, one per parameter in parameter
// order, followed by the function body. The function's own nodes are left
// untouched, so every call owns its bindings.
//
// Bind fails with ArityMismatch if the number of arguments differs from the
// number of parameters.
func (f *Function) Bind(args []Value) (Node, error) {
	if len(args) < len(f.params) {
		return nil, procalc.Errorf(procalc.ArityMismatch, "not enough arguments to %s: want %d, have %d",
			f.Name, len(f.params), len(args))
	} else if len(args) > len(f.params) {
		return nil, procalc.Errorf(procalc.ArityMismatch, "too many arguments to %s: want %d, have %d",
			f.Name, len(f.params), len(args))
	}
	var head, tail Node
	for i, p := range f.params {
		a := NewArgAssign(p, Literal(args[i], p.Line()))
		a.stmt = true
		if head == nil {
			head = a
		} else {
			tail.SetNext(a)
		}
		tail = a
	}
	if head == nil {
		return f.body, nil
	}
	tail.SetNext(f.body)
	return head, nil
}

// Evaluate of a bare function node yields no value.
func (f *Function) Evaluate(Context) (Value, error) {
	return nil, nil
}

func (f *Function) String() string {
	s := "function " + f.Name + "(" + strings.Join(f.ParameterNames(), ", ") + ") " + block(f.body)
	return f.continued(s, false)
}

// --- Declaration -----------------------------------------------------------

// FunctionDeclaration registers a function with the evaluation context.
type FunctionDeclaration struct {
	base
	Func *Function
}

// NewFunctionDeclaration wraps fn into a declaration statement.
func NewFunctionDeclaration(fn *Function) *FunctionDeclaration {
	return &FunctionDeclaration{
		base: base{label: FunctionDeclarationLabel, line: fn.Line()},
		Func: fn,
	}
}

// Evaluate registers the function and returns 0.
func (d *FunctionDeclaration) Evaluate(ctx Context) (Value, error) {
	if err := ctx.RegisterFunction(d.Func); err != nil {
		return nil, err
	}
	tracer().Debugf("declared function %s/%d", d.Func.Name, len(d.Func.params))
	return Number(0), nil
}

func (d *FunctionDeclaration) String() string {
	return d.continued(d.Func.String(), false)
}

// --- Call ------------------------------------------------------------------

// FunctionCall invokes a built-in or user-defined function. Its children are
// the argument expressions; nil children are empty argument slots.
type FunctionCall struct {
	base
	Name string
}

// NewFunctionCall creates a call of function name.
func NewFunctionCall(name string, args []Node, line int) *FunctionCall {
	return &FunctionCall{base: base{label: FunctionCallLabel, line: line, children: args}, Name: name}
}

// Evaluate evaluates the arguments, left to right, skipping empty slots and
// arguments without a value, then calls the function.
func (c *FunctionCall) Evaluate(ctx Context) (Value, error) {
	args := make([]Value, 0, len(c.children))
	for _, a := range c.children {
		if a == nil {
			continue
		}
		v, err := a.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		if v != nil {
			args = append(args, v)
		}
	}
	return ctx.Call(c.Name, args)
}

func (c *FunctionCall) String() string {
	args := make([]string, 0, len(c.children))
	for _, a := range c.children {
		if a != nil {
			args = append(args, bare(a))
		}
	}
	return c.continued(c.Name+"("+strings.Join(args, ", ")+")", true)
}
