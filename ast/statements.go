package ast

import (
	"strconv"
	"strings"

	"github.com/npillmayer/procalc"
)

// --- No-op -----------------------------------------------------------------

// Noop does nothing. Parsers use it as the head of a program chain.
type Noop struct {
	base
}

// NewNoop creates a no-op node.
func NewNoop(line int) *Noop {
	return &Noop{base{label: NoopLabel, line: line}}
}

// Evaluate returns no value.
func (n *Noop) Evaluate(Context) (Value, error) {
	return nil, nil
}

func (n *Noop) String() string {
	return n.continued("", false)
}

// --- Literals --------------------------------------------------------------

// NumberLit is a numeric literal.
type NumberLit struct {
	base
	Value Number
}

// NewNumber creates a numeric literal.
func NewNumber(v float64, line int) *NumberLit {
	return &NumberLit{base: base{label: NumberLabel, line: line}, Value: Number(v)}
}

// Evaluate returns the literal's value.
func (n *NumberLit) Evaluate(Context) (Value, error) {
	return n.Value, nil
}

func (n *NumberLit) String() string {
	return n.continued(n.Value.String(), true)
}

// BoolLit is a truth value literal.
type BoolLit struct {
	base
	Value Bool
}

// NewBool creates a truth value literal.
func NewBool(v bool, line int) *BoolLit {
	return &BoolLit{base: base{label: BooleanLabel, line: line}, Value: Bool(v)}
}

// Evaluate returns the literal's value.
func (n *BoolLit) Evaluate(Context) (Value, error) {
	return n.Value, nil
}

func (n *BoolLit) String() string {
	return n.continued(n.Value.String(), true)
}

// Literal creates a literal node for a value. "No value" yields a no-op.
func Literal(v Value, line int) Node {
	switch x := v.(type) {
	case Number:
		return NewNumber(float64(x), line)
	case Bool:
		return NewBool(bool(x), line)
	}
	return NewNoop(line)
}

// --- Variables -------------------------------------------------------------

// Variable is a reference to a named variable.
type Variable struct {
	base
	Name string
}

// NewVariable creates a variable reference.
func NewVariable(name string, line int) *Variable {
	return &Variable{base: base{label: VariableLabel, line: line}, Name: name}
}

// Evaluate looks up the variable by scope resolution.
func (v *Variable) Evaluate(ctx Context) (Value, error) {
	return ctx.GetVariable(v.Name)
}

func (v *Variable) String() string {
	return v.continued(v.Name, true)
}

// Assign stores the value of its right hand side under the name of its left
// hand side.
type Assign struct {
	base
}

// NewAssign creates an assignment `name = expr`.
func NewAssign(name *Variable, expr Node, line int) *Assign {
	return &Assign{base{label: AssignLabel, line: line, children: []Node{name, expr}}}
}

// Name is the name of the variable assigned to.
func (a *Assign) Name() string {
	return a.Left().(*Variable).Name
}

// Evaluate evaluates the right hand side and stores it, with scope search.
func (a *Assign) Evaluate(ctx Context) (Value, error) {
	v, err := a.Right().Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	if err = ctx.SetVariable(a.Name(), v, false); err != nil {
		return nil, err
	}
	return v, nil
}

func (a *Assign) String() string {
	return a.continued(a.Name()+" = "+bare(a.Right())+";", false)
}

// ArgAssign binds a value to a parameter name. It never searches enclosing
// scopes but always binds into the innermost one.
// ArgAssigns are synthetic: they have no source text of their own.
type ArgAssign struct {
	base
}

// NewArgAssign creates a parameter binding `param := expr`.
func NewArgAssign(param *Variable, expr Node) *ArgAssign {
	return &ArgAssign{base{label: ArgAssignLabel, line: param.Line(), children: []Node{param, expr}}}
}

// Name is the parameter name.
func (a *ArgAssign) Name() string {
	return a.Left().(*Variable).Name
}

// Evaluate evaluates the bound expression and stores it into the innermost scope.
func (a *ArgAssign) Evaluate(ctx Context) (Value, error) {
	v, err := a.Right().Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	if err = ctx.SetVariable(a.Name(), v, true); err != nil {
		return nil, err
	}
	return v, nil
}

func (a *ArgAssign) String() string {
	return a.continued("", false)
}

// --- Return ----------------------------------------------------------------

// Return yields the value of its expression and ends the enclosing function
// body (or the program).
type Return struct {
	base
	Expr Node
}

// NewReturn creates a return statement.
func NewReturn(expr Node, line int) *Return {
	return &Return{base: base{label: ReturnLabel, line: line}, Expr: expr}
}

// Evaluate evaluates the returned expression.
func (r *Return) Evaluate(ctx Context) (Value, error) {
	return r.Expr.Evaluate(ctx)
}

func (r *Return) String() string {
	return r.continued("return "+bare(r.Expr)+";", false)
}

// --- Commands --------------------------------------------------------------

// Command is a built-in command, e.g. "#disable scope".
type Command struct {
	base
	Text string
}

// NewCommand creates a command node for the literal command text.
func NewCommand(text string, line int) *Command {
	return &Command{base: base{label: CommandLabel, line: line}, Text: strings.TrimSpace(text)}
}

// Evaluate matches the command text against the command vocabulary:
// "enable scope", "disable scope", "enable local variable" and
// "disable local variable".
func (c *Command) Evaluate(ctx Context) (Value, error) {
	switch {
	case strings.Contains(c.Text, "disable scope"),
		strings.Contains(c.Text, "disable local variable"):
		ctx.SetScoping(false)
	case strings.Contains(c.Text, "enable scope"),
		strings.Contains(c.Text, "enable local variable"):
		ctx.SetScoping(true)
	default:
		return nil, procalc.Errorf(procalc.UnknownCommand, "unknown command: %s", strconv.Quote(c.Text))
	}
	tracer().Debugf("command %q", c.Text)
	return nil, nil
}

func (c *Command) String() string {
	return c.continued(c.Text, false)
}
