package runtime

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/google/uuid"
	"github.com/npillmayer/procalc"
	"github.com/npillmayer/procalc/ast"
)

// DefaultMaxDepth is the default limit for nested runs and calls.
const DefaultMaxDepth = 2048

// Machine is the execution context for statement chains. It owns a value
// stack, a scope stack and a program stack.
//
// A machine is constructed once per independent program execution context.
// After an unrecovered runtime error, hosts should Reset the machine before
// accepting further input; partial state of a failed run is not rolled back.
type Machine struct {
	values         *arraystack.Stack // results of completed runs
	scopes         *ScopeStack       // live scopes, globals at the bottom
	program        *FrameStack       // control transfers in flight
	caps           Capabilities      // built-in functions and constants
	scoping        bool              // do nested blocks get a scope of their own?
	defaultScoping bool
	maxDepth       int
	depth          int
	current        ast.Node // statement being evaluated
	value          ast.Value
	returning      bool
	session        uuid.UUID
}

var _ ast.Context = (*Machine)(nil)

// Option configures a machine.
type Option func(*Machine)

// WithCapabilities equips a machine with built-in functions and constants.
func WithCapabilities(caps Capabilities) Option {
	return func(m *Machine) {
		m.caps = caps
	}
}

// WithMaxDepth sets the limit for nested runs, calls and factorial recursion.
// A limit ≤ 0 selects DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(m *Machine) {
		if depth <= 0 {
			depth = DefaultMaxDepth
		}
		m.maxDepth = depth
	}
}

// WithScoping sets the initial state of block scoping. Scoping is enabled
// by default.
func WithScoping(enabled bool) Option {
	return func(m *Machine) {
		m.defaultScoping = enabled
	}
}

// NewMachine constructs a new machine, initialized with a global scope.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		defaultScoping: true,
		maxDepth:       DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Reset()
	return m
}

// Reset discards all state: stacks, scopes and functions. It seeds a fresh
// global scope and starts a new session.
func (m *Machine) Reset() {
	m.values = arraystack.New()
	m.scopes = new(ScopeStack)
	m.scopes.PushNewScope("globals")
	m.program = new(FrameStack)
	m.scoping = m.defaultScoping
	m.depth = 0
	m.current = nil
	m.value = nil
	m.returning = false
	m.session = uuid.New()
	tracer().P("session", m.session.String()).Debugf("machine reset")
}

// SessionID identifies the current session, i.e. the machine state since the
// last reset.
func (m *Machine) SessionID() uuid.UUID {
	return m.session
}

// Capabilities returns the built-in functions and constants of the machine.
func (m *Machine) Capabilities() Capabilities {
	return m.caps
}

// Globals returns the global scope.
func (m *Machine) Globals() *Scope {
	return m.scopes.Globals()
}

// Scopes returns the scope stack.
func (m *Machine) Scopes() *ScopeStack {
	return m.scopes
}

// ProgramStack returns the program stack.
func (m *Machine) ProgramStack() *FrameStack {
	return m.program
}

// ValueStackSize returns the number of values on the value stack.
func (m *Machine) ValueStackSize() int {
	return m.values.Size()
}

// Current returns the statement currently being evaluated.
func (m *Machine) Current() ast.Node {
	return m.current
}

// SetScoping enables or disables block scopes. Part of ast.Context.
func (m *Machine) SetScoping(enabled bool) {
	tracer().Debugf("scoping enabled = %v", enabled)
	m.scoping = enabled
}

// RestoreScoping returns block scoping to the state the machine was
// configured with, undoing scope commands of earlier runs.
func (m *Machine) RestoreScoping() {
	m.SetScoping(m.defaultScoping)
}

// Scoping tells if nested blocks get a scope of their own.
func (m *Machine) Scoping() bool {
	return m.scoping
}

// MaxDepth returns the depth limit for recursion. Part of ast.Context.
func (m *Machine) MaxDepth() int {
	return m.maxDepth
}

// --- Running ---------------------------------------------------------------

// Run executes the statement chain starting at head. If global is false and
// scoping is enabled, the chain runs in a fresh scope, layered on top of the
// current scopes. On success the value of the chain, i.e. the value of the
// last statement producing one, is pushed onto the value stack. Use Result
// to retrieve it.
//
// Errors are returned as *procalc.Error, attributed to the failing statement
// and carrying a trace of the enclosing statements.
func (m *Machine) Run(head ast.Node, global bool) error {
	err := m.run(head, global)
	if m.depth == 0 {
		m.returning = false
	}
	return err
}

// Result pops the result of the most recent top-level run. It returns nil if
// no result is available.
func (m *Machine) Result() ast.Value {
	if m.values.Empty() {
		return nil
	}
	return m.popValue()
}

// Eval runs a chain in the global scope and returns its value.
func (m *Machine) Eval(head ast.Node) (ast.Value, error) {
	if err := m.Run(head, true); err != nil {
		return nil, err
	}
	return m.popValue(), nil
}

func (m *Machine) run(head ast.Node, global bool) error {
	if m.depth >= m.maxDepth {
		return procalc.Errorf(procalc.StackDepthExceeded, "nesting exceeds depth limit of %d", m.maxDepth)
	}
	m.depth++
	defer func() { m.depth-- }()
	if !global && m.scoping {
		m.scopes.PushNewScope("block")
		defer m.scopes.PopScope()
	}
	for m.current = head; m.current != nil; m.current = m.current.Next() {
		switch n := m.current.(type) {
		case *ast.If:
			cond, err := n.Evaluate(m)
			if err != nil {
				return m.fail(err)
			}
			branch := n.Then()
			if !ast.IsTrue(cond) {
				branch = n.Else()
			}
			if branch != nil {
				if err = m.nested(n, branch); err != nil {
					return err
				}
			}
		case *ast.While:
			for !m.returning {
				cond, err := n.Evaluate(m)
				if err != nil {
					return m.fail(err)
				}
				if !ast.IsTrue(cond) {
					break
				}
				if err = m.nested(n, n.Body()); err != nil {
					return err
				}
			}
		case *ast.FunctionCall:
			v, err := n.Evaluate(m)
			if err != nil {
				return m.fail(err)
			}
			m.value = v
		case *ast.Return:
			v, err := n.Evaluate(m)
			if err != nil {
				return m.fail(err)
			}
			m.value = v
			m.returning = true
		default:
			v, err := n.Evaluate(m)
			if err != nil {
				return m.fail(err)
			}
			if v != nil {
				m.value = v
			}
		}
		tracer().Debugf("%d: [%s] %v", m.current.Line(), m.current.Label(), m.value)
		if m.returning {
			break
		}
	}
	m.values.Push(m.value)
	return nil
}

// nested runs a block on behalf of statement stmt, bracketed by a program
// frame. The block's result becomes the current value.
func (m *Machine) nested(stmt ast.Node, head ast.Node) error {
	m.program.Push(stmt.Label().String(), stmt, m.scopes.Current())
	defer func() {
		m.program.Pop()
		m.current = stmt
	}()
	if err := m.run(head, false); err != nil {
		return m.fail(err)
	}
	m.value = m.popValue()
	return nil
}

// fail attributes an error to the current statement, unless a nested run
// already did so.
func (m *Machine) fail(err error) error {
	e := procalc.Wrap(err, procalc.NoError)
	line, source := 0, ""
	if m.current != nil {
		line, source = m.current.Line(), ast.FirstLine(m.current)
	}
	if e.Locate(line, source, m.program.Trace()) {
		tracer().Errorf("line %d: %s", line, e.Msg)
	}
	return e
}

func (m *Machine) popValue() ast.Value {
	v, ok := m.values.Pop()
	if !ok {
		panic("attempt to pop value from empty value stack")
	}
	if v == nil {
		return nil
	}
	return v.(ast.Value)
}

// --- Calls -----------------------------------------------------------------

// Call calls a function with evaluated arguments. Built-in functions take
// priority; otherwise user-defined functions are searched from the innermost
// scope outwards.
//
// A user function runs in a fresh activation scope, holding its parameter
// bindings. Part of ast.Context.
func (m *Machine) Call(name string, args []ast.Value) (ast.Value, error) {
	if f, ok := m.caps.Function(name); ok {
		tracer().Debugf("call built-in %s with %v", name, args)
		return f(m, args)
	}
	fn, _ := m.scopes.Current().ResolveFunction(name)
	if fn == nil {
		return nil, procalc.Errorf(procalc.UndefinedFunction, "function %s is undefined", name)
	}
	prologue, err := fn.Bind(args)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("call function %s with %v", name, args)
	caller, saved := m.current, m.value
	m.program.Push(name, caller, m.scopes.Current())
	m.scopes.PushNewScope(name)
	defer func() {
		m.scopes.PopScope()
		m.program.Pop()
		m.current, m.value = caller, saved
		m.returning = false
	}()
	m.value = nil
	if err = m.run(prologue, true); err != nil {
		return nil, m.fail(err)
	}
	return m.popValue(), nil
}

// --- Names -----------------------------------------------------------------

// SetVariable assigns a value to a variable. Constants are read-only.
// Unless isArgument is set, the scopes are searched outwards for an existing
// binding, which is overwritten. Otherwise, or if no binding exists, the
// value is bound in the innermost scope. Part of ast.Context.
func (m *Machine) SetVariable(name string, v ast.Value, isArgument bool) error {
	if _, ok := m.caps.Constant(name); ok {
		return procalc.Errorf(procalc.ConstantReassignment, "constant %s is read-only", name)
	}
	if !isArgument {
		if tag, sc := m.scopes.Current().ResolveTag(name); tag != nil {
			tracer().P("scope", sc.Name).Debugf("%s = %v", name, v)
			tag.Value = v
			return nil
		}
	}
	m.scopes.Current().Bind(name, v)
	return nil
}

// GetVariable resolves a name. Constants resolve first, then the scopes are
// searched from the innermost outwards. Part of ast.Context.
func (m *Machine) GetVariable(name string) (ast.Value, error) {
	if c, ok := m.caps.Constant(name); ok {
		return c, nil
	}
	if tag, _ := m.scopes.Current().ResolveTag(name); tag != nil {
		return tag.Value, nil
	}
	return nil, procalc.Errorf(procalc.UndefinedVariable, "variable %s is undefined", name)
}

// RegisterFunction defines a function. If a function of that name exists in
// any live scope, the innermost such definition is replaced. Otherwise the
// function is defined in the innermost scope. Part of ast.Context.
func (m *Machine) RegisterFunction(fn *ast.Function) error {
	if _, sc := m.scopes.Current().ResolveFunction(fn.Name); sc != nil {
		sc.DefineFunction(fn)
		return nil
	}
	m.scopes.Current().DefineFunction(fn)
	return nil
}
