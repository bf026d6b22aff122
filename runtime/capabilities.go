package runtime

import (
	"github.com/npillmayer/procalc/ast"
)

// NativeFunc is a built-in function, invoked with the machine as context and
// the evaluated arguments in order.
type NativeFunc func(m *Machine, args []ast.Value) (ast.Value, error)

// Capabilities is the set of built-in functions and constants a machine is
// equipped with. Built-in functions take priority over user-defined
// functions of the same name. Constants are read-only and resolve before any
// variable.
type Capabilities struct {
	Functions map[string]NativeFunc
	Constants map[string]ast.Value
}

// Function looks up a built-in function.
func (c Capabilities) Function(name string) (NativeFunc, bool) {
	f, ok := c.Functions[name]
	return f, ok && f != nil
}

// Constant looks up a constant.
func (c Capabilities) Constant(name string) (ast.Value, bool) {
	v, ok := c.Constants[name]
	return v, ok && v != nil
}

// Merge returns a capability set containing the entries of c and of other,
// with other taking precedence.
func (c Capabilities) Merge(other Capabilities) Capabilities {
	merged := Capabilities{
		Functions: make(map[string]NativeFunc, len(c.Functions)+len(other.Functions)),
		Constants: make(map[string]ast.Value, len(c.Constants)+len(other.Constants)),
	}
	for k, f := range c.Functions {
		merged.Functions[k] = f
	}
	for k, f := range other.Functions {
		merged.Functions[k] = f
	}
	for k, v := range c.Constants {
		merged.Constants[k] = v
	}
	for k, v := range other.Constants {
		merged.Constants[k] = v
	}
	return merged
}
