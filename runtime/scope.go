package runtime

import (
	"fmt"

	"github.com/npillmayer/procalc/ast"
)

// Symbol table for variables. Symbol tables are attached to scopes.
// Scopes are organized in a stack, with each scope linking back to the
// scope below it.
//

// --- Tags -------------------------------------------------------

// Tag is the binding of a variable name to a value, stored in symbol tables.
// A tag with a nil value is an unset binding and is invisible to name
// resolution.
type Tag struct {
	name  string
	Value ast.Value
}

// NewTag creates a new, unset tag.
func NewTag(nm string) *Tag {
	return &Tag{name: nm}
}

// String is a debug Stringer for tags.
func (t *Tag) String() string {
	return fmt.Sprintf("<tag '%s'=%v>", t.name, t.Value)
}

// Name gets the tag's name.
func (t *Tag) Name() string {
	return t.name
}

// IsSet is a predicate: does the tag hold a value?
func (t *Tag) IsSet() bool {
	return t != nil && t.Value != nil
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store tags (map-like semantics).
type SymbolTable struct {
	Table map[string]*Tag
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Table: make(map[string]*Tag),
	}
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
func (t *SymbolTable) ResolveTag(tagname string) *Tag {
	return t.Table[tagname]
}

// DefineTag creates a new tag to store into the symbol table.
// The tag's name may not be empty.
// Overwrites existing tag with this name, if any.
// Returns the new tag and the previously stored tag (or nil).
func (t *SymbolTable) DefineTag(tagname string) (*Tag, *Tag) {
	if len(tagname) == 0 {
		return nil, nil
	}
	tag := NewTag(tagname)
	old := t.InsertTag(tag)
	return tag, old
}

// InsertTag inserts a pre-created tag.
func (t *SymbolTable) InsertTag(tag *Tag) *Tag {
	old := t.ResolveTag(tag.name)
	t.Table[tag.name] = tag
	return old
}

// DeleteTag removes a tag from the table. Returns the removed tag or nil.
func (t *SymbolTable) DeleteTag(tagname string) *Tag {
	old := t.ResolveTag(tagname)
	delete(t.Table, tagname)
	return old
}

// Size counts the tags in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.Table)
}

// Each iterates over each tag in the table, executing a mapper function.
func (t *SymbolTable) Each(mapper func(string, *Tag)) {
	for k, v := range t.Table {
		mapper(k, v)
	}
}

// === Scopes ================================================================

// Scope is a named scope, which holds variable bindings and function
// definitions. Scopes link back to the scope below them on the scope stack.
type Scope struct {
	Name      string
	Parent    *Scope
	symtab    *SymbolTable
	functions map[string]*ast.Function
}

// NewScope creates a new scope.
func NewScope(nm string, parent *Scope) *Scope {
	sc := &Scope{
		Name:      nm,
		Parent:    parent,
		symtab:    NewSymbolTable(),
		functions: make(map[string]*ast.Function),
	}
	return sc
}

// Prettyfied Stringer.
func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Tags returns the variable symbol table of a scope.
func (s *Scope) Tags() *SymbolTable {
	return s.symtab
}

// Variable returns the value bound to a variable name in this scope, without
// searching enclosing scopes.
func (s *Scope) Variable(name string) (ast.Value, bool) {
	if tag := s.symtab.ResolveTag(name); tag.IsSet() {
		return tag.Value, true
	}
	return nil, false
}

// Bind binds a value to a variable name in this scope.
func (s *Scope) Bind(name string, v ast.Value) {
	tag := s.symtab.ResolveTag(name)
	if tag == nil {
		tag, _ = s.symtab.DefineTag(name)
	}
	tag.Value = v
}

// Unbind removes a variable from this scope. Returns false if it was not bound.
func (s *Scope) Unbind(name string) bool {
	return s.symtab.DeleteTag(name) != nil
}

// ResolveTag finds a set variable binding. Returns the tag (or nil) and the
// scope the tag was found in. The search proceeds from s outwards.
func (s *Scope) ResolveTag(tagname string) (*Tag, *Scope) {
	for sc := s; sc != nil; sc = sc.Parent {
		if tag := sc.symtab.ResolveTag(tagname); tag.IsSet() {
			return tag, sc
		}
	}
	return nil, nil
}

// Function returns the function defined under name in this scope, without
// searching enclosing scopes.
func (s *Scope) Function(name string) *ast.Function {
	return s.functions[name]
}

// DefineFunction defines fn in this scope, replacing a previous definition.
func (s *Scope) DefineFunction(fn *ast.Function) {
	s.functions[fn.Name] = fn
}

// DeleteFunction removes a function from this scope. Returns false if it was
// not defined.
func (s *Scope) DeleteFunction(name string) bool {
	_, ok := s.functions[name]
	delete(s.functions, name)
	return ok
}

// EachFunction iterates over the functions defined in this scope.
func (s *Scope) EachFunction(mapper func(string, *ast.Function)) {
	for k, fn := range s.functions {
		mapper(k, fn)
	}
}

// ResolveFunction finds a function. Returns the function (or nil) and the
// scope it was found in. The search proceeds from s outwards.
func (s *Scope) ResolveFunction(name string) (*ast.Function, *Scope) {
	for sc := s; sc != nil; sc = sc.Parent {
		if fn := sc.functions[name]; fn != nil {
			return fn, sc
		}
	}
	return nil, nil
}

// ---------------------------------------------------------------------------

// ScopeStack is the stack of live scopes. The bottommost scope is the global
// scope, which is never popped.
type ScopeStack struct {
	ScopeBase *Scope
	ScopeTOS  *Scope
	size      int
}

// Current gets the current scope of a stack (TOS).
func (scst *ScopeStack) Current() *Scope {
	if scst.ScopeTOS == nil {
		panic("attempt to access scope from empty stack")
	}
	return scst.ScopeTOS
}

// Globals gets the outermost scope, containing global symbols.
func (scst *ScopeStack) Globals() *Scope {
	if scst.ScopeBase == nil {
		panic("attempt to access global scope from empty stack")
	}
	return scst.ScopeBase
}

// Size returns the number of live scopes, including the global scope.
func (scst *ScopeStack) Size() int {
	return scst.size
}

// PushNewScope pushes a new, empty scope onto the stack of scopes.
func (scst *ScopeStack) PushNewScope(nm string) *Scope {
	scp := scst.ScopeTOS
	newsc := NewScope(nm, scp)
	if scp == nil { // the new scope is the global scope
		scst.ScopeBase = newsc // make new scope anchor
	}
	scst.ScopeTOS = newsc // new scope now TOS
	scst.size++
	tracer().P("scope", newsc.Name).Debugf("pushing new scope")
	return newsc
}

// PopScope pops the top-most (recent) scope. The global scope cannot be popped.
func (scst *ScopeStack) PopScope() *Scope {
	if scst.ScopeTOS == nil || scst.ScopeTOS == scst.ScopeBase {
		panic("attempt to pop scope from empty stack")
	}
	sc := scst.ScopeTOS
	tracer().Debugf("popping scope [%s]", sc.Name)
	scst.ScopeTOS = scst.ScopeTOS.Parent
	scst.size--
	return sc
}
