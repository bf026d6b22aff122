package runtime

import (
	"testing"

	"github.com/npillmayer/procalc/ast"
)

func TestNewSymTab(t *testing.T) {
	symtab := NewSymbolTable()
	if symtab == nil {
		t.Error("no symbol table created")
	}
}

func TestTwoSymbolsDistinctId(t *testing.T) {
	symtab := NewSymbolTable()
	sym1, _ := symtab.DefineTag("new-sym1")
	sym2, _ := symtab.DefineTag("new-sym2")
	if sym1 == sym2 {
		t.Error("2 symbols with equal name")
	}
}

func TestDefineTag(t *testing.T) {
	symtab := NewSymbolTable()
	sym, _ := symtab.DefineTag("new-sym")
	if _, old := symtab.DefineTag("new-sym"); old != sym {
		t.Error("symbol should have been replaced")
	}
	if tag, _ := symtab.DefineTag(""); tag != nil {
		t.Error("tag with empty name should not be defined")
	}
}

func TestUnsetTagInvisible(t *testing.T) {
	scope := NewScope("current", nil)
	scope.Tags().DefineTag("unset")
	if tag, _ := scope.ResolveTag("unset"); tag != nil {
		t.Error("unset tag should be invisible to resolution")
	}
}

func TestScopeUpsearch(t *testing.T) {
	scopep := NewScope("parent", nil)
	scope := NewScope("current", scopep)
	scopep.Bind("new-sym", ast.Number(1))
	if sym, sc := scope.ResolveTag("new-sym"); sym == nil || sc != scopep {
		t.Error("symbol should have been found in parent scope")
	}
	if _, ok := scope.Variable("new-sym"); ok {
		t.Error("symbol should not be bound in current scope")
	}
}

func TestScopeShadowing(t *testing.T) {
	scopep := NewScope("parent", nil)
	scope := NewScope("current", scopep)
	scopep.Bind("x", ast.Number(1))
	scope.Bind("x", ast.Number(2))
	if tag, _ := scope.ResolveTag("x"); tag.Value != ast.Number(2) {
		t.Errorf("expected inner binding to shadow outer one, have %v", tag.Value)
	}
	scope.Unbind("x")
	if tag, _ := scope.ResolveTag("x"); tag.Value != ast.Number(1) {
		t.Errorf("expected outer binding after unbinding inner one, have %v", tag.Value)
	}
}

func TestFunctionUpsearch(t *testing.T) {
	scopep := NewScope("parent", nil)
	scope := NewScope("current", scopep)
	scopep.DefineFunction(ast.NewFunction("f", nil, nil, 1))
	if fn, sc := scope.ResolveFunction("f"); fn == nil || sc != scopep {
		t.Error("function should have been found in parent scope")
	}
	if !scopep.DeleteFunction("f") || scopep.DeleteFunction("f") {
		t.Error("function should be deleted exactly once")
	}
}

func TestScopeStack(t *testing.T) {
	scopes := new(ScopeStack)
	g := scopes.PushNewScope("globals")
	inner := scopes.PushNewScope("inner")
	if scopes.Globals() != g || scopes.Current() != inner || inner.Parent != g {
		t.Error("scope stack not linked correctly")
	}
	if scopes.Size() != 2 {
		t.Errorf("expected 2 scopes, have %d", scopes.Size())
	}
	if scopes.PopScope() != inner || scopes.Current() != g {
		t.Error("pop did not restore global scope")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Error("popping the global scope should panic")
		}
	}()
	scopes.PopScope()
}

func TestFrameStack(t *testing.T) {
	frames := new(FrameStack)
	stmt := ast.Chain(ast.NewAssign(ast.NewVariable("x", 3), ast.NewNumber(1, 3), 3))
	frames.Push("outer", stmt, nil)
	frames.Push("inner", nil, nil)
	trace := frames.Trace()
	if len(trace) != 2 || trace[0] != "line 3: x = 1;" || trace[1] != "<inner>" {
		t.Errorf("unexpected trace %v", trace)
	}
	if fr := frames.Pop(); fr.Name != "inner" || frames.Current().Name != "outer" {
		t.Error("pop did not restore outer frame")
	}
	if !frames.Pop().IsRoot() || frames.Size() != 0 {
		t.Error("expected outer frame to be the root frame")
	}
}
