package builtins

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/procalc"
	"github.com/npillmayer/procalc/ast"
	"github.com/npillmayer/procalc/calclang"
	"github.com/npillmayer/procalc/runtime"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func evalWith(t *testing.T, m *runtime.Machine, source string) (ast.Value, error) {
	t.Helper()
	head, err := calclang.Parse(source)
	if err != nil {
		t.Fatalf("cannot parse %q: %v", source, err)
	}
	return m.Eval(head)
}

func TestDefaultFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.runtime")
	defer teardown()
	//
	m := runtime.NewMachine(runtime.WithCapabilities(Default()))
	inputs := map[string]float64{
		"abs(-3);":          3,
		"sqrt(16);":         4,
		"floor(2.7);":       2,
		"ceil(2.1);":        3,
		"round(2.5);":       3,
		"min(4, 2, 8);":     2,
		"max(4, 2, 8);":     8,
		"max(1);":           1,
		"exp(0) + log(E);":  2,
		"cos(0) + sin(0);":  1,
		"round(PI * 100);":  314,
		"abs(1 > 2) + 1;":   1,
		"x = 9; sqrt(x)^2;": 9,
	}
	for source, expected := range inputs {
		v, err := evalWith(t, m, source)
		if err != nil {
			t.Errorf("%s: %v", source, err)
			continue
		}
		if math.Abs(ast.ToNumber(v)-expected) > 1e-9 {
			t.Errorf("%s: expected %g, have %v", source, expected, v)
		}
	}
}

func TestDefaultArity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.runtime")
	defer teardown()
	//
	m := runtime.NewMachine(runtime.WithCapabilities(Default()))
	for _, source := range []string{"sqrt();", "sqrt(1, 2);", "max();"} {
		if _, err := evalWith(t, m, source); !errors.Is(err, procalc.ArityMismatch) {
			t.Errorf("%s: expected arity mismatch, have %v", source, err)
		}
		m.Reset()
	}
}

func TestConstantsReadOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.runtime")
	defer teardown()
	//
	m := runtime.NewMachine(runtime.WithCapabilities(Default()))
	if _, err := evalWith(t, m, "E = 2;"); !errors.Is(err, procalc.ConstantReassignment) {
		t.Errorf("expected constant reassignment, have %v", err)
	}
}

func TestMerge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.runtime")
	defer teardown()
	//
	extra := runtime.Capabilities{
		Functions: map[string]runtime.NativeFunc{
			"sqrt": Unary("sqrt", math.Cbrt),
		},
		Constants: map[string]ast.Value{"TAU": ast.Number(2 * math.Pi)},
	}
	caps := Default().Merge(extra)
	m := runtime.NewMachine(runtime.WithCapabilities(caps))
	v, err := evalWith(t, m, "sqrt(27) + TAU / PI;")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(ast.ToNumber(v)-5) > 1e-9 {
		t.Errorf("expected merged set to override sqrt and add TAU, have %v", v)
	}
	if _, ok := Default().Constant("TAU"); ok {
		t.Errorf("merge should not modify the default set")
	}
}
