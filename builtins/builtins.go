package builtins

import (
	"math"

	"github.com/npillmayer/procalc"
	"github.com/npillmayer/procalc/ast"
	"github.com/npillmayer/procalc/runtime"
)

// Default returns a fresh capability set with the constants PI and E and
// the functions abs, sqrt, sin, cos, tan, log, exp, floor, ceil, round,
// min and max.
func Default() runtime.Capabilities {
	caps := runtime.Capabilities{
		Functions: make(map[string]runtime.NativeFunc),
		Constants: map[string]ast.Value{
			"PI": ast.Number(math.Pi),
			"E":  ast.Number(math.E),
		},
	}
	unary := map[string]func(float64) float64{
		"abs":   math.Abs,
		"sqrt":  math.Sqrt,
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"log":   math.Log,
		"exp":   math.Exp,
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"round": math.Round,
	}
	for name, f := range unary {
		caps.Functions[name] = Unary(name, f)
	}
	caps.Functions["min"] = Fold("min", math.Min)
	caps.Functions["max"] = Fold("max", math.Max)
	return caps
}

// Unary wraps a numeric function of one argument into a native function.
func Unary(name string, f func(float64) float64) runtime.NativeFunc {
	return func(m *runtime.Machine, args []ast.Value) (ast.Value, error) {
		if err := checkArity(name, args, 1, 1); err != nil {
			return nil, err
		}
		return ast.Number(f(ast.ToNumber(args[0]))), nil
	}
}

// Fold wraps a numeric function of two arguments into a native function,
// which folds it over one or more arguments from left to right.
func Fold(name string, f func(float64, float64) float64) runtime.NativeFunc {
	return func(m *runtime.Machine, args []ast.Value) (ast.Value, error) {
		if err := checkArity(name, args, 1, -1); err != nil {
			return nil, err
		}
		r := ast.ToNumber(args[0])
		for _, a := range args[1:] {
			r = f(r, ast.ToNumber(a))
		}
		return ast.Number(r), nil
	}
}

// checkArity checks the number of arguments against a range. hi < 0 means
// no upper limit.
func checkArity(name string, args []ast.Value, lo, hi int) error {
	if len(args) < lo {
		return procalc.Errorf(procalc.ArityMismatch, "not enough arguments to %s: want %d, have %d",
			name, lo, len(args))
	}
	if hi >= 0 && len(args) > hi {
		return procalc.Errorf(procalc.ArityMismatch, "too many arguments to %s: want %d, have %d",
			name, hi, len(args))
	}
	return nil
}
