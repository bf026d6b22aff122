package ast

import (
	"math"
	"strconv"
)

// Value is a runtime value. It is either a Number or a Bool.
// A nil Value signals "no value", e.g. for no-ops and commands.
type Value interface {
	String() string
	Truthy() bool
}

// Number is a numeric value.
type Number float64

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// Truthy is true for every number other than 0 and NaN.
func (n Number) Truthy() bool {
	return n != 0 && !math.IsNaN(float64(n))
}

// Bool is a truth value, produced by comparisons and boolean relations.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Truthy returns b.
func (b Bool) Truthy() bool {
	return bool(b)
}

// ToNumber converts a value for arithmetic. Bools count as 1 and 0,
// "no value" is NaN.
func ToNumber(v Value) float64 {
	switch x := v.(type) {
	case Number:
		return float64(x)
	case Bool:
		if x {
			return 1
		}
		return 0
	}
	return math.NaN()
}

// IsTrue is the truthiness of v, with "no value" being false.
func IsTrue(v Value) bool {
	if v == nil {
		return false
	}
	return v.Truthy()
}

// StrictEquals compares values of identical kind. Values of different kinds
// are never equal.
func StrictEquals(a, b Value) bool {
	switch x := a.(type) {
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	}
	return a == nil && b == nil
}
