package ast

import (
	"github.com/npillmayer/procalc"
)

// Relation is a boolean combination of two operands, "&&" or "||".
// Both operands are always evaluated; there is no short-circuiting.
type Relation struct {
	base
	Op string
}

// NewRelation creates left op right.
func NewRelation(op string, left, right Node, line int) *Relation {
	return &Relation{base: base{label: RelationLabel, line: line, children: []Node{left, right}}, Op: op}
}

// Evaluate evaluates both sides and combines their truth values.
func (r *Relation) Evaluate(ctx Context) (Value, error) {
	lv, err := r.Left().Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	rv, err := r.Right().Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	switch r.Op {
	case "&&":
		return Bool(IsTrue(lv) && IsTrue(rv)), nil
	case "||":
		return Bool(IsTrue(lv) || IsTrue(rv)), nil
	}
	return nil, procalc.Errorf(procalc.InvalidOperator, "invalid relational operator %q", r.Op)
}

func (r *Relation) String() string {
	s := "(" + r.Left().String() + " " + r.Op + " " + r.Right().String() + ")"
	return r.continued(s, true)
}

// MagnitudeRelation compares two operands: >=, >, <=, <, == or !=.
// Equality is strict: values of different kinds are never equal.
type MagnitudeRelation struct {
	base
	Op string
}

// NewMagnitudeRelation creates left op right.
func NewMagnitudeRelation(op string, left, right Node, line int) *MagnitudeRelation {
	return &MagnitudeRelation{
		base: base{label: MagnitudeRelationLabel, line: line, children: []Node{left, right}},
		Op:   op,
	}
}

// Evaluate evaluates both sides and compares them.
func (m *MagnitudeRelation) Evaluate(ctx Context) (Value, error) {
	lv, err := m.Left().Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	rv, err := m.Right().Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	l, r := ToNumber(lv), ToNumber(rv)
	switch m.Op {
	case ">=":
		return Bool(l >= r), nil
	case ">":
		return Bool(l > r), nil
	case "<=":
		return Bool(l <= r), nil
	case "<":
		return Bool(l < r), nil
	case "==":
		return Bool(StrictEquals(lv, rv)), nil
	case "!=":
		return Bool(!StrictEquals(lv, rv)), nil
	}
	return nil, procalc.Errorf(procalc.InvalidOperator, "invalid magnitude operator %q", m.Op)
}

func (m *MagnitudeRelation) String() string {
	s := "(" + m.Left().String() + " " + m.Op + " " + m.Right().String() + ")"
	return m.continued(s, true)
}
