package ast

// If is a conditional statement. Left is the chain taken when the condition
// holds, right is the optional else-chain.
//
// Evaluate yields the condition value only. Branching is driven by the
// machine.
type If struct {
	base
	Cond Node
}

// NewIf creates a conditional statement. elseBranch may be nil.
func NewIf(cond, then, elseBranch Node, line int) *If {
	return &If{base: base{label: IfLabel, line: line, children: []Node{then, elseBranch}}, Cond: cond}
}

// Then returns the chain taken when the condition holds.
func (i *If) Then() Node {
	return i.Left()
}

// Else returns the else-chain or nil.
func (i *If) Else() Node {
	return i.Right()
}

// Evaluate evaluates the condition.
func (i *If) Evaluate(ctx Context) (Value, error) {
	return i.Cond.Evaluate(ctx)
}

func (i *If) String() string {
	s := "if (" + bare(i.Cond) + ") " + block(i.Then())
	if i.Else() != nil {
		s += " else " + block(i.Else())
	}
	return i.continued(s, false)
}

// While is a loop statement. Evaluate yields the loop condition only;
// iteration is driven by the machine.
type While struct {
	base
	Cond Node
	body Node
}

// NewWhile creates a loop statement.
func NewWhile(cond, body Node, line int) *While {
	return &While{base: base{label: WhileLabel, line: line}, Cond: cond, body: body}
}

// Body returns the loop body chain.
func (w *While) Body() Node {
	return w.body
}

// Evaluate evaluates the loop condition.
func (w *While) Evaluate(ctx Context) (Value, error) {
	return w.Cond.Evaluate(ctx)
}

func (w *While) String() string {
	return w.continued("while ("+bare(w.Cond)+") "+block(w.body), false)
}
