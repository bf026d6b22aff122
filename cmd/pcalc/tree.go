package main

import (
	"strings"

	"github.com/npillmayer/procalc/ast"
	"github.com/pterm/pterm"
)

// printTree displays the parse tree of a chain on the terminal.
func printTree(head ast.Node) {
	ll := leveledChain(head, pterm.LeveledList{}, 0)
	tracer().Debugf("|ll| = %d", len(ll))
	if len(ll) == 0 {
		pterm.Println("(empty program)")
		return
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledChain(head ast.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	for n := head; n != nil; n = n.Next() {
		if n.Label() == ast.NoopLabel {
			continue
		}
		ll = leveledNode(n, ll, level)
	}
	return ll
}

func leveledNode(n ast.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	if n == nil {
		return ll
	}
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: nodeText(n)})
	switch x := n.(type) {
	case *ast.Assign:
		ll = leveledNode(x.Right(), ll, level+1)
	case *ast.Arith, *ast.Relation, *ast.MagnitudeRelation, *ast.FunctionCall:
		for _, ch := range n.Children() {
			ll = leveledNode(ch, ll, level+1)
		}
	case *ast.Factorial:
		ll = leveledNode(x.Operand, ll, level+1)
	case *ast.Return:
		ll = leveledNode(x.Expr, ll, level+1)
	case *ast.If:
		ll = leveledNode(x.Cond, ll, level+1)
		ll = append(ll, pterm.LeveledListItem{Level: level + 1, Text: "then"})
		ll = leveledChain(x.Then(), ll, level+2)
		if x.Else() != nil {
			ll = append(ll, pterm.LeveledListItem{Level: level + 1, Text: "else"})
			ll = leveledChain(x.Else(), ll, level+2)
		}
	case *ast.While:
		ll = leveledNode(x.Cond, ll, level+1)
		ll = append(ll, pterm.LeveledListItem{Level: level + 1, Text: "do"})
		ll = leveledChain(x.Body(), ll, level+2)
	case *ast.FunctionDeclaration:
		ll = leveledChain(x.Func.Body(), ll, level+1)
	}
	return ll
}

// nodeText is the label of a node in a tree display.
func nodeText(n ast.Node) string {
	switch x := n.(type) {
	case *ast.NumberLit:
		return x.Value.String()
	case *ast.BoolLit:
		return x.Value.String()
	case *ast.Variable:
		return x.Name
	case *ast.Assign:
		return "assign " + x.Name()
	case *ast.Arith:
		return x.Symbol()
	case *ast.Relation:
		return x.Op
	case *ast.MagnitudeRelation:
		return x.Op
	case *ast.Factorial:
		return "!"
	case *ast.FunctionCall:
		return "call " + x.Name
	case *ast.FunctionDeclaration:
		return "function " + x.Func.Name + "(" + strings.Join(x.Func.ParameterNames(), ", ") + ")"
	case *ast.Command:
		return x.Text
	}
	return n.Label().String()
}
