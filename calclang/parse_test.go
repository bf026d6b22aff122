package calclang

import (
	"errors"
	"testing"

	"github.com/npillmayer/procalc"
	"github.com/npillmayer/procalc/ast"
	"github.com/npillmayer/procalc/runtime"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLexerKeywords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.lang")
	defer teardown()
	//
	lex, err := Lexer()
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := lex.Scanner("while iffy if # disable scope\n x >= 1e3;")
	expected := []int{KEYWORD, ID, KEYWORD, CMD, ID, OP, NUM, int(';')}
	for i, typ := range expected {
		tok := sc.NextToken()
		if int(tok.TokType()) != typ {
			t.Errorf("token #%d %q: expected type %d, have %d", i, tok.Lexeme(), typ, tok.TokType())
		}
	}
}

func TestParseLabels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.lang")
	defer teardown()
	//
	inputs := []struct {
		source string
		labels []ast.Label
	}{
		{"1;", []ast.Label{ast.NumberLabel}},
		{"true; false;", []ast.Label{ast.BooleanLabel, ast.BooleanLabel}},
		{"x = 3; x;", []ast.Label{ast.AssignLabel, ast.VariableLabel}},
		{"1 + 2; 1 - 2; 1 * 2; 1 / 2; 1 % 2; 1 ^ 2;", []ast.Label{
			ast.PlusLabel, ast.MinusLabel, ast.MultiplyLabel, ast.DivLabel, ast.ModLabel, ast.PowerLabel}},
		{"5!;", []ast.Label{ast.FactorialLabel}},
		{"a && b; a || b;", []ast.Label{ast.RelationLabel, ast.RelationLabel}},
		{"a < b; a == b;", []ast.Label{ast.MagnitudeRelationLabel, ast.MagnitudeRelationLabel}},
		{"if (x) { 1; }", []ast.Label{ast.IfLabel}},
		{"while (x) { x = x - 1; }", []ast.Label{ast.WhileLabel}},
		{"function f(a, b) { return a + b; } f(1, 2);", []ast.Label{
			ast.FunctionDeclarationLabel, ast.FunctionCallLabel}},
		{"#disable scope\n#enable scope;", []ast.Label{ast.CommandLabel, ast.CommandLabel}},
		{"// nothing but a comment\n", nil},
	}
	for i, input := range inputs {
		head, err := Parse(input.source)
		if err != nil {
			t.Errorf("#%d: %v", i, err)
			continue
		}
		if head.Label() != ast.NoopLabel {
			t.Errorf("#%d: expected chain to be headed by a no-op, is %s", i, head.Label())
		}
		stmts := ast.Statements(head.Next())
		if len(stmts) != len(input.labels) {
			t.Errorf("#%d: expected %d statements, have %d", i, len(input.labels), len(stmts))
			continue
		}
		for j, stmt := range stmts {
			if stmt.Label() != input.labels[j] {
				t.Errorf("#%d: expected statement %d to be %s, is %s", i, j, input.labels[j], stmt.Label())
			}
		}
	}
}

func TestParsePrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.lang")
	defer teardown()
	//
	inputs := []struct {
		source, rendered string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3));"},
		{"(1 + 2) * 3;", "((1 + 2) * 3);"},
		{"1 - 2 - 3;", "((1 - 2) - 3);"},
		{"2 ^ 3 ^ 2;", "(2 ^ (3 ^ 2));"},
		{"-3 + 1;", "(-3 + 1);"},
		{"-x;", "(0 - x);"},
		{"3! * 2;", "((3!) * 2);"},
		{"a || b && c;", "(a || (b && c));"},
		{"1 + 2 > 2 && x;", "(((1 + 2) > 2) && x);"},
		{"x = 2 * (y + 1);", "x = 2 * (y + 1);"},
		{"f(1 + 2, g(x));", "f(1 + 2, g(x));"},
		{"return 1 + 2;", "return 1 + 2;"},
	}
	for i, input := range inputs {
		head, err := Parse(input.source)
		if err != nil {
			t.Errorf("#%d: %v", i, err)
			continue
		}
		if s := head.String(); s != input.rendered {
			t.Errorf("#%d: expected %q to render as %q, is %q", i, input.source, input.rendered, s)
		}
	}
}

func TestParseLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.lang")
	defer teardown()
	//
	head, err := Parse("x = 1;\n\ny = 2;\nif (x < y) {\n  z = 3;\n}\n")
	if err != nil {
		t.Fatal(err)
	}
	stmts := ast.Statements(head.Next())
	lines := []int{1, 3, 4}
	for i, stmt := range stmts {
		if stmt.Line() != lines[i] {
			t.Errorf("expected statement %d on line %d, is on line %d", i, lines[i], stmt.Line())
		}
	}
	body := stmts[2].(*ast.If).Then()
	if body.Line() != 5 {
		t.Errorf("expected then-branch on line 5, is on line %d", body.Line())
	}
}

func TestParseElseIf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.lang")
	defer teardown()
	//
	head, err := Parse("if (x > 1) { 1; } else if (x > 0) { 2; } else { 3; }")
	if err != nil {
		t.Fatal(err)
	}
	outer := head.Next().(*ast.If)
	inner, ok := outer.Else().(*ast.If)
	if !ok {
		t.Fatalf("expected else-branch to be a conditional, is %s", outer.Else().Label())
	}
	if inner.Else() == nil {
		t.Errorf("expected nested conditional to carry the final else-branch")
	}
}

func TestParseEmptyBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.lang")
	defer teardown()
	//
	head, err := Parse("function f() { }")
	if err != nil {
		t.Fatal(err)
	}
	decl := head.Next().(*ast.FunctionDeclaration)
	if decl.Func.Body().Label() != ast.NoopLabel {
		t.Errorf("expected empty body to be a no-op, is %s", decl.Func.Body().Label())
	}
	if s := decl.String(); s != "function f() {\n}" {
		t.Errorf("unexpected rendering of empty function: %q", s)
	}
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.lang")
	defer teardown()
	//
	programs := []string{
		"x = 3 * 4;\nif (x > 10) { x = 10; } else { x = 0; }\nx;",
		"function fac(n) { if (n <= 1) { return 1; } return n * fac(n - 1); }\nfac(5);",
		"i = 0; s = 0; while (i < 10) { i = i + 1; s = s + i ^ 2; } s;",
		"#disable scope\nwhile (true) { #enable local variable\n y = -2.5e-3; }",
		"if (a == b || c) { } else if (a != b) { 1; }",
		"(-2)^2;",
		"(-3)!;",
		"x = -2 ^ 2 + (-0.5) ^ -1;",
		"function f(a) { return (-2)^a; }",
	}
	for i, prog := range programs {
		head, err := Parse(prog)
		if err != nil {
			t.Errorf("#%d: %v", i, err)
			continue
		}
		first := head.String()
		again, err := Parse(first)
		if err != nil {
			t.Errorf("#%d: rendered program does not parse: %v\n%s", i, err, first)
			continue
		}
		if second := again.String(); second != first {
			t.Errorf("#%d: rendering is not stable:\n%s\n-----\n%s", i, first, second)
		}
	}
}

func TestNegativeLiteralRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.lang")
	defer teardown()
	//
	inputs := []struct {
		source   string
		rendered string
		value    ast.Value
	}{
		{"(-2)^2;", "((-2) ^ 2);", ast.Number(4)},
		{"-2^2;", "(0 - (2 ^ 2));", ast.Number(-4)},
		{"(-3)!;", "((-3)!);", ast.Number(1)},
		{"-3!;", "(0 - (3!));", ast.Number(-6)},
		{"2 ^ -1;", "(2 ^ -1);", ast.Number(0.5)},
		{"function f(a) { return (-2)^a; }\nf(-2);", "", ast.Number(0.25)},
	}
	for _, input := range inputs {
		head, err := Parse(input.source)
		if err != nil {
			t.Errorf("%s: %v", input.source, err)
			continue
		}
		rendered := head.String()
		if input.rendered != "" && rendered != input.rendered {
			t.Errorf("%s: expected rendering %q, have %q", input.source, input.rendered, rendered)
		}
		again, err := Parse(rendered)
		if err != nil {
			t.Errorf("%s: rendering %q does not parse: %v", input.source, rendered, err)
			continue
		}
		for _, prog := range []ast.Node{head, again} {
			v, err := runtime.NewMachine().Eval(prog)
			if err != nil {
				t.Errorf("%s: %v", input.source, err)
			} else if v != input.value {
				t.Errorf("%s: expected %v, have %v (rendered as %q)", input.source, input.value, v, rendered)
			}
		}
	}
}

func TestParseExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.lang")
	defer teardown()
	//
	expr, err := ParseExpression("1 + x")
	if err != nil {
		t.Fatal(err)
	}
	if expr.Label() != ast.PlusLabel {
		t.Errorf("expected a plus expression, have %s", expr.Label())
	}
	if _, err = ParseExpression("x = 1"); err == nil {
		t.Errorf("expected assignment to be rejected as expression")
	}
}

func TestSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.lang")
	defer teardown()
	//
	inputs := []struct {
		source string
		line   int
	}{
		{"1 +;", 1},
		{"x = 1", 1},
		{"\nif x > 1 { }", 2},
		{"function (a) { }", 1},
		{"f(1,;", 1},
		{"x = 1;\n\ny = 2 @ 3;", 3},
		{"while (x) { x = x - 1;", 1},
	}
	for i, input := range inputs {
		_, err := Parse(input.source)
		if err == nil {
			t.Errorf("#%d: expected %q to fail", i, input.source)
			continue
		}
		if !errors.Is(err, procalc.SyntaxError) {
			t.Errorf("#%d: expected a syntax error, have %v", i, err)
		}
		var e *procalc.Error
		if errors.As(err, &e) && e.Line != input.line {
			t.Errorf("#%d: expected error on line %d, have %v", i, input.line, err)
		}
	}
}
