package calclang

import (
	"strconv"

	"github.com/npillmayer/procalc"
	"github.com/npillmayer/procalc/ast"
	"github.com/npillmayer/procalc/scanner"
	"github.com/timtadh/lexmachine/machines"
)

// Parse parses source text into a statement chain. The chain is headed by a
// no-op node. Syntax errors are reported as *procalc.Error of kind
// procalc.SyntaxError.
func Parse(source string) (ast.Node, error) {
	lex, err := Lexer()
	if err != nil {
		return nil, err
	}
	scan, err := lex.Scanner(source)
	if err != nil {
		return nil, err
	}
	p := &parser{}
	scan.SetErrorHandler(p.scanError)
	for tok := scan.NextToken(); tok.TokType() != scanner.EOF; tok = scan.NextToken() {
		p.toks = append(p.toks, tok)
	}
	if p.err != nil {
		return nil, p.err
	}
	tracer().Debugf("parsing %d tokens", len(p.toks))
	stmts, err := p.statements(false)
	if err != nil {
		return nil, err
	}
	head := ast.NewNoop(1)
	ast.Chain(append([]ast.Node{head}, stmts...)...)
	return head, nil
}

// ParseExpression parses a single expression, without a terminating
// semicolon.
func ParseExpression(source string) (ast.Node, error) {
	head, err := Parse(source + ";")
	if err != nil {
		return nil, err
	}
	stmts := ast.Statements(head.Next())
	if len(stmts) != 1 {
		return nil, procalc.Errorf(procalc.SyntaxError, "not a single expression: %q", source)
	}
	switch stmts[0].(type) {
	case *ast.Assign, *ast.Return, *ast.If, *ast.While, *ast.FunctionDeclaration, *ast.Command:
		return nil, procalc.Errorf(procalc.SyntaxError, "not an expression: %q", source)
	}
	return stmts[0], nil
}

type parser struct {
	toks []procalc.Token
	pos  int
	err  error
}

func (p *parser) scanError(e error) {
	if p.err != nil {
		return
	}
	line := 0
	if ui, ok := e.(*machines.UnconsumedInput); ok {
		line = ui.StartLine
	}
	err := procalc.Errorf(procalc.SyntaxError, "illegal input: %s", e.Error())
	err.Line = line
	p.err = err
}

// --- Token handling --------------------------------------------------------

func (p *parser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) peek() procalc.Token {
	return p.peekAt(0)
}

func (p *parser) peekAt(n int) procalc.Token {
	if p.pos+n >= len(p.toks) {
		line := 0
		if len(p.toks) > 0 {
			line = p.toks[len(p.toks)-1].Line()
		}
		return scanner.MakeDefaultToken(scanner.EOF, "", procalc.Span{}, line)
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() procalc.Token {
	tok := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

// is checks if the next token is the literal, operator or keyword lexeme s.
func (p *parser) is(s string) bool {
	return isSymbol(p.peek(), s)
}

func isSymbol(tok procalc.Token, s string) bool {
	switch tok.TokType() {
	case ID, NUM, CMD, scanner.EOF:
		return false
	}
	return tok.Lexeme() == s
}

func (p *parser) accept(s string) bool {
	if p.is(s) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(s string) (procalc.Token, error) {
	if !p.is(s) {
		return nil, p.unexpected(strconv.Quote(s))
	}
	return p.next(), nil
}

func (p *parser) unexpected(what string) error {
	tok := p.peek()
	found := strconv.Quote(tok.Lexeme())
	if tok.TokType() == scanner.EOF {
		found = "end of input"
	}
	err := procalc.Errorf(procalc.SyntaxError, "unexpected %s, expected %s", found, what)
	err.Line = tok.Line()
	return err
}

// --- Statements ------------------------------------------------------------

func (p *parser) statements(inBlock bool) ([]ast.Node, error) {
	var stmts []ast.Node
	for !p.atEnd() {
		if inBlock && p.is("}") {
			break
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *parser) statement() (ast.Node, error) {
	tok := p.peek()
	line := tok.Line()
	switch {
	case isSymbol(tok, "function"):
		return p.function()
	case isSymbol(tok, "if"):
		return p.ifStatement()
	case isSymbol(tok, "while"):
		p.next()
		cond, err := p.condition()
		if err != nil {
			return nil, err
		}
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.NewWhile(cond, body, line), nil
	case isSymbol(tok, "return"):
		p.next()
		expr, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err = p.expect(";"); err != nil {
			return nil, err
		}
		return ast.NewReturn(expr, line), nil
	case tok.TokType() == CMD:
		p.next()
		p.accept(";")
		return ast.NewCommand(tok.Lexeme(), line), nil
	case tok.TokType() == ID && isSymbol(p.peekAt(1), "="):
		p.next()
		p.next()
		expr, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err = p.expect(";"); err != nil {
			return nil, err
		}
		return ast.NewAssign(ast.NewVariable(tok.Lexeme(), line), expr, line), nil
	}
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(";"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *parser) function() (ast.Node, error) {
	line := p.next().Line()
	name := p.peek()
	if name.TokType() != ID {
		return nil, p.unexpected("function name")
	}
	p.next()
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	var params []*ast.Variable
	for !p.is(")") {
		if len(params) > 0 {
			if _, err := p.expect(","); err != nil {
				return nil, err
			}
		}
		param := p.peek()
		if param.TokType() != ID {
			return nil, p.unexpected("parameter name")
		}
		p.next()
		params = append(params, ast.NewVariable(param.Lexeme(), param.Line()))
	}
	p.next()
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	fn := ast.NewFunction(name.Lexeme(), params, body, line)
	return ast.NewFunctionDeclaration(fn), nil
}

func (p *parser) ifStatement() (ast.Node, error) {
	line := p.next().Line()
	cond, err := p.condition()
	if err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Node
	if p.accept("else") {
		if p.is("if") {
			elif, err := p.ifStatement()
			if err != nil {
				return nil, err
			}
			elseBranch = ast.Chain(elif)
		} else if elseBranch, err = p.block(); err != nil {
			return nil, err
		}
	}
	return ast.NewIf(cond, then, elseBranch, line), nil
}

func (p *parser) condition() (ast.Node, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(")"); err != nil {
		return nil, err
	}
	return cond, nil
}

// block parses a braced statement list. An empty block yields a no-op.
func (p *parser) block() (ast.Node, error) {
	open, err := p.expect("{")
	if err != nil {
		return nil, err
	}
	stmts, err := p.statements(true)
	if err != nil {
		return nil, err
	}
	if _, err = p.expect("}"); err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return ast.NewNoop(open.Line()), nil
	}
	return ast.Chain(stmts...), nil
}

// --- Expressions -----------------------------------------------------------

func (p *parser) expr() (ast.Node, error) {
	left, err := p.and()
	for err == nil && p.is("||") {
		line := p.next().Line()
		var right ast.Node
		if right, err = p.and(); err == nil {
			left = ast.NewRelation("||", left, right, line)
		}
	}
	return left, err
}

func (p *parser) and() (ast.Node, error) {
	left, err := p.cmp()
	for err == nil && p.is("&&") {
		line := p.next().Line()
		var right ast.Node
		if right, err = p.cmp(); err == nil {
			left = ast.NewRelation("&&", left, right, line)
		}
	}
	return left, err
}

var relops = []string{">=", ">", "<=", "<", "==", "!="}

func (p *parser) cmp() (ast.Node, error) {
	left, err := p.sum()
	if err != nil {
		return nil, err
	}
	for _, op := range relops {
		if p.is(op) {
			line := p.next().Line()
			right, err := p.sum()
			if err != nil {
				return nil, err
			}
			return ast.NewMagnitudeRelation(op, left, right, line), nil
		}
	}
	return left, nil
}

func (p *parser) sum() (ast.Node, error) {
	left, err := p.term()
	for err == nil && (p.is("+") || p.is("-")) {
		tok := p.next()
		var right ast.Node
		if right, err = p.term(); err == nil {
			if tok.Lexeme() == "+" {
				left = ast.NewPlus(left, right, tok.Line())
			} else {
				left = ast.NewMinus(left, right, tok.Line())
			}
		}
	}
	return left, err
}

func (p *parser) term() (ast.Node, error) {
	left, err := p.unary()
	for err == nil && (p.is("*") || p.is("/") || p.is("%")) {
		tok := p.next()
		var right ast.Node
		if right, err = p.unary(); err == nil {
			switch tok.Lexeme() {
			case "*":
				left = ast.NewMultiply(left, right, tok.Line())
			case "/":
				left = ast.NewDiv(left, right, tok.Line())
			default:
				left = ast.NewMod(left, right, tok.Line())
			}
		}
	}
	return left, err
}

// unary folds a negated number literal into a negative literal, and
// rewrites other negations as 0 - x.
func (p *parser) unary() (ast.Node, error) {
	if !p.is("-") {
		return p.power()
	}
	line := p.next().Line()
	if p.peek().TokType() == NUM && !isSymbol(p.peekAt(1), "^") && !isSymbol(p.peekAt(1), "!") {
		lit, err := p.number()
		if err != nil {
			return nil, err
		}
		return ast.NewNumber(-float64(lit.Value), line), nil
	}
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return ast.NewMinus(ast.NewNumber(0, line), operand, line), nil
}

func (p *parser) power() (ast.Node, error) {
	base, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if p.is("^") {
		line := p.next().Line()
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewPower(base, exp, line), nil
	}
	return base, nil
}

func (p *parser) postfix() (ast.Node, error) {
	operand, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.is("!") {
		line := p.next().Line()
		operand = ast.NewFactorial(operand, line)
	}
	return operand, nil
}

func (p *parser) primary() (ast.Node, error) {
	tok := p.peek()
	switch {
	case tok.TokType() == NUM:
		return p.number()
	case isSymbol(tok, "true"), isSymbol(tok, "false"):
		p.next()
		return ast.NewBool(tok.Lexeme() == "true", tok.Line()), nil
	case tok.TokType() == ID:
		p.next()
		if !p.accept("(") {
			return ast.NewVariable(tok.Lexeme(), tok.Line()), nil
		}
		var args []ast.Node
		for !p.is(")") {
			if len(args) > 0 {
				if _, err := p.expect(","); err != nil {
					return nil, err
				}
			}
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		p.next()
		return ast.NewFunctionCall(tok.Lexeme(), args, tok.Line()), nil
	case isSymbol(tok, "("):
		p.next()
		expr, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err = p.expect(")"); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.unexpected("expression")
}

func (p *parser) number() (*ast.NumberLit, error) {
	tok := p.next()
	f, err := strconv.ParseFloat(tok.Lexeme(), 64)
	if err != nil {
		e := procalc.Errorf(procalc.SyntaxError, "malformed number %q", tok.Lexeme())
		e.Line = tok.Line()
		return nil, e
	}
	return ast.NewNumber(f, tok.Line()), nil
}
