package scanner

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"x = 3; // commented",
	"a && b || c",
	"1\n22\n333",
}

var tokenCounts = []int{1, 3, 4, 5, 3}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.scanner")
	defer teardown()
	//
	initTokens()
	LM, err := NewLMAdapter(testLexer, literals, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		sc.SetErrorHandler(func(e error) {
			t.Error(e)
		})
		token := sc.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLMLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.scanner")
	defer teardown()
	//
	initTokens()
	LM, err := NewLMAdapter(testLexer, literals, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner("1\n22\n333")
	for line := 1; line <= 3; line++ {
		token := sc.NextToken()
		if token.Line() != line {
			t.Errorf("expected token %q on line %d, is on line %d", token.Lexeme(), line, token.Line())
		}
	}
}

func TestLMUnconsumedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "procalc.scanner")
	defer teardown()
	//
	initTokens()
	LM, err := NewLMAdapter(testLexer, literals, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner("1 @ 2")
	errcnt := 0
	sc.SetErrorHandler(func(e error) {
		errcnt++
	})
	count := 0
	for token := sc.NextToken(); token.TokType() != EOF; token = sc.NextToken() {
		count++
	}
	if errcnt == 0 {
		t.Errorf("expected scanner to report unconsumed input")
	}
	if count != 2 {
		t.Errorf("expected 2 tokens around the illegal character, have %d", count)
	}
}

func testLexer(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(`//[^\n]*\n?`), Skip)
	lexer.Add([]byte(`([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_)*`), MakeToken("ID", tokenIds["ID"]))
	lexer.Add([]byte(`[0-9]+(\.[0-9]+)?`), MakeToken("NUM", tokenIds["NUM"]))
	lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
}

var literals []string       // The tokens representing literal strings
var tokenIds map[string]int // A map from the token names to their int ids

func initTokens() {
	literals = []string{
		"(",
		")",
		"=",
		";",
		"+",
		"&&",
		"||",
	}
	tokenIds = make(map[string]int)
	tokenIds["ID"] = 1
	tokenIds["NUM"] = 2
	for i, tok := range literals {
		tokenIds[tok] = i + 10
	}
}
