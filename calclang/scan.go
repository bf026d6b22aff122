package calclang

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sync"

	"github.com/npillmayer/procalc/scanner"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types of the calculator language.
const (
	ID = iota + 1
	NUM
	CMD
	KEYWORD
	OP
)

// The tokens representing literal lexemes
var literals = []string{"(", ")", "{", "}", ",", ";"}
var ops = []string{"=", "+", "-", "*", "/", "%", "^", "!",
	"&&", "||", ">=", ">", "<=", "<", "==", "!="}

// The keyword tokens
var keywords = []string{"function", "if", "else", "while", "return", "true", "false"}

// tokenIds will be set in initTokens()
var tokenIds map[string]int // A map from the token names to their token types
var isKeyword map[string]bool

var initOnce sync.Once // monitors one-time initialization
func initTokens() {
	initOnce.Do(func() {
		tokenIds = make(map[string]int)
		tokenIds["ID"] = ID
		tokenIds["NUM"] = NUM
		tokenIds["CMD"] = CMD
		for _, lit := range literals {
			tokenIds[lit] = int(lit[0])
		}
		for _, op := range ops {
			tokenIds[op] = OP
		}
		isKeyword = make(map[string]bool)
		for _, kw := range keywords {
			isKeyword[kw] = true
		}
	})
}

var lexer *scanner.LMAdapter
var lexerErr error
var lexerOnce sync.Once

// Lexer returns the lexmachine lexer for the calculator language. The DFA is
// compiled once.
func Lexer() (*scanner.LMAdapter, error) {
	lexerOnce.Do(func() {
		initTokens()
		patterns := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`//[^\n]*\n?`), scanner.Skip) // skip comments
			lexer.Add([]byte(`\#[^\n;]*`), makeToken("CMD"))
			lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), identOrKeyword)
			lexer.Add([]byte(`[0-9]+(\.[0-9]+)?((e|E)(\+|\-)?[0-9]+)?`), makeToken("NUM"))
			lexer.Add([]byte(`( |\t|\n|\r)+`), scanner.Skip)
		}
		lexer, lexerErr = scanner.NewLMAdapter(patterns, append(literals, ops...), tokenIds)
	})
	return lexer, lexerErr
}

func makeToken(s string) lexmachine.Action {
	id, ok := tokenIds[s]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", s))
	}
	return scanner.MakeToken(s, id)
}

// identOrKeyword tells keywords apart from identifiers. Both match the same
// pattern, with keywords being reserved.
func identOrKeyword(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	lexeme := string(m.Bytes)
	if isKeyword[lexeme] {
		return s.Token(KEYWORD, lexeme, m), nil
	}
	return s.Token(ID, lexeme, m), nil
}
