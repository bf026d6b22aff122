/*
Package calclang parses the calculator language into node chains of
package ast.

Grammar

    program   := { statement }
    statement := 'function' ID '(' [ ID { ',' ID } ] ')' block
               | 'if' '(' expr ')' block [ 'else' ( block | if-statement ) ]
               | 'while' '(' expr ')' block
               | 'return' expr ';'
               | COMMAND [ ';' ]
               | ID '=' expr ';'
               | expr ';'
    block     := '{' { statement } '}'
    expr      := and { '||' and }
    and       := cmp { '&&' cmp }
    cmp       := sum [ relop sum ]
    sum       := term { ( '+' | '-' ) term }
    term      := unary { ( '*' | '/' | '%' ) unary }
    unary     := '-' unary | power
    power     := postfix [ '^' unary ]
    postfix   := primary { '!' }
    primary   := NUM | 'true' | 'false' | ID [ '(' [ expr { ',' expr } ] ')' ]
               | '(' expr ')'

Commands start with '#' and extend to the end of the line or to a
semicolon, e.g. "#disable scope". Comments start with "//".

Parse returns a chain headed by a no-op node. The canonical rendering of
every node (Node.String) is accepted by Parse and yields an equivalent
chain.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package calclang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'procalc.lang'.
func tracer() tracing.Trace {
	return tracing.Select("procalc.lang")
}
