/*
Package ast implements the node model of the calculator language.

A program is a chain of statement nodes, linked by their Next pointers.
Nodes form a closed set of tagged variants. Every variant knows how to
evaluate itself against an evaluation Context and how to render itself back
to canonical source text:

    x = 3 * 4;          Assign{ x, Arith(multiply){ 3, 4 } }
    if (x > 10) {       If{ MagnitudeRelation(>){ x, 10 },
        x = 10;             Assign{ x, 10 } }
    }

Rendering a chain head yields the text of the complete remaining program.
Rendered text is accepted by package calclang, which parses it into an
equivalent chain.

Control transfer (branching, looping, early return) is not performed by the
nodes themselves. If and While nodes evaluate only their condition; the
machine in package runtime drives the walk.

Structure of a node is fixed after construction. Function nodes never
rewrite their body for argument binding: Function.Bind returns a fresh
prologue chain for each call.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ast

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'procalc.ast'.
func tracer() tracing.Trace {
	return tracing.Select("procalc.ast")
}
