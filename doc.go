/*
Package procalc is a programmable calculator: a small imperative scripting
language with arithmetic, variables, conditionals, loops, user-defined
functions and built-in commands, executed by a tree-walking evaluator.

Package structure is as follows:

■ ast: Package ast defines the node model. Every node knows how to evaluate
itself and how to render itself back to source text.

■ runtime: Package runtime implements the Machine, which walks statement
chains, manages a stack of dynamic scopes and drives function calls.

■ calclang: Package calclang parses source text into node chains, using
package scanner for tokenization.

■ builtins: Package builtins provides the default set of native functions
and constants.

■ envstore: Package envstore saves and restores the global environment.

■ cmd/pcalc: The interactive calculator, a REPL on top of the packages above.

The base package contains data types which are used throughout all the other
packages, most notably the structured runtime error.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package procalc
