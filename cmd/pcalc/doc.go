/*
Package pcalc/main provides an interactive command line tool for the
programmable calculator. Users enter statements of the calculator
language; complete input (with all braces closed) is run on a single
machine, which keeps variables and functions between inputs.

Lines starting with a colon are meta commands:

    :vars            list global variables
    :funcs           list global functions
    :del NAME        delete a global variable or function
    :set NAME EXPR   assign the value of EXPR to a global variable
    :tree SOURCE     display the parse tree of SOURCE
    :save NAME       save the environment
    :load NAME       load an environment
    :reset           discard all state
    :quit            leave (warns once about unsaved changes)

If standard input is not a terminal, pcalc reads statements from it in
batch mode.

Flags:

    -trace LEVEL     trace level [Debug|Info|Error]
    -init FILE       file to run before accepting input
    -config FILE     YAML configuration file
    -db FILE         save environments to an SQLite database instead of files


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'procalc.repl'
func tracer() tracing.Trace {
	return tracing.Select("procalc.repl")
}
