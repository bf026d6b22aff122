/*
Package envstore saves and restores the global environment of a machine.

A Snapshot holds the global variables and functions of a machine, rendered
to source text, together with an optional block of program source. Snapshots
are restored by parsing and running their declarations in the global scope
of a machine:

    snap := envstore.Capture(m, source)
    err := store.Save("work", snap)
    …
    snap, err = store.Load("work")
    err = envstore.Restore(m, snap)

Two stores are provided. FileStore writes a plain text format: the program
source, enclosed by the marker lines SourceBlockStart and SourceBlockEnd,
followed by an empty line and the declarations:

    x = 1;

    function f(a) {
        return a * x;
    }

Decode separates the source block from the declarations. A file without
markers is read as declarations only.

SQLStore keeps any number of named environments in an SQLite database.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package envstore

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'procalc.envstore'.
func tracer() tracing.Trace {
	return tracing.Select("procalc.envstore")
}
