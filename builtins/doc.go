/*
Package builtins provides the default capability set of the calculator:
mathematical constants and native functions.

A machine is equipped with the default set like this:

    m := runtime.NewMachine(runtime.WithCapabilities(builtins.Default()))

Hosts may extend or override the default set with Capabilities.Merge.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package builtins
