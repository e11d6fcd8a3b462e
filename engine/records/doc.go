/*
Package records groups the flat (marker, value) stream of an SFM file
into higher-level units: key events, records delimited by a record-marker
hierarchy, and runs of mutually aligned fields. It also unwraps records
whose aligned lines were broken across several fields, re-padding the
columns so the visual alignment survives the join.

The package knows nothing about alignment recovery itself; it prepares
the tier windows that engine/align consumes.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 the xigtools authors

*/
package records

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'toolbox.records'.
func tracer() tracing.Trace {
	return tracing.Select("toolbox.records")
}
