/*
Package toolbox reads SIL Toolbox Standard Format Marker (SFM) files
into field streams.

An SFM file is line-oriented: a line starting with a backslash marker
(`\ref xyz 12`) opens a field, every following line up to the next
marker line continues the field's value. A marker with no trailing
space carries null content, a marker followed by a space and nothing
else carries empty content; downstream alignment treats the two
differently, so the reader keeps them apart (see core/field.Text).

The package also locates Toolbox project files (.prj), which are
themselves SFM data.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 the xigtools authors

*/
package toolbox

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'toolbox.input'.
func tracer() tracing.Trace {
	return tracing.Select("toolbox.input")
}
