/*
Package field holds the basic data model for Toolbox/SFM corpus files:
markers, three-valued field content, and (marker, content) fields.

A Standard Format Marker file is a sequence of lines, each either starting
a field with a backslash marker (`\t`, `\m`, `\g`, …) or continuing the
content of the previous field. Content is three-valued: a marker may carry
no content at all (the marker stood alone on its line), empty content
(marker followed by a space and nothing else) or a proper string. The
distinction is observable in downstream alignment behavior, so it is kept
explicit as the Text type and never collapsed to "".

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 the xigtools authors

*/
package field
