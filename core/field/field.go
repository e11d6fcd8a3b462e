package field

import (
	"strings"
	"unicode"
)

// Marker is a backslash-prefixed field identifier, e.g. `\t` or `\ref`.
// The backslash is part of the marker.
type Marker string

func (m Marker) String() string {
	return string(m)
}

// IsValid checks that m starts with a backslash followed by at least one
// non-whitespace character.
func (m Marker) IsValid() bool {
	if len(m) < 2 || m[0] != '\\' {
		return false
	}
	return strings.IndexFunc(string(m[1:]), unicode.IsSpace) < 0
}

// Text is the three-valued content of a field: none (the marker stood
// alone on its line), empty, or a proper string. None and "" behave
// differently during alignment, therefore Text is a tagged option type
// rather than a plain string.
type Text struct {
	val  string
	some bool
}

// None is the unset text value.
var None = Text{}

// T wraps a string as set text. T("") is empty but set, which is distinct
// from None.
func T(s string) Text {
	return Text{val: s, some: true}
}

// IsNone is true for text that was never set.
func (t Text) IsNone() bool {
	return !t.some
}

// Value returns the text content, or "" for None.
func (t Text) Value() string {
	return t.val
}

// Get returns the content together with an ok flag, in the manner of a
// map lookup.
func (t Text) Get() (string, bool) {
	return t.val, t.some
}

func (t Text) String() string {
	if !t.some {
		return "<none>"
	}
	return t.val
}

// A Field is one (marker, content) pair of an SFM file, with line
// unwrapping already applied by the reader: Value may contain embedded
// newlines.
type Field struct {
	Marker Marker
	Value  Text
}

// A Tier is the ordered sequence of fields sharing one marker within the
// window being aligned; one row of an interlinear display.
type Tier []Field

// MarkerSet is a set of markers.
type MarkerSet map[Marker]struct{}

// Set collects markers into a MarkerSet.
func Set(markers ...Marker) MarkerSet {
	s := make(MarkerSet, len(markers))
	for _, m := range markers {
		s[m] = struct{}{}
	}
	return s
}

// Contains checks set membership.
func (s MarkerSet) Contains(m Marker) bool {
	_, ok := s[m]
	return ok
}

// Add puts a marker into the set.
func (s MarkerSet) Add(m Marker) {
	s[m] = struct{}{}
}
