package records

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/xigtools/toolbox/core/field"
)

// NormalizeRecord recombines fields sharing a marker (unwrapping lines
// the corpus tool broke at some page width) into a single field per
// marker, preserving first-seen marker order. For aligned markers the
// pieces are re-padded before joining: each position is widened to the
// longest value any aligned marker has there, so the tokens still line
// up visually in columns:
//
//	\t inu=ga   ippiki     ┐         ┌ \t inu=ga   ippiki           hoeru
//	\m inu =ga  ichi -hiki │         │ \m inu =ga  ichi -hiki       hoe  -ru
//	\g dog =NOM one  -CLF.ANIMAL ├ → ┤ \g dog =NOM one  -CLF.ANIMAL bark -IPFV
//	\t hoeru                     │   └ \f One dog barks.
//	\m hoe  -ru                  │
//	\g bark -IPFV                │
//	\f One dog barks.            ┘
//
// Markers that only ever carried null content stay None. With strip,
// trailing whitespace of each joined value is removed.
//
// Value lengths are counted in runes; combining characters still count,
// so columns may appear off for text that relies on them.
func NormalizeRecord(fields []field.Field, aligned field.MarkerSet, strip bool) []field.Field {
	values := linkedhashmap.New() // field.Marker -> []string
	maxlens := make(map[int]int)
	for _, f := range fields {
		var vals []string
		if v, ok := values.Get(f.Marker); ok {
			vals = v.([]string)
		}
		val, set := f.Value.Get()
		if !set {
			if _, ok := values.Get(f.Marker); !ok {
				values.Put(f.Marker, []string(nil))
			}
			continue
		}
		vals = append(vals, val)
		values.Put(f.Marker, vals)
		if aligned.Contains(f.Marker) {
			i := len(vals) - 1
			if n := utf8.RuneCountInString(val); n > maxlens[i] {
				maxlens[i] = n
			}
		}
	}
	result := make([]field.Field, 0, values.Size())
	it := values.Iterator()
	for it.Next() {
		mkr := it.Key().(field.Marker)
		vals := it.Value().([]string)
		if len(vals) == 0 {
			result = append(result, field.Field{Marker: mkr, Value: field.None})
			continue
		}
		var joined string
		if aligned.Contains(mkr) {
			padded := make([]string, len(vals))
			for i, v := range vals {
				padded[i] = ljust(v, maxlens[i])
			}
			joined = strings.Join(padded, " ")
		} else {
			joined = strings.Join(vals, " ")
		}
		if strip {
			joined = strings.TrimRightFunc(joined, unicode.IsSpace)
		}
		tracer().Debugf("normalized %s = %q", mkr, joined)
		result = append(result, field.Field{Marker: mkr, Value: field.T(joined)})
	}
	return result
}

// ljust pads s with spaces to a width of n runes.
func ljust(s string, n int) string {
	if delta := n - utf8.RuneCountInString(s); delta > 0 {
		return s + strings.Repeat(" ", delta)
	}
	return s
}
