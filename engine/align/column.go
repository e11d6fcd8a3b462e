package align

// A Column is the slice window a reference token projects onto a
// dependent line. Columns partition the line: each column reaches up to
// the start of the next reference token, the first column is clamped to
// offset 0, and the last one extends to the end of the dependent line so
// trailing tokens are not lost.
type Column struct {
	Ref  Token
	Span Span
}

// columnsFor derives the column windows from the reference tier's tokens
// for a dependent line of length lineLen (in runes).
func columnsFor(ref []Token, lineLen int) []Column {
	cols := make([]Column, len(ref))
	for i, t := range ref {
		c := Column{Ref: t, Span: t.Span}
		if i == 0 {
			c.Span.Start = 0
		}
		if i+1 < len(ref) {
			c.Span.End = ref[i+1].Span.Start
		} else if lineLen > c.Span.End {
			c.Span.End = lineLen
		}
		cols[i] = c
	}
	return cols
}

// overlap returns the number of runes two spans share.
func overlap(a, b Span) int {
	lo := max(a.Start, b.Start)
	hi := min(a.End, b.End)
	if hi > lo {
		return hi - lo
	}
	return 0
}

// bestOverlap picks the column sharing the most runes with s, searching
// from column index from. Ties go to the leftmost candidate.
func bestOverlap(s Span, cols []Column, from int) int {
	best, bestLen := from, 0
	for i := from; i < len(cols) && cols[i].Span.Start < s.End; i++ {
		if o := overlap(s, cols[i].Span); o > bestLen {
			best, bestLen = i, o
		}
	}
	return best
}
