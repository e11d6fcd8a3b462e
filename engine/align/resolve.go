package align

import (
	"strings"

	"github.com/xigtools/toolbox/core/field"
)

// resolveFlat assigns the tokens of one global tokenization of the
// dependent line to the reference columns. A token belongs to the column
// its span starts in; a token reaching across the next column's start
// violates column exclusivity. Under Strict that aborts the tier pair,
// under Ratio the token goes to the column with the larger rune overlap
// (ties leftmost) and the crossing is reported as a warning.
func resolveFlat(marker field.Marker, depToks []Token, cols []Column,
	policy Policy, warn WarningHandler) ([][]string, error) {
	//
	groups := make([][]string, len(cols))
	for i := range groups {
		groups[i] = []string{}
	}
	ci := 0
	for _, t := range depToks {
		for ci+1 < len(cols) && t.Span.Start >= cols[ci+1].Span.Start {
			ci++
		}
		target := ci
		if ci+1 < len(cols) && t.Span.End > cols[ci+1].Span.Start {
			w := Warning{Marker: marker, Token: t.Text, Span: t.Span, Boundary: cols[ci+1].Span.Start}
			if policy == Strict {
				return nil, misalignment(w)
			}
			tracer().Infof("%s", w)
			if warn != nil {
				if err := warn(w); err != nil {
					return nil, err
				}
			}
			target = bestOverlap(t.Span, cols, ci)
		}
		groups[target] = append(groups[target], t.Text)
	}
	return groups, nil
}

// resolveColumns re-tokenizes the dependent line per column with the
// extended delimiter-aware tokenizer (the Reanalyze policy). Boundary
// violations cannot occur since tokenization happens inside already
// sliced text, but a retroactive pass over the global tokenization still
// reports column boundaries that bisect what whitespace tokenization
// would consider a single token.
func resolveColumns(marker field.Marker, dep string, cols []Column,
	delimiters []rune, warn WarningHandler) ([][]string, error) {
	//
	runes := []rune(dep)
	groups := make([][]string, len(cols))
	for i, c := range cols {
		lo := min(c.Span.Start, len(runes))
		hi := min(c.Span.End, len(runes))
		slice := strings.TrimSpace(string(runes[lo:hi]))
		toks := TokenizeExtended(slice, delimiters)
		texts := make([]string, len(toks))
		for k, t := range toks {
			texts[k] = t.Text
		}
		groups[i] = texts
	}
	if warn != nil {
		ci := 0
		for _, t := range Tokenize(dep) {
			for ci+1 < len(cols) && t.Span.Start >= cols[ci+1].Span.Start {
				ci++
			}
			if ci+1 < len(cols) && t.Span.End > cols[ci+1].Span.Start {
				w := Warning{Marker: marker, Token: t.Text, Span: t.Span, Boundary: cols[ci+1].Span.Start}
				tracer().Infof("%s", w)
				if err := warn(w); err != nil {
					return nil, err
				}
			}
		}
	}
	return groups, nil
}
