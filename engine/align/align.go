package align

import (
	"fmt"
	"unicode/utf8"

	"github.com/xigtools/toolbox/core/field"
)

// Policy selects the recovery strategy for imprecise column spacing.
type Policy int

const (
	// Strict treats any boundary-crossing token as an unrecoverable
	// inconsistency and aborts the tier pair with a misalignment error.
	Strict Policy = iota
	// Ratio assigns a boundary-crossing token to the column it overlaps
	// most (ties leftmost) and reports the crossing as a warning.
	Ratio
	// Reanalyze ignores the global tokenization and re-tokenizes each
	// column slice with the delimiter-aware tokenizer; crossings are
	// impossible by construction, but bisected tokens are still
	// reported as warnings.
	Reanalyze
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Ratio:
		return "ratio"
	case Reanalyze:
		return "reanalyze"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy converts a policy name to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "strict":
		return Strict, nil
	case "ratio":
		return Ratio, nil
	case "reanalyze":
		return Reanalyze, nil
	}
	return Strict, configuration("unknown alignment policy %q", s)
}

// Map assigns each dependent tier marker the marker of its reference
// tier. The mapping must form a forest: every tier has at most one
// reference, and a reference tier must precede its dependents in the
// tier list handed to Align.
type Map map[field.Marker]field.Marker

// A Pair groups the dependent tokens aligned under one reference token.
// Ref is field.None for tiers that have no reference (roots and
// pass-through tiers). Tokens is nil (distinct from empty) when no
// token material exists at all, i.e. the tier or its reference carries
// null content.
type Pair struct {
	Ref    field.Text
	Tokens []string
}

// IsNull reports whether the pair carries no token material (null
// content propagation).
func (p Pair) IsNull() bool {
	return p.Tokens == nil
}

// TierAlignment is the alignment outcome for one tier, in tier order.
type TierAlignment struct {
	Marker field.Marker
	Pairs  []Pair
}

// Result lists one TierAlignment per input tier, in input order.
type Result []TierAlignment

// Option configures a call to Align.
type Option func(*config)

type config struct {
	policy     Policy
	delimiters []rune
	warn       WarningHandler
}

// WithPolicy selects the error-recovery policy (default Strict).
func WithPolicy(p Policy) Option {
	return func(cfg *config) {
		cfg.policy = p
	}
}

// WithDelimiters overrides the morpheme-boundary delimiters used by the
// Reanalyze policy (default DefaultDelimiters).
func WithDelimiters(delimiters ...rune) Option {
	return func(cfg *config) {
		cfg.delimiters = delimiters
	}
}

// WithWarningHandler installs a per-call sink for misalignment warnings.
// Without a handler, warnings are discarded.
func WithWarningHandler(h WarningHandler) Option {
	return func(cfg *config) {
		cfg.warn = h
	}
}

// Align reconstructs the explicit token correspondence for an ordered
// window of tiers. alignments maps dependent markers to reference
// markers and is validated up front: unknown markers, references that do
// not precede their dependents, and cycles all yield a configuration
// error.
//
// Each input tier produces one TierAlignment. Root and pass-through
// tiers yield a single pair with a None reference; tiers with null
// content, or whose reference has null content, propagate null pairs.
// Under Strict, a boundary-crossing token aborts with a misalignment
// error and no partial result is returned.
func Align(tiers []field.Field, alignments Map, opts ...Option) (Result, error) {
	cfg := config{policy: Strict, delimiters: DefaultDelimiters}
	for _, o := range opts {
		o(&cfg)
	}
	if err := validate(tiers, alignments); err != nil {
		return nil, err
	}
	aligned := field.MarkerSet{}
	for dep, ref := range alignments {
		aligned.Add(dep)
		aligned.Add(ref)
	}
	// reference tokens by marker; absent for null-content tiers
	refToks := make(map[field.Marker][]Token)
	result := make(Result, 0, len(tiers))
	for _, f := range tiers {
		tracer().Debugf("aligning tier %s = %s", f.Marker, f.Value)
		val, set := f.Value.Get()
		if set && aligned.Contains(f.Marker) {
			refToks[f.Marker] = Tokenize(val)
		}
		pairs, err := alignTier(f, alignments, aligned, refToks, cfg)
		if err != nil {
			return nil, err
		}
		result = append(result, TierAlignment{Marker: f.Marker, Pairs: pairs})
	}
	return result, nil
}

func alignTier(f field.Field, alignments Map, aligned field.MarkerSet,
	refToks map[field.Marker][]Token, cfg config) ([]Pair, error) {
	//
	val, set := f.Value.Get()
	ref, isDependent := alignments[f.Marker]
	switch {
	case !set:
		// null content: null propagates, but a dependent of a tokenized
		// reference still gets one entry per reference token
		if isDependent {
			if rt, ok := refToks[ref]; ok && len(rt) > 0 {
				pairs := make([]Pair, len(rt))
				for i, t := range rt {
					pairs[i] = Pair{Ref: field.T(t.Text)}
				}
				return pairs, nil
			}
		}
		return []Pair{{Ref: field.None}}, nil
	case !aligned.Contains(f.Marker):
		// pass-through tier: the whole line as the only aligned item
		return []Pair{{Ref: field.None, Tokens: []string{val}}}, nil
	case !isDependent:
		// root tier: reference of others, but itself unaligned
		toks := refToks[f.Marker]
		if len(toks) == 0 {
			return []Pair{{Ref: field.None}}, nil
		}
		texts := make([]string, len(toks))
		for i, t := range toks {
			texts[i] = t.Text
		}
		return []Pair{{Ref: field.None, Tokens: texts}}, nil
	}
	// dependent tier with content
	rt, ok := refToks[ref]
	if !ok {
		// reference carries null content; nothing to align under
		return []Pair{{Ref: field.None}}, nil
	}
	if len(rt) == 0 {
		if len(Tokenize(val)) == 0 {
			return []Pair{{Ref: field.None}}, nil
		}
		return []Pair{}, nil
	}
	cols := columnsFor(rt, utf8.RuneCountInString(val))
	var groups [][]string
	var err error
	if cfg.policy == Reanalyze {
		groups, err = resolveColumns(f.Marker, val, cols, cfg.delimiters, cfg.warn)
	} else {
		groups, err = resolveFlat(f.Marker, Tokenize(val), cols, cfg.policy, cfg.warn)
	}
	if err != nil {
		return nil, err
	}
	pairs := make([]Pair, len(cols))
	for i, c := range cols {
		pairs[i] = Pair{Ref: field.T(c.Ref.Text), Tokens: groups[i]}
	}
	return pairs, nil
}

// validate checks the alignment map against the tier window. Since every
// reference must strictly precede its dependents, a successful check is
// also a topological witness that the map is acyclic.
func validate(tiers []field.Field, alignments Map) error {
	pos := make(map[field.Marker]int, len(tiers))
	for i, f := range tiers {
		if _, seen := pos[f.Marker]; !seen {
			pos[f.Marker] = i
		}
	}
	for dep, ref := range alignments {
		dp, ok := pos[dep]
		if !ok {
			return configuration("alignment source %s is not among the tiers", dep)
		}
		rp, ok := pos[ref]
		if !ok {
			return configuration("alignment target %s for %s is not among the tiers", ref, dep)
		}
		if rp >= dp {
			return configuration("alignment target %s must precede %s", ref, dep)
		}
	}
	return nil
}
