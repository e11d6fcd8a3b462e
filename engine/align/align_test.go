package align

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"github.com/xigtools/toolbox/core/field"
)

// --- Test Suite Preparation ------------------------------------------------

type AlignTestEnviron struct {
	suite.Suite
	tiers []field.Field // interlinear window with well-formed spacing
	amap  Map
}

// listen for 'go test' command --> run test methods
func TestAlignFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "toolbox.align")
	defer teardown()
	suite.Run(t, new(AlignTestEnviron))
}

func pad(n int) string {
	return strings.Repeat(" ", n)
}

// run once, before test suite methods
func (env *AlignTestEnviron) SetupSuite() {
	// \t inu=ga   ippiki           hoeru        tokens (0,6) (9,15) (25,30)
	// \m inu =ga  ichi -hiki       hoe  -ru
	// \g dog =NOM one  -CLF.ANIMAL bark -IPFV
	env.tiers = []field.Field{
		{Marker: `\t`, Value: field.T("inu=ga" + pad(3) + "ippiki" + pad(10) + "hoeru")},
		{Marker: `\m`, Value: field.T("inu =ga" + pad(2) + "ichi -hiki" + pad(6) + "hoe  -ru")},
		{Marker: `\g`, Value: field.T("dog =NOM" + pad(1) + "one  -CLF.ANIMAL" + pad(1) + "bark -IPFV")},
		{Marker: `\f`, Value: field.T("One dog barks.")},
		{Marker: `\x`, Value: field.None},
	}
	env.amap = Map{`\m`: `\t`, `\g`: `\m`}
}

// --- Tests -----------------------------------------------------------------

func (env *AlignTestEnviron) TestStrictScenario() {
	result, err := Align(env.tiers, env.amap)
	env.Require().NoError(err)
	env.Require().Len(result, 5)
	//
	env.Equal(field.Marker(`\t`), result[0].Marker)
	env.Require().Len(result[0].Pairs, 1)
	env.True(result[0].Pairs[0].Ref.IsNone(), "root tier has no reference token")
	env.Equal([]string{"inu=ga", "ippiki", "hoeru"}, result[0].Pairs[0].Tokens)
	//
	env.Equal(field.Marker(`\m`), result[1].Marker)
	wantRefs := []string{"inu=ga", "ippiki", "hoeru"}
	wantToks := [][]string{{"inu", "=ga"}, {"ichi", "-hiki"}, {"hoe", "-ru"}}
	env.Require().Len(result[1].Pairs, 3)
	for i, p := range result[1].Pairs {
		env.Equal(wantRefs[i], p.Ref.Value())
		env.Equal(wantToks[i], p.Tokens)
	}
	//
	env.Equal(field.Marker(`\g`), result[2].Marker)
	wantRefs = []string{"inu", "=ga", "ichi", "-hiki", "hoe", "-ru"}
	wantToks = [][]string{{"dog"}, {"=NOM"}, {"one"}, {"-CLF.ANIMAL"}, {"bark"}, {"-IPFV"}}
	env.Require().Len(result[2].Pairs, 6)
	for i, p := range result[2].Pairs {
		env.Equal(wantRefs[i], p.Ref.Value())
		env.Equal(wantToks[i], p.Tokens)
	}
	//
	// unaligned tier passes through untokenized
	env.Require().Len(result[3].Pairs, 1)
	env.True(result[3].Pairs[0].Ref.IsNone())
	env.Equal([]string{"One dog barks."}, result[3].Pairs[0].Tokens)
	//
	// null content propagates
	env.Require().Len(result[4].Pairs, 1)
	env.True(result[4].Pairs[0].Ref.IsNone())
	env.True(result[4].Pairs[0].IsNull())
}

// Re-joining each column's aligned tokens reconstructs the column slice
// of the dependent line, modulo whitespace.
func (env *AlignTestEnviron) TestStrictRoundTrip() {
	result, err := Align(env.tiers, env.amap)
	env.Require().NoError(err)
	refLine := env.tiers[0].Value.Value()
	depLine := env.tiers[1].Value.Value()
	refToks := Tokenize(refLine)
	cols := columnsFor(refToks, len(depLine))
	for i, p := range result[1].Pairs {
		lo := min(cols[i].Span.Start, len(depLine))
		hi := min(cols[i].Span.End, len(depLine))
		slice := strings.Join(strings.Fields(depLine[lo:hi]), " ")
		env.Equal(slice, strings.Join(p.Tokens, " "), "column %d does not round-trip", i)
	}
}

// Aligning tiers that already hold one token per column returns each
// token unchanged.
func (env *AlignTestEnviron) TestIdempotence() {
	tiers := []field.Field{
		{Marker: `\t`, Value: field.T("aaa bbb ccc")},
		{Marker: `\m`, Value: field.T("xx  yy  zz")},
	}
	result, err := Align(tiers, Map{`\m`: `\t`})
	env.Require().NoError(err)
	want := []string{"xx", "yy", "zz"}
	env.Require().Len(result[1].Pairs, 3)
	for i, p := range result[1].Pairs {
		env.Equal([]string{want[i]}, p.Tokens)
	}
}

// The assignment step neither creates nor destroys tokens under Strict
// and Ratio.
func (env *AlignTestEnviron) TestTokenConservation() {
	for _, policy := range []Policy{Strict, Ratio} {
		result, err := Align(env.tiers, env.amap, WithPolicy(policy))
		env.Require().NoError(err)
		var assigned []string
		for _, p := range result[1].Pairs {
			assigned = append(assigned, p.Tokens...)
		}
		global := texts(Tokenize(env.tiers[1].Value.Value()))
		sort.Strings(assigned)
		whole := append([]string{}, global...)
		sort.Strings(whole)
		env.Equal(whole, assigned, "policy %s lost or invented tokens", policy)
	}
}

// Null and empty content stay distinct: two empty tiers produce a single
// (None, None) pair each.
func (env *AlignTestEnviron) TestEmptyTiers() {
	tiers := []field.Field{
		{Marker: `\t`, Value: field.T("")},
		{Marker: `\m`, Value: field.T("")},
	}
	result, err := Align(tiers, Map{`\m`: `\t`})
	env.Require().NoError(err)
	env.Require().Len(result, 2)
	for _, ta := range result {
		env.Require().Len(ta.Pairs, 1)
		env.True(ta.Pairs[0].Ref.IsNone())
		env.True(ta.Pairs[0].IsNull())
	}
}

// A dependent tier with null content still gets one entry per reference
// token.
func (env *AlignTestEnviron) TestNullDependent() {
	tiers := []field.Field{
		{Marker: `\t`, Value: field.T("aaa bbb")},
		{Marker: `\m`, Value: field.None},
	}
	result, err := Align(tiers, Map{`\m`: `\t`})
	env.Require().NoError(err)
	env.Require().Len(result[1].Pairs, 2)
	env.Equal("aaa", result[1].Pairs[0].Ref.Value())
	env.True(result[1].Pairs[0].IsNull())
	env.Equal("bbb", result[1].Pairs[1].Ref.Value())
	env.True(result[1].Pairs[1].IsNull())
}

// A dependent line that runs out of text leaves trailing columns empty.
func (env *AlignTestEnviron) TestShortDependent() {
	tiers := []field.Field{
		{Marker: `\t`, Value: field.T("aaa bbb ccc")},
		{Marker: `\m`, Value: field.T("xx")},
	}
	result, err := Align(tiers, Map{`\m`: `\t`})
	env.Require().NoError(err)
	env.Require().Len(result[1].Pairs, 3)
	env.Equal([]string{"xx"}, result[1].Pairs[0].Tokens)
	env.Empty(result[1].Pairs[1].Tokens)
	env.False(result[1].Pairs[1].IsNull(), "empty column is not null")
	env.Empty(result[1].Pairs[2].Tokens)
}

// --- Misalignment ----------------------------------------------------------

// reference spans (0,5) and (6,10), dependent token spanning (4,8)
func misalignedTiers() []field.Field {
	return []field.Field{
		{Marker: `\t`, Value: field.T("abcde fghi")},
		{Marker: `\m`, Value: field.T(pad(4) + "wxyz")},
	}
}

func (env *AlignTestEnviron) TestMisalignmentStrict() {
	_, err := Align(misalignedTiers(), Map{`\m`: `\t`})
	env.Require().Error(err)
	env.True(errors.Is(err, ErrMisaligned), "expected a misalignment error, got %v", err)
}

func (env *AlignTestEnviron) TestMisalignmentRatio() {
	var warnings []Warning
	result, err := Align(misalignedTiers(), Map{`\m`: `\t`},
		WithPolicy(Ratio), WithWarningHandler(CollectWarnings(&warnings)))
	env.Require().NoError(err)
	env.Require().Len(warnings, 1)
	env.Equal("wxyz", warnings[0].Token)
	env.Equal(6, warnings[0].Boundary)
	// overlap tie (2 runes each side) resolves to the leftmost column
	env.Equal([]string{"wxyz"}, result[1].Pairs[0].Tokens)
	env.Empty(result[1].Pairs[1].Tokens)
}

func (env *AlignTestEnviron) TestMisalignmentRatioPrefersLargerOverlap() {
	tiers := []field.Field{
		{Marker: `\t`, Value: field.T("abcde fghi")},
		{Marker: `\m`, Value: field.T(pad(5) + "wxyz")}, // 1 rune left, 3 right
	}
	result, err := Align(tiers, Map{`\m`: `\t`}, WithPolicy(Ratio))
	env.Require().NoError(err)
	env.Empty(result[1].Pairs[0].Tokens)
	env.Equal([]string{"wxyz"}, result[1].Pairs[1].Tokens)
}

func (env *AlignTestEnviron) TestMisalignmentReanalyze() {
	var warnings []Warning
	result, err := Align(misalignedTiers(), Map{`\m`: `\t`},
		WithPolicy(Reanalyze), WithWarningHandler(CollectWarnings(&warnings)))
	env.Require().NoError(err)
	// slicing bisects the token: reanalysis may split tokens relative to
	// the global tokenization
	env.Equal([]string{"wx"}, result[1].Pairs[0].Tokens)
	env.Equal([]string{"yz"}, result[1].Pairs[1].Tokens)
	env.Require().Len(warnings, 1, "bisected token must still be reported")
}

func (env *AlignTestEnviron) TestWarningsAsErrors() {
	_, err := Align(misalignedTiers(), Map{`\m`: `\t`},
		WithPolicy(Ratio), WithWarningHandler(WarningsAsErrors()))
	env.Require().Error(err)
	env.True(errors.Is(err, ErrMisaligned))
}

// --- Reanalyze -------------------------------------------------------------

func (env *AlignTestEnviron) TestReanalyzeDelimiters() {
	tiers := []field.Field{
		{Marker: `\t`, Value: field.T("ippiki")},
		{Marker: `\m`, Value: field.T("ichi-hiki")},
	}
	result, err := Align(tiers, Map{`\m`: `\t`}, WithPolicy(Reanalyze), WithDelimiters('-'))
	env.Require().NoError(err)
	env.Require().Len(result[1].Pairs, 1)
	env.Equal([]string{"ichi", "-hiki"}, result[1].Pairs[0].Tokens)
}

func (env *AlignTestEnviron) TestReanalyzeWellFormed() {
	result, err := Align(env.tiers, env.amap, WithPolicy(Reanalyze))
	env.Require().NoError(err)
	wantToks := [][]string{{"inu", "=ga"}, {"ichi", "-hiki"}, {"hoe", "-ru"}}
	env.Require().Len(result[1].Pairs, 3)
	for i, p := range result[1].Pairs {
		env.Equal(wantToks[i], p.Tokens)
	}
}

// --- Configuration errors --------------------------------------------------

func (env *AlignTestEnviron) TestUnknownReference() {
	tiers := []field.Field{{Marker: `\m`, Value: field.T("inu")}}
	_, err := Align(tiers, Map{`\m`: `\t`})
	env.Require().Error(err)
	env.True(errors.Is(err, ErrConfiguration))
}

func (env *AlignTestEnviron) TestUnknownDependent() {
	tiers := []field.Field{{Marker: `\t`, Value: field.T("inu")}}
	_, err := Align(tiers, Map{`\m`: `\t`})
	env.Require().Error(err)
	env.True(errors.Is(err, ErrConfiguration))
}

func (env *AlignTestEnviron) TestReferenceMustPrecede() {
	tiers := []field.Field{
		{Marker: `\m`, Value: field.T("inu =ga")},
		{Marker: `\t`, Value: field.T("inu=ga")},
	}
	_, err := Align(tiers, Map{`\m`: `\t`})
	env.Require().Error(err)
	env.True(errors.Is(err, ErrConfiguration))
}

func (env *AlignTestEnviron) TestSelfReference() {
	tiers := []field.Field{{Marker: `\t`, Value: field.T("inu")}}
	_, err := Align(tiers, Map{`\t`: `\t`})
	env.Require().Error(err)
	env.True(errors.Is(err, ErrConfiguration))
}

func (env *AlignTestEnviron) TestPolicyParsing() {
	for _, name := range []string{"strict", "ratio", "reanalyze"} {
		p, err := ParsePolicy(name)
		env.NoError(err)
		env.Equal(name, p.String())
	}
	_, err := ParsePolicy("lenient")
	env.Error(err)
}
