package align

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/uax/segment"
)

// DefaultDelimiters are the morpheme-boundary characters the extended
// tokenizer recognizes in addition to whitespace: clitic and affix
// separators, and the dot used inside glosses.
var DefaultDelimiters = []rune{'-', '=', '~', '.'}

// Span is a half-open interval of rune offsets within one line.
type Span struct {
	Start, End int
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// A Token is a maximal delimiter-bounded substring of a tier line,
// together with its rune-offset span in that line.
type Token struct {
	Text string
	Span Span
}

func (t Token) String() string {
	return fmt.Sprintf("%q%v", t.Text, t.Span)
}

// Tokenize splits a line into runs of non-whitespace. Spans are rune
// offsets into line; whitespace runs are not tokens. An empty line
// yields no tokens.
//
// Segmentation is done with a uax simple word breaker, which emits the
// line as a contiguous sequence of whitespace and non-whitespace spans,
// so offsets can be accumulated across segments.
func Tokenize(line string) []Token {
	if line == "" {
		return nil
	}
	seg := segment.NewSegmenter(segment.NewSimpleWordBreaker())
	seg.Init(strings.NewReader(line))
	var toks []Token
	pos := 0
	for seg.Next() {
		text := seg.Text()
		n := utf8.RuneCountInString(text)
		if !segmentIsSpace(text) {
			toks = append(toks, Token{Text: text, Span: Span{pos, pos + n}})
		}
		pos += n
	}
	return toks
}

func segmentIsSpace(s string) bool {
	if len(s) == 0 {
		return true
	}
	r, width := utf8.DecodeRuneInString(s)
	if width == 0 || r == utf8.RuneError {
		return false
	}
	return unicode.IsSpace(r)
}

// TokenizeExtended splits a line at whitespace and additionally at the
// given delimiter runes. A delimiter glued to content on its right side
// starts the following token (`ichi-hiki` → `ichi`, `-hiki`); glued on
// its left side only, it closes the preceding token (`hoe- ru` → `hoe-`,
// `ru`). A delimiter with whitespace, line edges or other delimiters on
// both sides has no token to attach to and becomes a standalone
// single-rune token (`hoe - ru` → `hoe`, `-`, `ru`).
func TokenizeExtended(line string, delimiters []rune) []Token {
	if len(delimiters) == 0 {
		return Tokenize(line)
	}
	delim := make(map[rune]bool, len(delimiters))
	for _, d := range delimiters {
		delim[d] = true
	}
	runes := []rune(line)
	n := len(runes)
	var toks []Token
	emit := func(start, end int) {
		if end > start {
			toks = append(toks, Token{Text: string(runes[start:end]), Span: Span{start, end}})
		}
	}
	content := func(i int) bool {
		return i >= 0 && i < n && !unicode.IsSpace(runes[i]) && !delim[runes[i]]
	}
	start := -1 // offset of the open token, or -1
	for i := 0; i < n; i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			if start >= 0 {
				emit(start, i)
				start = -1
			}
		case delim[r]:
			switch {
			case content(i + 1):
				// attach to the following token
				if start >= 0 {
					emit(start, i)
				}
				start = i
			case content(i - 1):
				// attach to the preceding token and close it
				emit(start, i+1)
				start = -1
			default:
				// unattachable: standalone delimiter token
				if start >= 0 {
					emit(start, i)
					start = -1
				}
				emit(i, i+1)
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		emit(start, n)
	}
	return toks
}
