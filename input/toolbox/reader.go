package toolbox

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xigtools/toolbox/core/field"
	"golang.org/x/text/unicode/norm"
)

// Option configures the reader.
type Option func(*config)

type config struct {
	keepWhitespace bool
	nfc            bool
}

// KeepWhitespace preserves trailing whitespace (including trailing blank
// lines) of each field value verbatim. By default trailing whitespace is
// stripped; interior whitespace is always kept.
func KeepWhitespace() Option {
	return func(cfg *config) {
		cfg.keepWhitespace = true
	}
}

// NormalizeNFC wraps the input in an NFC normalization reader before
// scanning. Useful for corpora where combining characters would
// otherwise break marker detection or column counting.
func NormalizeNFC() Option {
	return func(cfg *config) {
		cfg.nfc = true
	}
}

// fieldBuilder accumulates the raw lines of the field currently open.
type fieldBuilder struct {
	marker   field.Marker
	soleLine bool     // marker had no trailing space on its own line
	lines    []string // raw lines, line terminators included
}

func (b *fieldBuilder) build(keepWhitespace bool) field.Field {
	if b.soleLine && len(b.lines) == 0 {
		return field.Field{Marker: b.marker, Value: field.None}
	}
	v := strings.Join(b.lines, "")
	if !keepWhitespace {
		v = strings.TrimRightFunc(v, unicode.IsSpace)
	}
	return field.Field{Marker: b.marker, Value: field.T(v)}
}

// Scan reads SFM data from r and calls fn once per field, in file order.
// A non-nil error from fn stops the scan and is returned. Lines before
// the first marker line are dropped.
func Scan(r io.Reader, fn func(field.Field) error, opts ...Option) error {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.nfc {
		r = norm.NFC.Reader(r)
	}
	rd := bufio.NewReader(r)
	var cur *fieldBuilder
	emit := func() error {
		if cur == nil {
			return nil
		}
		f := cur.build(cfg.keepWhitespace)
		tracer().Debugf("field %s = %q", f.Marker, f.Value)
		cur = nil
		return fn(f)
	}
	for {
		line, err := rd.ReadString('\n')
		if line != "" {
			line = strings.ReplaceAll(line, "\r\n", "\n")
			if mkr, val, hasVal, ok := markerLine(line); ok {
				if e := emit(); e != nil {
					return e
				}
				cur = &fieldBuilder{marker: mkr, soleLine: !hasVal}
				if hasVal {
					cur.lines = []string{val}
				}
			} else if cur != nil {
				cur.lines = append(cur.lines, line)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	return emit()
}

// ReadFields reads all fields of an SFM stream into a slice.
func ReadFields(r io.Reader, opts ...Option) ([]field.Field, error) {
	var fields []field.Field
	err := Scan(r, func(f field.Field) error {
		fields = append(fields, f)
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return fields, nil
}

// markerLine decides whether a raw line (terminator included) opens a
// field. A marker is a backslash followed by at least one non-space
// character. The marker must be followed by a single ASCII space before
// the value, or stand alone on the line (null value). Anything else
// (bare backslash, backslash plus whitespace, a non-ASCII space after
// the marker) is not a marker line.
func markerLine(line string) (mkr field.Marker, val string, hasVal, ok bool) {
	if len(line) < 2 || line[0] != '\\' {
		return "", "", false, false
	}
	j := 1
	for j < len(line) {
		r, w := utf8.DecodeRuneInString(line[j:])
		if unicode.IsSpace(r) {
			break
		}
		j += w
	}
	if j == 1 {
		return "", "", false, false
	}
	rest := line[j:]
	switch {
	case rest == "" || rest == "\n":
		return field.Marker(line[:j]), "", false, true
	case rest[0] == ' ':
		return field.Marker(line[:j]), rest[1:], true, true
	}
	return "", "", false, false
}
