package align

import (
	"errors"
	"fmt"

	"github.com/xigtools/toolbox/core"
	"github.com/xigtools/toolbox/core/field"
)

// ErrMisaligned is wrapped by every misalignment error, so callers can
// test with errors.Is.
var ErrMisaligned = errors.New("token crosses a column boundary")

// ErrConfiguration is wrapped by every alignment-map validation error.
var ErrConfiguration = errors.New("invalid alignment map")

// A Warning reports a dependent token whose span crosses a column
// boundary, usually a sign that the corpus author's intended columns
// and the actual character layout disagree. Warnings are non-fatal under the
// Ratio and Reanalyze policies.
type Warning struct {
	Marker   field.Marker // dependent tier being aligned
	Token    string       // the boundary-crossing token
	Span     Span         // its span in the dependent line
	Boundary int          // rune offset of the crossed column boundary
}

func (w Warning) String() string {
	return fmt.Sprintf("possible misalignment of %q at position %d (tier %s)",
		w.Token, w.Boundary, w.Marker)
}

// A WarningHandler receives each warning as it is detected. Returning a
// non-nil error aborts the alignment with that error. A nil handler
// discards warnings.
type WarningHandler func(Warning) error

// CollectWarnings returns a handler appending every warning to dst.
func CollectWarnings(dst *[]Warning) WarningHandler {
	return func(w Warning) error {
		*dst = append(*dst, w)
		return nil
	}
}

// WarningsAsErrors returns a handler that promotes the first warning to
// a misalignment error, making Ratio and Reanalyze as strict as Strict.
func WarningsAsErrors() WarningHandler {
	return func(w Warning) error {
		return misalignment(w)
	}
}

func misalignment(w Warning) error {
	return core.WrapError(ErrMisaligned, core.EMISALIGNED,
		"possible misalignment of %q at position %d (tier %s)", w.Token, w.Boundary, w.Marker)
}

func configuration(format string, v ...interface{}) error {
	return core.WrapError(ErrConfiguration, core.EINVALID, format, v...)
}
