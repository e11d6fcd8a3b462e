/*
Package align recovers the token-to-token correspondence between
interlinear glossing tiers of a Toolbox/SFM record.

Interlinear corpora convey alignment implicitly: parallel annotation
lines (surface text, morpheme breakdown, glosses) are padded with spaces
so that corresponding tokens start in the same character column, e.g.

	\t inu=ga   ippiki           hoeru
	\m inu =ga  ichi -hiki       hoe  -ru
	\g dog =NOM one  -CLF.ANIMAL bark -IPFV

Align makes this correspondence explicit. Each dependent tier is sliced
into the columns spanned by the tokens of its reference tier, and the
dependent tokens falling under each column are grouped with the
reference token. Corpus spacing is frequently imprecise; three recovery
policies govern what happens when a dependent token crosses a column
boundary (see Policy).

All operations are pure functions of their inputs. Diagnostic warnings
are delivered through a handler passed into the call, never through
process-wide state, so concurrent calls need no coordination.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 the xigtools authors

*/
package align

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'toolbox.align'.
func tracer() tracing.Trace {
	return tracing.Select("toolbox.align")
}
