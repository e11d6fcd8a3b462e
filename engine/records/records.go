package records

import (
	"errors"

	"github.com/xigtools/toolbox/core"
	"github.com/xigtools/toolbox/core/field"
)

// ErrBlockInRecord is wrapped by errors reported for block markers
// (`\+key` / `\-key`) encountered inside records.
var ErrBlockInRecord = errors.New("block marker inside record")

// EventKind classifies the events produced by Iterparse.
type EventKind int

const (
	// KeyEvent: a delimiting key marker was seen.
	KeyEvent EventKind = iota
	// StartEvent: a block-start marker `\+key` was seen.
	StartEvent
	// EndEvent: a block-end marker `\-key` was seen.
	EndEvent
	// DataEvent: the fields accumulated between delimiters.
	DataEvent
)

func (k EventKind) String() string {
	switch k {
	case KeyEvent:
		return "key"
	case StartEvent:
		return "start"
	case EndEvent:
		return "end"
	case DataEvent:
		return "data"
	}
	return "unknown"
}

// An Event is one unit of the Iterparse stream: a delimiting field
// (KeyEvent/StartEvent/EndEvent, with block markers normalized back to
// their plain key) or a run of data fields between delimiters.
type Event struct {
	Kind  EventKind
	Field field.Field   // delimiting field; zero for DataEvent
	Data  []field.Field // accumulated fields; nil except for DataEvent
}

// blockStart turns `\key` into `\+key`, blockEnd into `\-key`.
func blockStart(m field.Marker) field.Marker {
	return field.Marker(`\+` + string(m[1:]))
}

func blockEnd(m field.Marker) field.Marker {
	return field.Marker(`\-` + string(m[1:]))
}

// Iterparse segments a field stream at the given key markers. Every key
// (and its `\+key` / `\-key` block forms) produces its own event; all
// fields in between are bundled into DataEvents.
func Iterparse(fields []field.Field, keys []field.Marker) []Event {
	keySet := field.Set(keys...)
	starts := make(map[field.Marker]field.Marker, len(keys))
	ends := make(map[field.Marker]field.Marker, len(keys))
	for _, k := range keys {
		starts[blockStart(k)] = k
		ends[blockEnd(k)] = k
	}
	var events []Event
	var data []field.Field
	flush := func() {
		if len(data) > 0 {
			events = append(events, Event{Kind: DataEvent, Data: data})
			data = nil
		}
	}
	for _, f := range fields {
		switch {
		case keySet.Contains(f.Marker):
			flush()
			events = append(events, Event{Kind: KeyEvent, Field: f})
		case starts[f.Marker] != "":
			flush()
			events = append(events, Event{Kind: StartEvent,
				Field: field.Field{Marker: starts[f.Marker], Value: f.Value}})
		case ends[f.Marker] != "":
			flush()
			events = append(events, Event{Kind: EndEvent,
				Field: field.Field{Marker: ends[f.Marker], Value: f.Value}})
		default:
			data = append(data, f)
		}
	}
	flush()
	return events
}

// A Record is a run of data fields together with the most recently seen
// value of every record and context marker.
type Record struct {
	Context map[field.Marker]field.Text
	Fields  []field.Field
}

// Records splits a field stream into records delimited by recordMarkers.
// The markers form an ordered hierarchy: seeing a higher-level marker
// resets all lower-level ones to None (e.g. with `\id`, `\ref` a new
// `\id` clears the current `\ref`). contextKeys also delimit records and
// contribute to the context, but never reset other markers. Block
// markers are invalid inside records.
func Records(fields []field.Field, recordMarkers []field.Marker,
	contextKeys []field.Marker) ([]Record, error) {
	//
	if len(recordMarkers) == 0 {
		return nil, core.Error(core.EINVALID, "at least one record marker is required")
	}
	keys := make([]field.Marker, 0, len(recordMarkers)+len(contextKeys))
	keys = append(keys, recordMarkers...)
	keys = append(keys, contextKeys...)
	context := make(map[field.Marker]field.Text, len(keys))
	for _, k := range keys {
		context[k] = field.None
	}
	var recs []Record
	for _, ev := range Iterparse(fields, keys) {
		switch ev.Kind {
		case KeyEvent:
			for i, m := range recordMarkers {
				if m == ev.Field.Marker {
					// reset this and all lower-level markers
					for _, lower := range recordMarkers[i:] {
						context[lower] = field.None
					}
					break
				}
			}
			context[ev.Field.Marker] = ev.Field.Value
		case DataEvent:
			recs = append(recs, Record{Context: snapshot(context), Fields: ev.Data})
		default:
			return nil, core.WrapError(ErrBlockInRecord, core.EINVALID,
				"illegal %s event for %s inside record", ev.Kind, ev.Field.Marker)
		}
	}
	return recs, nil
}

func snapshot(context map[field.Marker]field.Text) map[field.Marker]field.Text {
	c := make(map[field.Marker]field.Text, len(context))
	for k, v := range context {
		c[k] = v
	}
	return c
}

// FieldGroups splits a field stream into groups of fields that are
// aligned with each other. Unaligned fields are yielded as singleton
// groups, and a repeated marker (wrapped lines) starts a new group.
func FieldGroups(fields []field.Field, aligned field.MarkerSet) [][]field.Field {
	var groups [][]field.Field
	var group []field.Field
	seen := field.MarkerSet{}
	for _, f := range fields {
		if !aligned.Contains(f.Marker) || seen.Contains(f.Marker) {
			if len(group) > 0 {
				groups = append(groups, group)
			}
			group = nil
			seen = field.MarkerSet{}
			if !aligned.Contains(f.Marker) {
				groups = append(groups, []field.Field{f})
				continue
			}
		}
		group = append(group, f)
		seen.Add(f.Marker)
	}
	if len(group) > 0 {
		groups = append(groups, group)
	}
	return groups
}
