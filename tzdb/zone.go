// Package tzdb builds a queryable time-zone transition store out of a
// decoded tzif.Data plus an optional posix.Rule tail, and implements
// the four core time-zone engine operations : OffsetFor,
// CandidatesFor, Disambiguate, NextTransition.
package tzdb

import (
	"sort"

	"github.com/chronozone/tcore"
	"github.com/chronozone/tcore/posix"
	"github.com/chronozone/tcore/tzif"
)

// LocalTimeType is one row of a TZif local time type record, resolved
// to an offset, DST flag, and designation string.
type LocalTimeType struct {
	OffsetSeconds int
	IsDst         bool
	Designation   string
}

// Transition pairs a recorded transition instant (unix seconds) with
// the index of the local time type that takes effect at (and after)
// it.
type Transition struct {
	At        int64 // unix seconds
	TypeIndex int
}

// Zone is a single time zone's complete transition history: the
// recorded TZif transitions (sorted ascending, go-tz's tzir.go
// convention) plus the local time type table, plus an optional POSIX
// tail rule governing instants after the last recorded transition.
type Zone struct {
	Identifier  string
	types       []LocalTimeType
	transitions []Transition
	tail        *posix.Rule
}

// NewZone builds a Zone directly from a pre-processed in-memory
// representation (spec.md §4.1: "we specify only the pre-processed
// in-memory representation consumed by the engine"), for embedders or
// tests that already have decoded transition data rather than raw TZif
// bytes. transitions need not be pre-sorted; NewZone sorts a copy.
func NewZone(identifier string, types []LocalTimeType, transitions []Transition, tail *posix.Rule) (*Zone, error) {
	if len(types) == 0 {
		return nil, tcore.RangeErrorf("zone %q has no local time type records", identifier)
	}
	sorted := append([]Transition(nil), transitions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	for i, t := range sorted {
		if t.TypeIndex < 0 || t.TypeIndex >= len(types) {
			return nil, tcore.RangeErrorf("zone %q: transition %d type index %d out of range", identifier, i, t.TypeIndex)
		}
		if i > 0 && sorted[i-1].At == t.At {
			return nil, tcore.RangeErrorf("zone %q: duplicate transition at %d", identifier, t.At)
		}
	}
	return &Zone{Identifier: identifier, types: types, transitions: sorted, tail: tail}, nil
}

// FromTZif builds a Zone from tzif.Decode's flattened output (already
// widened to 64-bit transition times and resolved designation
// strings regardless of source version) and an identifier, grounded
// on go-tz's tzir.go sorted-transitions shape, generalized here into
// a binary-searchable array.
func FromTZif(identifier string, data tzif.Data) (*Zone, error) {
	if err := tzif.Validate(data); err != nil {
		return nil, tcore.RangeErrorf("invalid TZif data for %q: %v", identifier, err)
	}

	types := make([]LocalTimeType, len(data.Records))
	for i, r := range data.Records {
		types[i] = LocalTimeType{OffsetSeconds: r.OffsetSeconds, IsDst: r.IsDst, Designation: r.Designation}
	}

	entries := make([]Transition, len(data.Transitions))
	for i := range data.Transitions {
		entries[i] = Transition{At: data.Transitions[i], TypeIndex: int(data.TransitionTypes[i])}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].At < entries[j].At })

	z := &Zone{Identifier: identifier, types: types, transitions: entries}
	if data.TZString != "" {
		rule, err := posix.Parse(data.TZString)
		if err != nil {
			return nil, tcore.SyntaxErrorf("invalid POSIX tail rule for %q: %v", identifier, err)
		}
		z.tail = &rule
	}
	return z, nil
}

// lastRecordedTypeBefore returns the index into z.types effective at or
// before unix second sec, via binary search over the sorted transition
// table, and whether any recorded transition applies at all.
func (z *Zone) lastRecordedTypeBefore(sec int64) (typeIdx int, ok bool) {
	n := len(z.transitions)
	i := sort.Search(n, func(i int) bool { return z.transitions[i].At > sec })
	if i == 0 {
		return 0, false
	}
	return z.transitions[i-1].TypeIndex, true
}
