package tzdb

import (
	"sort"

	"github.com/chronozone/tcore"
	"github.com/chronozone/tcore/posix"
)

// OffsetFor reports the offset and DST/designation metadata in effect
// at a single UTC instant, plus the epoch at which that offset segment
// began (spec.md §4.4.1: "returns both the offset and the epoch at
// which the current offset segment began"). The second return is the
// zero value with hasTransition=false when instant falls before every
// recorded transition. Instants after the last recorded transition
// fall through to the POSIX tail rule, if any; with no tail rule the
// last recorded local time type holds forever (mirroring a Zone with
// only a fixed-offset tail, e.g. "Etc/UTC").
func (z *Zone) OffsetFor(instant tcore.EpochNanoseconds) (lt LocalTimeType, transitionEpoch tcore.EpochNanoseconds, hasTransition bool) {
	sec, _ := instant.Seconds()
	n := len(z.transitions)

	if n == 0 {
		if z.tail != nil {
			offset, isDst, name := z.tail.OffsetAt(instant)
			return LocalTimeType{OffsetSeconds: offset, IsDst: isDst, Designation: name}, tcore.EpochNanoseconds{}, false
		}
		if len(z.types) > 0 {
			return z.types[0], tcore.EpochNanoseconds{}, false
		}
		return LocalTimeType{}, tcore.EpochNanoseconds{}, false
	}

	idx := sort.Search(n, func(i int) bool { return z.transitions[i].At > sec })

	switch {
	case idx == 0:
		// Before the first recorded transition: no transition epoch.
		// RFC 8536 reserves local time type 0 for instants that precede
		// every recorded transition, independent of which type the
		// first transition itself switches to.
		return z.types[0], tcore.EpochNanoseconds{}, false
	case idx == n:
		last := z.transitions[n-1]
		if z.tail != nil {
			offset, isDst, name := z.tail.OffsetAt(instant)
			return LocalTimeType{OffsetSeconds: offset, IsDst: isDst, Designation: name}, tcore.EpochNanosecondsFromSeconds(last.At), true
		}
		return z.types[last.TypeIndex], tcore.EpochNanosecondsFromSeconds(last.At), true
	default:
		t := z.transitions[idx-1]
		return z.types[t.TypeIndex], tcore.EpochNanosecondsFromSeconds(t.At), true
	}
}

// CandidatesFor computes the set of (offset, isDst,
// designation) pairs a local (zone-naive) date-time could resolve to --
// zero in a gap, one unambiguous, two in an overlap. Recorded
// transitions near `local`'s epoch neighborhood are checked first; if
// local falls after the last recorded transition, resolution falls
// through entirely to the POSIX tail rule.
func (z *Zone) CandidatesFor(local tcore.IsoDateTime) []LocalTimeType {
	if len(z.transitions) == 0 {
		if z.tail != nil {
			return tailCandidates(z.tail, local)
		}
		if len(z.types) > 0 {
			return []LocalTimeType{z.types[0]}
		}
		return nil
	}

	lastAt := z.transitions[len(z.transitions)-1].At
	approxLocalSec := local.Date.JDN()*86400 + int64(local.Time.Hour)*3600 + int64(local.Time.Minute)*60 + int64(local.Time.Second)
	if approxLocalSec > lastAt+2*86400 && z.tail != nil {
		return tailCandidates(z.tail, local)
	}

	var candidates []LocalTimeType
	n := len(z.transitions)
	idx := sort.Search(n, func(i int) bool {
		return z.transitions[i].At > approxLocalSec
	})

	lo := idx - 2
	if lo < 0 {
		lo = 0
	}
	hi := idx + 2
	if hi > n {
		hi = n
	}

	segBoundary := func(i int) (start int64, hasStart bool, t LocalTimeType) {
		if i < 0 {
			// Same RFC 8536 rule OffsetFor applies: type 0 governs
			// everything before the first recorded transition.
			return 0, false, z.types[0]
		}
		return z.transitions[i].At, true, z.types[z.transitions[i].TypeIndex]
	}

	for i := lo - 1; i <= hi; i++ {
		if i >= n {
			break
		}
		start, hasStart, t := segBoundary(i)
		var nextStart int64
		hasNext := i+1 < n
		if hasNext {
			nextStart = z.transitions[i+1].At
		}

		instantSec := approxLocalSec - int64(t.OffsetSeconds)
		if hasStart && instantSec < start {
			continue
		}
		if hasNext && instantSec >= nextStart {
			continue
		}
		candidates = append(candidates, t)
	}

	if len(candidates) == 0 && z.tail != nil && approxLocalSec > lastAt {
		return tailCandidates(z.tail, local)
	}
	return candidates
}

func tailCandidates(rule *posix.Rule, local tcore.IsoDateTime) []LocalTimeType {
	raw := rule.CandidatesAt(local)
	out := make([]LocalTimeType, len(raw))
	for i, c := range raw {
		out[i] = LocalTimeType{OffsetSeconds: c.Offset, IsDst: c.IsDst, Designation: c.Name}
	}
	return out
}

// Disambiguate resolves CandidatesFor's result
// down to a single (instant, LocalTimeType) pair according to policy.
func (z *Zone) Disambiguate(local tcore.IsoDateTime, policy tcore.Disambiguation) (tcore.EpochNanoseconds, LocalTimeType, error) {
	candidates := z.CandidatesFor(local)
	localSec := local.Date.JDN()*86400 + int64(local.Time.Hour)*3600 + int64(local.Time.Minute)*60 + int64(local.Time.Second)

	instantFor := func(t LocalTimeType) tcore.EpochNanoseconds {
		return tcore.EpochNanosecondsFromSeconds(localSec - int64(t.OffsetSeconds))
	}

	switch len(candidates) {
	case 1:
		return instantFor(candidates[0]), candidates[0], nil
	case 2:
		first, second := candidates[0], candidates[1]
		if instantFor(first).Compare(instantFor(second)) > 0 {
			first, second = second, first
		}
		switch policy {
		case tcore.RejectAmbiguity:
			return tcore.EpochNanoseconds{}, LocalTimeType{}, tcore.RangeErrorf("ambiguous local time in zone %q", z.Identifier)
		case tcore.Earlier, tcore.Compatible:
			return instantFor(first), first, nil
		case tcore.Later:
			return instantFor(second), second, nil
		}
		return instantFor(first), first, nil
	case 0:
		return z.disambiguateGap(local, policy)
	default:
		return instantFor(candidates[0]), candidates[0], nil
	}
}

// disambiguateGap resolves a spring-forward gap by probing just before
// and just after local to find the bracketing offsets, then applying
// policy (Earlier: pre-gap offset, local time shifted back by the gap
// length; Later/Compatible: post-gap offset, local time shifted forward
// by the gap length; RejectAmbiguity: fail).
func (z *Zone) disambiguateGap(local tcore.IsoDateTime, policy tcore.Disambiguation) (tcore.EpochNanoseconds, LocalTimeType, error) {
	if policy == tcore.RejectAmbiguity {
		return tcore.EpochNanoseconds{}, LocalTimeType{}, tcore.RangeErrorf("local time falls in a gap in zone %q", z.Identifier)
	}

	before, err := local.AddDuration(tcore.Duration{Hours: -24}, tcore.Constrain)
	if err != nil {
		return tcore.EpochNanoseconds{}, LocalTimeType{}, err
	}
	after, err := local.AddDuration(tcore.Duration{Hours: 24}, tcore.Constrain)
	if err != nil {
		return tcore.EpochNanoseconds{}, LocalTimeType{}, err
	}

	beforeCandidates := z.CandidatesFor(before)
	afterCandidates := z.CandidatesFor(after)
	if len(beforeCandidates) == 0 || len(afterCandidates) == 0 {
		return tcore.EpochNanoseconds{}, LocalTimeType{}, tcore.RangeErrorf("could not resolve gap in zone %q", z.Identifier)
	}
	preType := beforeCandidates[len(beforeCandidates)-1]
	postType := afterCandidates[0]

	localSec := local.Date.JDN()*86400 + int64(local.Time.Hour)*3600 + int64(local.Time.Minute)*60 + int64(local.Time.Second)

	gapSeconds := int64(postType.OffsetSeconds - preType.OffsetSeconds)
	switch policy {
	case tcore.Earlier:
		return tcore.EpochNanosecondsFromSeconds(localSec - gapSeconds - int64(preType.OffsetSeconds)), preType, nil
	default: // Later, Compatible
		return tcore.EpochNanosecondsFromSeconds(localSec + gapSeconds - int64(postType.OffsetSeconds)), postType, nil
	}
}

// GapBounds reports the offsets bracketing the gap a Zero-candidate
// local datetime fell into, plus the transition epoch, matching
// spec.md §4.4.2's GapEntryOffsets shape. It re-derives the same
// before/after probe disambiguateGap uses, for callers that need the
// raw bracket rather than a resolved instant.
func (z *Zone) GapBounds(local tcore.IsoDateTime) (offsetBefore, offsetAfter int, transitionEpoch tcore.EpochNanoseconds, err error) {
	before, err := local.AddDuration(tcore.Duration{Hours: -24}, tcore.Constrain)
	if err != nil {
		return 0, 0, tcore.EpochNanoseconds{}, err
	}
	after, err := local.AddDuration(tcore.Duration{Hours: 24}, tcore.Constrain)
	if err != nil {
		return 0, 0, tcore.EpochNanoseconds{}, err
	}
	beforeCandidates := z.CandidatesFor(before)
	afterCandidates := z.CandidatesFor(after)
	if len(beforeCandidates) == 0 || len(afterCandidates) == 0 {
		return 0, 0, tcore.EpochNanoseconds{}, tcore.RangeErrorf("could not resolve gap bounds in zone %q", z.Identifier)
	}
	preType := beforeCandidates[len(beforeCandidates)-1]
	postType := afterCandidates[0]
	epoch, _ := z.NextTransition(tcore.EpochNanosecondsFromSeconds(before.Date.JDN()*86400), false)
	return preType.OffsetSeconds, postType.OffsetSeconds, epoch, nil
}

// NextTransition reports the next (or, if previous is
// true, the most recent prior) recorded offset change strictly after
// (or before) instant. Falls through to the POSIX tail rule's yearly
// DST transitions once the recorded table is exhausted.
func (z *Zone) NextTransition(instant tcore.EpochNanoseconds, previous bool) (tcore.EpochNanoseconds, bool) {
	sec, _ := instant.Seconds()

	if previous {
		n := len(z.transitions)
		idx := sort.Search(n, func(i int) bool { return z.transitions[i].At >= sec }) - 1
		for idx >= 0 {
			if idx == 0 || z.types[z.transitions[idx].TypeIndex] != z.types[z.transitions[idx-1].TypeIndex] {
				return tcore.EpochNanosecondsFromSeconds(z.transitions[idx].At), true
			}
			idx--
		}
		if z.tail != nil {
			year := yearOfSec(sec)
			for y := year; y >= year-4; y-- {
				ts := z.tail.TransitionsForYear(y)
				for i := len(ts) - 1; i >= 0; i-- {
					s, _ := ts[i].At.Seconds()
					if s < sec {
						return ts[i].At, true
					}
				}
			}
		}
		return tcore.EpochNanoseconds{}, false
	}

	n := len(z.transitions)
	idx := sort.Search(n, func(i int) bool { return z.transitions[i].At > sec })
	for idx < n {
		if idx == 0 || z.types[z.transitions[idx].TypeIndex] != z.types[z.transitions[idx-1].TypeIndex] {
			return tcore.EpochNanosecondsFromSeconds(z.transitions[idx].At), true
		}
		idx++
	}

	if z.tail != nil {
		year := yearOfSec(sec)
		for y := year; y <= year+4; y++ {
			ts := z.tail.TransitionsForYear(y)
			for _, t := range ts {
				s, _ := t.At.Seconds()
				if s > sec {
					return t.At, true
				}
			}
		}
	}
	return tcore.EpochNanoseconds{}, false
}

func yearOfSec(sec int64) int {
	days := sec / 86400
	if sec%86400 < 0 {
		days--
	}
	return tcore.IsoDateFromJDN(days).Year
}
