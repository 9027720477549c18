package posix

import "github.com/chronozone/tcore"

// dayOfWeek returns 0 (Sunday) through 6 (Saturday) for (year, month,
// day), via the Zeller's-congruence derivation go-tz's
// internal/tzexpand/datemath.go `calculateDayOfWeek` uses for resolving
// Olson `ON` columns; the POSIX Mm.n.d grammar needs the identical
// weekday arithmetic.
func dayOfWeek(year, month, day int) int {
	if month < 3 {
		month += 12
		year--
	}
	k := year % 100
	j := year / 100
	h := (day + ((13 * (month + 1)) / 5) + k + (k / 4) + (j / 4) + (5 * j)) % 7
	return (h + 6) % 7
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysInMonth(year, month int) int {
	if month == 2 && isLeap(year) {
		return 29
	}
	return monthDays[month-1]
}

// occurrenceDate resolves a DayRule to an ISO date within year,
// following go-tz's `lastWeekdayOfMonth`/`nextWeekday` occurrence-search
// idiom for the MonthWeekDay form.
func (d DayRule) occurrenceDate(year int) tcore.IsoDate {
	switch d.Form {
	case Julian:
		day := d.Day
		ordinal := day
		if isLeap(year) && day > 59 {
			ordinal++
		}
		return ordinalToDate(year, ordinal)
	case DayOfYear:
		return ordinalToDate(year, d.Day+1)
	default: // MonthWeekDay
		if d.Week == 5 {
			lastDay := daysInMonth(year, d.Month)
			lastDayWeekday := dayOfWeek(year, d.Month, lastDay)
			offset := (lastDayWeekday - d.Weekday + 7) % 7
			return tcore.IsoDate{Year: year, Month: d.Month, Day: lastDay - offset}
		}
		firstOfMonth := dayOfWeek(year, d.Month, 1)
		offset := (d.Weekday - firstOfMonth + 7) % 7
		day := 1 + offset + (d.Week-1)*7
		return tcore.IsoDate{Year: year, Month: d.Month, Day: day}
	}
}

func ordinalToDate(year, ordinal int) tcore.IsoDate {
	month := 1
	for month <= 12 {
		n := daysInMonth(year, month)
		if ordinal <= n {
			return tcore.IsoDate{Year: year, Month: month, Day: ordinal}
		}
		ordinal -= n
		month++
	}
	return tcore.IsoDate{Year: year, Month: 12, Day: 31}
}

// Transition is one change of local-time offset produced by the POSIX
// rule, expressed as the UTC instant it takes effect at.
type Transition struct {
	At        tcore.EpochNanoseconds
	Offset    int // seconds east of UT after this transition
	IsDst     bool
	Name      string
}

// TransitionsForYear returns the DST-start and DST-end transitions the
// rule produces in the given year, in chronological order. Returns nil
// if the rule has no DST component (a plain "std offset" rule).
func (r Rule) TransitionsForYear(year int) []Transition {
	if !r.HasDst {
		return nil
	}

	startDate := r.Start.occurrenceDate(year)
	endDate := r.End.occurrenceDate(year)

	startUTC := localWallClockToUTC(startDate, r.Start.TimeOfDaySeconds, r.StdOffset)
	endUTC := localWallClockToUTC(endDate, r.End.TimeOfDaySeconds, r.DstOffset)

	transitions := []Transition{
		{At: startUTC, Offset: r.DstOffset, IsDst: true, Name: r.DstName},
		{At: endUTC, Offset: r.StdOffset, IsDst: false, Name: r.StdName},
	}
	if transitions[0].At.Compare(transitions[1].At) > 0 {
		transitions[0], transitions[1] = transitions[1], transitions[0]
	}
	return transitions
}

// localWallClockToUTC converts a wall-clock instant (expressed as a
// date plus a seconds-since-midnight offset, itself relative to the
// *previous* standing offset, per POSIX's rule that the start/end
// time-of-day is measured in the currently-effective local time) into
// epoch nanoseconds.
func localWallClockToUTC(date tcore.IsoDate, timeOfDaySeconds, effectiveOffset int) tcore.EpochNanoseconds {
	days := date.JDN()
	totalSeconds := days*86400 + int64(timeOfDaySeconds) - int64(effectiveOffset)
	return tcore.EpochNanosecondsFromSeconds(totalSeconds)
}

// OffsetAt returns the rule's offset and DST flag at instant, computing
// the two candidate transitions for instant's UTC calendar year (and
// straddling into the adjacent year near January 1st) and picking
// whichever side of them instant falls on.
func (r Rule) OffsetAt(instant tcore.EpochNanoseconds) (offsetSeconds int, isDst bool, name string) {
	sec, _ := instant.Seconds()
	year := yearOf(sec)

	transitions := r.TransitionsForYear(year)
	if transitions == nil {
		return r.StdOffset, false, r.StdName
	}

	prevYearTransitions := r.TransitionsForYear(year - 1)
	all := append(append([]Transition{}, prevYearTransitions...), transitions...)

	offset, dst, nm := r.StdOffset, false, r.StdName
	for _, t := range all {
		if t.At.Compare(instant) <= 0 {
			offset, dst, nm = t.Offset, t.IsDst, t.Name
		}
	}
	return offset, dst, nm
}

// Candidate is one possible resolution of an ambiguous or skipped local
// wall-clock instant: the UTC instant it corresponds to under a given
// standing offset.
type Candidate struct {
	At     tcore.EpochNanoseconds
	Offset int
	IsDst  bool
	Name   string
}

// CandidatesAt resolves a local (zone-naive) date-time against the
// rule's transitions, returning zero candidates inside a spring-forward
// gap, one in the unambiguous common case, and two inside a fall-back
// overlap -- the same three-way split assigns to
// tzdb.Zone.CandidatesFor for recorded transitions.
func (r Rule) CandidatesAt(local tcore.IsoDateTime) []Candidate {
	year := local.Date.Year
	transitions := append(r.TransitionsForYear(year-1), r.TransitionsForYear(year)...)
	transitions = append(transitions, r.TransitionsForYear(year+1)...)

	type segment struct {
		start         tcore.EpochNanoseconds
		offset        int
		isDst         bool
		name          string
		hasStart      bool
	}

	segments := []segment{{offset: r.StdOffset, isDst: false, name: r.StdName}}
	for _, t := range transitions {
		segments = append(segments, segment{start: t.At, offset: t.Offset, isDst: t.IsDst, name: t.Name, hasStart: true})
	}

	var candidates []Candidate
	for i, seg := range segments {
		localAsUTC := tcore.EpochNanosecondsFromSeconds(local.Date.JDN()*86400 + int64(localWallSeconds(local.Time)))
		instant, err := localAsUTC.Add(normalizedFromOffset(-seg.offset))
		if err != nil {
			continue
		}
		if seg.hasStart && instant.Compare(seg.start) < 0 {
			continue
		}
		if i+1 < len(segments) && segments[i+1].hasStart && instant.Compare(segments[i+1].start) >= 0 {
			continue
		}
		candidates = append(candidates, Candidate{At: instant, Offset: seg.offset, IsDst: seg.isDst, Name: seg.name})
	}
	return candidates
}

func localWallSeconds(t tcore.IsoTime) int64 {
	return int64(t.Hour)*3600 + int64(t.Minute)*60 + int64(t.Second)
}

func normalizedFromOffset(offsetSeconds int) tcore.NormalizedTimeDuration {
	nt, _ := tcore.NormalizedTimeDurationFromComponents(0, 0, int64(offsetSeconds), 0, 0, 0)
	return nt
}

func yearOf(unixSeconds int64) int {
	days := unixSeconds / 86400
	if unixSeconds%86400 < 0 {
		days--
	}
	return tcore.IsoDateFromJDN(days).Year
}
