package tcore

import "math/big"

// ZonedDateTime pairs an Instant with a Calendar and a TimeZone: the
// "most capable" value type, carrying everything needed to answer both
// exact-time and wall-clock questions. It never holds a pointer into a
// shared zone graph (spec.md §9); a TimeZoneProvider is passed in at
// each call site that needs to resolve the TimeZone.
type ZonedDateTime struct {
	instant Instant
	cal     Calendar
	tz      TimeZone
}

// NewZonedDateTime builds a ZonedDateTime from an already-resolved
// instant, calendar, and time zone.
func NewZonedDateTime(instant Instant, cal Calendar, tz TimeZone) ZonedDateTime {
	return ZonedDateTime{instant: instant, cal: cal, tz: tz}
}

// Instant returns the underlying UTC instant.
func (z ZonedDateTime) Instant() Instant { return z.instant }

// Calendar returns z's calendar.
func (z ZonedDateTime) Calendar() Calendar { return z.cal }

// TimeZone returns z's time zone.
func (z ZonedDateTime) TimeZone() TimeZone { return z.tz }

// Compare orders two zoned date-times by their underlying instant,
// independent of calendar or time zone.
func (z ZonedDateTime) Compare(other ZonedDateTime) int { return z.instant.Compare(other.instant) }

// epochFromLocal converts a local (wall-clock) date-time to an instant
// given a constant offset: UTC = local - offset.
func epochFromLocal(local IsoDateTime, offsetSeconds int) EpochNanoseconds {
	ns := new(big.Int).Sub(local.sinceEpochNanoseconds(), big.NewInt(int64(offsetSeconds)*1_000_000_000))
	e, _ := NewEpochNanoseconds(ns)
	return e
}

// OffsetSeconds returns the offset in effect at z's instant, consulting
// provider only for a named zone.
func (z ZonedDateTime) OffsetSeconds(provider TimeZoneProvider) (int, error) {
	if z.tz.IsFixed() {
		return z.tz.FixedOffsetSeconds(), nil
	}
	if provider == nil {
		return 0, typeErrorf("named time zone %q requires a TimeZoneProvider", z.tz.Identifier())
	}
	res, _, _, err := provider.OffsetFor(z.tz.Identifier(), z.instant.EpochNanoseconds())
	if err != nil {
		return 0, err
	}
	return res.OffsetSeconds, nil
}

// LocalDateTime returns the wall-clock date-time z's instant and offset
// imply.
func (z ZonedDateTime) LocalDateTime(provider TimeZoneProvider) (IsoDateTime, error) {
	offset, err := z.OffsetSeconds(provider)
	if err != nil {
		return IsoDateTime{}, err
	}
	ns := new(big.Int).Add(z.instant.EpochNanoseconds().Big(), big.NewInt(int64(offset)*1_000_000_000))
	return isoDateTimeFromEpochNanoseconds(ns), nil
}

// resolveLocal turns a local datetime back into an instant, either
// directly (fixed zone) or through the provider's disambiguation
// (named zone, policy Compatible per spec.md §4.6.3 step 4).
func (z ZonedDateTime) resolveLocal(local IsoDateTime, provider TimeZoneProvider) (EpochNanoseconds, error) {
	if z.tz.IsFixed() {
		return epochFromLocal(local, z.tz.FixedOffsetSeconds()), nil
	}
	if provider == nil {
		return EpochNanoseconds{}, typeErrorf("named time zone %q requires a TimeZoneProvider", z.tz.Identifier())
	}
	instant, _, err := provider.Disambiguate(z.tz.Identifier(), local, Compatible)
	return instant, err
}

// Add implements spec.md §4.6.3. A purely exact-time duration (no
// calendar-valued fields) is added directly to the instant; otherwise
// the calendar portion is added in local time and the result
// re-resolved through the time zone before the exact-time portion is
// applied on the UTC timeline.
func (z ZonedDateTime) Add(d Duration, overflow Overflow, provider TimeZoneProvider) (ZonedDateTime, error) {
	if d.Years == 0 && d.Months == 0 && d.Weeks == 0 && d.Days == 0 {
		nt, err := d.ToNormalized()
		if err != nil {
			return ZonedDateTime{}, err
		}
		newInstant, err := z.instant.Add(nt)
		if err != nil {
			return ZonedDateTime{}, err
		}
		return ZonedDateTime{instant: newInstant, cal: z.cal, tz: z.tz}, nil
	}

	local, err := z.LocalDateTime(provider)
	if err != nil {
		return ZonedDateTime{}, err
	}
	newDate, err := z.cal.DateAdd(local.Date, int(d.Years), int(d.Months), int(d.Weeks), int(d.Days), overflow)
	if err != nil {
		return ZonedDateTime{}, err
	}
	newLocal := IsoDateTime{Date: newDate, Time: local.Time}

	intermediate, err := z.resolveLocal(newLocal, provider)
	if err != nil {
		return ZonedDateTime{}, err
	}

	nt, err := d.ToNormalized()
	if err != nil {
		return ZonedDateTime{}, err
	}
	finalInstant, err := NewInstant(intermediate).Add(nt)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{instant: finalInstant, cal: z.cal, tz: z.tz}, nil
}

// Subtract is Add with d negated.
func (z ZonedDateTime) Subtract(d Duration, overflow Overflow, provider TimeZoneProvider) (ZonedDateTime, error) {
	return z.Add(d.Negated(), overflow, provider)
}

// HoursInDay reports the length, in hours, of the local calendar day
// z's instant falls on, measured as the exact-time distance between
// local midnight and the following local midnight as resolved through
// the time zone (SPEC_FULL.md enrichment; spec.md §8 Scenario 5 needs
// this to be computable: no ZonedDateTime falls on Samoa's skipped
// 2011-12-30, the day after the skip yields 24, and a day containing a
// DST change yields 23 or 25).
func (z ZonedDateTime) HoursInDay(provider TimeZoneProvider) (float64, error) {
	local, err := z.LocalDateTime(provider)
	if err != nil {
		return 0, err
	}
	todayMidnight := IsoDateTime{Date: local.Date, Time: Midnight}
	tomorrowDate, err := local.Date.AddDate(0, 0, 0, 1, Constrain)
	if err != nil {
		return 0, err
	}
	tomorrowMidnight := IsoDateTime{Date: tomorrowDate, Time: Midnight}

	start, err := z.resolveLocal(todayMidnight, provider)
	if err != nil {
		return 0, err
	}
	end, err := z.resolveLocal(tomorrowMidnight, provider)
	if err != nil {
		return 0, err
	}

	diff := NewInstant(start).Until(NewInstant(end))
	ns := diff.Big()
	hoursNs := new(big.Float).Quo(new(big.Float).SetInt(ns), big.NewFloat(3600_000_000_000))
	h, _ := hoursNs.Float64()
	return h, nil
}

// roundingAnchor builds the RoundingAnchor relative-duration rounding
// needs (spec.md §4.7), adding a duration via Add and reporting the
// resulting epoch.
func (z ZonedDateTime) roundingAnchor(provider TimeZoneProvider) RoundingAnchor {
	return RoundingAnchor{
		Add: func(d Duration, overflow Overflow) (RoundingAnchor, error) {
			next, err := z.Add(d, overflow, provider)
			if err != nil {
				return RoundingAnchor{}, err
			}
			return next.roundingAnchor(provider), nil
		},
		EpochNanoseconds: z.instant.EpochNanoseconds,
	}
}

// RoundingAnchor returns the anchor usable with RoundDuration for
// rounding a duration relative to z.
func (z ZonedDateTime) RoundingAnchor(provider TimeZoneProvider) RoundingAnchor {
	return z.roundingAnchor(provider)
}

func (z ZonedDateTime) String() string {
	return z.instant.EpochNanoseconds().String() + "[" + z.tz.String() + "][u-ca=" + z.cal.Identifier() + "]"
}
