package tcore

// Until implements spec.md §4.6.4: the duration from z to other,
// balanced down to largestUnit. When largestUnit is Hour or finer the
// result is computed purely from the instant difference; otherwise the
// calendar-unit portion is computed in each endpoint's own local time
// and the residual exact-time portion is resolved back through the
// time zone, since a calendar-unit difference anchored at a
// ZonedDateTime must cross whatever DST boundaries lie between the two
// local dates.
func (z ZonedDateTime) Until(other ZonedDateTime, largestUnit Unit, provider TimeZoneProvider) (Duration, error) {
	deltaNs := z.instant.Until(other.instant)

	if largestUnit >= UnitHour {
		days, fields := deltaNs.FromNormalized(largestUnit)
		return Duration{
			Days: days, Hours: fields.Hours, Minutes: fields.Minutes, Seconds: fields.Seconds,
			Milliseconds: fields.Milliseconds, Microseconds: fields.Microseconds, Nanoseconds: fields.Nanoseconds,
		}, nil
	}

	localA, err := z.LocalDateTime(provider)
	if err != nil {
		return Duration{}, err
	}
	localB, err := other.LocalDateTime(provider)
	if err != nil {
		return Duration{}, err
	}

	years, months, weeks, days, err := z.cal.DateUntil(localA.Date, localB.Date, largestUnit)
	if err != nil {
		return Duration{}, err
	}

	// If the time-of-day would make the date difference overshoot,
	// back the date difference off by one day and let the residual
	// time-of-day difference absorb it (same correction as
	// PlainDateTime.Until).
	sign := localA.Compare(localB)
	timeCmp := localA.Time.Compare(localB.Time)
	if sign < 0 && timeCmp > 0 {
		days--
	} else if sign > 0 && timeCmp < 0 {
		days++
	}

	intermediateDate, err := z.cal.DateAdd(localA.Date, years, months, weeks, days, Constrain)
	if err != nil {
		return Duration{}, err
	}
	intermediateLocal := IsoDateTime{Date: intermediateDate, Time: localA.Time}
	intermediateInstant, err := z.resolveLocal(intermediateLocal, provider)
	if err != nil {
		return Duration{}, err
	}

	residual := NewInstant(intermediateInstant).Until(other.instant)
	return DurationFromNormalized(int64(years), int64(months), int64(weeks), int64(days), residual, largestUnit), nil
}

// Since returns the duration from other to z, the mirror of Until
// (spec.md §8's difference law a.until(b) == -b.until(a) holds between
// Until and Since by construction).
func (z ZonedDateTime) Since(other ZonedDateTime, largestUnit Unit, provider TimeZoneProvider) (Duration, error) {
	return other.Until(z, largestUnit, provider)
}
