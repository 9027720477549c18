package tcore

import "math/big"

// PlainDateTime pairs a calendar date with a time-of-day, with no time
// zone attached. It always carries an explicit Calendar.
type PlainDateTime struct {
	dt  IsoDateTime
	cal Calendar
}

// NewPlainDateTime validates (year, month, day) against cal and
// (hour..nanosecond) independently, regulating both per overflow.
func NewPlainDateTime(year, month, day, hour, minute, second, milli, micro, nano int, cal Calendar, overflow Overflow) (PlainDateTime, error) {
	isoDate, err := cal.DateFromFields(CalendarFields{
		Year: year, HasYear: true,
		Month: month, HasMonth: true,
		Day: day, HasDay: true,
	}, overflow)
	if err != nil {
		return PlainDateTime{}, err
	}
	isoTime, err := RegulateIsoTime(hour, minute, second, milli, micro, nano, overflow)
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{dt: IsoDateTime{Date: isoDate, Time: isoTime}, cal: cal}, nil
}

// NewPlainDateTimeFromISO wraps an already-validated IsoDateTime.
func NewPlainDateTimeFromISO(dt IsoDateTime, cal Calendar) (PlainDateTime, error) {
	if !dt.IsValid() {
		return PlainDateTime{}, rangeErrorf("invalid date-time %v", dt)
	}
	return PlainDateTime{dt: dt, cal: cal}, nil
}

// Calendar returns dt's calendar.
func (dt PlainDateTime) Calendar() Calendar { return dt.cal }

// ISO exposes the underlying naive date-time record.
func (dt PlainDateTime) ISO() IsoDateTime { return dt.dt }

// ToPlainDate discards the time-of-day component.
func (dt PlainDateTime) ToPlainDate() PlainDate { return PlainDate{iso: dt.dt.Date, cal: dt.cal} }

func (dt PlainDateTime) Year() int         { return dt.cal.Year(dt.dt.Date) }
func (dt PlainDateTime) Month() int        { return dt.cal.Month(dt.dt.Date) }
func (dt PlainDateTime) Day() int          { return dt.cal.Day(dt.dt.Date) }
func (dt PlainDateTime) Hour() int         { return dt.dt.Time.Hour }
func (dt PlainDateTime) Minute() int       { return dt.dt.Time.Minute }
func (dt PlainDateTime) Second() int       { return dt.dt.Time.Second }
func (dt PlainDateTime) Millisecond() int  { return dt.dt.Time.Millisecond }
func (dt PlainDateTime) Microsecond() int  { return dt.dt.Time.Microsecond }
func (dt PlainDateTime) Nanosecond() int   { return dt.dt.Time.Nanosecond }
func (dt PlainDateTime) DayOfWeek() int    { return dt.dt.Date.DayOfWeek() }
func (dt PlainDateTime) DayOfYear() int    { return dt.dt.Date.DayOfYear() }

// Compare orders two date-times purely by their underlying ISO
// date-time, independent of calendar.
func (dt PlainDateTime) Compare(other PlainDateTime) int { return dt.dt.Compare(other.dt) }

// Add applies duration's time portion to the time-of-day first,
// producing a carried day count, then hands the calendar portion plus
// that carry to the date component's calendar-aware Add.
func (dt PlainDateTime) Add(d Duration, overflow Overflow) (PlainDateTime, error) {
	nt, err := d.ToNormalized()
	if err != nil {
		return PlainDateTime{}, err
	}
	timeNs := dt.dt.Time.nanosecondOfDay() + nt.Big().Int64()
	carryDays, newTime := BalanceIsoTime(timeNs)

	newDate, err := dt.cal.DateAdd(dt.dt.Date, int(d.Years), int(d.Months), int(d.Weeks), int(d.Days)+int(carryDays), overflow)
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{dt: IsoDateTime{Date: newDate, Time: newTime}, cal: dt.cal}, nil
}

// Until returns the calendar-plus-time duration from dt to other,
// balanced down to largestUnit. Both date-times must share a calendar.
func (dt PlainDateTime) Until(other PlainDateTime, largestUnit Unit) (Duration, error) {
	if largestUnit >= UnitHour {
		nt := dt.dt.Until(other.dt)
		return DurationFromNormalized(0, 0, 0, 0, nt, largestUnit), nil
	}

	years, months, weeks, days, err := dt.cal.DateUntil(dt.dt.Date, other.dt.Date, largestUnit)
	if err != nil {
		return Duration{}, err
	}

	// If the time-of-day would make the date difference overshoot,
	// back the date difference off by one day and let the residual
	// time-of-day difference absorb it.
	sign := dt.dt.Compare(other.dt)
	timeCmp := dt.dt.Time.Compare(other.dt.Time)
	residualNs := other.dt.Time.nanosecondOfDay() - dt.dt.Time.nanosecondOfDay()
	if sign < 0 && timeCmp > 0 {
		days--
		residualNs += nsPerDayInt64
	} else if sign > 0 && timeCmp < 0 {
		days++
		residualNs -= nsPerDayInt64
	}

	nt := normalizedFromBig(big.NewInt(residualNs))
	return DurationFromNormalized(int64(years), int64(months), int64(weeks), int64(days), nt, largestUnit), nil
}

func (dt PlainDateTime) String() string {
	return dt.dt.String() + "[u-ca=" + dt.cal.Identifier() + "]"
}

// RoundingAnchor returns the anchor RoundDuration uses for
// smallest_unit >= Week rounding relative to dt.
func (dt PlainDateTime) RoundingAnchor() RoundingAnchor {
	return RoundingAnchor{
		Add: func(d Duration, overflow Overflow) (RoundingAnchor, error) {
			next, err := dt.Add(d, overflow)
			if err != nil {
				return RoundingAnchor{}, err
			}
			return next.RoundingAnchor(), nil
		},
		EpochNanoseconds: func() EpochNanoseconds {
			e, _ := NewEpochNanoseconds(dt.dt.sinceEpochNanoseconds())
			return e
		},
	}
}
