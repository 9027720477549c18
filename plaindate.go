package tcore

import "math/big"

// PlainDate is a calendar date with no time-of-day or time-zone
// component, the "date" value type. It always carries an
// explicit Calendar, never an implicit default.
type PlainDate struct {
	iso IsoDate
	cal Calendar
}

// NewPlainDate validates fields against cal and regulates it per
// overflow (the constructor contract).
func NewPlainDate(year, month, day int, cal Calendar, overflow Overflow) (PlainDate, error) {
	d, err := cal.DateFromFields(CalendarFields{
		Year: year, HasYear: true,
		Month: month, HasMonth: true,
		Day: day, HasDay: true,
	}, overflow)
	if err != nil {
		return PlainDate{}, err
	}
	return PlainDate{iso: d, cal: cal}, nil
}

// Calendar returns d's calendar.
func (d PlainDate) Calendar() Calendar { return d.cal }

// Year, Month, Day, MonthCode and the month/year counts report d's
// fields in its own calendar's units.
func (d PlainDate) Year() int              { return d.cal.Year(d.iso) }
func (d PlainDate) Month() int             { return d.cal.Month(d.iso) }
func (d PlainDate) Day() int               { return d.cal.Day(d.iso) }
func (d PlainDate) MonthCode() string      { return d.cal.MonthCode(d.iso) }
func (d PlainDate) DaysInMonth() int       { return d.cal.DaysInMonth(d.iso) }
func (d PlainDate) MonthsInYear() int      { return d.cal.MonthsInYear(d.iso) }
func (d PlainDate) InLeapYear() bool       { return d.cal.InLeapYear(d.iso) }
func (d PlainDate) DayOfWeek() int         { return d.iso.DayOfWeek() }
func (d PlainDate) DayOfYear() int         { return d.iso.DayOfYear() }
func (d PlainDate) DaysInYear() int        { return d.iso.DaysInYear() }

// Era reports d's era and era-relative year, if the calendar defines one.
func (d PlainDate) Era() (era string, eraYear int, ok bool) { return d.cal.Era(d.iso) }

// ISO exposes the underlying proleptic-Gregorian date record, the
// interchange representation every Calendar implementation converts to
// and from.
func (d PlainDate) ISO() IsoDate { return d.iso }

// Compare orders two dates purely by their underlying ISO date,
// independent of calendar.
func (d PlainDate) Compare(other PlainDate) int { return d.iso.Compare(other.iso) }

// Add applies a Duration's calendar-valued fields to d;
// the duration's time-valued fields, if any, must be zero or Add fails
// with Range (a PlainDate has no time-of-day to absorb them into).
func (d PlainDate) Add(dur Duration, overflow Overflow) (PlainDate, error) {
	if dur.Hours != 0 || dur.Minutes != 0 || dur.Seconds != 0 || dur.Milliseconds != 0 || dur.Microseconds != 0 || dur.Nanoseconds != 0 {
		return PlainDate{}, rangeErrorf("duration has a time component but PlainDate.Add has no time-of-day to balance it into")
	}
	out, err := d.cal.DateAdd(d.iso, int(dur.Years), int(dur.Months), int(dur.Weeks), int(dur.Days), overflow)
	if err != nil {
		return PlainDate{}, err
	}
	return PlainDate{iso: out, cal: d.cal}, nil
}

// Until returns the calendar duration from d to other, balanced down to
// largestUnit. Both dates must share a calendar.
func (d PlainDate) Until(other PlainDate, largestUnit Unit) (Duration, error) {
	years, months, weeks, days, err := d.cal.DateUntil(d.iso, other.iso, largestUnit)
	if err != nil {
		return Duration{}, err
	}
	return Duration{Years: int64(years), Months: int64(months), Weeks: int64(weeks), Days: int64(days)}, nil
}

func (d PlainDate) String() string {
	return d.iso.String() + "[u-ca=" + d.cal.Identifier() + "]"
}

// RoundingAnchor returns the anchor RoundDuration uses for
// smallest_unit >= Week rounding relative to d. Since a PlainDate has
// no time-of-day, its "timeline" for fractional-position comparison is
// the naive epoch-nanosecond count of local midnight.
func (d PlainDate) RoundingAnchor() RoundingAnchor {
	return RoundingAnchor{
		Add: func(dur Duration, overflow Overflow) (RoundingAnchor, error) {
			next, err := d.Add(dur, overflow)
			if err != nil {
				return RoundingAnchor{}, err
			}
			return next.RoundingAnchor(), nil
		},
		EpochNanoseconds: func() EpochNanoseconds {
			ns := new(big.Int).Mul(big.NewInt(d.iso.jdn()), nsPerDay)
			e, _ := NewEpochNanoseconds(ns)
			return e
		},
	}
}
