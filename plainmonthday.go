package tcore

// isoReferenceYear is the proleptic-Gregorian leap year PlainMonthDay
// anchors its internal reference date to, so a leap-day month-day
// (e.g. month code "M02", day 29) always has a representation.
const isoReferenceYear = 1972

// PlainMonthDay is a calendar month and day with no year component
// (the Temporal "month-day" value type), anchored internally to
// isoReferenceYear so it can still be stored as an IsoDate. It always
// carries an explicit Calendar.
type PlainMonthDay struct {
	iso IsoDate
	cal Calendar
}

// NewPlainMonthDay validates (month, day) against cal using the
// calendar's reference year, regulating per overflow.
func NewPlainMonthDay(month, day int, cal Calendar, overflow Overflow) (PlainMonthDay, error) {
	d, err := cal.DateFromFields(CalendarFields{
		Year: isoReferenceYear, HasYear: true,
		Month: month, HasMonth: true,
		Day: day, HasDay: true,
	}, overflow)
	if err != nil {
		return PlainMonthDay{}, err
	}
	return PlainMonthDay{iso: d, cal: cal}, nil
}

// Calendar returns md's calendar.
func (md PlainMonthDay) Calendar() Calendar { return md.cal }

// ISO exposes the underlying reference date.
func (md PlainMonthDay) ISO() IsoDate { return md.iso }

func (md PlainMonthDay) MonthCode() string { return md.cal.MonthCode(md.iso) }
func (md PlainMonthDay) Day() int          { return md.cal.Day(md.iso) }

// Equals compares md.MonthCode() and md.Day() against other's, which is
// how month-days compare since neither carries a meaningful year to
// order by. Both must share a calendar.
func (md PlainMonthDay) Equals(other PlainMonthDay) bool {
	return md.cal.Identifier() == other.cal.Identifier() &&
		md.MonthCode() == other.MonthCode() &&
		md.Day() == other.Day()
}

// ToPlainDate combines md with year to produce a full PlainDate in
// md's calendar, the operation that gives a month-day meaning (e.g.
// "find this birthday in 2027").
func (md PlainMonthDay) ToPlainDate(year int, overflow Overflow) (PlainDate, error) {
	d, err := md.cal.DateFromFields(CalendarFields{
		Year: year, HasYear: true,
		Month: md.cal.Month(md.iso), HasMonth: true,
		Day: md.cal.Day(md.iso), HasDay: true,
	}, overflow)
	if err != nil {
		return PlainDate{}, err
	}
	return PlainDate{iso: d, cal: md.cal}, nil
}

func (md PlainMonthDay) String() string {
	s := md.iso.String()
	return "--" + s[5:] + "[u-ca=" + md.cal.Identifier() + "]"
}
