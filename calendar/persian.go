package calendar

import "github.com/chronozone/tcore"

func init() {
	tcore.RegisterCalendar(persian{})
}

// persian implements the Solar Hijri calendar: a 33-year leap cycle
// (handled by the `divider` remainder trick below, not a simple
// year%4 test) over 12 months of 31/31/31/31/31/31/30/30/30/30/30/29-or-30
// days. Adapted from mekramy-go-persian-calendar's ptime.go JDN
// conversion, rewritten against tcore.IsoDate instead of time.Time.
type persian struct{}

func (persian) Identifier() string { return "persian" }

// persianMonthDays gives {regular, leap} day counts per month, 1-indexed
// by month-1, matching ptime.go's p_month_count column 0/1.
var persianMonthDays = [12][2]int{
	{31, 31}, {31, 31}, {31, 31}, {31, 31}, {31, 31}, {31, 31},
	{30, 30}, {30, 30}, {30, 30}, {30, 30}, {30, 30}, {29, 30},
}

// persianDivider is ptime.go's `divider`: a floor-mod that stays
// well-defined for the negative numerators the leap-year test
// occasionally produces.
func persianDivider(num, den int) int {
	if num > 0 {
		return num % den
	}
	return num - (((num+1)/den - 1) * den)
}

// isPersianLeapYear reproduces ptime.go's `(t Time) IsLeap`: divider(25*y+11, 33) < 8.
func isPersianLeapYear(year int) bool {
	return persianDivider(25*year+11, 33) < 8
}

func persianDaysInMonth(year, month int) int {
	idx := 0
	if isPersianLeapYear(year) {
		idx = 1
	}
	return persianMonthDays[month-1][idx]
}

// persianToJDN is ptime.go's `getJdn`.
func persianToJDN(year, month, day int) int64 {
	base := year - 473
	if year >= 0 {
		base--
	}
	epy := 474 + persianDivider(base, 2820)

	var md int
	if month <= 7 {
		md = (month - 1) * 31
	} else {
		md = (month-1)*30 + 6
	}

	jdn := day + md + (epy*682-110)/2816 + (epy-1)*365 + floorDiv(base, 2820)*1029983 + 1948320
	return int64(jdn)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// persianFromJDN is the inverse of persianToJDN, ptime.go's jdn-to-date
// branch of (t *Time) SetUnix (the JDN/dep/cyc/ycyc derivation).
func persianFromJDN(jdn int64) (year, month, day int) {
	dep := int(jdn) - int(persianToJDN(475, 1, 1))
	cyc := dep / 1029983
	rem := dep % 1029983

	var ycyc int
	if rem == 1029982 {
		ycyc = 2820
	} else {
		a := rem / 366
		ycyc = (2134*a+2816*(rem%366)+2815)/1028522 + a + 1
	}

	year = ycyc + 2820*cyc + 474
	if year <= 0 {
		year--
	}

	dy := int(jdn) - int(persianToJDN(year, 1, 1)) + 1
	if dy <= 186 {
		month = (dy + 30) / 31
	} else {
		month = (dy-6+29)/30
	}
	day = int(jdn) - int(persianToJDN(year, month, 1)) + 1
	return year, month, day
}

func (persian) toIso(year, month, day int) tcore.IsoDate {
	jdn := persianToJDN(year, month, day) - unixEpochJDNforPersian
	return tcore.IsoDateFromJDN(jdn)
}

// unixEpochJDNforPersian is the Julian Day Number of 1970-01-01, needed
// to translate between persianToJDN's absolute JDN and tcore.IsoDate's
// epoch-relative day count.
const unixEpochJDNforPersian = 2440588

func (persian) fromIso(d tcore.IsoDate) (year, month, day int) {
	jdn := d.JDN() + unixEpochJDNforPersian
	return persianFromJDN(jdn)
}

func (p persian) DateFromFields(f tcore.CalendarFields, overflow tcore.Overflow) (tcore.IsoDate, error) {
	if !f.HasYear {
		return tcore.IsoDate{}, tcore.TypeErrorf("missing required field: year")
	}
	if !f.HasMonth {
		return tcore.IsoDate{}, tcore.TypeErrorf("missing required field: month")
	}
	if !f.HasDay {
		return tcore.IsoDate{}, tcore.TypeErrorf("missing required field: day")
	}

	year, month, day := f.Year, f.Month, f.Day
	maxDay := persianDaysInMonth(year, month)
	switch overflow {
	case tcore.Reject:
		if month < 1 || month > 12 {
			return tcore.IsoDate{}, tcore.RangeErrorf("persian month %d out of range", month)
		}
		if day < 1 || day > maxDay {
			return tcore.IsoDate{}, tcore.RangeErrorf("persian day %d out of range", day)
		}
	case tcore.Constrain:
		if month < 1 {
			month = 1
		} else if month > 12 {
			month = 12
		}
		maxDay = persianDaysInMonth(year, month)
		if day < 1 {
			day = 1
		} else if day > maxDay {
			day = maxDay
		}
	default:
		return tcore.IsoDate{}, tcore.TypeErrorf("unknown overflow %d", int(overflow))
	}
	return p.toIso(year, month, day), nil
}

func (p persian) Year(d tcore.IsoDate) int  { y, _, _ := p.fromIso(d); return y }
func (p persian) Month(d tcore.IsoDate) int { _, m, _ := p.fromIso(d); return m }
func (p persian) Day(d tcore.IsoDate) int   { _, _, dd := p.fromIso(d); return dd }

func (p persian) MonthCode(d tcore.IsoDate) string {
	return monthCode(p.Month(d))
}

func (persian) Era(d tcore.IsoDate) (era string, eraYear int, ok bool) {
	return "", 0, false
}

func (persian) MonthsInYear(d tcore.IsoDate) int { return 12 }

func (p persian) DaysInMonth(d tcore.IsoDate) int {
	year, month, _ := p.fromIso(d)
	return persianDaysInMonth(year, month)
}

func (p persian) InLeapYear(d tcore.IsoDate) bool {
	year, _, _ := p.fromIso(d)
	return isPersianLeapYear(year)
}

func (p persian) DateAdd(d tcore.IsoDate, years, months, weeks, days int, overflow tcore.Overflow) (tcore.IsoDate, error) {
	year, month, day := p.fromIso(d)
	year += years
	month += months
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}

	maxDay := persianDaysInMonth(year, month)
	switch overflow {
	case tcore.Reject:
		if day > maxDay {
			return tcore.IsoDate{}, tcore.RangeErrorf("persian day %d out of range after adding months", day)
		}
	case tcore.Constrain:
		if day > maxDay {
			day = maxDay
		}
	}

	out := p.toIso(year, month, day)
	if weeks == 0 && days == 0 {
		return out, nil
	}
	return out.AddDate(0, 0, weeks, days, tcore.Constrain)
}

func (p persian) DateUntil(from, to tcore.IsoDate, largestUnit tcore.Unit) (years, months, weeks, days int, err error) {
	sign := from.Compare(to)
	if sign == 0 {
		return 0, 0, 0, 0, nil
	}
	if sign > 0 {
		y, m, w, d, err := p.DateUntil(to, from, largestUnit)
		return -y, -m, -w, -d, err
	}

	if largestUnit > tcore.UnitMonth {
		totalDays := int(from.DaysUntil(to))
		if largestUnit == tcore.UnitWeek {
			return 0, 0, totalDays / 7, totalDays % 7, nil
		}
		return 0, 0, 0, totalDays, nil
	}

	fy, fm, fd := p.fromIso(from)
	ty, tm, td := p.fromIso(to)

	years, months = 0, 0
	if largestUnit == tcore.UnitYear {
		years = ty - fy
	} else {
		months = (ty-fy)*12 + (tm - fm)
	}

	cursor, cerr := p.DateAdd(from, years, months, 0, 0, tcore.Constrain)
	if cerr != nil {
		return 0, 0, 0, 0, cerr
	}
	for cursor.Compare(to) > 0 {
		if largestUnit == tcore.UnitYear {
			years--
		} else {
			months--
		}
		cursor, cerr = p.DateAdd(from, years, months, 0, 0, tcore.Constrain)
		if cerr != nil {
			return 0, 0, 0, 0, cerr
		}
	}
	_ = fd
	_ = td

	remainingDays := int(cursor.DaysUntil(to))
	return years, months, 0, remainingDays, nil
}
