// Package calendar provides concrete tcore.Calendar implementations
// (ISO 8601 and Persian) and registers them with the root package's
// calendar registry on import, the way database/sql drivers register
// themselves with database/sql.
package calendar

import "github.com/chronozone/tcore"

func init() {
	tcore.RegisterCalendar(iso8601{})
}

// iso8601 is the normative Calendar implementation: its field system
// and the core's internal IsoDate representation are one and the same,
// so every method is close to a direct passthrough.
type iso8601 struct{}

func (iso8601) Identifier() string { return "iso8601" }

func (iso8601) DateFromFields(f tcore.CalendarFields, overflow tcore.Overflow) (tcore.IsoDate, error) {
	if !f.HasYear {
		return tcore.IsoDate{}, tcore.TypeErrorf("missing required field: year")
	}
	if !f.HasMonth {
		return tcore.IsoDate{}, tcore.TypeErrorf("missing required field: month")
	}
	if !f.HasDay {
		return tcore.IsoDate{}, tcore.TypeErrorf("missing required field: day")
	}
	return tcore.RegulateIsoDate(f.Year, f.Month, f.Day, overflow)
}

func (iso8601) Year(d tcore.IsoDate) int  { return d.Year }
func (iso8601) Month(d tcore.IsoDate) int { return d.Month }
func (iso8601) Day(d tcore.IsoDate) int   { return d.Day }

func (iso8601) MonthCode(d tcore.IsoDate) string {
	return monthCode(d.Month)
}

func monthCode(month int) string {
	const digits = "0123456789"
	tens, ones := month/10, month%10
	return "M" + string(digits[tens]) + string(digits[ones])
}

func (iso8601) Era(d tcore.IsoDate) (era string, eraYear int, ok bool) {
	return "", 0, false
}

func (iso8601) MonthsInYear(d tcore.IsoDate) int { return 12 }

func (iso8601) DaysInMonth(d tcore.IsoDate) int { return d.DaysInMonth() }

func (iso8601) InLeapYear(d tcore.IsoDate) bool { return d.InLeapYear() }

func (iso8601) DateAdd(d tcore.IsoDate, years, months, weeks, days int, overflow tcore.Overflow) (tcore.IsoDate, error) {
	return d.AddDate(years, months, weeks, days, overflow)
}

// DateUntil implements the ISO calendar's balance-down-to-largestUnit
// duration algorithm: whole years and months are peeled off by
// candidate-then-backoff (the same style go-chrono's `addDateToDate`
// round-trips through a candidate JDN), then the remaining days are
// optionally folded into weeks.
func (iso8601) DateUntil(from, to tcore.IsoDate, largestUnit tcore.Unit) (years, months, weeks, days int, err error) {
	sign := from.Compare(to)
	if sign == 0 {
		return 0, 0, 0, 0, nil
	}
	if sign > 0 {
		y, m, w, d, err := iso8601{}.DateUntil(to, from, largestUnit)
		return -y, -m, -w, -d, err
	}

	if largestUnit > tcore.UnitMonth {
		totalDays := int(from.DaysUntil(to))
		if largestUnit == tcore.UnitWeek {
			return 0, 0, totalDays / 7, totalDays % 7, nil
		}
		return 0, 0, 0, totalDays, nil
	}

	candYears := 0
	if largestUnit == tcore.UnitYear {
		for {
			cand, cerr := from.AddDate(candYears+1, 0, 0, 0, tcore.Constrain)
			if cerr != nil || cand.Compare(to) > 0 {
				break
			}
			candYears++
		}
	}

	withYears, err := from.AddDate(candYears, 0, 0, 0, tcore.Constrain)
	if err != nil {
		return 0, 0, 0, 0, err
	}

	candMonths := 0
	for {
		cand, cerr := withYears.AddDate(0, candMonths+1, 0, 0, tcore.Constrain)
		if cerr != nil || cand.Compare(to) > 0 {
			break
		}
		candMonths++
	}

	withMonths, err := withYears.AddDate(0, candMonths, 0, 0, tcore.Constrain)
	if err != nil {
		return 0, 0, 0, 0, err
	}

	remainingDays := int(withMonths.DaysUntil(to))
	return candYears, candMonths, 0, remainingDays, nil
}
