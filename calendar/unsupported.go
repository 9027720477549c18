package calendar

import "github.com/chronozone/tcore"

// unsupported registers a Calendar identifier that is recognized (so
// Lookup succeeds and callers get a clear error) but whose era/lunisolar
// tables are not implemented here: treats non-ISO calendar
// *internals* as non-normative, and building out Hebrew's molad tables
// or the Chinese lunisolar leap-month rules is out of proportion with
// this core. DateFromFields, DateAdd and DateUntil fail with Type,
// naming the identifier; the field accessors return zero values.
type unsupported string

func init() {
	for _, id := range []string{
		"buddhist", "chinese", "coptic", "dangi", "ethiopic", "ethioaa",
		"gregory", "hebrew", "indian", "islamic", "islamic-civil",
		"islamic-tbla", "islamic-umalqura", "japanese", "roc",
	} {
		tcore.RegisterCalendar(unsupported(id))
	}
}

func (u unsupported) Identifier() string { return string(u) }

func (u unsupported) unimplemented() error {
	return tcore.TypeErrorf("calendar %q is registered but not implemented", string(u))
}

func (u unsupported) DateFromFields(tcore.CalendarFields, tcore.Overflow) (tcore.IsoDate, error) {
	return tcore.IsoDate{}, u.unimplemented()
}
func (u unsupported) Year(tcore.IsoDate) int    { return 0 }
func (u unsupported) Month(tcore.IsoDate) int   { return 0 }
func (u unsupported) Day(tcore.IsoDate) int     { return 0 }
func (u unsupported) MonthCode(tcore.IsoDate) string {
	return ""
}
func (u unsupported) Era(tcore.IsoDate) (string, int, bool) { return "", 0, false }
func (u unsupported) MonthsInYear(tcore.IsoDate) int        { return 0 }
func (u unsupported) DaysInMonth(tcore.IsoDate) int         { return 0 }
func (u unsupported) InLeapYear(tcore.IsoDate) bool          { return false }

func (u unsupported) DateAdd(tcore.IsoDate, int, int, int, int, tcore.Overflow) (tcore.IsoDate, error) {
	return tcore.IsoDate{}, u.unimplemented()
}

func (u unsupported) DateUntil(tcore.IsoDate, tcore.IsoDate, tcore.Unit) (int, int, int, int, error) {
	return 0, 0, 0, 0, u.unimplemented()
}
