package tcore

import "fmt"

// nsPerDayInt64 is nsPerDay's int64 form, valid since one day's worth of
// nanoseconds fits comfortably in an int64 (86.4e12 << 2^63).
const nsPerDayInt64 = int64(86400_000_000_000)

// IsoTime is a wall-clock time-of-day record: hour, minute, second, and
// sub-second fields down to nanosecond resolution "ISO time
// record".
type IsoTime struct {
	Hour        int
	Minute      int
	Second      int
	Millisecond int
	Microsecond int
	Nanosecond  int
}

// Midnight is the zero value of IsoTime, named for readability at call
// sites that anchor arithmetic to local midnight.
var Midnight = IsoTime{}

// IsValid reports whether every field of t is within its natural range.
// Second may be 60 to admit a positive leap second in the wall-clock
// representation even though the engine never produces one.
func (t IsoTime) IsValid() bool {
	return t.Hour >= 0 && t.Hour <= 23 &&
		t.Minute >= 0 && t.Minute <= 59 &&
		t.Second >= 0 && t.Second <= 60 &&
		t.Millisecond >= 0 && t.Millisecond <= 999 &&
		t.Microsecond >= 0 && t.Microsecond <= 999 &&
		t.Nanosecond >= 0 && t.Nanosecond <= 999
}

// nanosecondOfDay returns t's offset from midnight in nanoseconds.
func (t IsoTime) nanosecondOfDay() int64 {
	sec := t.Second
	if sec == 60 {
		sec = 59
	}
	ns := int64(t.Hour)*3600_000_000_000 +
		int64(t.Minute)*60_000_000_000 +
		int64(sec)*1_000_000_000 +
		int64(t.Millisecond)*1_000_000 +
		int64(t.Microsecond)*1_000 +
		int64(t.Nanosecond)
	return ns
}

// isoTimeFromNanosecondOfDay is the inverse of nanosecondOfDay, assuming
// 0 <= ns < nsPerDayInt64.
func isoTimeFromNanosecondOfDay(ns int64) IsoTime {
	hour := ns / 3600_000_000_000
	ns -= hour * 3600_000_000_000
	minute := ns / 60_000_000_000
	ns -= minute * 60_000_000_000
	second := ns / 1_000_000_000
	ns -= second * 1_000_000_000
	milli := ns / 1_000_000
	ns -= milli * 1_000_000
	micro := ns / 1_000
	ns -= micro * 1_000
	return IsoTime{
		Hour: int(hour), Minute: int(minute), Second: int(second),
		Millisecond: int(milli), Microsecond: int(micro), Nanosecond: int(ns),
	}
}

// RegulateIsoTime clamps or rejects an out-of-range field set, the
// time-of-day analogue of RegulateIsoDate.
func RegulateIsoTime(hour, minute, second, milli, micro, nano int, overflow Overflow) (IsoTime, error) {
	fields := []struct {
		name     string
		v, max   int
	}{
		{"hour", hour, 23}, {"minute", minute, 59}, {"second", second, 59},
		{"millisecond", milli, 999}, {"microsecond", micro, 999}, {"nanosecond", nano, 999},
	}
	switch overflow {
	case Reject:
		for _, f := range fields {
			if f.v < 0 || f.v > f.max {
				return IsoTime{}, rangeErrorf("%s %d out of range", f.name, f.v)
			}
		}
		return IsoTime{Hour: hour, Minute: minute, Second: second, Millisecond: milli, Microsecond: micro, Nanosecond: nano}, nil
	case Constrain:
		clamp := func(v, max int) int {
			if v < 0 {
				return 0
			}
			if v > max {
				return max
			}
			return v
		}
		return IsoTime{
			Hour:        clamp(hour, 23),
			Minute:      clamp(minute, 59),
			Second:      clamp(second, 59),
			Millisecond: clamp(milli, 999),
			Microsecond: clamp(micro, 999),
			Nanosecond:  clamp(nano, 999),
		}, nil
	default:
		return IsoTime{}, typeErrorf("unknown overflow %d", int(overflow))
	}
}

// BalanceIsoTime folds a possibly out-of-range nanosecond offset (e.g.
// produced by adding a duration) back into a (daysCarried, IsoTime)
// pair, carrying whole days out the top exactly as the time-balancing
// step requires.
func BalanceIsoTime(ns int64) (daysCarried int64, t IsoTime) {
	days := ns / nsPerDayInt64
	rem := ns % nsPerDayInt64
	if rem < 0 {
		rem += nsPerDayInt64
		days--
	}
	return days, isoTimeFromNanosecondOfDay(rem)
}

// Compare orders two times of day.
func (t IsoTime) Compare(other IsoTime) int {
	a, b := t.nanosecondOfDay(), other.nanosecondOfDay()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (t IsoTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d%03d%03d", t.Hour, t.Minute, t.Second, t.Millisecond, t.Microsecond, t.Nanosecond)
}
