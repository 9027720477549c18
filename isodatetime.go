package tcore

import "math/big"

// IsoDateTime pairs an IsoDate with an IsoTime: the naive "local"
// representation every PlainDateTime and ZonedDateTime is built from
// before a time-zone offset is applied.
type IsoDateTime struct {
	Date IsoDate
	Time IsoTime
}

// IsValid reports whether both components are independently valid.
func (dt IsoDateTime) IsValid() bool {
	return dt.Date.IsValid() && dt.Time.IsValid()
}

// Compare orders two date-times without reference to any time zone.
func (dt IsoDateTime) Compare(other IsoDateTime) int {
	if c := dt.Date.Compare(other.Date); c != 0 {
		return c
	}
	return dt.Time.Compare(other.Time)
}

// sinceEpochNanoseconds returns dt's offset in nanoseconds from
// 1970-01-01T00:00:00 (naive, no zone applied), as a big.Int since the
// day count alone can exceed an int64's nanosecond range at the
// supported year span.
func (dt IsoDateTime) sinceEpochNanoseconds() *big.Int {
	days := dt.Date.jdn()
	ns := new(big.Int).Mul(big.NewInt(days), nsPerDay)
	ns.Add(ns, big.NewInt(dt.Time.nanosecondOfDay()))
	return ns
}

// isoDateTimeFromEpochNanoseconds is the inverse of
// sinceEpochNanoseconds, balancing an arbitrary nanosecond count back
// into a date-time pair.
func isoDateTimeFromEpochNanoseconds(ns *big.Int) IsoDateTime {
	days, rem := new(big.Int), new(big.Int)
	days.QuoRem(ns, nsPerDay, rem)
	if rem.Sign() < 0 {
		rem.Add(rem, nsPerDay)
		days.Sub(days, big.NewInt(1))
	}
	date := isoDateFromJDN(days.Int64())
	time := isoTimeFromNanosecondOfDay(rem.Int64())
	return IsoDateTime{Date: date, Time: time}
}

// AddDuration applies a Duration to dt with the given overflow: the
// calendar portion is added to the date component first, then the
// normalized time portion is added and any carried days are folded
// into the already-added date.
func (dt IsoDateTime) AddDuration(d Duration, overflow Overflow) (IsoDateTime, error) {
	nt, err := d.ToNormalized()
	if err != nil {
		return IsoDateTime{}, err
	}
	timeNs := dt.Time.nanosecondOfDay() + nt.Big().Int64()
	carryDays, newTime := BalanceIsoTime(timeNs)

	newDate, err := dt.Date.AddDate(int(d.Years), int(d.Months), int(d.Weeks), int(d.Days)+int(carryDays), overflow)
	if err != nil {
		return IsoDateTime{}, err
	}
	return IsoDateTime{Date: newDate, Time: newTime}, nil
}

// Until returns the normalized-time difference other - dt, ignoring
// calendar units entirely (a pure nanosecond count over the elapsed
// days), used by PlainDateTime.Until before calendar-unit rounding is
// applied in diff.go.
func (dt IsoDateTime) Until(other IsoDateTime) NormalizedTimeDuration {
	a := dt.sinceEpochNanoseconds()
	b := other.sinceEpochNanoseconds()
	return normalizedFromBig(new(big.Int).Sub(b, a))
}

func (dt IsoDateTime) String() string {
	return dt.Date.String() + "T" + dt.Time.String()
}
