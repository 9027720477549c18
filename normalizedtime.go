package tcore

import "math/big"

// NormalizedTimeDuration is the canonical exact-time representation of
// the hours-through-nanoseconds portion of a Duration: a single signed
// nanosecond count. Carried as a big.Int for the same
// reason EpochNanoseconds is: the valid range exceeds an int64 once
// days are folded in (|days|*86400e9 + ... must fit +-2^53 seconds of
// a Duration, which itself can exceed int64 nanoseconds).
type NormalizedTimeDuration struct {
	v big.Int
}

// maxNormalizedSeconds is the +-2^53 second bound places on a
// Duration's total time-field magnitude.
var maxNormalizedSeconds = new(big.Int).Lsh(big.NewInt(1), 53)

var maxNormalizedNanoseconds = new(big.Int).Mul(maxNormalizedSeconds, big.NewInt(1_000_000_000))

func normalizedFromBig(ns *big.Int) NormalizedTimeDuration {
	var d NormalizedTimeDuration
	d.v.Set(ns)
	return d
}

// NormalizedTimeDurationFromComponents computes ToNormalized(time_fields)
// a weighted sum of the time-valued Duration fields,
// checked against the +-2^53-second envelope.
func NormalizedTimeDurationFromComponents(hours, minutes, seconds, milliseconds, microseconds, nanoseconds int64) (NormalizedTimeDuration, error) {
	total := big.NewInt(hours)
	total.Mul(total, big.NewInt(3600))
	total.Add(total, new(big.Int).Mul(big.NewInt(minutes), big.NewInt(60)))
	total.Add(total, big.NewInt(seconds))

	ns := new(big.Int).Mul(total, big.NewInt(1_000_000_000))
	ns.Add(ns, new(big.Int).Mul(big.NewInt(milliseconds), big.NewInt(1_000_000)))
	ns.Add(ns, new(big.Int).Mul(big.NewInt(microseconds), big.NewInt(1_000)))
	ns.Add(ns, big.NewInt(nanoseconds))

	if ns.CmpAbs(maxNormalizedNanoseconds) > 0 {
		return NormalizedTimeDuration{}, rangeErrorf("normalized time duration %s exceeds +-2^53 seconds", ns)
	}
	return normalizedFromBig(ns), nil
}

// Big returns a copy of the underlying nanosecond count.
func (d NormalizedTimeDuration) Big() *big.Int { return new(big.Int).Set(&d.v) }

// Sign returns -1, 0, or +1.
func (d NormalizedTimeDuration) Sign() int { return d.v.Sign() }

// Add returns d + other, re-checking the +-2^53-second envelope.
func (d NormalizedTimeDuration) Add(other NormalizedTimeDuration) (NormalizedTimeDuration, error) {
	sum := new(big.Int).Add(&d.v, &other.v)
	if sum.CmpAbs(maxNormalizedNanoseconds) > 0 {
		return NormalizedTimeDuration{}, rangeErrorf("normalized time duration overflow")
	}
	return normalizedFromBig(sum), nil
}

// Negate returns -d.
func (d NormalizedTimeDuration) Negate() NormalizedTimeDuration {
	return normalizedFromBig(new(big.Int).Neg(&d.v))
}

// TimeFields is the balanced (hours, minutes, seconds, ms, us, ns) form
// produced by FromNormalized.
type TimeFields struct {
	Hours        int64
	Minutes      int64
	Seconds      int64
	Milliseconds int64
	Microseconds int64
	Nanoseconds  int64
}

// FromNormalized peels whole days off d when largestUnit <= Day, then
// balances the remainder into hours-through-nanoseconds down to
// largestUnit. Units above largestUnit remain folded into
// the next-larger field returned (e.g. largestUnit=Minute means Hours
// is always zero and excess is carried into Minutes).
func (d NormalizedTimeDuration) FromNormalized(largestUnit Unit) (days int64, fields TimeFields) {
	rem := new(big.Int).Set(&d.v)

	if largestUnit <= UnitDay {
		dayNs := new(big.Int).Set(nsPerDay)
		q, r := new(big.Int), new(big.Int)
		q.QuoRem(rem, dayNs, r)
		days = q.Int64()
		rem = r
	}

	neg := rem.Sign() < 0
	abs := new(big.Int).Abs(rem)

	units := []struct {
		unit  Unit
		nsper int64
	}{
		{UnitHour, 3600_000_000_000},
		{UnitMinute, 60_000_000_000},
		{UnitSecond, 1_000_000_000},
		{UnitMillisecond, 1_000_000},
		{UnitMicrosecond, 1_000},
		{UnitNanosecond, 1},
	}

	values := make(map[Unit]int64, len(units))
	for _, u := range units {
		if u.unit < largestUnit {
			values[u.unit] = 0
			continue
		}
		per := big.NewInt(u.nsper)
		q, r := new(big.Int), new(big.Int)
		q.QuoRem(abs, per, r)
		values[u.unit] = q.Int64()
		abs = r
	}

	sign := int64(1)
	if neg {
		sign = -1
	}
	fields = TimeFields{
		Hours:        sign * values[UnitHour],
		Minutes:      sign * values[UnitMinute],
		Seconds:      sign * values[UnitSecond],
		Milliseconds: sign * values[UnitMillisecond],
		Microseconds: sign * values[UnitMicrosecond],
		Nanoseconds:  sign * values[UnitNanosecond],
	}
	return days, fields
}
