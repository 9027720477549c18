package tcore

import "math/big"

// nsPerDay is the number of nanoseconds in one SI day at the UTC level
// (non-goals: no leap-second awareness, 86400 s/day always).
var nsPerDay = big.NewInt(86400 * 1_000_000_000)

// maxEpochDays bounds EpochNanoseconds to +-100,000,000 days from the
// Unix epoch.
const maxEpochDays = 100_000_000

// maxEpochNanoseconds is the inclusive bound +-8.64e21 ns (100,000,000
// days) that every instant-valued operation checks against.
var maxEpochNanoseconds = new(big.Int).Mul(big.NewInt(maxEpochDays), nsPerDay)

// EpochNanoseconds is a signed count of nanoseconds since
// 1970-01-01T00:00:00Z, representing a point on the UTC timeline. The
// valid range is wider than an int64 , so the value is carried
// as a big.Int the way go-chrono's OffsetDateTime carries its epoch-like
// field.
type EpochNanoseconds struct {
	v big.Int
}

// NewEpochNanoseconds constructs an EpochNanoseconds from a big.Int
// nanosecond count, failing with Range if it falls outside the valid
// instant range.
func NewEpochNanoseconds(ns *big.Int) (EpochNanoseconds, error) {
	if ns.CmpAbs(maxEpochNanoseconds) > 0 {
		return EpochNanoseconds{}, rangeErrorf("epoch nanoseconds %s exceeds +-%s", ns, maxEpochNanoseconds)
	}
	var e EpochNanoseconds
	e.v.Set(ns)
	return e, nil
}

// EpochNanosecondsFromInt64 constructs an EpochNanoseconds from a value
// that fits in an int64; this can never exceed the valid range, so no
// error is returned.
func EpochNanosecondsFromInt64(ns int64) EpochNanoseconds {
	var e EpochNanoseconds
	e.v.SetInt64(ns)
	return e
}

// EpochNanosecondsFromSeconds constructs an EpochNanoseconds from whole
// epoch seconds, as used throughout the time-zone engine's transition
// tables.
func EpochNanosecondsFromSeconds(sec int64) EpochNanoseconds {
	var e EpochNanoseconds
	e.v.Mul(big.NewInt(sec), big.NewInt(1_000_000_000))
	return e
}

// Big returns the underlying nanosecond count as a big.Int. The
// returned value is a copy; mutating it does not affect e.
func (e EpochNanoseconds) Big() *big.Int {
	return new(big.Int).Set(&e.v)
}

// Seconds returns the floor-divided whole seconds and the remaining
// nanoseconds within that second; the remainder is always in
// [0, 999999999], so a negative e with a fractional part yields the
// next-lower whole second.
func (e EpochNanoseconds) Seconds() (sec int64, nsec int64) {
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(&e.v, big.NewInt(1_000_000_000), r)
	if r.Sign() < 0 {
		q.Sub(q, big.NewInt(1))
		r.Add(r, big.NewInt(1_000_000_000))
	}
	return q.Int64(), r.Int64()
}

// Compare returns -1, 0, or +1 as e is less than, equal to, or greater
// than other.
func (e EpochNanoseconds) Compare(other EpochNanoseconds) int {
	return e.v.Cmp(&other.v)
}

// Add returns e + ns, failing with Range on overflow of the valid
// instant range.
func (e EpochNanoseconds) Add(ns NormalizedTimeDuration) (EpochNanoseconds, error) {
	sum := new(big.Int).Add(&e.v, ns.Big())
	return NewEpochNanoseconds(sum)
}

// Sub returns the signed nanosecond difference other - e, as a
// NormalizedTimeDuration.
func (e EpochNanoseconds) Sub(other EpochNanoseconds) NormalizedTimeDuration {
	diff := new(big.Int).Sub(&other.v, &e.v)
	return normalizedFromBig(diff)
}

func (e EpochNanoseconds) String() string {
	return e.v.String()
}

// Instant is the public value type wrapping a validated
// EpochNanoseconds, representing a point on the UTC timeline.
type Instant struct {
	ns EpochNanoseconds
}

// NewInstant wraps ns without a further range check; ns built through
// NewEpochNanoseconds has already been checked.
func NewInstant(ns EpochNanoseconds) Instant {
	return Instant{ns: ns}
}

// EpochNanoseconds returns the underlying epoch value.
func (i Instant) EpochNanoseconds() EpochNanoseconds { return i.ns }

// Compare orders two instants on the UTC timeline.
func (i Instant) Compare(other Instant) int { return i.ns.Compare(other.ns) }

// Add adds a purely exact-time duration (direct case).
func (i Instant) Add(d NormalizedTimeDuration) (Instant, error) {
	ns, err := i.ns.Add(d)
	if err != nil {
		return Instant{}, err
	}
	return Instant{ns: ns}, nil
}

// Until returns the exact-time difference other - i
func (i Instant) Until(other Instant) NormalizedTimeDuration {
	return i.ns.Sub(other.ns)
}
