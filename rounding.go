package tcore

import "math/big"

// RoundingMode selects how a quotient's remainder is resolved, the nine
// modes spec.md §4.7 lists.
type RoundingMode int

const (
	RoundCeil RoundingMode = iota
	RoundFloor
	RoundExpand
	RoundTrunc
	RoundHalfCeil
	RoundHalfFloor
	RoundHalfExpand
	RoundHalfTrunc
	RoundHalfEven
)

func (m RoundingMode) String() string {
	switch m {
	case RoundCeil:
		return "Ceil"
	case RoundFloor:
		return "Floor"
	case RoundExpand:
		return "Expand"
	case RoundTrunc:
		return "Trunc"
	case RoundHalfCeil:
		return "HalfCeil"
	case RoundHalfFloor:
		return "HalfFloor"
	case RoundHalfExpand:
		return "HalfExpand"
	case RoundHalfTrunc:
		return "HalfTrunc"
	case RoundHalfEven:
		return "HalfEven"
	default:
		return "RoundingMode(?)"
	}
}

// ResolvedRoundingOptions bundles the inputs a rounding operation needs
// once defaults have been applied: spec.md §4.7's
// ResolvedRoundingOptions record.
type ResolvedRoundingOptions struct {
	SmallestUnit Unit
	LargestUnit  Unit
	Increment    int64
	Mode         RoundingMode
}

// RoundingAnchor is the reference point relative-duration rounding
// needs for smallest_unit >= Week (spec.md §4.7): Add applies a
// Duration the way the concrete anchor type (PlainDate, PlainDateTime,
// or ZonedDateTime) defines addition, and EpochNanoseconds reports the
// resulting position on a single comparable timeline so the two
// candidate endpoints can be measured against the true endpoint.
type RoundingAnchor struct {
	Add              func(d Duration, overflow Overflow) (RoundingAnchor, error)
	EpochNanoseconds func() EpochNanoseconds
}

// unitLengthNanoseconds returns the fixed nanosecond length of a Day
// (for Day) or a time unit Hour through Nanosecond to use as the
// rounding increment granule.
func unitLengthNanoseconds(u Unit) *big.Int {
	switch u {
	case UnitDay:
		return new(big.Int).Set(nsPerDay)
	case UnitHour:
		return big.NewInt(3600_000_000_000)
	case UnitMinute:
		return big.NewInt(60_000_000_000)
	case UnitSecond:
		return big.NewInt(1_000_000_000)
	case UnitMillisecond:
		return big.NewInt(1_000_000)
	case UnitMicrosecond:
		return big.NewInt(1_000)
	default:
		return big.NewInt(1)
	}
}

// roundBigInt rounds q to the nearest multiple of increment per mode,
// implementing the "decompose, translate mode+sign to an
// unsigned-direction mode, apply" procedure spec.md §4.7 describes.
func roundBigInt(q, increment *big.Int, mode RoundingMode) *big.Int {
	if increment.Sign() == 0 {
		increment = big.NewInt(1)
	}
	sign := q.Sign()
	absQ := new(big.Int).Abs(q)
	k, r := new(big.Int), new(big.Int)
	k.QuoRem(absQ, increment, r)

	roundDown := func() *big.Int { return new(big.Int).Mul(k, increment) }
	roundUp := func() *big.Int { return new(big.Int).Mul(new(big.Int).Add(k, big.NewInt(1)), increment) }

	var resultAbs *big.Int
	if r.Sign() == 0 {
		resultAbs = roundDown()
	} else {
		twiceR := new(big.Int).Lsh(r, 1)
		cmp := twiceR.Cmp(increment) // <0: below half, ==0: exactly half, >0: above half

		up := false
		switch mode {
		case RoundTrunc:
			up = false
		case RoundExpand:
			up = true
		case RoundCeil:
			up = sign >= 0
		case RoundFloor:
			up = sign < 0
		case RoundHalfTrunc:
			up = cmp > 0
		case RoundHalfExpand:
			up = cmp >= 0
		case RoundHalfCeil:
			if sign >= 0 {
				up = cmp >= 0
			} else {
				up = cmp > 0
			}
		case RoundHalfFloor:
			if sign >= 0 {
				up = cmp > 0
			} else {
				up = cmp >= 0
			}
		case RoundHalfEven:
			switch {
			case cmp < 0:
				up = false
			case cmp > 0:
				up = true
			default:
				up = k.Bit(0) == 1 // tie: round to the even neighbor
			}
		}
		if up {
			resultAbs = roundUp()
		} else {
			resultAbs = roundDown()
		}
	}

	if sign < 0 {
		return new(big.Int).Neg(resultAbs)
	}
	return resultAbs
}

// RoundDuration rounds d per opts, relative to anchor when
// smallest_unit requires one (spec.md §4.7). anchor may be nil when
// smallest_unit <= Day, since exact-time rounding needs no reference
// point.
func RoundDuration(d Duration, anchor *RoundingAnchor, opts ResolvedRoundingOptions) (Duration, error) {
	if opts.LargestUnit > opts.SmallestUnit {
		return Duration{}, rangeErrorf("largest_unit %s is finer than smallest_unit %s", opts.LargestUnit, opts.SmallestUnit)
	}
	if opts.Increment < 1 {
		return Duration{}, rangeErrorf("rounding increment %d must be >= 1", opts.Increment)
	}
	if opts.SmallestUnit == UnitNanosecond && opts.Increment == 1 {
		return d, nil
	}

	if opts.SmallestUnit <= UnitWeek {
		if anchor == nil {
			return Duration{}, typeErrorf("rounding to %s requires an anchor", opts.SmallestUnit)
		}
		return roundRelativeDuration(d, *anchor, opts)
	}
	return roundExactDuration(d, opts)
}

// roundExactDuration implements the smallest_unit <= Day branch: the
// exact-time portion (including any whole days already present) is
// rounded as a single i128 against increment*unit_length, then
// re-balanced down to largest_unit.
func roundExactDuration(d Duration, opts ResolvedRoundingOptions) (Duration, error) {
	nt, err := d.ToNormalized()
	if err != nil {
		return Duration{}, err
	}
	totalNs := new(big.Int).Add(nt.Big(), new(big.Int).Mul(big.NewInt(d.Days), nsPerDay))

	unitNs := unitLengthNanoseconds(opts.SmallestUnit)
	increment := new(big.Int).Mul(big.NewInt(opts.Increment), unitNs)
	rounded := roundBigInt(totalNs, increment, opts.Mode)

	days, fields := normalizedFromBig(rounded).FromNormalized(opts.LargestUnit)
	return Duration{
		Years: d.Years, Months: d.Months, Weeks: d.Weeks, Days: days,
		Hours: fields.Hours, Minutes: fields.Minutes, Seconds: fields.Seconds,
		Milliseconds: fields.Milliseconds, Microseconds: fields.Microseconds, Nanoseconds: fields.Nanoseconds,
	}, nil
}

// truncateToUnit zeros every field finer than unit and rounds the
// unit-level field itself down toward zero to a multiple of increment
// (both fields share d's sign by the valid-duration invariant).
func truncateToUnit(d Duration, unit Unit, increment int64) Duration {
	f := d.fields()
	var out [10]int64
	for u := UnitYear; u < unit; u++ {
		out[u] = f[u]
	}
	out[unit] = (f[unit] / increment) * increment
	return durationFromFields(out)
}

// bumpUnit returns truncateToUnit's result with the unit-level field
// advanced by one increment in d's direction.
func bumpUnit(d Duration, unit Unit, increment int64) Duration {
	r1 := truncateToUnit(d, unit, increment)
	f := r1.fields()
	sign := int64(1)
	if d.Sign() < 0 {
		sign = -1
	}
	f[unit] += sign * increment
	return durationFromFields(f)
}

func durationFromFields(f [10]int64) Duration {
	return Duration{
		Years: f[0], Months: f[1], Weeks: f[2], Days: f[3],
		Hours: f[4], Minutes: f[5], Seconds: f[6],
		Milliseconds: f[7], Microseconds: f[8], Nanoseconds: f[9],
	}
}

// roundRelativeDuration implements the smallest_unit >= Week branch:
// "relative duration rounding" per spec.md §4.7 -- compute anchor+r1
// (duration truncated down to smallest_unit) and anchor+r2 (one more
// smallest_unit), measure where the true endpoint anchor+d falls
// between them, and pick r1 or r2 by mode.
func roundRelativeDuration(d Duration, anchor RoundingAnchor, opts ResolvedRoundingOptions) (Duration, error) {
	r1 := truncateToUnit(d, opts.SmallestUnit, opts.Increment)
	r2 := bumpUnit(d, opts.SmallestUnit, opts.Increment)

	destAnchor, err := anchor.Add(d, Constrain)
	if err != nil {
		return Duration{}, err
	}
	// Finer fields of d can hold whole smallest units (45 days holds one
	// month), so step r1 and r2 forward until r2 lies past the endpoint.
	for {
		endAnchor, err := anchor.Add(r2, Constrain)
		if err != nil {
			return Duration{}, err
		}
		if d.Sign() == 0 || endAnchor.EpochNanoseconds().Compare(destAnchor.EpochNanoseconds())*d.Sign() > 0 {
			break
		}
		r1, r2 = r2, bumpUnit(r2, opts.SmallestUnit, opts.Increment)
	}
	startAnchor, err := anchor.Add(r1, Constrain)
	if err != nil {
		return Duration{}, err
	}
	endAnchor, err := anchor.Add(r2, Constrain)
	if err != nil {
		return Duration{}, err
	}

	destNs := startAnchor.EpochNanoseconds().Sub(destAnchor.EpochNanoseconds())
	totalNs := startAnchor.EpochNanoseconds().Sub(endAnchor.EpochNanoseconds())

	numerator := new(big.Int).Abs(destNs.Big())
	denominator := new(big.Int).Abs(totalNs.Big())
	if denominator.Sign() == 0 {
		return r1, nil
	}

	k := new(big.Int).Quo(truncatedUnitCount(r1, opts), big.NewInt(opts.Increment))
	up := chooseUpper(numerator, denominator, opts.Mode, d.Sign(), k.Bit(0) == 1)
	if up {
		return r2, nil
	}
	return r1, nil
}

// truncatedUnitCount returns the magnitude of d's field at
// opts.SmallestUnit, used only to recover tie-breaking parity for
// HalfEven.
func truncatedUnitCount(d Duration, opts ResolvedRoundingOptions) *big.Int {
	f := d.fields()
	v := f[opts.SmallestUnit]
	if v < 0 {
		v = -v
	}
	return big.NewInt(v)
}

// chooseUpper decides, given the true endpoint's fractional position
// (numerator/denominator, both non-negative) between the lower and
// upper candidate, whether to pick the upper one.
func chooseUpper(numerator, denominator *big.Int, mode RoundingMode, sign int, lowerIsOdd bool) bool {
	if numerator.Sign() == 0 {
		return false
	}
	twice := new(big.Int).Lsh(numerator, 1)
	cmp := twice.Cmp(denominator)

	switch mode {
	case RoundTrunc:
		return false
	case RoundExpand:
		return true
	case RoundCeil:
		return sign >= 0
	case RoundFloor:
		return sign < 0
	case RoundHalfTrunc:
		return cmp > 0
	case RoundHalfExpand:
		return cmp >= 0
	case RoundHalfCeil:
		if sign >= 0 {
			return cmp >= 0
		}
		return cmp > 0
	case RoundHalfFloor:
		if sign >= 0 {
			return cmp > 0
		}
		return cmp >= 0
	case RoundHalfEven:
		switch {
		case cmp < 0:
			return false
		case cmp > 0:
			return true
		default:
			return lowerIsOdd
		}
	default:
		return false
	}
}
