package tcore

import (
	"math/big"
	"testing"
)

func TestNewEpochNanosecondsRangeCheck(t *testing.T) {
	ok := new(big.Int).Set(maxEpochNanoseconds)
	if _, err := NewEpochNanoseconds(ok); err != nil {
		t.Errorf("boundary value should be valid: %v", err)
	}

	tooFar := new(big.Int).Add(maxEpochNanoseconds, big.NewInt(1))
	if _, err := NewEpochNanoseconds(tooFar); err == nil {
		t.Error("expected range error past the boundary")
	}

	tooFarNeg := new(big.Int).Neg(tooFar)
	if _, err := NewEpochNanoseconds(tooFarNeg); err == nil {
		t.Error("expected range error past the negative boundary")
	}
}

func TestEpochNanosecondsSeconds(t *testing.T) {
	e := EpochNanosecondsFromSeconds(1700000000)
	sec, nsec := e.Seconds()
	if sec != 1700000000 || nsec != 0 {
		t.Errorf("got (%d, %d)", sec, nsec)
	}
}

func TestEpochNanosecondsSecondsFloorsNegativeSubSecond(t *testing.T) {
	e := EpochNanosecondsFromInt64(-500_000_000)
	sec, nsec := e.Seconds()
	if sec != -1 || nsec != 500_000_000 {
		t.Errorf("got (%d, %d), want (-1, 500000000)", sec, nsec)
	}
}

func TestEpochNanosecondsCompareAndSub(t *testing.T) {
	a := EpochNanosecondsFromInt64(1000)
	b := EpochNanosecondsFromInt64(2500)
	if a.Compare(b) >= 0 {
		t.Error("expected a < b")
	}
	diff := a.Sub(b)
	if diff.Big().Int64() != 1500 {
		t.Errorf("diff = %v, want 1500", diff.Big())
	}
}

func TestEpochNanosecondsAddOverflow(t *testing.T) {
	near := EpochNanoseconds{}
	nearBig, _ := NewEpochNanoseconds(maxEpochNanoseconds)
	near = nearBig
	hugeDur := normalizedFromBig(big.NewInt(1_000_000_000))
	if _, err := near.Add(hugeDur); err == nil {
		t.Error("expected range error adding past the max instant")
	}
}

func TestInstantAddAndUntil(t *testing.T) {
	i1 := NewInstant(EpochNanosecondsFromInt64(0))
	dur, err := NormalizedTimeDurationFromComponents(1, 0, 0, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	i2, err := i1.Add(dur)
	if err != nil {
		t.Fatal(err)
	}
	if got := i1.Until(i2).Big().Int64(); got != 3600_000_000_000 {
		t.Errorf("Until() = %d, want 1h in ns", got)
	}
}
