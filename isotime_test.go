package tcore

import "testing"

func TestIsoTimeValidity(t *testing.T) {
	ok := IsoTime{Hour: 23, Minute: 59, Second: 59, Nanosecond: 999}
	if !ok.IsValid() {
		t.Error("expected valid")
	}
	bad := IsoTime{Hour: 24}
	if bad.IsValid() {
		t.Error("expected invalid hour 24")
	}
}

func TestBalanceIsoTimeCarry(t *testing.T) {
	days, tm := BalanceIsoTime(nsPerDayInt64 + 3661_000_000_000)
	if days != 1 {
		t.Errorf("days = %d, want 1", days)
	}
	want := IsoTime{Hour: 1, Minute: 1, Second: 1}
	if tm != want {
		t.Errorf("tm = %v, want %v", tm, want)
	}
}

func TestBalanceIsoTimeNegative(t *testing.T) {
	days, tm := BalanceIsoTime(-1_000_000_000) // -1 second
	if days != -1 {
		t.Errorf("days = %d, want -1", days)
	}
	want := IsoTime{Hour: 23, Minute: 59, Second: 59}
	if tm != want {
		t.Errorf("tm = %v, want %v", tm, want)
	}
}

func TestRegulateIsoTimeConstrain(t *testing.T) {
	got, err := RegulateIsoTime(25, 70, 70, 0, 0, 0, Constrain)
	if err != nil {
		t.Fatal(err)
	}
	want := IsoTime{Hour: 23, Minute: 59, Second: 59}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRegulateIsoTimeReject(t *testing.T) {
	_, err := RegulateIsoTime(25, 0, 0, 0, 0, 0, Reject)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestIsoTimeCompare(t *testing.T) {
	a := IsoTime{Hour: 1}
	b := IsoTime{Hour: 2}
	if a.Compare(b) >= 0 {
		t.Error("expected a < b")
	}
	if a.Compare(a) != 0 {
		t.Error("expected equal")
	}
}
