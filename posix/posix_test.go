package posix

import (
	"testing"

	"github.com/chronozone/tcore"
)

func TestParseUSRule(t *testing.T) {
	r, err := Parse("PST8PDT,M3.2.0,M11.1.0")
	if err != nil {
		t.Fatal(err)
	}
	if r.StdName != "PST" || r.StdOffset != -28800 {
		t.Errorf("std = (%q, %d), want (PST, -28800)", r.StdName, r.StdOffset)
	}
	if !r.HasDst || r.DstName != "PDT" || r.DstOffset != -25200 {
		t.Errorf("dst = (%v, %q, %d), want (true, PDT, -25200)", r.HasDst, r.DstName, r.DstOffset)
	}
	if r.Start.Form != MonthWeekDay || r.Start.Month != 3 || r.Start.Week != 2 || r.Start.Weekday != 0 {
		t.Errorf("start rule = %+v", r.Start)
	}
	if r.End.Form != MonthWeekDay || r.End.Month != 11 || r.End.Week != 1 || r.End.Weekday != 0 {
		t.Errorf("end rule = %+v", r.End)
	}
	if r.Start.TimeOfDaySeconds != 7200 {
		t.Errorf("default start time = %d, want 7200 (02:00)", r.Start.TimeOfDaySeconds)
	}
}

func TestParseNoDstRule(t *testing.T) {
	r, err := Parse("UTC0")
	if err != nil {
		t.Fatal(err)
	}
	if r.HasDst {
		t.Error("expected no DST component")
	}
	if r.StdOffset != 0 {
		t.Errorf("StdOffset = %d, want 0", r.StdOffset)
	}
}

func TestParseAngleBracketDesignation(t *testing.T) {
	r, err := Parse("<-03>3<-02>,M3.2.0/0,M11.1.0/0")
	if err != nil {
		t.Fatal(err)
	}
	if r.StdName != "-03" || r.DstName != "-02" {
		t.Errorf("names = (%q, %q)", r.StdName, r.DstName)
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Error("expected error for empty rule")
	}
}

func TestParseRejectsMissingDayRules(t *testing.T) {
	if _, err := Parse("PST8PDT"); err == nil {
		t.Error("expected error: DST designation without start/end rule")
	}
}

func TestTransitionsForYearMatchesKnownUSDates(t *testing.T) {
	r, err := Parse("PST8PDT,M3.2.0,M11.1.0")
	if err != nil {
		t.Fatal(err)
	}
	ts := r.TransitionsForYear(2025)
	if len(ts) != 2 {
		t.Fatalf("len(ts) = %d, want 2", len(ts))
	}
	start, end := ts[0], ts[1]
	if sec, _ := start.At.Seconds(); sec != 1741514400 {
		t.Errorf("DST start = %d, want 1741514400 (2025-03-09T10:00:00Z)", sec)
	}
	if !start.IsDst || start.Offset != -25200 {
		t.Errorf("DST start record = %+v", start)
	}
	if sec, _ := end.At.Seconds(); sec != 1762074000 {
		t.Errorf("DST end = %d, want 1762074000 (2025-11-02T09:00:00Z)", sec)
	}
	if end.IsDst || end.Offset != -28800 {
		t.Errorf("DST end record = %+v", end)
	}
}

func TestTransitionsForYearNoDstIsNil(t *testing.T) {
	r, err := Parse("UTC0")
	if err != nil {
		t.Fatal(err)
	}
	if ts := r.TransitionsForYear(2025); ts != nil {
		t.Errorf("TransitionsForYear = %v, want nil for a no-DST rule", ts)
	}
}

func TestOffsetAtStraddlesYearBoundary(t *testing.T) {
	r, err := Parse("PST8PDT,M3.2.0,M11.1.0")
	if err != nil {
		t.Fatal(err)
	}
	// Early January is standard time, governed by the prior year's DST
	// end transition, not the current year's DST start.
	jan := tcore.EpochNanosecondsFromSeconds(1735689600) // 2025-01-01T00:00:00Z
	offset, isDst, _ := r.OffsetAt(jan)
	if isDst || offset != -28800 {
		t.Errorf("OffsetAt(Jan 1) = (%d, %v), want (-28800, false)", offset, isDst)
	}

	july := tcore.EpochNanosecondsFromSeconds(1751328000) // 2025-07-01T00:00:00Z
	offset, isDst, _ = r.OffsetAt(july)
	if !isDst || offset != -25200 {
		t.Errorf("OffsetAt(Jul 1) = (%d, %v), want (-25200, true)", offset, isDst)
	}
}

func TestCandidatesAtGapAndOverlap(t *testing.T) {
	r, err := Parse("PST8PDT,M3.2.0,M11.1.0")
	if err != nil {
		t.Fatal(err)
	}
	gap := tcore.IsoDateTime{
		Date: tcore.IsoDate{Year: 2025, Month: 3, Day: 9},
		Time: tcore.IsoTime{Hour: 2, Minute: 30},
	}
	if got := r.CandidatesAt(gap); len(got) != 0 {
		t.Errorf("CandidatesAt(gap) = %v, want zero candidates", got)
	}

	overlap := tcore.IsoDateTime{
		Date: tcore.IsoDate{Year: 2025, Month: 11, Day: 2},
		Time: tcore.IsoTime{Hour: 1, Minute: 30},
	}
	if got := r.CandidatesAt(overlap); len(got) != 2 {
		t.Errorf("CandidatesAt(overlap) = %v, want two candidates", got)
	}
}

func TestDayOfWeekZeller(t *testing.T) {
	// 2025-03-01 and 2025-11-01 are both Saturdays.
	if got := dayOfWeek(2025, 3, 1); got != 6 {
		t.Errorf("dayOfWeek(2025-03-01) = %d, want 6 (Saturday)", got)
	}
	// 1970-01-01 was a Thursday.
	if got := dayOfWeek(1970, 1, 1); got != 4 {
		t.Errorf("dayOfWeek(1970-01-01) = %d, want 4 (Thursday)", got)
	}
}

func TestOccurrenceDateLastOccurrence(t *testing.T) {
	// Historical EU rule: last Sunday of March/October.
	start := DayRule{Form: MonthWeekDay, Month: 3, Week: 5, Weekday: 0, TimeOfDaySeconds: 3600}
	d := start.occurrenceDate(2025)
	if d.Month != 3 || d.Day != 30 {
		t.Errorf("last Sunday of March 2025 = %v, want 2025-03-30", d)
	}
}
