// Package posix parses and evaluates the POSIX TZ environment-variable
// rule format used as a TZif footer: "std offset dst offset,start,end",
// giving a formula for local-time offsets after the last recorded
// transition in a time zone's data.
package posix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chronozone/tcore"
)

// Rule is a parsed POSIX TZ tail rule.
type Rule struct {
	StdName   string
	StdOffset int // seconds east of UT
	DstName   string
	HasDst    bool
	DstOffset int // seconds east of UT; only meaningful if HasDst
	Start     DayRule
	End       DayRule
}

// DayForm selects which of the three POSIX day-specification grammars a
// DayRule uses.
type DayForm int

const (
	// Julian is "Jn": 1-365, never counting February 29.
	Julian DayForm = iota
	// DayOfYear is "n": 0-365, counting February 29 in leap years.
	DayOfYear
	// MonthWeekDay is "Mm.n.d": a weekday occurrence within a month.
	MonthWeekDay
)

// DayRule is one half (start or end) of a POSIX rule's transition
// specification, plus its time-of-day offset from local midnight.
type DayRule struct {
	Form DayForm

	// Julian/DayOfYear forms.
	Day int

	// MonthWeekDay form: month 1-12, week 1-5 (5 means "last"), weekday 0-6 (0=Sunday).
	Month   int
	Week    int
	Weekday int

	// TimeOfDaySeconds is the offset from local midnight the transition
	// occurs at, defaulting to 7200 (02:00) per POSIX when omitted.
	TimeOfDaySeconds int
}

// Parse parses the POSIX TZ tail rule grammar, following the same
// suffix-stripping + parseTimeOfDay decomposition go-tz's tzdata.go
// uses for the Olson AT/SAVE columns (the POSIX time-of-day grammar is
// the same fragment, minus the w/s/u/g/z reference suffixes which POSIX
// does not use on the /time offset).
func Parse(s string) (Rule, error) {
	if s == "" {
		return Rule{}, tcore.SyntaxErrorf("empty POSIX TZ rule")
	}

	var r Rule
	rest := s

	name, offsetStr, tail, err := splitNameAndOffset(rest)
	if err != nil {
		return Rule{}, err
	}
	r.StdName = name
	stdOffset, err := parseOffset(offsetStr)
	if err != nil {
		return Rule{}, err
	}
	r.StdOffset = stdOffset
	rest = tail

	if rest == "" {
		return r, nil
	}

	dstName, dstOffsetStr, tail2, err := splitNameAndOffset(rest)
	if err != nil {
		return Rule{}, err
	}
	r.HasDst = true
	r.DstName = dstName
	if dstOffsetStr == "" {
		r.DstOffset = r.StdOffset + 3600
	} else {
		dstOffset, err := parseOffset(dstOffsetStr)
		if err != nil {
			return Rule{}, err
		}
		r.DstOffset = dstOffset
	}
	rest = tail2

	if rest == "" {
		return Rule{}, tcore.SyntaxErrorf("POSIX rule %q has a DST designation but no start,end rule", s)
	}
	if !strings.HasPrefix(rest, ",") {
		return Rule{}, tcore.SyntaxErrorf("POSIX rule %q: expected ',' before start rule", s)
	}
	rest = rest[1:]

	parts := strings.SplitN(rest, ",", 2)
	if len(parts) != 2 {
		return Rule{}, tcore.SyntaxErrorf("POSIX rule %q: expected start,end day rules", s)
	}
	start, err := parseDayRule(parts[0])
	if err != nil {
		return Rule{}, err
	}
	end, err := parseDayRule(parts[1])
	if err != nil {
		return Rule{}, err
	}
	r.Start, r.End = start, end
	return r, nil
}

// splitNameAndOffset peels a leading designation name (quoted with
// angle brackets, or the bare letters-only form) and its following
// signed offset off s, returning whatever remains after the offset.
func splitNameAndOffset(s string) (name, offset, rest string, err error) {
	if s == "" {
		return "", "", "", tcore.SyntaxErrorf("expected zone designation")
	}

	if s[0] == '<' {
		end := strings.IndexByte(s, '>')
		if end < 0 {
			return "", "", "", tcore.SyntaxErrorf("unterminated <...> designation in %q", s)
		}
		name = s[1:end]
		s = s[end+1:]
	} else {
		i := 0
		for i < len(s) && isNameRune(s[i]) {
			i++
		}
		if i == 0 {
			return "", "", "", tcore.SyntaxErrorf("expected zone designation in %q", s)
		}
		name = s[:i]
		s = s[i:]
	}

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && (isDigit(s[i]) || s[i] == ':' || s[i] == '.') {
		i++
	}
	offset = s[:i]
	rest = s[i:]
	return name, offset, rest, nil
}

func isNameRune(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// parseOffset parses a POSIX signed [+-]hh[:mm[:ss]] offset. Note POSIX
// offsets are the number of seconds that must be *added* to local time
// to get UT, the opposite sign convention from the seconds-east-of-UT
// convention this package otherwise uses, so the sign is flipped here.
func parseOffset(s string) (int, error) {
	if s == "" {
		return 0, tcore.SyntaxErrorf("expected offset")
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	parts := strings.Split(s, ":")
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, tcore.SyntaxErrorf("invalid offset hours %q", parts[0])
	}
	minutes, seconds := 0, 0
	if len(parts) > 1 {
		if minutes, err = strconv.Atoi(parts[1]); err != nil {
			return 0, tcore.SyntaxErrorf("invalid offset minutes %q", parts[1])
		}
	}
	if len(parts) > 2 {
		if seconds, err = strconv.Atoi(parts[2]); err != nil {
			return 0, tcore.SyntaxErrorf("invalid offset seconds %q", parts[2])
		}
	}
	total := hours*3600 + minutes*60 + seconds
	// POSIX's sign is UT = local + offset; we store seconds-east-of-UT.
	if !neg {
		total = -total
	}
	return total, nil
}

func parseDayRule(s string) (DayRule, error) {
	timePart := ""
	dayPart := s
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		dayPart = s[:idx]
		timePart = s[idx+1:]
	}

	var r DayRule
	var err error
	switch {
	case strings.HasPrefix(dayPart, "J"):
		r.Form = Julian
		r.Day, err = strconv.Atoi(dayPart[1:])
		if err != nil || r.Day < 1 || r.Day > 365 {
			return DayRule{}, tcore.SyntaxErrorf("invalid Julian day %q", dayPart)
		}
	case strings.HasPrefix(dayPart, "M"):
		r.Form = MonthWeekDay
		fields := strings.Split(dayPart[1:], ".")
		if len(fields) != 3 {
			return DayRule{}, tcore.SyntaxErrorf("invalid Mm.n.d rule %q", dayPart)
		}
		if r.Month, err = strconv.Atoi(fields[0]); err != nil || r.Month < 1 || r.Month > 12 {
			return DayRule{}, tcore.SyntaxErrorf("invalid month in %q", dayPart)
		}
		if r.Week, err = strconv.Atoi(fields[1]); err != nil || r.Week < 1 || r.Week > 5 {
			return DayRule{}, tcore.SyntaxErrorf("invalid week in %q", dayPart)
		}
		if r.Weekday, err = strconv.Atoi(fields[2]); err != nil || r.Weekday < 0 || r.Weekday > 6 {
			return DayRule{}, tcore.SyntaxErrorf("invalid weekday in %q", dayPart)
		}
	default:
		r.Form = DayOfYear
		if r.Day, err = strconv.Atoi(dayPart); err != nil || r.Day < 0 || r.Day > 365 {
			return DayRule{}, tcore.SyntaxErrorf("invalid day-of-year rule %q", dayPart)
		}
	}

	r.TimeOfDaySeconds = 2 * 3600
	if timePart != "" {
		secs, err := parseTimeOfDay(timePart)
		if err != nil {
			return DayRule{}, err
		}
		r.TimeOfDaySeconds = secs
	}
	return r, nil
}

// parseTimeOfDay parses the POSIX hh[:mm[:ss]] time-of-day grammar
// (the fractional-second and 260:00-style overflow forms go-tz's
// tzdata.go `parseTimeOfDay` accepts for Olson AT columns; POSIX's own
// grammar is the same shape without a suffix).
func parseTimeOfDay(s string) (int, error) {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	parts := strings.Split(s, ":")
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, tcore.SyntaxErrorf("invalid time-of-day hours %q", parts[0])
	}
	minutes, seconds := 0, 0
	if len(parts) > 1 {
		if minutes, err = strconv.Atoi(parts[1]); err != nil {
			return 0, tcore.SyntaxErrorf("invalid time-of-day minutes %q", parts[1])
		}
	}
	if len(parts) > 2 {
		if seconds, err = strconv.Atoi(parts[2]); err != nil {
			return 0, tcore.SyntaxErrorf("invalid time-of-day seconds %q", parts[2])
		}
	}
	total := hours*3600 + minutes*60 + seconds
	if neg {
		total = -total
	}
	return total, nil
}

func (r Rule) String() string {
	if !r.HasDst {
		return fmt.Sprintf("%s%d", r.StdName, -r.StdOffset/3600)
	}
	return fmt.Sprintf("%s%d%s,%v,%v", r.StdName, -r.StdOffset/3600, r.DstName, r.Start, r.End)
}

func (d DayRule) String() string {
	switch d.Form {
	case Julian:
		return fmt.Sprintf("J%d", d.Day)
	case MonthWeekDay:
		return fmt.Sprintf("M%d.%d.%d", d.Month, d.Week, d.Weekday)
	default:
		return fmt.Sprintf("%d", d.Day)
	}
}
