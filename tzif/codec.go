package tzif

import (
	"errors"
	"fmt"
	"io"
)

// LocalTimeRecord is a local time type resolved to the form tzdb
// consumes directly: a signed UT offset in seconds, a DST flag, and
// the designation string (sliced out of the file's shared designation
// pool and cut at its NUL terminator, which is not included).
type LocalTimeRecord struct {
	OffsetSeconds int
	IsDst         bool
	Designation   string
}

// Data is the flattened, pre-processed representation of a decoded
// TZif zone (spec.md §4.1: "we specify only the pre-processed
// in-memory representation consumed by the engine"). Transitions is
// always widened to 64-bit seconds regardless of the source version.
// TZString is empty when the file carries no POSIX tail rule (a V1
// file, or a V2+ file with an empty TZ string).
type Data struct {
	Version         Version
	Transitions     []int64
	TransitionTypes []uint8
	Records         []LocalTimeRecord
	TZString        string
}

// Decode reads a TZif file's bytes from r. A V1 file yields its block
// directly; a V2/V3/V4 file's mandatory leading V1 block is read and
// discarded in favor of the wider 64-bit block and POSIX tail that
// follow it, since every later operation in this module works in
// 64-bit seconds.
func Decode(r io.Reader) (Data, error) {
	h1, err := readHeader(r)
	if err != nil {
		return Data{}, fmt.Errorf("read header: %w", err)
	}

	v1, err := readDataBlock(r, h1, 4)
	if err != nil {
		return Data{}, fmt.Errorf("read v1 data block: %w", err)
	}

	if h1.Version == V1 {
		return flatten(V1, v1, ""), nil
	}

	h2, err := readHeader(r)
	if err != nil {
		return Data{}, fmt.Errorf("read v2+ header: %w", err)
	}
	if h2.Version != V2 && h2.Version != V3 && h2.Version != V4 {
		return Data{}, fmt.Errorf("unsupported version: %v", h2.Version)
	}

	v2, err := readDataBlock(r, h2, 8)
	if err != nil {
		return Data{}, fmt.Errorf("read v2+ data block: %w", err)
	}
	tz, err := readFooter(r)
	if err != nil {
		return Data{}, fmt.Errorf("read footer: %w", err)
	}

	return flatten(h2.Version, v2, tz), nil
}

func flatten(v Version, b rawBlock, tz string) Data {
	records := make([]LocalTimeRecord, len(b.records))
	for i, r := range b.records {
		records[i] = LocalTimeRecord{
			OffsetSeconds: int(r.Utoff),
			IsDst:         r.Dst,
			Designation:   designationAt(b.designations, int(r.Idx)),
		}
	}
	return Data{
		Version:         v,
		Transitions:     b.transitions,
		TransitionTypes: b.types,
		Records:         records,
		TZString:        tz,
	}
}

func designationAt(buf []byte, idx int) string {
	if idx < 0 || idx >= len(buf) {
		return ""
	}
	end := idx
	for end < len(buf) && buf[end] != 0 {
		end++
	}
	return string(buf[idx:end])
}

// Validate checks the build-time invariants spec.md §4.1 requires of
// a decoded zone: at least one local time type, transitions strictly
// ascending, and every transition type index addressing a real record.
func Validate(d Data) error {
	var errs []error
	if len(d.Records) == 0 {
		errs = append(errs, errors.New("zone has no local time type records"))
	}
	for i := 1; i < len(d.Transitions); i++ {
		if d.Transitions[i] <= d.Transitions[i-1] {
			errs = append(errs, fmt.Errorf("transition %d not strictly ascending: %d <= %d", i, d.Transitions[i], d.Transitions[i-1]))
		}
	}
	for i, t := range d.TransitionTypes {
		if int(t) >= len(d.Records) {
			errs = append(errs, fmt.Errorf("transition %d: type index %d out of range [0, %d)", i, t, len(d.Records)))
		}
	}
	if len(d.Transitions) != len(d.TransitionTypes) {
		errs = append(errs, fmt.Errorf("transition times (%d) and transition types (%d) counts differ", len(d.Transitions), len(d.TransitionTypes)))
	}
	return errors.Join(errs...)
}
