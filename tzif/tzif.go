// Package tzif decodes the RFC 8536 TZif transition-table format
// (https://datatracker.ietf.org/doc/html/rfc8536) down to the flattened
// shape tzdb.FromTZif builds a Zone from: transition instants, the
// local time type each selects, the resolved type table, and the
// trailing POSIX rule string. Leap-second records and the
// standard/wall and UT/local indicator arrays are read only far enough
// to skip their bytes — spec.md's non-goals exclude leap-second
// awareness, and those indicator arrays exist to help the zic/zdump
// toolchain reconstruct original rule text, a concern outside this
// core's "pre-processed in-memory representation" boundary (spec.md
// §4.1). There is no encode side: the core neither reads nor writes
// files on its own (spec.md §6), and nothing here ever needs to
// reproduce a TZif file byte-for-byte.
package tzif

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Version is the one-octet TZif format version. V1 files use 32-bit
// transition times; V2 and later prepend a V1 block (for V1-only
// readers) and then repeat the data with 64-bit transition times plus
// a POSIX tail string.
type Version byte

const (
	V1 Version = 0x00
	V2 Version = 0x32 // '2'
	V3 Version = 0x33 // '3'
	V4 Version = 0x34 // '4'
)

func (v Version) String() string {
	switch v {
	case V1:
		return "V1 (0x00)"
	case V2:
		return "V2 (0x32)"
	case V3:
		return "V3 (0x33)"
	case V4:
		return "V4 (0x34)"
	default:
		return fmt.Sprintf("<undefined version (%d)>", v)
	}
}

var (
	order = binary.BigEndian
	magic = [4]byte{'T', 'Z', 'i', 'f'}
)

// header is the fixed 44-octet TZif header: magic, version, 15
// reserved bytes, and six record counts. It exists only to drive how
// many bytes readDataBlock must consume next; callers never see it
// directly — Decode flattens everything into Data.
type header struct {
	Version  Version
	Reserved [15]byte
	Isutcnt  uint32
	Isstdcnt uint32
	Leapcnt  uint32
	Timecnt  uint32
	Typecnt  uint32
	Charcnt  uint32
}

func readHeader(r io.Reader) (header, error) {
	var h header
	var m [4]byte
	if err := binary.Read(r, order, &m); err != nil {
		return h, fmt.Errorf("reading magic: %w", err)
	}
	if m != magic {
		return h, fmt.Errorf("invalid magic: %v", m)
	}
	if err := binary.Read(r, order, &h); err != nil {
		return h, fmt.Errorf("reading header fields: %w", err)
	}
	return h, nil
}

// localTimeTypeRecord is the fixed six-octet local time type record:
// a signed UT offset in seconds, a DST flag, and an index into the
// designation byte pool.
type localTimeTypeRecord struct {
	Utoff int32
	Dst   bool
	Idx   uint8
}

// rawBlock holds one data block's contents after the fixed- and
// variable-width sections have been read, before designation indices
// are resolved to strings.
type rawBlock struct {
	transitions  []int64
	types        []uint8
	records      []localTimeTypeRecord
	designations []byte
}

// readDataBlock reads one V1 or V2+ data block per h's counts.
// timeWidth is 4 for a V1 block's 32-bit transition times, 8 for a
// V2+ block's 64-bit times. Leap-second records and the
// standard/wall and UT/local indicator arrays that follow the
// designation pool are skipped rather than decoded; see the package
// doc comment for why.
func readDataBlock(r io.Reader, h header, timeWidth int) (rawBlock, error) {
	var b rawBlock

	if h.Timecnt > 0 {
		b.transitions = make([]int64, h.Timecnt)
		for i := range b.transitions {
			v, err := readTransitionTime(r, timeWidth)
			if err != nil {
				return b, fmt.Errorf("reading transition time %d: %w", i, err)
			}
			b.transitions[i] = v
		}
		b.types = make([]uint8, h.Timecnt)
		if err := binary.Read(r, order, &b.types); err != nil {
			return b, fmt.Errorf("reading transition types: %w", err)
		}
	}

	if h.Typecnt == 0 {
		return b, fmt.Errorf("typecnt must not be zero")
	}
	b.records = make([]localTimeTypeRecord, h.Typecnt)
	for i := range b.records {
		if err := binary.Read(r, order, &b.records[i]); err != nil {
			return b, fmt.Errorf("reading local time type record %d: %w", i, err)
		}
	}

	if h.Charcnt == 0 {
		return b, fmt.Errorf("charcnt must not be zero")
	}
	b.designations = make([]byte, h.Charcnt)
	if _, err := io.ReadFull(r, b.designations); err != nil {
		return b, fmt.Errorf("reading time zone designations: %w", err)
	}
	if b.designations[len(b.designations)-1] != 0 {
		return b, fmt.Errorf("time zone designations missing NUL terminator")
	}

	leapWidth := timeWidth + 4
	if err := discard(r, int64(h.Leapcnt)*int64(leapWidth)); err != nil {
		return b, fmt.Errorf("skipping leap second records: %w", err)
	}

	if h.Isstdcnt != 0 && h.Isstdcnt != h.Typecnt {
		return b, fmt.Errorf("isstdcnt (%d) must be 0 or equal to typecnt (%d)", h.Isstdcnt, h.Typecnt)
	}
	if err := discard(r, int64(h.Isstdcnt)); err != nil {
		return b, fmt.Errorf("skipping standard/wall indicators: %w", err)
	}

	if h.Isutcnt != 0 && h.Isutcnt != h.Typecnt {
		return b, fmt.Errorf("isutcnt (%d) must be 0 or equal to typecnt (%d)", h.Isutcnt, h.Typecnt)
	}
	if err := discard(r, int64(h.Isutcnt)); err != nil {
		return b, fmt.Errorf("skipping UT/local indicators: %w", err)
	}

	return b, nil
}

func readTransitionTime(r io.Reader, width int) (int64, error) {
	switch width {
	case 4:
		var v int32
		err := binary.Read(r, order, &v)
		return int64(v), err
	case 8:
		var v int64
		err := binary.Read(r, order, &v)
		return v, err
	default:
		return 0, fmt.Errorf("unsupported transition time width %d", width)
	}
}

func discard(r io.Reader, n int64) error {
	if n == 0 {
		return nil
	}
	_, err := io.CopyN(io.Discard, r, n)
	return err
}

// readFooter reads the POSIX tail rule string bracketed by newlines
// that follows a V2+ data block. Returns "" if the string itself is
// empty (an empty TZ string is valid and means "no tail rule").
func readFooter(r io.Reader) (string, error) {
	var nl [1]byte
	if _, err := io.ReadFull(r, nl[:]); err != nil {
		return "", fmt.Errorf("reading opening newline: %w", err)
	}
	if nl[0] != '\n' {
		return "", fmt.Errorf("expected newline, got %#x", nl[0])
	}
	var tz []byte
	for {
		if _, err := io.ReadFull(r, nl[:]); err != nil {
			return "", fmt.Errorf("reading TZ string: %w", err)
		}
		if nl[0] == '\n' {
			break
		}
		tz = append(tz, nl[0])
	}
	return string(tz), nil
}
