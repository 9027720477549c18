package tzif

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestDecodeV1UTCWithLeapSeconds is RFC 8536 example B.1: a V1-only
// file for a zone that never changes offset but carries the full
// historical leap-second table. Decode must accept the nonzero
// leapcnt (and the isutcnt/isstdcnt arrays that follow it) by
// skipping those bytes rather than rejecting the file.
func TestDecodeV1UTCWithLeapSeconds(t *testing.T) {
	raw := []byte{
		0x54, 0x5a, 0x69, 0x66, // magic
		0x00, // version
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x01, // isutcnt
		0x00, 0x00, 0x00, 0x01, // isstdcnt
		0x00, 0x00, 0x00, 0x1b, // leapcnt
		0x00, 0x00, 0x00, 0x00, // timecnt
		0x00, 0x00, 0x00, 0x01, // typecnt
		0x00, 0x00, 0x00, 0x04, // charcnt
		// localtimetype[0]
		0x00, 0x00, 0x00, 0x00, // utcoff
		0x00,                   // isdst
		0x00,                   // desigidx
		0x55, 0x54, 0x43, 0x00, // "UTC\x00"
		// leapsecond[0..26], skipped by Decode
		0x04, 0xb2, 0x58, 0x00, 0x00, 0x00, 0x00, 0x01,
		0x05, 0xa4, 0xec, 0x01, 0x00, 0x00, 0x00, 0x02,
		0x07, 0x86, 0x1f, 0x82, 0x00, 0x00, 0x00, 0x03,
		0x09, 0x67, 0x53, 0x03, 0x00, 0x00, 0x00, 0x04,
		0x0b, 0x48, 0x86, 0x84, 0x00, 0x00, 0x00, 0x05,
		0x0d, 0x2b, 0x0b, 0x85, 0x00, 0x00, 0x00, 0x06,
		0x0f, 0x0c, 0x3f, 0x06, 0x00, 0x00, 0x00, 0x07,
		0x10, 0xed, 0x72, 0x87, 0x00, 0x00, 0x00, 0x08,
		0x12, 0xce, 0xa6, 0x08, 0x00, 0x00, 0x00, 0x09,
		0x15, 0x9f, 0xca, 0x89, 0x00, 0x00, 0x00, 0x0a,
		0x17, 0x80, 0xfe, 0x0a, 0x00, 0x00, 0x00, 0x0b,
		0x19, 0x62, 0x31, 0x8b, 0x00, 0x00, 0x00, 0x0c,
		0x1d, 0x25, 0xea, 0x0c, 0x00, 0x00, 0x00, 0x0d,
		0x21, 0xda, 0xe5, 0x0d, 0x00, 0x00, 0x00, 0x0e,
		0x25, 0x9e, 0x9d, 0x8e, 0x00, 0x00, 0x00, 0x0f,
		0x27, 0x7f, 0xd1, 0x0f, 0x00, 0x00, 0x00, 0x10,
		0x2a, 0x50, 0xf5, 0x90, 0x00, 0x00, 0x00, 0x11,
		0x2c, 0x32, 0x29, 0x11, 0x00, 0x00, 0x00, 0x12,
		0x2e, 0x13, 0x5c, 0x92, 0x00, 0x00, 0x00, 0x13,
		0x30, 0xe7, 0x24, 0x13, 0x00, 0x00, 0x00, 0x14,
		0x33, 0xb8, 0x48, 0x94, 0x00, 0x00, 0x00, 0x15,
		0x36, 0x8c, 0x10, 0x15, 0x00, 0x00, 0x00, 0x16,
		0x43, 0xb7, 0x1b, 0x96, 0x00, 0x00, 0x00, 0x17,
		0x49, 0x5c, 0x07, 0x97, 0x00, 0x00, 0x00, 0x18,
		0x4f, 0xef, 0x93, 0x18, 0x00, 0x00, 0x00, 0x19,
		0x55, 0x93, 0x2d, 0x99, 0x00, 0x00, 0x00, 0x1a,
		0x58, 0x68, 0x46, 0x9a, 0x00, 0x00, 0x00, 0x1b,
		0x00, // UT/local[0]
		0x00, // standard/wall[0]
	}

	got, err := Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	want := Data{
		Version:         V1,
		Transitions:     nil,
		TransitionTypes: nil,
		Records: []LocalTimeRecord{
			{OffsetSeconds: 0, IsDst: false, Designation: "UTC"},
		},
		TZString: "",
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Decode() mismatch (-got +want):\n%s", diff)
	}
}

// TestDecodeV2PacificHonolulu is RFC 8536 example B.2: a V2 file with
// a mandatory leading V1 block followed by the wider 64-bit block and
// a POSIX tail. Decode must prefer the V2+ block's data.
func TestDecodeV2PacificHonolulu(t *testing.T) {
	raw := []byte{
		// v1 header
		0x54, 0x5a, 0x69, 0x66, // magic
		0x00, // version
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x06, // isutcnt
		0x00, 0x00, 0x00, 0x06, // isstdcnt
		0x00, 0x00, 0x00, 0x00, // leapcnt
		0x00, 0x00, 0x00, 0x07, // timecnt
		0x00, 0x00, 0x00, 0x06, // typecnt
		0x00, 0x00, 0x00, 0x14, // charcnt
		// v1 block
		0x80, 0x00, 0x00, 0x00, // trans time[0]
		0xbb, 0x05, 0x43, 0x48, // trans time[1]
		0xbb, 0x21, 0x71, 0x58, // trans time[2]
		0xcb, 0x89, 0x3d, 0xc8, // trans time[3]
		0xd2, 0x23, 0xf4, 0x70, // trans time[4]
		0xd2, 0x61, 0x49, 0x38, // trans time[5]
		0xd5, 0x8d, 0x73, 0x48, // trans time[6]
		0x01, 0x02, 0x01, 0x03, 0x04, 0x01, 0x05, // trans types
		0xff, 0xff, 0x6c, 0x02, 0x00, 0x00, // localtimetype[0]
		0xff, 0xff, 0x6c, 0x58, 0x00, 0x04, // localtimetype[1]
		0xff, 0xff, 0x7a, 0x68, 0x01, 0x08, // localtimetype[2]
		0xff, 0xff, 0x7a, 0x68, 0x01, 0x0c, // localtimetype[3]
		0xff, 0xff, 0x7a, 0x68, 0x01, 0x10, // localtimetype[4]
		0xff, 0xff, 0x73, 0x60, 0x00, 0x04, // localtimetype[5]
		0x4c, 0x4d, 0x54, 0x00, // "LMT\x00"
		0x48, 0x53, 0x54, 0x00, // "HST\x00"
		0x48, 0x44, 0x54, 0x00, // "HDT\x00"
		0x48, 0x57, 0x54, 0x00, // "HWT\x00"
		0x48, 0x50, 0x54, 0x00, // "HPT\x00"
		0x01, 0x00, 0x00, 0x00, 0x01, 0x00, // UT/local[0..5]
		0x01, 0x00, 0x00, 0x00, 0x01, 0x00, // standard/wall[0..5]
		// v2 header
		0x54, 0x5a, 0x69, 0x66, // magic
		0x32, // version
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x06, // isutcnt
		0x00, 0x00, 0x00, 0x06, // isstdcnt
		0x00, 0x00, 0x00, 0x00, // leapcnt
		0x00, 0x00, 0x00, 0x07, // timecnt
		0x00, 0x00, 0x00, 0x06, // typecnt
		0x00, 0x00, 0x00, 0x14, // charcnt
		// v2 block
		0xff, 0xff, 0xff, 0xff, 0x74, 0xe0, 0x70, 0xbe, // trans time[0]
		0xff, 0xff, 0xff, 0xff, 0xbb, 0x05, 0x43, 0x48, // trans time[1]
		0xff, 0xff, 0xff, 0xff, 0xbb, 0x21, 0x71, 0x58, // trans time[2]
		0xff, 0xff, 0xff, 0xff, 0xcb, 0x89, 0x3d, 0xc8, // trans time[3]
		0xff, 0xff, 0xff, 0xff, 0xd2, 0x23, 0xf4, 0x70, // trans time[4]
		0xff, 0xff, 0xff, 0xff, 0xd2, 0x61, 0x49, 0x38, // trans time[5]
		0xff, 0xff, 0xff, 0xff, 0xd5, 0x8d, 0x73, 0x48, // trans time[6]
		0x01, 0x02, 0x01, 0x03, 0x04, 0x01, 0x05, // trans types
		0xff, 0xff, 0x6c, 0x02, 0x00, 0x00, // localtimetype[0]
		0xff, 0xff, 0x6c, 0x58, 0x00, 0x04, // localtimetype[1]
		0xff, 0xff, 0x7a, 0x68, 0x01, 0x08, // localtimetype[2]
		0xff, 0xff, 0x7a, 0x68, 0x01, 0x0c, // localtimetype[3]
		0xff, 0xff, 0x7a, 0x68, 0x01, 0x10, // localtimetype[4]
		0xff, 0xff, 0x73, 0x60, 0x00, 0x04, // localtimetype[5]
		0x4c, 0x4d, 0x54, 0x00, // "LMT\x00"
		0x48, 0x53, 0x54, 0x00, // "HST\x00"
		0x48, 0x44, 0x54, 0x00, // "HDT\x00"
		0x48, 0x57, 0x54, 0x00, // "HWT\x00"
		0x48, 0x50, 0x54, 0x00, // "HPT\x00"
		0x00, 0x00, 0x00, 0x00, 0x01, 0x00, // UT/local[0..5]
		0x00, 0x00, 0x00, 0x00, 0x01, 0x00, // standard/wall[0..5]
		// v2 footer
		0x0a,                   // NL
		0x48, 0x53, 0x54, 0x31, // "HST1"
		0x30,
		0x0a, // NL
	}

	got, err := Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	want := Data{
		Version: V2,
		Transitions: []int64{
			-2334101314,
			-1157283000,
			-1155436200,
			-880198200,
			-769395600,
			-765376200,
			-712150200,
		},
		TransitionTypes: []uint8{1, 2, 1, 3, 4, 1, 5},
		Records: []LocalTimeRecord{
			{OffsetSeconds: -37886, IsDst: false, Designation: "LMT"},
			{OffsetSeconds: -37800, IsDst: false, Designation: "HST"},
			{OffsetSeconds: -34200, IsDst: true, Designation: "HDT"},
			{OffsetSeconds: -34200, IsDst: true, Designation: "HWT"},
			{OffsetSeconds: -34200, IsDst: true, Designation: "HPT"},
			{OffsetSeconds: -36000, IsDst: false, Designation: "HST"},
		},
		TZString: "HST10",
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Decode() mismatch (-got +want):\n%s", diff)
	}
}

// TestDecodeV3AsiaJerusalem is RFC 8536 example B.3: a V3 file whose
// POSIX tail uses the V3 start/end time extension.
func TestDecodeV3AsiaJerusalem(t *testing.T) {
	raw := []byte{
		// v1 header (empty V1 block)
		0x54, 0x5a, 0x69, 0x66, // magic
		0x00, // version
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, // isutcnt
		0x00, 0x00, 0x00, 0x00, // isstdcnt
		0x00, 0x00, 0x00, 0x00, // leapcnt
		0x00, 0x00, 0x00, 0x00, // timecnt
		0x00, 0x00, 0x00, 0x01, // typecnt
		0x00, 0x00, 0x00, 0x04, // charcnt
		// v1 block: one local time type record, no transitions
		0x00, 0x00, 0x1c, 0x20, 0x00, 0x00, // localtimetype[0]
		0x49, 0x53, 0x54, 0x00, // "IST\x00"
		// v3 header
		0x54, 0x5a, 0x69, 0x66, // magic
		0x33, // version
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x01, // isutcnt
		0x00, 0x00, 0x00, 0x01, // isstdcnt
		0x00, 0x00, 0x00, 0x00, // leapcnt
		0x00, 0x00, 0x00, 0x01, // timecnt
		0x00, 0x00, 0x00, 0x01, // typecnt
		0x00, 0x00, 0x00, 0x04, // charcnt
		// v3 block
		0x00, 0x00, 0x00, 0x00, 0x7f, 0xe8, 0x17, 0x80, // trans time[0]
		0x00,                   // trans type[0]
		0x00, 0x00, 0x1c, 0x20, // utcoff
		0x00,                   // isdst
		0x00,                   // desigidx
		0x49, 0x53, 0x54, 0x00, // "IST\x00"
		0x01, // UT/local[0]
		0x01, // standard/wall[0]
		// v3 footer
		0x0a,                   // NL
		0x49, 0x53, 0x54, 0x2d, // "IST-2IDT,M3.4.4/26,M10.5.0"
		0x32, 0x49, 0x44, 0x54,
		0x2c, 0x4d, 0x33, 0x2e,
		0x34, 0x2e, 0x34, 0x2f,
		0x32, 0x36, 0x2c, 0x4d,
		0x31, 0x30, 0x2e, 0x35,
		0x2e, 0x30,
		0x0a, // NL
	}

	got, err := Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	want := Data{
		Version:         V3,
		Transitions:     []int64{2145916800},
		TransitionTypes: []uint8{0},
		Records: []LocalTimeRecord{
			{OffsetSeconds: 7200, IsDst: false, Designation: "IST"},
		},
		TZString: "IST-2IDT,M3.4.4/26,M10.5.0",
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Decode() mismatch (-got +want):\n%s", diff)
	}
}

func TestDecodeInvalidMagic(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("NOPE...")))
	if err == nil {
		t.Fatal("Decode() with bad magic: want error, got nil")
	}
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	raw := []byte{
		0x54, 0x5a, 0x69, 0x66, // magic
		0x39, // version '9', not a recognized value
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, // isutcnt
		0x00, 0x00, 0x00, 0x00, // isstdcnt
		0x00, 0x00, 0x00, 0x00, // leapcnt
		0x00, 0x00, 0x00, 0x00, // timecnt
		0x00, 0x00, 0x00, 0x01, // typecnt
		0x00, 0x00, 0x00, 0x01, // charcnt
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // localtimetype[0]
		0x00, // designations[0] (empty string)
	}
	if _, err := Decode(bytes.NewReader(raw)); err == nil {
		t.Fatal("Decode() with unsupported version: want error, got nil")
	}
}

func TestValidateNonAscendingTransitions(t *testing.T) {
	d := Data{
		Transitions:     []int64{100, 100},
		TransitionTypes: []uint8{0, 0},
		Records:         []LocalTimeRecord{{OffsetSeconds: 0}},
	}
	if err := Validate(d); err == nil {
		t.Fatal("Validate() with duplicate transition: want error, got nil")
	}
}

func TestValidateTransitionTypeOutOfRange(t *testing.T) {
	d := Data{
		Transitions:     []int64{100},
		TransitionTypes: []uint8{3},
		Records:         []LocalTimeRecord{{OffsetSeconds: 0}},
	}
	if err := Validate(d); err == nil {
		t.Fatal("Validate() with out-of-range type index: want error, got nil")
	}
}

func TestValidateNoRecords(t *testing.T) {
	if err := Validate(Data{}); err == nil {
		t.Fatal("Validate() with no local time type records: want error, got nil")
	}
}
