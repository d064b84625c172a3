package conv

import (
	"math"
	"testing"
)

func TestItoaUtoa(t *testing.T) {
	var b [24]byte
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0"}, {7, "7"}, {-5, "-5"}, {12345, "12345"},
		{math.MinInt64, "-9223372036854775808"},
	}
	for _, c := range cases {
		if got := string(Itoa(b[:], c.n)); got != c.want {
			t.Fatalf("Itoa(%d) = %q, want %q", c.n, got, c.want)
		}
	}
	if got := string(Utoa(b[:], math.MaxUint64)); got != "18446744073709551615" {
		t.Fatalf("Utoa(max) = %q", got)
	}
}

func TestFormatBases(t *testing.T) {
	var b [64]byte
	if got := string(Format(b[:], 0xBEEF, 16)); got != "BEEF" {
		t.Fatalf("hex = %q", got)
	}
	if got := string(Format(b[:], 5, 2)); got != "101" {
		t.Fatalf("bin = %q", got)
	}
	if got := Format(b[:], 5, 1); len(got) != 0 {
		t.Fatalf("bad base should yield empty, got %q", got)
	}
}

func TestFixedWidth(t *testing.T) {
	var b [16]byte
	if got := string(U32Hex(b[:], 0xAB)); got != "000000AB" {
		t.Fatalf("U32Hex = %q", got)
	}
	if got := string(Hex(b[:], 0x1FF, 2)); got != "FF" {
		t.Fatalf("Hex width 2 = %q", got)
	}
	if got := string(Bin(b[:], 0b1010, 6)); got != "001010" {
		t.Fatalf("Bin = %q", got)
	}
	if got := Hex(b[:4], 1, 8); len(got) != 0 {
		t.Fatalf("short buffer should yield empty")
	}
}

func TestParseUint32(t *testing.T) {
	ok := []struct {
		in   string
		want uint32
	}{
		{"0", 0}, {"115200", 115200}, {"0x1F", 31}, {"0b101", 5}, {"0o17", 15},
		{"4294967295", math.MaxUint32},
	}
	for _, c := range ok {
		got, err := ParseUint32(c.in)
		if err != nil || got != c.want {
			t.Fatalf("ParseUint32(%q) = %d, %v; want %d", c.in, got, err, c.want)
		}
	}
	for _, in := range []string{"", "0x", "12a", "-1", "4294967296", "0b2"} {
		if _, err := ParseUint32(in); err != ErrSyntax {
			t.Fatalf("ParseUint32(%q) err = %v, want ErrSyntax", in, err)
		}
	}
}
