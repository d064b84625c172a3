// Package conv renders integers into caller-supplied buffers without
// allocating and without fmt/strconv.
package conv

const digits = "0123456789ABCDEF"

// Utoa writes the base-10 representation of n into the tail of buf and
// returns the used slice. buf should be length >= 20 for uint64.
func Utoa(buf []byte, n uint64) []byte { return Format(buf, n, 10) }

// Itoa is Utoa for signed values. Negative numbers get a leading '-'; the
// most negative int64 is handled without overflow.
func Itoa(buf []byte, n int64) []byte {
	if n >= 0 {
		return Utoa(buf, uint64(n))
	}
	u := uint64(-(n + 1)) + 1
	s := Utoa(buf, u)
	i := len(buf) - len(s)
	if i == 0 {
		return s
	}
	i--
	buf[i] = '-'
	return buf[i:]
}

// Format writes n in base 2..16 into the tail of buf, upper-case digits.
func Format(buf []byte, n uint64, base uint64) []byte {
	if len(buf) == 0 || base < 2 || base > 16 {
		return buf[:0]
	}
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
		return buf[i:]
	}
	for n > 0 && i > 0 {
		i--
		buf[i] = digits[n%base]
		n /= base
	}
	return buf[i:]
}

// Hex writes exactly width upper-case hex digits of n, zero-padded, into the
// tail of buf. Higher digits beyond width are dropped.
func Hex(buf []byte, n uint64, width int) []byte {
	if width > len(buf) {
		return buf[:0]
	}
	i := len(buf)
	for j := 0; j < width; j++ {
		i--
		buf[i] = digits[n&0xF]
		n >>= 4
	}
	return buf[i:]
}

// U32Hex writes 8-digit uppercase hex without 0x, zero-padded.
func U32Hex(buf []byte, n uint32) []byte { return Hex(buf, uint64(n), 8) }

// Bin writes the low bits of n, most significant first, as '0'/'1'.
func Bin(buf []byte, n uint64, bits int) []byte {
	if bits > len(buf) || bits > 64 {
		return buf[:0]
	}
	i := len(buf)
	for j := 0; j < bits; j++ {
		i--
		buf[i] = '0' + byte(n&1)
		n >>= 1
	}
	return buf[i:]
}

type parseError struct{}

func (parseError) Error() string { return "conv: invalid syntax" }

// ErrSyntax is returned for malformed or out-of-range numbers.
var ErrSyntax error = parseError{}

// ParseUint32 parses an unsigned number. A 0x, 0b or 0o prefix selects the
// base; otherwise it is decimal. Values above 32 bits are rejected.
func ParseUint32(s string) (uint32, error) {
	base := uint64(10)
	if len(s) >= 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base, s = 16, s[2:]
		case 'b', 'B':
			base, s = 2, s[2:]
		case 'o', 'O':
			base, s = 8, s[2:]
		}
	}
	if len(s) == 0 {
		return 0, ErrSyntax
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d byte
		switch {
		case '0' <= c && c <= '9':
			d = c - '0'
		case 'a' <= c && c <= 'f':
			d = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, ErrSyntax
		}
		if uint64(d) >= base {
			return 0, ErrSyntax
		}
		v = v*base + uint64(d)
		if v > 0xFFFF_FFFF {
			return 0, ErrSyntax
		}
	}
	return uint32(v), nil
}
