// Package fmtx is the firmware's printf subset.
//
// Supported verbs: %d %i (signed decimal), %u (unsigned decimal), %x %X
// (hex, upper-case digits for both), %s (string), %c (single byte) and %%.
// Any other verb is echoed as '%' followed by the verb byte. There are no
// flags, widths or precisions: "%08X" renders as "%0" then "8X".
//
// A verb whose argument is missing renders its zero value. A lone '%' at the
// end of the format renders as '%'.
package fmtx

import (
	"io"

	"picosoc-go/x/conv"
)

// Append formats into dst with no bound and returns the extended slice.
func Append(dst []byte, format string, args ...any) []byte {
	s := sink{buf: dst, limit: -1}
	s.format(format, args)
	return s.buf
}

// Sprintf formats into a new string.
func Sprintf(format string, args ...any) string {
	return string(Append(nil, format, args...))
}

// Snprintf formats into buf, writing at most len(buf)-1 payload bytes and
// always a terminating NUL inside buf. Output that does not fit is truncated.
// It returns the payload length. An empty buf receives nothing.
func Snprintf(buf []byte, format string, args ...any) int {
	if len(buf) == 0 {
		return 0
	}
	s := sink{buf: buf[:0], limit: len(buf) - 1}
	s.format(format, args)
	n := len(s.buf)
	buf[n] = 0
	return n
}

// Fprintf formats and hands the result to w in a single Write.
func Fprintf(w io.Writer, format string, args ...any) (int, error) {
	return w.Write(Append(nil, format, args...))
}

// sink appends bytes until limit payload bytes are held; limit < 0 means
// unbounded. When bounded, buf must have capacity for limit bytes so appends
// never reallocate.
type sink struct {
	buf   []byte
	limit int
}

func (s *sink) full() bool { return s.limit >= 0 && len(s.buf) >= s.limit }

func (s *sink) byte(c byte) {
	if !s.full() {
		s.buf = append(s.buf, c)
	}
}

func (s *sink) bytes(p []byte) {
	for _, c := range p {
		if s.full() {
			return
		}
		s.buf = append(s.buf, c)
	}
}

func (s *sink) str(v string) {
	for i := 0; i < len(v); i++ {
		if s.full() {
			return
		}
		s.buf = append(s.buf, v[i])
	}
}

func (s *sink) format(format string, args []any) {
	var num [24]byte
	ai := 0
	next := func() any {
		if ai >= len(args) {
			return nil
		}
		a := args[ai]
		ai++
		return a
	}
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			s.byte(c)
			continue
		}
		i++
		if i >= len(format) {
			s.byte('%')
			return
		}
		switch verb := format[i]; verb {
		case 'd', 'i':
			s.bytes(conv.Itoa(num[:], toInt(next())))
		case 'u':
			s.bytes(conv.Utoa(num[:], toUint(next())))
		case 'x', 'X':
			s.bytes(conv.Format(num[:], toUint(next()), 16))
		case 's':
			s.any(next())
		case 'c':
			s.byte(toByte(next()))
		case '%':
			s.byte('%')
		default:
			s.byte('%')
			s.byte(verb)
		}
	}
}

func (s *sink) any(v any) {
	switch x := v.(type) {
	case string:
		s.str(x)
	case []byte:
		s.bytes(x)
	case interface{ String() string }:
		s.str(x.String())
	case error:
		s.str(x.Error())
	}
}

func toInt(v any) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case uintptr:
		return int64(t)
	case bool:
		if t {
			return 1
		}
	}
	return 0
}

// toUint reinterprets negative values as the 32-bit two's complement the
// hardware word would hold.
func toUint(v any) uint64 {
	switch t := v.(type) {
	case uint:
		return uint64(t)
	case uint8:
		return uint64(t)
	case uint16:
		return uint64(t)
	case uint32:
		return uint64(t)
	case uint64:
		return t
	case uintptr:
		return uint64(t)
	}
	n := toInt(v)
	if n < 0 {
		return uint64(uint32(int32(n)))
	}
	return uint64(n)
}

func toByte(v any) byte { return byte(toInt(v)) }
