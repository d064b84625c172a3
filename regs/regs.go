// Package regs provides raw access to memory-mapped peripheral registers.
//
// A Bus performs volatile loads and stores at absolute addresses. There is no
// validation and no error return: the address space is trusted, and an invalid
// address is a caller contract violation. Backends:
//
//   - MMIO: direct volatile access on TinyGo targets.
//   - DevMem: a physical window mapped from /dev/mem on Linux hosts.
//   - Sim: an in-process register file with device hooks, for tests and demos.
package regs

import "golang.org/x/exp/constraints"

// Addr is an absolute bus address.
type Addr uint32

// Bus is the register access primitive every controller is built on.
type Bus interface {
	Read32(a Addr) uint32
	Write32(a Addr, v uint32)
	Read16(a Addr) uint16
	Write16(a Addr, v uint16)
	Read8(a Addr) uint8
	Write8(a Addr, v uint8)

	// Barrier orders all prior accesses before all subsequent ones.
	Barrier()
}

// Field extracts width bits of v starting at shift.
func Field[T constraints.Unsigned](v T, shift, width uint) T {
	return (v >> shift) & mask[T](width)
}

// Insert replaces width bits of v at shift with field, leaving the rest intact.
func Insert[T constraints.Unsigned](v, field T, shift, width uint) T {
	m := mask[T](width) << shift
	return (v &^ m) | ((field << shift) & m)
}

func mask[T constraints.Unsigned](width uint) T {
	var zero T
	if width == 0 {
		return zero
	}
	return ^zero >> (bitsOf[T]() - width)
}

func bitsOf[T constraints.Unsigned]() uint {
	var n uint
	for v := ^T(0); v != 0; v >>= 1 {
		n++
	}
	return n
}

// Modify is the 32-bit read-modify-write helper: bits in set are raised,
// bits in clear are dropped, all others are written back unchanged.
func Modify(b Bus, a Addr, set, clear uint32) {
	v := b.Read32(a)
	b.Write32(a, (v|set)&^clear)
}

// ReplaceBits rewrites the bits selected by mask<<shift with value<<shift.
func ReplaceBits(b Bus, a Addr, value, mask uint32, shift uint) {
	v := b.Read32(a)
	m := mask << shift
	b.Write32(a, (v&^m)|((value<<shift)&m))
}

// SetBits raises the given bits.
func SetBits(b Bus, a Addr, bits uint32) { Modify(b, a, bits, 0) }

// ClearBits drops the given bits.
func ClearBits(b Bus, a Addr, bits uint32) { Modify(b, a, 0, bits) }

// HasBits reports whether every bit in bits is set.
func HasBits(b Bus, a Addr, bits uint32) bool { return b.Read32(a)&bits == bits }
