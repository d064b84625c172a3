//go:build tinygo

package regs

import (
	"runtime/volatile"
	"sync/atomic"
	"unsafe"
)

// MMIO accesses registers directly at their absolute addresses.
type MMIO struct{}

var fence uint32

func (MMIO) Read32(a Addr) uint32     { return volatile.LoadUint32((*uint32)(ptr(a))) }
func (MMIO) Write32(a Addr, v uint32) { volatile.StoreUint32((*uint32)(ptr(a)), v) }
func (MMIO) Read16(a Addr) uint16     { return volatile.LoadUint16((*uint16)(ptr(a))) }
func (MMIO) Write16(a Addr, v uint16) { volatile.StoreUint16((*uint16)(ptr(a)), v) }
func (MMIO) Read8(a Addr) uint8       { return volatile.LoadUint8((*uint8)(ptr(a))) }
func (MMIO) Write8(a Addr, v uint8)   { volatile.StoreUint8((*uint8)(ptr(a)), v) }

// Barrier is a sequentially consistent read-modify-write, which the compiler
// lowers to a full fence on the targets we care about.
func (MMIO) Barrier() { atomic.AddUint32(&fence, 0) }

func ptr(a Addr) unsafe.Pointer { return unsafe.Pointer(uintptr(a)) }
