//go:build linux && !tinygo

package regs

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DefaultDevMem is the physical memory device on Linux hosts. A UIO node
// (/dev/uioN) exposing the peripheral block works as well.
const DefaultDevMem = "/dev/mem"

// DevMem is a window of physical address space [Base, Base+Size) mapped into
// the process. Accesses outside the window are a contract violation and panic
// with an index error.
type DevMem struct {
	Base Addr
	Size int

	mem   []byte // whole mapping, page aligned
	skew  int    // Base - page-aligned start
	fence uint32
}

// OpenDevMem maps size bytes of physical memory starting at base.
func OpenDevMem(path string, base Addr, size int) (*DevMem, error) {
	if path == "" {
		path = DefaultDevMem
	}
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_SYNC|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	defer unix.Close(fd)

	page := Addr(unix.Getpagesize())
	start := base &^ (page - 1)
	skew := int(base - start)
	mem, err := unix.Mmap(fd, int64(start), size+skew, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return &DevMem{Base: base, Size: size, mem: mem, skew: skew}, nil
}

// Close unmaps the window. The DevMem must not be used afterwards.
func (d *DevMem) Close() error {
	if d.mem == nil {
		return nil
	}
	err := unix.Munmap(d.mem)
	d.mem = nil
	return err
}

func (d *DevMem) at(a Addr) unsafe.Pointer {
	return unsafe.Pointer(&d.mem[int(a-d.Base)+d.skew])
}

func (d *DevMem) Read32(a Addr) uint32     { return atomic.LoadUint32((*uint32)(d.at(a))) }
func (d *DevMem) Write32(a Addr, v uint32) { atomic.StoreUint32((*uint32)(d.at(a)), v) }
func (d *DevMem) Read16(a Addr) uint16     { return load16((*uint16)(d.at(a))) }
func (d *DevMem) Write16(a Addr, v uint16) { store16((*uint16)(d.at(a)), v) }
func (d *DevMem) Read8(a Addr) uint8       { return load8((*uint8)(d.at(a))) }
func (d *DevMem) Write8(a Addr, v uint8)   { store8((*uint8)(d.at(a)), v) }
func (d *DevMem) Barrier()                 { atomic.AddUint32(&d.fence, 0) }

// sync/atomic has no sub-word operations; keeping these out of line stops the
// compiler from merging or eliding the access.

//go:noinline
func load16(p *uint16) uint16 { return *p }

//go:noinline
func store16(p *uint16, v uint16) { *p = v }

//go:noinline
func load8(p *uint8) uint8 { return *p }

//go:noinline
func store8(p *uint8, v uint8) { *p = v }
