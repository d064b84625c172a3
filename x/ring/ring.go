// Package ring is a single-producer, single-consumer byte FIFO. The producer
// and consumer may run on different goroutines without further locking.
package ring

import "sync/atomic"

// Ring holds at most its power-of-two size in bytes.
type Ring struct {
	buf  []byte
	mask uint32
	rd   atomic.Uint32 // consumer index (monotonic)
	wr   atomic.Uint32 // producer index (monotonic)

	readable chan struct{} // empty -> non-empty edge
}

// New allocates a ring of size bytes; size must be a power of two >= 2.
func New(size int) *Ring {
	if size < 2 || size&(size-1) != 0 {
		panic("ring: size must be power of two >= 2")
	}
	return &Ring{
		buf:      make([]byte, size),
		mask:     uint32(size - 1),
		readable: make(chan struct{}, 1),
	}
}

func (r *Ring) size() uint32 { return uint32(len(r.buf)) }

func (r *Ring) Cap() int { return len(r.buf) }

// Available is the number of bytes waiting to be read.
func (r *Ring) Available() int { return int(r.wr.Load() - r.rd.Load()) }

// Space is the number of bytes that can be written without dropping.
func (r *Ring) Space() int { return int(r.size() - (r.wr.Load() - r.rd.Load())) }

// Producer side

// WriteFrom copies as much of src as fits and returns the count. Bytes that
// do not fit are not written.
func (r *Ring) WriteFrom(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	rd := r.rd.Load()
	wr := r.wr.Load()
	before := wr - rd
	n := int(r.size() - before)
	if n <= 0 {
		return 0
	}
	if len(src) < n {
		n = len(src)
	}

	idx := wr & r.mask
	first := min(int(r.size()-idx), n)
	copy(r.buf[idx:idx+uint32(first)], src[:first])
	if second := n - first; second > 0 {
		copy(r.buf[:second], src[first:n])
	}
	r.wr.Store(wr + uint32(n)) // release

	if before == 0 {
		select {
		case r.readable <- struct{}{}:
		default:
		}
	}
	return n
}

// PutByte appends one byte and reports whether there was room.
func (r *Ring) PutByte(c byte) bool {
	return r.WriteFrom([]byte{c}) == 1
}

// Consumer side

// ReadInto moves up to len(dst) bytes out of the ring.
func (r *Ring) ReadInto(dst []byte) int {
	if len(dst) == 0 {
		return 0
	}
	rd := r.rd.Load()
	wr := r.wr.Load() // acquire
	n := int(wr - rd)
	if n <= 0 {
		return 0
	}
	if len(dst) < n {
		n = len(dst)
	}

	idx := rd & r.mask
	first := min(int(r.size()-idx), n)
	copy(dst[:first], r.buf[idx:idx+uint32(first)])
	if second := n - first; second > 0 {
		copy(dst[first:n], r.buf[:second])
	}
	r.rd.Store(rd + uint32(n)) // release
	return n
}

// Peek returns the oldest byte without consuming it.
func (r *Ring) Peek() (byte, bool) {
	rd := r.rd.Load()
	if r.wr.Load() == rd {
		return 0, false
	}
	return r.buf[rd&r.mask], true
}

// GetByte consumes the oldest byte.
func (r *Ring) GetByte() (byte, bool) {
	var b [1]byte
	if r.ReadInto(b[:]) == 0 {
		return 0, false
	}
	return b[0], true
}

// Readable fires when the ring goes from empty to non-empty.
func (r *Ring) Readable() <-chan struct{} { return r.readable }
