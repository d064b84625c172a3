package gpio

import (
	"picosoc-go/board"
	"picosoc-go/regs"
)

// The control register packs one nibble per pin. Everything that knows about
// that packing lives in this file; the controller only speaks pins.

const fieldWidth = board.GPIOFieldWidth

func fieldShift(pin int) uint { return uint(pin) * fieldWidth }

// fieldMask selects pin's whole nibble.
func fieldMask(pin int) uint32 { return 0xF << fieldShift(pin) }

func levelBit(pin int) uint32 { return 1 << uint(pin) }

// encode builds a pin nibble. Exactly one direction bit is set; at most one
// pull bit is set.
func encode(d Direction, p Pull) uint32 {
	var v uint32
	if d == Output {
		v |= board.GPIOCtrlDirOut
	} else {
		v |= board.GPIOCtrlDirIn
	}
	v |= pullBits(p)
	return v
}

func pullBits(p Pull) uint32 {
	switch p {
	case PullUp:
		return board.GPIOCtrlPullUp
	case PullDown:
		return board.GPIOCtrlPullDown
	default:
		return 0
	}
}

// decode is the inverse of encode for the direction and pull fields.
func decode(nibble uint32) PinConfig {
	c := PinConfig{Direction: Input, Pull: PullNone}
	if nibble&board.GPIOCtrlDirOut != 0 {
		c.Direction = Output
	}
	switch {
	case nibble&board.GPIOCtrlPullUp != 0:
		c.Pull = PullUp
	case nibble&board.GPIOCtrlPullDown != 0:
		c.Pull = PullDown
	}
	return c
}

func (c *Controller) writeField(pin int, nibble uint32) {
	regs.ReplaceBits(c.bus, c.m.Ctrl, nibble, 0xF, fieldShift(pin))
}

func (c *Controller) readField(pin int) uint32 {
	return regs.Field(c.bus.Read32(c.m.Ctrl), fieldShift(pin), fieldWidth)
}

// updateBits rewrites only the bits of sub (a nibble-relative mask) inside
// pin's field.
func (c *Controller) updateBits(pin int, sub, value uint32) {
	regs.ReplaceBits(c.bus, c.m.Ctrl, value, sub, fieldShift(pin))
}
