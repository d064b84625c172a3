package gpio

import (
	"picosoc-go/errcode"
	"picosoc-go/regs"
)

const (
	numLEDs    = 8
	numButtons = 4
)

// SetLED drives LED i (0..7), which sits on pin i.
func (c *Controller) SetLED(i int, on bool) error {
	if i < 0 || i >= numLEDs {
		return errcode.InvalidPin
	}
	return c.Write(LED0+i, on)
}

// ToggleLED inverts LED i (0..7).
func (c *Controller) ToggleLED(i int) error {
	if i < 0 || i >= numLEDs {
		return errcode.InvalidPin
	}
	return c.Toggle(LED0 + i)
}

// SetLEDs replaces the low byte of the data register with pattern; bits 8..31
// keep their levels.
func (c *Controller) SetLEDs(pattern uint8) error {
	regs.ReplaceBits(c.bus, c.m.Data, uint32(pattern), 0xFF, 0)
	return nil
}

// ReadButton reports button b (0..3), which sits on pin b+8. An unknown
// button is an InvalidParams error, not InvalidPin.
func (c *Controller) ReadButton(b int) (bool, error) {
	if b < 0 || b >= numButtons {
		return false, errcode.InvalidParams
	}
	return c.Read(BTN0 + b)
}
