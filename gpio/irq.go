package gpio

import "picosoc-go/errcode"

// The GPIO block has no interrupt logic. These calls validate the pin and
// then report Unsupported so callers can detect the missing capability; they
// never pretend to succeed.

func (c *Controller) SetIRQ(pin int, t Trigger) error {
	if !c.valid(pin) {
		return errcode.InvalidPin
	}
	return errcode.Unsupported
}

func (c *Controller) EnableIRQ(pin int) error {
	if !c.valid(pin) {
		return errcode.InvalidPin
	}
	return errcode.Unsupported
}

func (c *Controller) DisableIRQ(pin int) error {
	if !c.valid(pin) {
		return errcode.InvalidPin
	}
	return errcode.Unsupported
}

func (c *Controller) ClearIRQ(pin int) error {
	if !c.valid(pin) {
		return errcode.InvalidPin
	}
	return errcode.Unsupported
}

// IRQStatus always reads as no pending interrupts.
func (c *Controller) IRQStatus() uint32 { return 0 }
