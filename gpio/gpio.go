// Package gpio drives the SoC's GPIO block: one control register holding a
// configuration nibble per pin and one data register holding a level bit per
// pin.
//
// Controller methods return errcode values: InvalidPin for an out-of-range
// pin, InvalidParams for a missing configuration or an uninitialised
// controller, Unsupported for interrupt features the block does not have.
package gpio

import (
	"picosoc-go/board"
	"picosoc-go/errcode"
	"picosoc-go/regs"
	"picosoc-go/x/mathx"
)

type Direction uint8

const (
	Input Direction = iota
	Output
)

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Trigger selects the edge an interrupt would fire on.
type Trigger uint8

const (
	TriggerNone Trigger = iota
	TriggerRising
	TriggerFalling
	TriggerBoth
)

// PinConfig is the full configuration of one pin.
type PinConfig struct {
	Direction Direction
	Pull      Pull
	Trigger   Trigger
	IRQEnable bool
}

// DefaultConfig is an input with no pull and no interrupt.
func DefaultConfig() PinConfig {
	return PinConfig{Direction: Input, Pull: PullNone, Trigger: TriggerNone}
}

// Board pin assignments.
const (
	LED0 = iota
	LED1
	LED2
	LED3
	LED4
	LED5
	LED6
	LED7
	BTN0
	BTN1
	BTN2
	BTN3
	SPISCK
	SPIMOSI
	SPIMISO
	SPICS
)

// Controller owns one GPIO block. Create one per physical peripheral; it is
// not safe for concurrent use because every update is a read-modify-write of
// a shared register.
type Controller struct {
	bus         regs.Bus
	m           board.GPIOMap
	pins        int
	initialized bool
}

// New returns a controller for the block at m. pins is clamped to 1..32.
func New(bus regs.Bus, m board.GPIOMap, pins int) *Controller {
	return &Controller{bus: bus, m: m, pins: mathx.Clamp(pins, 1, board.GPIOMaxPins)}
}

// Pins returns the number of addressable pins.
func (c *Controller) Pins() int { return c.pins }

// Initialized reports whether Init has run.
func (c *Controller) Initialized() bool { return c.initialized }

func (c *Controller) valid(pin int) bool { return pin >= 0 && pin < c.pins }

// Init clears every pin's configuration and level. It is not idempotent with
// respect to pin state: each call wipes whatever was configured before.
func (c *Controller) Init() error {
	c.bus.Write32(c.m.Ctrl, 0)
	c.bus.Write32(c.m.Data, 0)
	c.initialized = true
	return nil
}

// Config programs pin's direction and pull, leaving every other pin's field
// untouched.
//
// When cfg.IRQEnable is set the trigger is programmed and enabled on a best
// effort basis. The block has no interrupt support, so both steps fail with
// Unsupported, and that failure is deliberately not returned: Config still
// succeeds. This is the only operation that swallows an error.
func (c *Controller) Config(pin int, cfg *PinConfig) error {
	if !c.valid(pin) {
		return errcode.InvalidPin
	}
	if cfg == nil || !c.initialized {
		return errcode.InvalidParams
	}
	c.writeField(pin, encode(cfg.Direction, cfg.Pull))

	if cfg.IRQEnable {
		_ = c.SetIRQ(pin, cfg.Trigger)
		_ = c.EnableIRQ(pin)
	}
	return nil
}

// SetDirection updates only the direction-out bit of pin. Unlike Config it
// does not require Init.
func (c *Controller) SetDirection(pin int, d Direction) error {
	if !c.valid(pin) {
		return errcode.InvalidPin
	}
	var v uint32
	if d == Output {
		v = board.GPIOCtrlDirOut
	}
	c.updateBits(pin, board.GPIOCtrlDirOut, v)
	return nil
}

// SetPull updates only the pull bits of pin. Unlike Config it does not
// require Init.
func (c *Controller) SetPull(pin int, p Pull) error {
	if !c.valid(pin) {
		return errcode.InvalidPin
	}
	c.updateBits(pin, board.GPIOCtrlPullUp|board.GPIOCtrlPullDown, pullBits(p))
	return nil
}

// PinConfigOf decodes pin's direction and pull from the control register.
func (c *Controller) PinConfigOf(pin int) (PinConfig, error) {
	if !c.valid(pin) {
		return PinConfig{}, errcode.InvalidPin
	}
	return decode(c.readField(pin)), nil
}

// IsOutput reports whether pin's direction-out bit is set. No bounds check.
func (c *Controller) IsOutput(pin int) bool {
	return c.readField(pin)&board.GPIOCtrlDirOut != 0
}

// IsInput reports whether pin's direction-in bit is set. No bounds check.
func (c *Controller) IsInput(pin int) bool {
	return c.readField(pin)&board.GPIOCtrlDirIn != 0
}

// Read returns pin's level.
func (c *Controller) Read(pin int) (bool, error) {
	if !c.valid(pin) {
		return false, errcode.InvalidPin
	}
	return c.ReadFast(pin), nil
}

// Write drives pin's level bit.
func (c *Controller) Write(pin int, level bool) error {
	if !c.valid(pin) {
		return errcode.InvalidPin
	}
	c.WriteFast(pin, level)
	return nil
}

// Toggle inverts pin's level bit.
func (c *Controller) Toggle(pin int) error {
	if !c.valid(pin) {
		return errcode.InvalidPin
	}
	c.ToggleFast(pin)
	return nil
}

// ReadFast, WriteFast and ToggleFast skip the bounds check. A pin outside
// 0..31 addresses no bit.

func (c *Controller) ReadFast(pin int) bool {
	return c.bus.Read32(c.m.Data)&levelBit(pin) != 0
}

func (c *Controller) WriteFast(pin int, level bool) {
	if level {
		regs.SetBits(c.bus, c.m.Data, levelBit(pin))
	} else {
		regs.ClearBits(c.bus, c.m.Data, levelBit(pin))
	}
}

func (c *Controller) ToggleFast(pin int) {
	v := c.bus.Read32(c.m.Data)
	c.bus.Write32(c.m.Data, v^levelBit(pin))
}

// ReadAll returns the whole data register.
func (c *Controller) ReadAll() uint32 { return c.bus.Read32(c.m.Data) }

// WriteAll replaces the whole data register.
func (c *Controller) WriteAll(v uint32) error {
	c.bus.Write32(c.m.Data, v)
	return nil
}

// SetMask raises every level bit in mask.
func (c *Controller) SetMask(mask uint32) error {
	regs.SetBits(c.bus, c.m.Data, mask)
	return nil
}

// ClearMask drops every level bit in mask.
func (c *Controller) ClearMask(mask uint32) error {
	regs.ClearBits(c.bus, c.m.Data, mask)
	return nil
}

// Status returns the raw control register.
func (c *Controller) Status() uint32 { return c.bus.Read32(c.m.Ctrl) }
