// Package soc is a behavioural model of the SoC peripherals mapped onto a
// regs.Sim. Drivers run against it unchanged, which is how the examples run
// on a host and how the end-to-end tests exercise the drivers.
//
// UART: the transmitter is always ready, written bytes go to the configured
// io.Writer, and received bytes come from a FIFO filled by Feed. rx-ready is
// asserted while the FIFO is non-empty and each data read pops one byte.
//
// GPIO: button levels injected with PressButton appear on pins 8..11 of the
// data register, and LED level changes on pins 0..7 are reported through the
// OnLED callback and the event bus.
package soc

import (
	"io"
	"sync/atomic"

	"picosoc-go/board"
	"picosoc-go/bus"
	"picosoc-go/regs"
	"picosoc-go/x/ring"
)

const (
	ledMask    = 0x0000_00FF
	buttonBase = 8
	buttonMask = 0xF << buttonBase

	uartStatus = board.UARTCtrlTxReady | board.UARTCtrlRxReady | board.UARTCtrlTxBusy | board.UARTCtrlRxBusy
)

// Event topics. LED topics carry a bool and are retained.
var (
	TopicUARTTx  = bus.T("soc", "uart", "tx")
	TopicUARTDiv = bus.T("soc", "uart", "divisor")
)

// TopicLED is the retained level topic of LED i.
func TopicLED(i int) bus.Topic { return bus.T("soc", "gpio", "led", i) }

type Option func(*SoC)

// WithTx sends transmitted bytes to w.
func WithTx(w io.Writer) Option { return func(s *SoC) { s.tx = w } }

// WithEvents publishes pin and UART activity on b.
func WithEvents(b *bus.Bus) Option { return func(s *SoC) { s.events = b } }

// WithRxFIFO sets the receive FIFO size; it must be a power of two.
func WithRxFIFO(size int) Option { return func(s *SoC) { s.rxSize = size } }

// OnLED registers fn for LED level changes. fn runs with the register file
// locked and must not access the bus.
func OnLED(fn func(led int, on bool)) Option { return func(s *SoC) { s.onLED = fn } }

type SoC struct {
	Sim *regs.Sim
	Map board.Map

	tx     io.Writer
	events *bus.Bus
	onLED  func(int, bool)
	rxSize int
	rx     *ring.Ring

	buttons atomic.Uint32
	leds    uint32 // guarded by the Sim lock
	txCount atomic.Uint64
}

// New maps a fresh SoC model at cfg's peripheral base.
func New(cfg board.Config, opts ...Option) *SoC {
	s := &SoC{Sim: regs.NewSim(), Map: cfg.Map(), tx: io.Discard, rxSize: 256}
	for _, o := range opts {
		o(s)
	}
	s.rx = ring.New(s.rxSize)

	m := s.Map
	s.Sim.MapIO(m.UART.Ctrl, m.UART.Ctrl, s.uartCtrlRead, s.uartCtrlWrite)
	s.Sim.MapIO(m.UART.Data, m.UART.Data, s.uartDataRead, s.uartDataWrite)
	s.Sim.MapIO(m.GPIO.Data, m.GPIO.Data, s.gpioDataRead, s.gpioDataWrite)
	return s
}

// Bus returns the register bus drivers should use.
func (s *SoC) Bus() regs.Bus { return s.Sim }

// Feed queues bytes on the UART receive line and returns how many fit. It
// may be called from another goroutine than the one driving the UART.
func (s *SoC) Feed(p []byte) int { return s.rx.WriteFrom(p) }

// Pending is the number of received bytes the firmware has not read yet.
func (s *SoC) Pending() int { return s.rx.Available() }

// Sent is the number of bytes the firmware has transmitted.
func (s *SoC) Sent() uint64 { return s.txCount.Load() }

// PressButton sets the level of button b (0..3). Out-of-range buttons are
// ignored.
func (s *SoC) PressButton(b int, pressed bool) {
	if b < 0 || b > 3 {
		return
	}
	bit := uint32(1) << (buttonBase + b)
	for {
		old := s.buttons.Load()
		nv := old &^ bit
		if pressed {
			nv |= bit
		}
		if s.buttons.CompareAndSwap(old, nv) {
			return
		}
	}
}

// LEDs returns the LED levels last written by the firmware.
func (s *SoC) LEDs() uint8 { return uint8(s.Sim.Peek(s.Map.GPIO.Data)) }

// --- register hooks ---

func (s *SoC) uartCtrlRead(_ regs.Addr, stored uint32) uint32 {
	v := stored&^uartStatus | board.UARTCtrlTxReady
	if s.rx.Available() > 0 {
		v |= board.UARTCtrlRxReady
	}
	return v
}

func (s *SoC) uartCtrlWrite(_ regs.Addr, v uint32) {
	if s.events != nil {
		div := regs.Field(v, board.UARTDivShift, board.UARTDivWidth)
		s.events.Publish(TopicUARTDiv, div, true)
	}
}

func (s *SoC) uartDataRead(_ regs.Addr, stored uint32) uint32 {
	if c, ok := s.rx.GetByte(); ok {
		return uint32(c)
	}
	return stored & 0xFF
}

func (s *SoC) uartDataWrite(_ regs.Addr, v uint32) {
	c := byte(v)
	s.txCount.Add(1)
	_, _ = s.tx.Write([]byte{c})
	if s.events != nil {
		s.events.Publish(TopicUARTTx, c, false)
	}
}

func (s *SoC) gpioDataRead(_ regs.Addr, stored uint32) uint32 {
	return stored&^buttonMask | s.buttons.Load()
}

func (s *SoC) gpioDataWrite(_ regs.Addr, v uint32) {
	changed := (s.leds ^ v) & ledMask
	s.leds = v & ledMask
	for i := 0; changed != 0; i++ {
		bit := uint32(1) << i
		if changed&bit == 0 {
			continue
		}
		changed &^= bit
		on := v&bit != 0
		if s.onLED != nil {
			s.onLED(i, on)
		}
		if s.events != nil {
			s.events.Publish(TopicLED(i), on, true)
		}
	}
}
