// Package system brings the SoC up: it builds the GPIO and UART controllers
// from a board description, initialises them in the firmware's order and
// provides the shared error reporter and millisecond delay.
package system

import (
	"picosoc-go/board"
	"picosoc-go/errcode"
	"picosoc-go/gpio"
	"picosoc-go/poll"
	"picosoc-go/regs"
	"picosoc-go/uart"
)

// Banner is printed on the UART once Init succeeds.
const Banner = "PicoRV32 System Initialized\n"

const statusInitialized = 0x01

type System struct {
	Cfg  board.Config
	Bus  regs.Bus
	GPIO *gpio.Controller
	UART *uart.Port

	// Sleep backs DelayMs. Nil spins poll.SpinCycles for the equivalent
	// number of clock cycles.
	Sleep func(ms uint32)

	status uint32
}

// Policy returns the byte I/O poll policy described by cfg.
func Policy(cfg board.Config) poll.Policy {
	return poll.Policy{Budget: cfg.PollBudget, Delay: cfg.PollDelay, Spin: poll.SpinCycles}
}

// New wires controllers for cfg onto bus. Nothing touches the hardware until
// Init.
func New(bus regs.Bus, cfg board.Config) *System {
	return NewWithPolicy(bus, cfg, Policy(cfg))
}

// NewWithPolicy is New with an explicit poll policy for the UART.
func NewWithPolicy(bus regs.Bus, cfg board.Config, p poll.Policy) *System {
	m := cfg.Map()
	return &System{
		Cfg:  cfg,
		Bus:  bus,
		GPIO: gpio.New(bus, m.GPIO, cfg.GPIOPins),
		UART: uart.New(bus, m.UART, cfg.ClockHz, p),
	}
}

// Init resets the GPIO block, brings the UART up at the default baud rate,
// marks the system initialised and prints the banner. The banner is best
// effort: a UART that cannot transmit does not fail Init.
func (s *System) Init() error {
	if err := s.GPIO.Init(); err != nil {
		return errcode.Wrap("system.init", err)
	}
	if err := s.UART.Init(s.Cfg.DefaultBaud); err != nil {
		return errcode.Wrap("system.init", err)
	}
	s.status = statusInitialized
	_ = s.UART.PutS(Banner)
	return nil
}

// Status returns the system status word: 1 after Init, 0 after Reset.
func (s *System) Status() uint32 { return s.status }

// Initialized reports whether Init has run since the last Reset.
func (s *System) Initialized() bool { return s.status&statusInitialized != 0 }

// Reset clears the status word and disables the interrupt controller. The
// controllers keep their state; call Init to bring them up again.
func (s *System) Reset() {
	s.Bus.Write32(s.Cfg.Map().IRQ.Ctrl, 0)
	s.status = 0
}

// Error reports a failure on the console: the caller's message, then a line
// describing the code.
func (s *System) Error(err error, msg string) {
	u := s.UART
	_ = u.PutS("System Error: ")
	_ = u.PutS(msg)
	_ = u.PutS("\n")
	_ = u.PutS(errcode.Text(errcode.Of(err)))
	_ = u.PutS("\n")
}

// Must reports err through Error and returns false when err is non-nil.
func (s *System) Must(err error, msg string) bool {
	if err == nil {
		return true
	}
	s.Error(err, msg)
	return false
}

// DelayMs blocks for roughly ms milliseconds.
func (s *System) DelayMs(ms uint32) {
	if s.Sleep != nil {
		s.Sleep(ms)
		return
	}
	poll.SpinCycles(poll.Millis(s.Cfg.ClockHz, ms))
}

// ConfigLEDs configures LED0..LED7 as push-pull outputs.
func (s *System) ConfigLEDs() error {
	cfg := gpio.PinConfig{Direction: gpio.Output, Pull: gpio.PullNone}
	for i := gpio.LED0; i <= gpio.LED7; i++ {
		if err := s.GPIO.Config(i, &cfg); err != nil {
			return err
		}
	}
	return nil
}
