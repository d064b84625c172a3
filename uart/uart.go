// Package uart drives the SoC's polled UART: a control register holding the
// enable bit, the status flags and the clock divisor, and a data register
// whose low byte carries one character.
//
// Byte I/O is blocking and bounded by a poll.Policy: PutC and GetC give up
// with errcode.Timeout once the budget is spent. Flush is the exception and
// waits for the transmitter without any bound.
package uart

import (
	"tinygo.org/x/drivers"

	"picosoc-go/board"
	"picosoc-go/errcode"
	"picosoc-go/poll"
	"picosoc-go/regs"
	"picosoc-go/x/mathx"
)

// Config mirrors the firmware's port description. Only Baud reaches the
// hardware; the framing fields are fixed at 8N1 in the gateware.
type Config struct {
	Baud        uint32 `json:"baud"`
	DataBits    uint8  `json:"data_bits"`
	StopBits    uint8  `json:"stop_bits"`
	Parity      uint8  `json:"parity"` // 0 none, 1 even, 2 odd
	FlowControl uint8  `json:"flow_control"`
}

func DefaultConfig() Config {
	return Config{Baud: board.DefaultBaud, DataBits: 8, StopBits: 1}
}

// Port owns one UART. Create one per physical peripheral; it is not safe for
// concurrent use.
type Port struct {
	bus     regs.Bus
	m       board.UARTMap
	clockHz uint32
	policy  poll.Policy

	baud        uint32
	initialized bool
}

var _ drivers.UART = (*Port)(nil)

// New returns an uninitialised port. clockHz is the system clock the divisor
// is derived from.
func New(bus regs.Bus, m board.UARTMap, clockHz uint32, p poll.Policy) *Port {
	return &Port{bus: bus, m: m, clockHz: clockHz, policy: p, baud: board.DefaultBaud}
}

// Init programs the divisor for baud and enables the port.
//
// The control register is written twice: first with only the enable bit, then
// with enable and the divisor. The divisor must not be latched while the port
// state is indeterminate, so the order is fixed.
func (p *Port) Init(baud uint32) error {
	if baud == 0 {
		return errcode.InvalidParams
	}
	div := p.clockHz / baud
	if div == 0 {
		return errcode.InvalidParams
	}

	ctrl := uint32(board.UARTCtrlEnable)
	p.bus.Write32(p.m.Ctrl, ctrl)
	p.bus.Barrier()
	p.bus.Write32(p.m.Ctrl, ctrl|div<<board.UARTDivShift)

	p.baud = baud
	p.initialized = true
	return nil
}

// Configure initialises the port from a Config.
func (p *Port) Configure(cfg Config) error { return p.Init(cfg.Baud) }

// SetBaudRate reprograms the divisor. It is Init under another name and
// re-asserts the enable bit.
func (p *Port) SetBaudRate(baud uint32) error { return p.Init(baud) }

func (p *Port) Initialized() bool { return p.initialized }

// Baud returns the last rate passed to a successful Init.
func (p *Port) Baud() uint32 { return p.baud }

// Divisor reads the programmed clock divisor back from the control register.
func (p *Port) Divisor() uint32 {
	return regs.Field(p.bus.Read32(p.m.Ctrl), board.UARTDivShift, board.UARTDivWidth)
}

// ActualBaud is the line rate the programmed divisor really produces.
func (p *Port) ActualBaud() uint32 { return mathx.RoundDiv(p.clockHz, p.Divisor()) }

// Enable sets the enable bit. It does not require Init.
func (p *Port) Enable() { regs.SetBits(p.bus, p.m.Ctrl, board.UARTCtrlEnable) }

// Disable clears the enable bit. It does not require Init.
func (p *Port) Disable() { regs.ClearBits(p.bus, p.m.Ctrl, board.UARTCtrlEnable) }

// Status returns the raw control register.
func (p *Port) Status() uint32 { return p.bus.Read32(p.m.Ctrl) }

func (p *Port) flag(bit uint32) bool { return p.bus.Read32(p.m.Ctrl)&bit != 0 }

func (p *Port) TxReady() bool { return p.flag(board.UARTCtrlTxReady) }
func (p *Port) RxReady() bool { return p.flag(board.UARTCtrlRxReady) }
func (p *Port) TxBusy() bool  { return p.flag(board.UARTCtrlTxBusy) }
func (p *Port) RxBusy() bool  { return p.flag(board.UARTCtrlRxBusy) }
