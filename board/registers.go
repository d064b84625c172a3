// Package board describes the PicoRV32 SoC memory map, its register bit
// layouts and the build-time parameters (clock, default baud rate, pin count).
package board

import "picosoc-go/regs"

const (
	// --- Memory map ---
	SRAMBase       = 0x0000_0000
	FlashBase      = 0x0010_0000
	PeriphBase     = 0x0200_0000
	UserPeriphBase = 0x0300_0000

	// --- Peripheral register offsets from PeriphBase ---
	offUARTCtrl    = 0x00
	offUARTData    = 0x04
	offGPIOCtrl    = 0x08
	offGPIOData    = 0x0C
	offSPICtrl     = 0x10
	offSPIData     = 0x14
	offTimerCtrl   = 0x18
	offTimerValue  = 0x1C
	offIRQCtrl     = 0x20
	offIRQStatus   = 0x24
	periphSpanSize = 0x28
)

// UART control register.
const (
	UARTCtrlEnable  = 1 << 0
	UARTCtrlTxReady = 1 << 1
	UARTCtrlRxReady = 1 << 2
	UARTCtrlTxBusy  = 1 << 3
	UARTCtrlRxBusy  = 1 << 4

	UARTDivShift = 8
	UARTDivWidth = 24
)

// GPIO control register: one nibble per pin at pin*4.
const (
	GPIOCtrlDirOut   = 1 << 0
	GPIOCtrlDirIn    = 1 << 1
	GPIOCtrlPullUp   = 1 << 2
	GPIOCtrlPullDown = 1 << 3

	GPIOFieldWidth = 4
	GPIOMaxPins    = 32
)

// SPI, timer and IRQ controller bits. Address-only; no driver uses them.
const (
	SPICtrlEnable  = 1 << 0
	SPICtrlCSLow   = 1 << 1
	SPICtrlClkPol  = 1 << 2
	SPICtrlClkPha  = 1 << 3
	SPICtrlTxReady = 1 << 4
	SPICtrlRxReady = 1 << 5

	TimerCtrlEnable  = 1 << 0
	TimerCtrlIRQEn   = 1 << 1
	TimerCtrlIRQPend = 1 << 2

	IRQCtrlEnable   = 1 << 0
	IRQCtrlGlobalEn = 1 << 1

	IRQVectorSize  = 32
	MaxIRQPriority = 7
)

type UARTMap struct{ Ctrl, Data regs.Addr }
type GPIOMap struct{ Ctrl, Data regs.Addr }
type SPIMap struct{ Ctrl, Data regs.Addr }
type TimerMap struct{ Ctrl, Value regs.Addr }
type IRQMap struct{ Ctrl, Status regs.Addr }

// Map holds the absolute register addresses of every peripheral.
type Map struct {
	UART  UARTMap
	GPIO  GPIOMap
	SPI   SPIMap
	Timer TimerMap
	IRQ   IRQMap
}

// MapAt lays the peripheral block out at base.
func MapAt(base uint32) Map {
	b := regs.Addr(base)
	return Map{
		UART:  UARTMap{Ctrl: b + offUARTCtrl, Data: b + offUARTData},
		GPIO:  GPIOMap{Ctrl: b + offGPIOCtrl, Data: b + offGPIOData},
		SPI:   SPIMap{Ctrl: b + offSPICtrl, Data: b + offSPIData},
		Timer: TimerMap{Ctrl: b + offTimerCtrl, Value: b + offTimerValue},
		IRQ:   IRQMap{Ctrl: b + offIRQCtrl, Status: b + offIRQStatus},
	}
}

// Span is the size of the peripheral register block, for mapping backends.
func Span() int { return periphSpanSize }
