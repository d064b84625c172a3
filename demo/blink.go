// Package demo holds the example firmware programs. Each program is a value
// with a Setup step and a Step (or Poll) step so a host loop, a TinyGo main
// or a test can drive it one iteration at a time.
package demo

import (
	"context"

	"picosoc-go/system"
)

// BlinkPatterns is the number of LED patterns Blink cycles through.
const BlinkPatterns = 4

// Blink flashes the LEDs in one of four patterns. Any key received on the
// UART advances to the next pattern.
type Blink struct {
	Sys *system.System

	Pattern uint8
	Count   uint32
}

func (b *Blink) Setup() error {
	if err := b.Sys.ConfigLEDs(); err != nil {
		return err
	}
	u := b.Sys.UART
	_ = u.PutS("\n")
	_ = u.PutS("PicoRV32 LED Blink Demo\n")
	_ = u.PutS("Press any key to change pattern\n")
	_ = u.PutS("\n")
	return nil
}

// Step shows the current pattern for a second, blanks the LEDs for half a
// second and then checks for a key.
func (b *Blink) Step() {
	g, u := b.Sys.GPIO, b.Sys.UART
	switch b.Pattern {
	case 0:
		_ = g.SetLEDs(0xFF)
		_ = u.PutS("All LEDs ON\n")
	case 1:
		_ = g.SetLEDs(0xAA)
		_ = u.PutS("Alternating pattern\n")
	case 2:
		_ = g.SetLEDs(0x55)
		_ = u.PutS("Odd/Even pattern\n")
	case 3:
		_ = g.SetLEDs(uint8(b.Count))
		_, _ = u.Printf("Binary count: %u\n", b.Count&0xFF)
	}
	b.Sys.DelayMs(1000)

	_ = g.SetLEDs(0x00)
	_ = u.PutS("All LEDs OFF\n")
	b.Sys.DelayMs(500)

	if u.Available() {
		_, _ = u.GetC()
		b.Pattern = (b.Pattern + 1) % BlinkPatterns
		_, _ = u.Printf("Pattern changed to %u\n", b.Pattern)
	}
	b.Count++
}

// Run calls Setup and then Step until ctx is done.
func (b *Blink) Run(ctx context.Context) error {
	if err := b.Setup(); err != nil {
		return err
	}
	for ctx.Err() == nil {
		b.Step()
	}
	return nil
}
