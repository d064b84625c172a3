package demo

import (
	"context"

	"picosoc-go/system"
	"picosoc-go/x/conv"
)

const rule = "========================================\n"

// Hello prints the board parameters and then walks a single lit LED back
// and forth across LED0..LED7.
type Hello struct {
	Sys *system.System

	pattern uint8
	right   bool
}

func (h *Hello) Setup() error {
	if err := h.Sys.ConfigLEDs(); err != nil {
		return err
	}
	u, cfg := h.Sys.UART, h.Sys.Cfg
	_ = u.PutS("\n")
	_ = u.PutS(rule)
	_ = u.PutS("  PicoRV32 Hello World Demo\n")
	_ = u.PutS(rule)
	_ = u.PutS("\n")
	_, _ = u.Printf("System Clock: %u Hz\n", cfg.ClockHz)
	_, _ = u.Printf("UART Baudrate: %u\n", cfg.DefaultBaud)
	_, _ = u.Printf("SRAM Size: %u bytes\n", cfg.SRAMSize)
	_, _ = u.Printf("Flash Size: %u bytes\n", cfg.FlashSize)
	_ = u.PutS("\n")
	_ = u.PutS("Starting LED demo...\n")
	h.pattern, h.right = 0x01, false
	return nil
}

// Pattern is the LED pattern the next Step shows.
func (h *Hello) Pattern() uint8 { return h.pattern }

// Step shows the current pattern, reports it as hex and binary, then moves
// the lit LED one place, bouncing at either end.
func (h *Hello) Step() {
	u := h.Sys.UART
	_ = h.Sys.GPIO.SetLEDs(h.pattern)

	var hex [2]byte
	_ = u.PutS("LED Pattern: 0x")
	_ = u.PutS(string(conv.Hex(hex[:], uint64(h.pattern), 2)))
	_ = u.PutC(' ')
	_ = u.PrintBin(uint32(h.pattern), 8)
	_ = u.PutS("\n")

	if !h.right {
		h.pattern <<= 1
		if h.pattern == 0 {
			h.pattern, h.right = 0x80, true
		}
	} else {
		h.pattern >>= 1
		if h.pattern == 0 {
			h.pattern, h.right = 0x01, false
		}
	}
	h.Sys.DelayMs(500)
}

func (h *Hello) Run(ctx context.Context) error {
	if err := h.Setup(); err != nil {
		return err
	}
	for ctx.Err() == nil {
		h.Step()
	}
	return nil
}
