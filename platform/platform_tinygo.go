//go:build tinygo

package platform

import (
	"time"

	"picosoc-go/board"
	"picosoc-go/regs"
)

// Open returns direct MMIO; the options only apply to hosted builds.
func Open(board.Config, Options) (*Target, error) {
	return &Target{Bus: regs.MMIO{}}, nil
}

// LoadConfig returns the defaults; there is no filesystem on the SoC.
func LoadConfig(string) (board.Config, error) { return board.Load(nil) }

func sleepMs(ms uint32) { time.Sleep(time.Duration(ms) * time.Millisecond) }
