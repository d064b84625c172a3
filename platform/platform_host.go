//go:build !tinygo

package platform

import (
	"os"
	"time"

	"picosoc-go/board"
	"picosoc-go/errcode"
)

// Open returns the simulated SoC unless o.DevMem names a device.
func Open(cfg board.Config, o Options) (*Target, error) {
	if o.DevMem == "" {
		return simulated(cfg, o), nil
	}
	return openDevMem(cfg, o.DevMem)
}

// LoadConfig reads a JSON board description. An empty path yields the
// defaults.
func LoadConfig(path string) (board.Config, error) {
	if path == "" {
		return board.Load(nil)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return board.Config{}, &errcode.E{C: errcode.InvalidParams, Op: "platform.config", Msg: path, Err: err}
	}
	return board.Load(b)
}

func sleepMs(ms uint32) { time.Sleep(time.Duration(ms) * time.Millisecond) }
