package board

import (
	"encoding/json"

	"picosoc-go/errcode"
	"picosoc-go/x/mathx"
)

// Defaults mirror the stock FPGA bitstream.
const (
	DefaultClockHz    = 25_000_000
	DefaultBaud       = 115200
	DefaultPollBudget = 10_000
	DefaultPollDelay  = 10
	DefaultSRAMSize   = 64 << 10
	DefaultFlashSize  = 1 << 20
)

// Config carries the build-time parameters of a board. Zero fields take the
// defaults when loaded.
type Config struct {
	ClockHz     uint32 `json:"clock_hz"`
	DefaultBaud uint32 `json:"default_baud"`
	PeriphBase  uint32 `json:"periph_base"`
	PollBudget  uint32 `json:"poll_budget"` // polls before a byte I/O times out
	PollDelay   uint32 `json:"poll_delay"`  // delay cycles between polls
	GPIOPins    int    `json:"gpio_pins"`
	SRAMSize    uint32 `json:"sram_size"`
	FlashSize   uint32 `json:"flash_size"`
}

func Default() Config {
	return Config{
		ClockHz:     DefaultClockHz,
		DefaultBaud: DefaultBaud,
		PeriphBase:  PeriphBase,
		PollBudget:  DefaultPollBudget,
		PollDelay:   DefaultPollDelay,
		GPIOPins:    GPIOMaxPins,
		SRAMSize:    DefaultSRAMSize,
		FlashSize:   DefaultFlashSize,
	}
}

// Load decodes a board description from JSON ([]byte, string, or any
// JSON-able value such as a map), fills defaults and validates the result.
func Load(src any) (Config, error) {
	var c Config
	if src != nil {
		if err := decodeJSON(src, &c); err != nil {
			return Config{}, &errcode.E{C: errcode.InvalidParams, Op: "board.load", Msg: err.Error(), Err: err}
		}
	}
	c.fill()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) fill() {
	d := Default()
	if c.ClockHz == 0 {
		c.ClockHz = d.ClockHz
	}
	if c.DefaultBaud == 0 {
		c.DefaultBaud = d.DefaultBaud
	}
	if c.PeriphBase == 0 {
		c.PeriphBase = d.PeriphBase
	}
	if c.PollBudget == 0 {
		c.PollBudget = d.PollBudget
	}
	if c.PollDelay == 0 {
		c.PollDelay = d.PollDelay
	}
	if c.GPIOPins == 0 {
		c.GPIOPins = d.GPIOPins
	}
	if c.SRAMSize == 0 {
		c.SRAMSize = d.SRAMSize
	}
	if c.FlashSize == 0 {
		c.FlashSize = d.FlashSize
	}
}

// Validate rejects parameters no controller could be built from.
func (c Config) Validate() error {
	switch {
	case c.ClockHz == 0:
		return &errcode.E{C: errcode.InvalidParams, Op: "board.validate", Msg: "clock_hz must be > 0"}
	case c.DefaultBaud == 0 || c.ClockHz/c.DefaultBaud == 0:
		return &errcode.E{C: errcode.InvalidParams, Op: "board.validate", Msg: "default_baud out of range for clock"}
	case !mathx.Between(c.GPIOPins, 1, GPIOMaxPins):
		return &errcode.E{C: errcode.InvalidParams, Op: "board.validate", Msg: "gpio_pins must be 1..32"}
	case c.PollBudget == 0:
		return &errcode.E{C: errcode.InvalidParams, Op: "board.validate", Msg: "poll_budget must be > 0"}
	}
	return nil
}

// Map returns the register map for this board.
func (c Config) Map() Map { return MapAt(c.PeriphBase) }

// DefaultDivisor is the UART clock divisor at the default baud rate.
func (c Config) DefaultDivisor() uint32 { return c.ClockHz / c.DefaultBaud }

func decodeJSON[T any](src any, dst *T) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, dst)
	}
}
