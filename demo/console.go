package demo

import (
	"context"
	"strings"

	"github.com/google/shlex"
	"github.com/sigurn/crc8"

	"picosoc-go/errcode"
	"picosoc-go/gpio"
	"picosoc-go/system"
	"picosoc-go/x/conv"
)

const consoleHelp = "Commands:\n" +
	"  'h' - Print help\n" +
	"  's' - Print system info\n" +
	"  'l' - Toggle LED\n" +
	"  'e' - Echo mode\n" +
	"  'q' - Quit echo mode\n" +
	"  't' - Test pattern\n" +
	"  ':' - Line command (led, btn, baud, pins, crc)\n"

const testPattern = "0123456789ABCDEF\n" +
	"abcdefghijklmnop\n" +
	"!@#$%^&*()_+-=[]\n" +
	"{}|\\:;\"'<>?,./\n"

const maxLine = 80

var crcTable = crc8.MakeTable(crc8.CRC8)

// Console is the interactive UART test program. Single keys select the
// firmware's commands; ':' opens a line whose words are split shell-style and
// dispatched to the line commands.
type Console struct {
	Sys *system.System

	Received uint32
	echo     bool
	lineMode bool
	line     []byte
}

func (c *Console) Setup() error {
	cfg := gpio.PinConfig{Direction: gpio.Output, Pull: gpio.PullNone}
	if err := c.Sys.GPIO.Config(gpio.LED0, &cfg); err != nil {
		return err
	}
	u := c.Sys.UART
	_ = u.PutS("\n")
	_ = u.PutS(rule)
	_ = u.PutS("  PicoRV32 UART Test Demo\n")
	_ = u.PutS(rule)
	_ = u.PutS("\n")
	_ = u.PutS(consoleHelp)
	_ = u.PutS("\n")
	return nil
}

// Echo reports whether echo mode is active.
func (c *Console) Echo() bool { return c.echo }

// Poll handles at most one received byte. It reports whether a byte was
// consumed.
func (c *Console) Poll() bool {
	u := c.Sys.UART
	if !u.Available() {
		return false
	}
	ch, err := u.GetC()
	if err != nil {
		return false
	}
	c.Received++
	c.handle(ch)
	return true
}

func (c *Console) handle(ch byte) {
	u := c.Sys.UART
	switch {
	case c.echo:
		if ch == 'q' {
			c.echo = false
			_ = u.PutS("\nEcho mode disabled\n")
			return
		}
		_ = u.PutC(ch)
		return
	case c.lineMode:
		c.lineByte(ch)
		return
	}

	switch ch {
	case 'h', 'H':
		_ = u.PutS("\n")
		_ = u.PutS(consoleHelp)
		_ = u.PutS("\n")
	case 's', 'S':
		c.info()
	case 'l', 'L':
		_ = c.Sys.GPIO.Toggle(gpio.LED0)
		_ = u.PutS("\nLED toggled\n")
	case 'e', 'E':
		c.echo = true
		_ = u.PutS("\nEcho mode enabled. Type 'q' to quit.\n")
	case 't', 'T':
		_ = u.PutS("\nTest pattern:\n")
		_ = u.PutS(testPattern)
		_ = u.PutS("\n")
	case ':':
		c.lineMode = true
		c.line = c.line[:0]
		_ = u.PutS("\n> ")
	case '\r', '\n':
		_ = u.PutS("\n")
	default:
		var hex [2]byte
		_, _ = u.Printf("\nUnknown command: '%c' (0x%s)\n", ch, conv.Hex(hex[:], uint64(ch), 2))
		_ = u.PutS("Type 'h' for help\n")
	}
}

func (c *Console) info() {
	u, cfg := c.Sys.UART, c.Sys.Cfg
	_ = u.PutS("\nSystem Information:\n")
	_, _ = u.Printf("  System Clock: %u Hz\n", cfg.ClockHz)
	_, _ = u.Printf("  UART Baudrate: %u\n", u.Baud())
	_, _ = u.Printf("  SRAM Size: %u bytes\n", cfg.SRAMSize)
	_, _ = u.Printf("  Flash Size: %u bytes\n", cfg.FlashSize)
	_, _ = u.Printf("  Characters received: %u\n", c.Received)
	_ = u.PutS("\n")
}

// lineByte edits the pending command line. The line is echoed as typed.
func (c *Console) lineByte(ch byte) {
	u := c.Sys.UART
	switch ch {
	case '\r', '\n':
		c.lineMode = false
		_ = u.PutS("\n")
		c.exec(string(c.line))
	case 0x08, 0x7F:
		if len(c.line) > 0 {
			c.line = c.line[:len(c.line)-1]
			_ = u.PutS("\b \b")
		}
	case 0x1B:
		c.lineMode = false
		_ = u.PutS("\n")
	default:
		if len(c.line) < maxLine {
			c.line = append(c.line, ch)
			_ = u.PutC(ch)
		}
	}
}

// Exec runs one line command.
func (c *Console) Exec(line string) { c.exec(line) }

func (c *Console) exec(line string) {
	u := c.Sys.UART
	args, err := shlex.Split(line)
	if err != nil {
		c.Sys.Error(errcode.InvalidParams, err.Error())
		return
	}
	if len(args) == 0 {
		return
	}
	switch args[0] {
	case "led":
		c.cmdLED(args[1:])
	case "btn":
		c.cmdButton(args[1:])
	case "baud":
		c.cmdBaud(args[1:])
	case "pins":
		c.cmdPins()
	case "crc":
		data := []byte(strings.Join(args[1:], " "))
		_, _ = u.Printf("CRC-8: 0x%x (%u bytes)\n", crc8.Checksum(data, crcTable), len(data))
	default:
		_, _ = u.Printf("Unknown line command: %s\n", args[0])
	}
}

func (c *Console) usage(s string) { _ = c.Sys.UART.PutS("usage: " + s + "\n") }

func (c *Console) cmdLED(args []string) {
	if len(args) != 2 {
		c.usage("led <0-7> on|off|toggle")
		return
	}
	n, err := conv.ParseUint32(args[0])
	if err != nil {
		c.Sys.Error(errcode.InvalidParams, "led: bad index")
		return
	}
	i := int(min(n, 0xFF))
	switch args[1] {
	case "on":
		err = c.Sys.GPIO.SetLED(i, true)
	case "off":
		err = c.Sys.GPIO.SetLED(i, false)
	case "toggle":
		err = c.Sys.GPIO.ToggleLED(i)
	default:
		c.usage("led <0-7> on|off|toggle")
		return
	}
	if !c.Sys.Must(err, "led") {
		return
	}
	_, _ = c.Sys.UART.Printf("LED%u %s\n", i, args[1])
}

func (c *Console) cmdButton(args []string) {
	if len(args) != 1 {
		c.usage("btn <0-3>")
		return
	}
	n, err := conv.ParseUint32(args[0])
	if err != nil {
		c.Sys.Error(errcode.InvalidParams, "btn: bad index")
		return
	}
	on, err := c.Sys.GPIO.ReadButton(int(min(n, 0xFF)))
	if !c.Sys.Must(err, "btn") {
		return
	}
	state := "released"
	if on {
		state = "pressed"
	}
	_, _ = c.Sys.UART.Printf("BTN%u %s\n", n, state)
}

func (c *Console) cmdBaud(args []string) {
	u := c.Sys.UART
	if len(args) != 1 {
		c.usage("baud <rate>")
		return
	}
	rate, err := conv.ParseUint32(args[0])
	if err != nil {
		c.Sys.Error(errcode.InvalidParams, "baud: bad rate")
		return
	}
	if !c.Sys.Must(u.SetBaudRate(rate), "baud") {
		return
	}
	_, _ = u.Printf("Baud %u: divisor %u, actual %u\n", rate, u.Divisor(), u.ActualBaud())
}

func (c *Console) cmdPins() {
	g, u := c.Sys.GPIO, c.Sys.UART
	for pin := 0; pin <= gpio.BTN3; pin++ {
		cfg, err := g.PinConfigOf(pin)
		if err != nil {
			continue
		}
		level, _ := g.Read(pin)
		dir := "in "
		if cfg.Direction == gpio.Output {
			dir = "out"
		}
		lv := 0
		if level {
			lv = 1
		}
		_, _ = u.Printf("  pin %d: %s pull=%d level=%d\n", pin, dir, int(cfg.Pull), lv)
	}
}

// Run calls Setup and then polls every 10 ms until ctx is done.
func (c *Console) Run(ctx context.Context) error {
	if err := c.Setup(); err != nil {
		return err
	}
	for ctx.Err() == nil {
		c.Poll()
		c.Sys.DelayMs(10)
	}
	return nil
}
