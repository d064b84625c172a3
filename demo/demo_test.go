package demo

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sigurn/crc8"

	"picosoc-go/board"
	"picosoc-go/poll"
	"picosoc-go/soc"
	"picosoc-go/system"
	"picosoc-go/x/fmtx"
)

func newBoard(t *testing.T) (*system.System, *soc.SoC, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := board.Default()
	s := soc.New(cfg, soc.WithTx(&out))
	sys := system.NewWithPolicy(s.Bus(), cfg, poll.Policy{Budget: 10, Spin: func(uint32) {}})
	sys.Sleep = func(uint32) {}
	if err := sys.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	out.Reset()
	return sys, s, &out
}

// text strips the carriage returns the UART adds after each newline.
func text(b *bytes.Buffer) string {
	s := strings.ReplaceAll(b.String(), "\n\r", "\n")
	b.Reset()
	return s
}

func TestBlinkCyclesPatternsOnKey(t *testing.T) {
	sys, s, out := newBoard(t)
	b := &Blink{Sys: sys}
	if err := b.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if got := text(out); !strings.Contains(got, "PicoRV32 LED Blink Demo\n") {
		t.Fatalf("header = %q", got)
	}

	b.Step()
	if got := text(out); got != "All LEDs ON\nAll LEDs OFF\n" {
		t.Fatalf("step 0 = %q", got)
	}
	if s.LEDs() != 0 {
		t.Fatalf("LEDs left on: %#x", s.LEDs())
	}

	s.Feed([]byte("x"))
	b.Step()
	if got := text(out); !strings.HasSuffix(got, "Pattern changed to 1\n") {
		t.Fatalf("step with key = %q", got)
	}
	for i := 0; i < 3; i++ {
		s.Feed([]byte("x"))
		b.Step()
	}
	if b.Pattern != 0 {
		t.Fatalf("pattern should wrap to 0, got %d", b.Pattern)
	}
}

func TestBlinkBinaryCount(t *testing.T) {
	sys, _, out := newBoard(t)
	b := &Blink{Sys: sys, Pattern: 3, Count: 0x1FF}
	b.Step()
	if got := text(out); !strings.HasPrefix(got, "Binary count: 255\n") {
		t.Fatalf("binary step = %q", got)
	}
	if b.Count != 0x200 {
		t.Fatalf("Count = %#x", b.Count)
	}
}

func TestHelloWalksAndBounces(t *testing.T) {
	sys, s, out := newBoard(t)
	h := &Hello{Sys: sys}
	if err := h.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	got := text(out)
	for _, want := range []string{"System Clock: 25000000 Hz\n", "UART Baudrate: 115200\n", "Starting LED demo...\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf("setup output missing %q:\n%s", want, got)
		}
	}

	want := []uint8{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x80, 0x40}
	for i, w := range want {
		h.Step()
		if s.LEDs() != w {
			t.Fatalf("step %d LEDs = %#x, want %#x", i, s.LEDs(), w)
		}
	}
	lines := strings.Split(strings.TrimSuffix(text(out), "\n"), "\n")
	if lines[0] != "LED Pattern: 0x01 00000001" || lines[7] != "LED Pattern: 0x80 10000000" {
		t.Fatalf("pattern lines = %q", lines)
	}
}

func feed(s *soc.SoC, c *Console, keys string) {
	s.Feed([]byte(keys))
	for c.Poll() {
	}
}

func TestConsoleSingleKeyCommands(t *testing.T) {
	sys, s, out := newBoard(t)
	c := &Console{Sys: sys}
	if err := c.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if got := text(out); !strings.Contains(got, "PicoRV32 UART Test Demo") || !strings.Contains(got, "'t' - Test pattern") {
		t.Fatalf("banner = %q", got)
	}

	feed(s, c, "l")
	if got := text(out); got != "\nLED toggled\n" || s.LEDs()&1 == 0 {
		t.Fatalf("toggle: %q leds=%#x", got, s.LEDs())
	}

	feed(s, c, "t")
	if got := text(out); !strings.Contains(got, "0123456789ABCDEF\n") {
		t.Fatalf("test pattern = %q", got)
	}

	feed(s, c, "?")
	if got := text(out); got != "\nUnknown command: '?' (0x3F)\nType 'h' for help\n" {
		t.Fatalf("unknown = %q", got)
	}

	feed(s, c, "s")
	if got := text(out); !strings.Contains(got, "Characters received: 4\n") {
		t.Fatalf("info = %q", got)
	}
}

func TestConsoleEchoMode(t *testing.T) {
	sys, s, out := newBoard(t)
	c := &Console{Sys: sys}
	_ = c.Setup()
	text(out)

	feed(s, c, "e")
	if !c.Echo() {
		t.Fatalf("echo not enabled")
	}
	text(out)
	feed(s, c, "abc")
	if got := text(out); got != "abc" {
		t.Fatalf("echo = %q", got)
	}
	feed(s, c, "q")
	if c.Echo() || text(out) != "\nEcho mode disabled\n" {
		t.Fatalf("echo mode not left")
	}
}

func TestConsoleLineCommands(t *testing.T) {
	sys, s, out := newBoard(t)
	c := &Console{Sys: sys}
	_ = c.Setup()
	text(out)

	feed(s, c, ":led 3 on\r")
	if s.LEDs() != 0x08 {
		t.Fatalf("LEDs = %#x", s.LEDs())
	}
	if got := text(out); !strings.HasSuffix(got, "LED3 on\n") {
		t.Fatalf("led output = %q", got)
	}

	feed(s, c, ":led 9 on\r")
	if got := text(out); !strings.Contains(got, "System Error: led\nInvalid pin\n") {
		t.Fatalf("bad led = %q", got)
	}

	s.PressButton(1, true)
	c.Exec("btn 1")
	if got := text(out); got != "BTN1 pressed\n" {
		t.Fatalf("btn = %q", got)
	}

	c.Exec("baud 9600")
	if got := text(out); got != "Baud 9600: divisor 2604, actual 9601\n" {
		t.Fatalf("baud = %q", got)
	}
	c.Exec("baud 0")
	if got := text(out); !strings.Contains(got, "Invalid parameter") {
		t.Fatalf("baud 0 = %q", got)
	}

	c.Exec(`crc "hello world"`)
	want := crc8.Checksum([]byte("hello world"), crc8.MakeTable(crc8.CRC8))
	if got := text(out); got != fmtx.Sprintf("CRC-8: 0x%x (11 bytes)\n", want) {
		t.Fatalf("crc = %q", got)
	}

	c.Exec("pins")
	if got := text(out); !strings.Contains(got, "  pin 0: out pull=0 level=0\n") || !strings.Contains(got, "  pin 3: in  pull=0 level=1\n") {
		t.Fatalf("pins = %q", got)
	}

	c.Exec(`led "unterminated`)
	if got := text(out); !strings.Contains(got, "System Error:") {
		t.Fatalf("shlex error not reported: %q", got)
	}
}

func TestConsoleLineEditing(t *testing.T) {
	sys, s, out := newBoard(t)
	c := &Console{Sys: sys}
	_ = c.Setup()
	text(out)
	feed(s, c, ":leX\x08d 0 on\n")
	if s.LEDs() != 0x01 {
		t.Fatalf("backspace not applied: LEDs = %#x", s.LEDs())
	}
	feed(s, c, ":junk\x1b")
	if got := text(out); strings.Contains(got, "Unknown line command") {
		t.Fatalf("escape should cancel the line: %q", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	sys, _, _ := newBoard(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, p := range []interface{ Run(context.Context) error }{
		&Blink{Sys: sys}, &Hello{Sys: sys}, &Console{Sys: sys},
	} {
		if err := p.Run(ctx); err != nil {
			t.Fatalf("%T.Run: %v", p, err)
		}
	}
}
