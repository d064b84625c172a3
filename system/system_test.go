package system

import (
	"bytes"
	"testing"

	"picosoc-go/board"
	"picosoc-go/errcode"
	"picosoc-go/poll"
	"picosoc-go/regs"
	"picosoc-go/soc"
)

func newTestSystem(t *testing.T) (*System, *soc.SoC, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := board.Default()
	s := soc.New(cfg, soc.WithTx(&out))
	sys := NewWithPolicy(s.Bus(), cfg, poll.Policy{Budget: 10, Spin: func(uint32) {}})
	return sys, s, &out
}

func TestInitOrderAndBanner(t *testing.T) {
	sys, s, out := newTestSystem(t)
	s.Sim.Poke(s.Map.GPIO.Ctrl, 0xFFFF_FFFF)
	if sys.Status() != 0 || sys.Initialized() {
		t.Fatalf("status before Init = %d", sys.Status())
	}
	if err := sys.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if sys.Status() != 1 {
		t.Fatalf("Status = %d, want 1", sys.Status())
	}
	if s.Sim.Peek(s.Map.GPIO.Ctrl) != 0 {
		t.Fatalf("GPIO not reset by Init")
	}
	if !sys.UART.Initialized() || sys.UART.Divisor() != 217 {
		t.Fatalf("UART not brought up at the default baud")
	}
	if got := out.String(); got != "PicoRV32 System Initialized\n\r" {
		t.Fatalf("banner = %q", got)
	}
}

func TestInitFailsOnBadBaud(t *testing.T) {
	sim := regs.NewSim()
	cfg := board.Default()
	cfg.DefaultBaud = cfg.ClockHz + 1
	sys := New(sim, cfg)
	err := sys.Init()
	if errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("Init = %v, want invalid_params", err)
	}
	if sys.Status() != 0 {
		t.Fatalf("status set after failed Init")
	}
}

func TestReset(t *testing.T) {
	sys, s, _ := newTestSystem(t)
	_ = sys.Init()
	s.Sim.Poke(s.Map.IRQ.Ctrl, board.IRQCtrlEnable|board.IRQCtrlGlobalEn)
	sys.Reset()
	if sys.Status() != 0 {
		t.Fatalf("Status after Reset = %d", sys.Status())
	}
	if s.Sim.Peek(s.Map.IRQ.Ctrl) != 0 {
		t.Fatalf("interrupts left enabled")
	}
}

func TestErrorReport(t *testing.T) {
	cases := []struct {
		err  error
		line string
	}{
		{errcode.InvalidParams, "Invalid parameter"},
		{errcode.Timeout, "Operation timeout"},
		{errcode.Error, "Hardware error"},
		{errcode.Unsupported, "Operation not supported"},
		{errcode.Wrap("uart.putc", errcode.Timeout), "Operation timeout"},
		{errcode.Code("other"), "Unknown error"},
	}
	for _, c := range cases {
		sys, _, out := newTestSystem(t)
		_ = sys.Init()
		out.Reset()
		sys.Error(c.err, "boom")
		want := "System Error: boom\n\r" + c.line + "\n\r"
		if got := out.String(); got != want {
			t.Fatalf("Error(%v) printed %q, want %q", c.err, got, want)
		}
	}
}

func TestMustAndLEDs(t *testing.T) {
	sys, s, out := newTestSystem(t)
	_ = sys.Init()
	out.Reset()
	if !sys.Must(nil, "fine") || out.Len() != 0 {
		t.Fatalf("Must(nil) reported")
	}
	if sys.Must(errcode.Timeout, "late") {
		t.Fatalf("Must(err) = true")
	}
	if err := sys.ConfigLEDs(); err != nil {
		t.Fatalf("ConfigLEDs: %v", err)
	}
	if got := s.Sim.Peek(s.Map.GPIO.Ctrl); got != 0x1111_1111 {
		t.Fatalf("LED config ctrl = %#x", got)
	}
}

func TestDelayUsesSleep(t *testing.T) {
	sys, _, _ := newTestSystem(t)
	var slept uint32
	sys.Sleep = func(ms uint32) { slept += ms }
	sys.DelayMs(5)
	sys.DelayMs(10)
	if slept != 15 {
		t.Fatalf("slept %d ms", slept)
	}
}
