//go:build !tinygo

package platform

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"picosoc-go/board"
	"picosoc-go/errcode"
)

func TestBootSimulated(t *testing.T) {
	var out bytes.Buffer
	sys, tgt, err := Boot(board.Default(), Options{Tx: &out})
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	defer tgt.Close()
	if tgt.Model == nil {
		t.Fatalf("expected the simulated backend")
	}
	if sys.Status() != 1 || out.String() != "PicoRV32 System Initialized\n\r" {
		t.Fatalf("status=%d banner=%q", sys.Status(), out.String())
	}
}

func TestBootRejectsBadBaud(t *testing.T) {
	cfg := board.Default()
	cfg.DefaultBaud = cfg.ClockHz * 2
	if _, _, err := Boot(cfg, Options{}); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("Boot = %v, want invalid_params", err)
	}
}

func TestLoadConfig(t *testing.T) {
	c, err := LoadConfig("")
	if err != nil || c != board.Default() {
		t.Fatalf("LoadConfig(\"\") = %+v, %v", c, err)
	}

	path := filepath.Join(t.TempDir(), "board.json")
	if err := os.WriteFile(path, []byte(`{"clock_hz": 12000000, "gpio_pins": 12}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = LoadConfig(path)
	if err != nil || c.ClockHz != 12_000_000 || c.GPIOPins != 12 {
		t.Fatalf("LoadConfig = %+v, %v", c, err)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("missing file err = %v", err)
	}
}

func TestDevMemMissingDevice(t *testing.T) {
	_, err := Open(board.Default(), Options{DevMem: filepath.Join(t.TempDir(), "nope")})
	if err == nil {
		t.Fatalf("Open with a missing device succeeded")
	}
}
