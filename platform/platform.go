// Package platform selects the register backend a program runs on: the
// simulated SoC on a development host, /dev/mem on a Linux host wired to the
// FPGA, or direct MMIO when built with TinyGo for the SoC itself.
package platform

import (
	"io"

	"picosoc-go/board"
	"picosoc-go/bus"
	"picosoc-go/regs"
	"picosoc-go/soc"
	"picosoc-go/system"
)

type Options struct {
	DevMem string    // map the real peripheral block through this device
	Tx     io.Writer // simulated UART output
	Events *bus.Bus  // simulated pin and UART events
}

// Target is an opened backend. Model is nil unless the backend is simulated.
type Target struct {
	Bus   regs.Bus
	Model *soc.SoC
	close func() error
}

func (t *Target) Close() error {
	if t.close == nil {
		return nil
	}
	return t.close()
}

func simulated(cfg board.Config, o Options) *Target {
	opts := []soc.Option{}
	if o.Tx != nil {
		opts = append(opts, soc.WithTx(o.Tx))
	}
	if o.Events != nil {
		opts = append(opts, soc.WithEvents(o.Events))
	}
	m := soc.New(cfg, opts...)
	return &Target{Bus: m.Bus(), Model: m}
}

// Boot opens the backend and brings the system up on it.
func Boot(cfg board.Config, o Options) (*system.System, *Target, error) {
	t, err := Open(cfg, o)
	if err != nil {
		return nil, nil, err
	}
	sys := system.New(t.Bus, cfg)
	sys.Sleep = sleepMs
	if err := sys.Init(); err != nil {
		_ = t.Close()
		return nil, nil, err
	}
	return sys, t, nil
}
