package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"picosoc-go/bus"
	"picosoc-go/demo"
	"picosoc-go/platform"
	"picosoc-go/soc"
)

func main() {
	cfgPath := flag.String("config", "", "board description (JSON)")
	devmem := flag.String("devmem", "", "drive real hardware through this memory device")
	steps := flag.Int("steps", 0, "stop after this many blink cycles (0 = run until interrupted)")
	every := flag.Int("key-every", 3, "simulated board: press a key every N cycles to change pattern")
	flag.Parse()

	cfg, err := platform.LoadConfig(*cfgPath)
	if err != nil {
		println("[blink] config:", err.Error())
		os.Exit(1)
	}

	events := bus.New(32)
	leds := events.Subscribe(bus.T("soc", "gpio", "led", "+"))
	go func() {
		for m := range leds.Channel() {
			on, _ := m.Payload.(bool)
			println("[blink] led", m.Topic[3].(int), on)
		}
	}()

	sys, tgt, err := platform.Boot(cfg, platform.Options{DevMem: *devmem, Tx: os.Stdout, Events: events})
	if err != nil {
		println("[blink] boot:", err.Error())
		os.Exit(1)
	}
	defer tgt.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	b := &demo.Blink{Sys: sys}
	if err := b.Setup(); err != nil {
		sys.Error(err, "led setup")
		os.Exit(1)
	}
	for n := 1; ctx.Err() == nil && (*steps == 0 || n <= *steps); n++ {
		b.Step()
		if tgt.Model != nil && *every > 0 && n%*every == 0 {
			pressKey(tgt.Model)
		}
	}
	leds.Unsubscribe()
	println("[blink] done after", b.Count, "cycles")
}

func pressKey(m *soc.SoC) { m.Feed([]byte{' '}) }
