package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"picosoc-go/demo"
	"picosoc-go/platform"
)

func main() {
	cfgPath := flag.String("config", "", "board description (JSON)")
	devmem := flag.String("devmem", "", "drive real hardware through this memory device")
	steps := flag.Int("steps", 16, "LED steps to show (0 = run until interrupted)")
	flag.Parse()

	cfg, err := platform.LoadConfig(*cfgPath)
	if err != nil {
		println("[hello] config:", err.Error())
		os.Exit(1)
	}
	sys, tgt, err := platform.Boot(cfg, platform.Options{DevMem: *devmem, Tx: os.Stdout})
	if err != nil {
		println("[hello] boot:", err.Error())
		os.Exit(1)
	}
	defer tgt.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	h := &demo.Hello{Sys: sys}
	if err := h.Setup(); err != nil {
		sys.Error(err, "led setup")
		os.Exit(1)
	}
	for n := 1; ctx.Err() == nil && (*steps == 0 || n <= *steps); n++ {
		h.Step()
	}
	_ = sys.UART.Flush()
}
