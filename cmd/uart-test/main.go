//go:build !tinygo && unix

package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/sigurn/crc8"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
	"tinygo.org/x/drivers"

	"picosoc-go/demo"
	"picosoc-go/platform"
	"picosoc-go/soc"
)

func main() {
	cfgPath := flag.String("config", "", "board description (JSON)")
	selftest := flag.Int("selftest", 0, "run an echo integrity test over N bytes and exit")
	flag.Parse()

	cfg, err := platform.LoadConfig(*cfgPath)
	if err != nil {
		println("[uart] config:", err.Error())
		os.Exit(1)
	}

	echoed := &sink{}
	opts := platform.Options{Tx: os.Stdout}
	if *selftest > 0 {
		opts.Tx = echoed
	}
	sys, tgt, err := platform.Boot(cfg, opts)
	if err != nil {
		println("[uart] boot:", err.Error())
		os.Exit(1)
	}
	defer tgt.Close()

	con := &demo.Console{Sys: sys}
	if err := con.Setup(); err != nil {
		sys.Error(err, "console setup")
		os.Exit(1)
	}

	if *selftest > 0 {
		if !integrity(tgt.Model, con, sys.UART, echoed, *selftest) {
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	restore := rawStdin()
	defer restore()
	ctx, cancel := context.WithCancel(ctx)
	go pumpStdin(ctx, cancel, tgt.Model)

	if err := con.Run(ctx); err != nil {
		println("[uart] console:", err.Error())
	}
}

// rawStdin switches a terminal stdin to raw, non-blocking mode and returns
// the undo function.
func rawStdin() func() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		println("[uart] raw mode:", err.Error())
		return func() {}
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		println("[uart] nonblocking stdin:", err.Error())
	}
	return func() {
		_ = unix.SetNonblock(fd, false)
		_ = term.Restore(fd, old)
	}
}

// pumpStdin feeds keystrokes into the simulated UART. Ctrl-C and Ctrl-D end
// the session.
func pumpStdin(ctx context.Context, cancel context.CancelFunc, m *soc.SoC) {
	defer cancel()
	fd := int(os.Stdin.Fd())
	buf := make([]byte, 64)
	for ctx.Err() == nil {
		n, err := unix.Read(fd, buf)
		if err == unix.EAGAIN || err == unix.EINTR {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil || n <= 0 {
			return
		}
		for _, c := range buf[:n] {
			if c == 0x03 || c == 0x04 {
				return
			}
			for m.Feed([]byte{c}) == 0 {
				if ctx.Err() != nil {
					return
				}
				time.Sleep(time.Millisecond)
			}
		}
	}
}

// integrity pushes n random printable bytes through echo mode and compares
// CRC-8 over what was fed with CRC-8 over what came back.
func integrity(m *soc.SoC, con *demo.Console, u drivers.UART, echoed *sink, n int) bool {
	table := crc8.MakeTable(crc8.CRC8)

	m.Feed([]byte{'e'})
	for con.Poll() {
	}
	echoed.reset()

	sent := crc8.Init(table)
	chunk := make([]byte, 64)
	for left := n; left > 0; {
		k := min(left, len(chunk))
		for i := range chunk[:k] {
			c := byte(' ' + rand.Intn(94))
			if c == 'q' {
				c = 'Q'
			}
			chunk[i] = c
		}
		sent = crc8.Update(sent, chunk[:k], table)
		fed := m.Feed(chunk[:k])
		for con.Poll() {
		}
		if fed != k {
			println("[uart] integrity: FIFO overflow after", n-left+fed, "bytes")
			return false
		}
		left -= k
	}
	if u.Buffered() != 0 {
		println("[uart] integrity: bytes left unread")
		return false
	}

	got := crc8.Checksum(echoed.bytes(), table)
	want := crc8.Complete(sent, table)
	if got != want || len(echoed.bytes()) != n {
		println("[uart] integrity: FAIL want", want, "got", got, "len", len(echoed.bytes()))
		return false
	}
	println("[uart] integrity: PASS", n, "bytes, crc", got)
	return true
}

type sink struct{ b []byte }

func (s *sink) Write(p []byte) (int, error) { s.b = append(s.b, p...); return len(p), nil }
func (s *sink) bytes() []byte               { return s.b }
func (s *sink) reset()                      { s.b = s.b[:0] }
